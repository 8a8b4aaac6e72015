package model

type StudentStatus string

const (
	StudentPlaced    StudentStatus = "Placed"
	StudentInterning StudentStatus = "Interning"
	StudentSeeking   StudentStatus = "Seeking"
)

func (s StudentStatus) Valid() bool {
	switch s {
	case StudentPlaced, StudentInterning, StudentSeeking:
		return true
	}
	return false
}

// Student is a roster record managed by the college.
type Student struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Department string        `json:"department"`
	Year       string        `json:"year"`
	GPA        float64       `json:"gpa"`
	Status     StudentStatus `json:"status"`
	Skills     []string      `json:"skills"`
	Company    string        `json:"company,omitempty"`
	Avatar     string        `json:"avatar,omitempty"`
}

func (s Student) Clone() Student {
	s.Skills = cloneStrings(s.Skills)
	return s
}

// CandidateStatus is an industry reviewer's decision on a candidate.
type CandidateStatus string

const (
	CandidateShortlisted CandidateStatus = "Shortlisted"
	CandidateRejected    CandidateStatus = "Rejected"
)

func (c CandidateStatus) Valid() bool {
	return c == CandidateShortlisted || c == CandidateRejected
}
