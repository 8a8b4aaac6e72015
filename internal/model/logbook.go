package model

type LogbookStatus string

const (
	LogbookPending  LogbookStatus = "Pending"
	LogbookApproved LogbookStatus = "Approved"
	LogbookRejected LogbookStatus = "Rejected"
)

// LogbookEntry is one dated record of internship activity. Entries are created
// Pending; only a reviewer moves them to Approved or Rejected.
type LogbookEntry struct {
	ID            string        `json:"id"`
	Date          string        `json:"date"`
	Activity      string        `json:"activity"`
	SkillsLearned []string      `json:"skills_learned"`
	Hours         float64       `json:"hours"`
	Status        LogbookStatus `json:"status"`
	Feedback      string        `json:"feedback,omitempty"`
	MediaURL      string        `json:"mediaUrl,omitempty"`
}

func (e LogbookEntry) Clone() LogbookEntry {
	e.SkillsLearned = cloneStrings(e.SkillsLearned)
	return e
}
