// Package model defines the data structures shared by the store, the router and
// the HTTP layer. The types carry no behavior beyond small value helpers; every
// rule about how they change lives in internal/store.
package model

// Role is the persona a session user signs in as.
type Role string

const (
	RoleStudent  Role = "student"
	RoleCollege  Role = "college"
	RoleIndustry Role = "industry"
	RoleGuest    Role = "guest"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCollege, RoleIndustry, RoleGuest:
		return true
	}
	return false
}

// User is the session identity. Role is fixed for the lifetime of the value:
// signing in again replaces the whole User rather than patching it.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Bio        string `json:"bio,omitempty"`
}

// ProfilePatch is a partial update to a User. Nil fields are left untouched.
// There is deliberately no Role field.
type ProfilePatch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

// Apply returns a copy of u with the non-nil fields of p merged in.
func (p ProfilePatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	return u
}

// IsEmpty reports whether the patch would change nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Avatar == nil &&
		p.Phone == nil && p.Department == nil && p.Bio == nil
}
