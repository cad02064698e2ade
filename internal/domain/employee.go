package domain

import "time"

type Role string

const (
	RoleEmployee  Role = "employee"
	RoleShiftLead Role = "shift_lead"
	RoleManager   Role = "manager"
)

// Rank orders roles so a higher-ranked employee can stand in for a
// lower-ranked coverage requirement.
func (r Role) Rank() int {
	switch r {
	case RoleManager:
		return 3
	case RoleShiftLead:
		return 2
	case RoleEmployee:
		return 1
	default:
		return 0
	}
}

// Satisfies reports whether an employee holding role r can fill a
// requirement that asks for required.
func (r Role) Satisfies(required Role) bool {
	return r.Rank() >= required.Rank()
}

type Employee struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
