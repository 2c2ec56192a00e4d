package entities

import (
	"time"

	"card-system/pkg/constants"
)

type Employee struct {
	ID           uint64    `json:"id"`
	RoleID       uint64    `json:"role_id"`
	BranchID     *uint64   `json:"branch_id,omitempty"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MiddleName   *string   `json:"middle_name,omitempty"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	Role   *Role   `json:"role,omitempty"`
	Branch *Branch `json:"branch,omitempty"`
}

func (e Employee) FullName() string {
	full := e.LastName + " " + e.FirstName
	if e.MiddleName != nil && *e.MiddleName != "" {
		full += " " + *e.MiddleName
	}
	return full
}

func (e Employee) IsAdmin() bool {
	return e.Role != nil && e.Role.Code == constants.RoleAdmin
}
