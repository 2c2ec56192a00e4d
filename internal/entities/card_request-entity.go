package entities

import (
	"time"

	"card-system/pkg/constants"
)

// CardRequest — центральная сущность документооборота: заявка на выпуск
// банковской карты для сотрудника организации.
type CardRequest struct {
	ID                 uint64    `json:"id"`
	RequestNumber      string    `json:"request_number"`
	UserOrganizationID uint64    `json:"user_organization_id"`
	CardTypeID         uint64    `json:"card_type_id"`
	BranchID           uint64    `json:"branch_id"`
	StatusID           uint64    `json:"status_id"`
	AssignedEmployeeID *uint64   `json:"assigned_employee_id,omitempty"`
	Comments           *string   `json:"comments,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	UserOrganization *UserOrganization `json:"user_organization,omitempty"`
	CardType         *CardType         `json:"card_type,omitempty"`
	Branch           *Branch           `json:"branch,omitempty"`
	Status           *RequestStatus    `json:"status,omitempty"`
	AssignedEmployee *Employee         `json:"assigned_employee,omitempty"`
}

// CanEdit — заявку можно менять, пока она не достигла терминального
// статуса «Выпущена».
func (r CardRequest) CanEdit() bool {
	return r.Status == nil || r.Status.Code != constants.StatusIssued
}
