package dto

import "github.com/aarondl/null/v8"

type CreateCardRequestDTO struct {
	UserOrganizationID uint64 `json:"user_organization_id" validate:"required"`
	CardTypeID         uint64 `json:"card_type_id" validate:"required"`
	BranchID           uint64 `json:"branch_id" validate:"required"`
	Comments           string `json:"comments" validate:"omitempty,max=2000"`
}

// UpdateCardRequestDTO — частичное обновление содержимого заявки.
// null-поля позволяют отличить «не прислано» от «сброшено в пустое».
type UpdateCardRequestDTO struct {
	UserOrganizationID null.Uint64 `json:"user_organization_id"`
	CardTypeID         null.Uint64 `json:"card_type_id"`
	BranchID           null.Uint64 `json:"branch_id"`
	Comments           null.String `json:"comments"`
}

type ChangeStatusDTO struct {
	NewStatusID uint64 `json:"new_status_id" validate:"required"`
	Comment     string `json:"comment" validate:"omitempty,max=2000"`
}

type CardRequestDTO struct {
	ID               uint64            `json:"id"`
	RequestNumber    string            `json:"request_number"`
	Client           ShortUserDTO      `json:"client"`
	Organization     ShortOrgDTO       `json:"organization"`
	Position         string            `json:"position"`
	CardType         ShortCardTypeDTO  `json:"card_type"`
	Branch           ShortBranchDTO    `json:"branch"`
	Status           ShortStatusDTO    `json:"status"`
	AssignedEmployee *ShortEmployeeDTO `json:"assigned_employee,omitempty"`
	Comments         string            `json:"comments,omitempty"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
}

type ShortUserDTO struct {
	ID  uint64 `json:"id"`
	FIO string `json:"fio"`
}

type ShortOrgDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortCardTypeDTO struct {
	ID       uint64 `json:"id"`
	TypeName string `json:"type_name"`
}

type ShortBranchDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortStatusDTO struct {
	ID   uint64 `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type ShortEmployeeDTO struct {
	ID  uint64 `json:"id"`
	FIO string `json:"fio"`
}

type RequestHistoryDTO struct {
	ID        uint64          `json:"id"`
	OldStatus *ShortStatusDTO `json:"old_status,omitempty"`
	NewStatus ShortStatusDTO  `json:"new_status"`
	ChangedBy ShortEmployeeDTO `json:"changed_by"`
	Comment   string          `json:"comment,omitempty"`
	ChangedAt string          `json:"changed_at"`
}
