package dto

type StatusDTO struct {
	ID          uint64 `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CardTypeDTO struct {
	ID          uint64 `json:"id"`
	TypeName    string `json:"type_name"`
	Description string `json:"description,omitempty"`
	AnnualFee   string `json:"annual_fee"`
	Currency    string `json:"currency"`
}

type BranchDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	WorkHours string `json:"work_hours"`
	IsActive  bool   `json:"is_active"`
}

type OrganizationDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	INN          string `json:"inn"`
	LegalAddress string `json:"legal_address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	IsActive     bool   `json:"is_active"`
}

type UserDTO struct {
	ID    uint64 `json:"id"`
	FIO   string `json:"fio"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// OrganizationUserDTO — пользователь организации вместе с должностью
// из действующей связи UserOrganization.
type OrganizationUserDTO struct {
	UserOrganizationID uint64 `json:"user_organization_id"`
	UserID             uint64 `json:"user_id"`
	FIO                string `json:"fio"`
	Position           string `json:"position"`
	Phone              string `json:"phone"`
	Email              string `json:"email,omitempty"`
}
