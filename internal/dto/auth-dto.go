package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	Employee     EmployeePublicDTO  `json:"employee"`
}

type EmployeePublicDTO struct {
	ID       uint64  `json:"id"`
	FIO      string  `json:"fio"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	RoleCode string  `json:"role_code"`
	RoleName string  `json:"role_name"`
	BranchID *uint64 `json:"branch_id,omitempty"`
	IsActive bool    `json:"is_active"`
}
