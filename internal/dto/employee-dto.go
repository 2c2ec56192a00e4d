package dto

// CreateManagerDTO — создание менеджера администратором.
// Роль администратора через эту форму назначить нельзя.
type CreateManagerDTO struct {
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"required,max=100"`
	MiddleName string  `json:"middle_name" validate:"omitempty,max=100"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required,ru_phone"`
	Password   string  `json:"password" validate:"required,min=6"`
	RoleID     uint64  `json:"role_id" validate:"required"`
	BranchID   *uint64 `json:"branch_id"`
}

type EmployeeDTO struct {
	ID       uint64  `json:"id"`
	FIO      string  `json:"fio"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	RoleCode string  `json:"role_code"`
	RoleName string  `json:"role_name"`
	BranchID *uint64 `json:"branch_id,omitempty"`
	IsActive bool    `json:"is_active"`
}

type ProfileDTO struct {
	Employee EmployeeDTO   `json:"employee"`
	IsAdmin  bool          `json:"is_admin"`
	Managers []EmployeeDTO `json:"managers,omitempty"`
}
