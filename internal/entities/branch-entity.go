package entities

type Branch struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	WorkHours string `json:"work_hours"`
	IsActive  bool   `json:"is_active"`
}
