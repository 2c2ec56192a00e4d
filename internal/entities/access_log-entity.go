package entities

import "time"

// AccessLog — запись о попытке входа сотрудника.
type AccessLog struct {
	ID           uint64    `json:"id"`
	EmployeeID   *uint64   `json:"employee_id,omitempty"`
	Email        string    `json:"email"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	IsSuccessful bool      `json:"is_successful"`
	LoginTime    time.Time `json:"login_time"`
}
