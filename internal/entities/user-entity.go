package entities

import "time"

// User — клиент банка, на которого оформляется карта.
// Запись идентификационных данных неизменяема после создания.
type User struct {
	ID               uint64     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	MiddleName       *string    `json:"middle_name,omitempty"`
	PassportSeries   string     `json:"passport_series"`
	PassportNumber   string     `json:"passport_number"`
	PassportIssuedBy string     `json:"passport_issued_by"`
	PassportIssueDate time.Time `json:"passport_issue_date"`
	BirthDate        time.Time  `json:"birth_date"`
	Phone            string     `json:"phone"`
	Email            *string    `json:"email,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// FullName — «Фамилия Имя Отчество».
func (u User) FullName() string {
	full := u.LastName + " " + u.FirstName
	if u.MiddleName != nil && *u.MiddleName != "" {
		full += " " + *u.MiddleName
	}
	return full
}
