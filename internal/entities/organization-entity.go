package entities

import "time"

type Organization struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	INN           string    `json:"inn"`
	KPP           *string   `json:"kpp,omitempty"`
	LegalAddress  string    `json:"legal_address"`
	ActualAddress *string   `json:"actual_address,omitempty"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	DirectorName  string    `json:"director_name"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
