package entities

import "time"

// Card — выпущенная карта, привязанная к исходной заявке.
type Card struct {
	ID         uint64    `json:"id"`
	RequestID  uint64    `json:"request_id"`
	CardNumber string    `json:"card_number"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`

	Request *CardRequest `json:"request,omitempty"`
	Limit   *CardLimit   `json:"limit,omitempty"`
}

// CardLimit — лимиты расходных операций по карте.
type CardLimit struct {
	ID            uint64    `json:"id"`
	CardID        uint64    `json:"card_id"`
	DailyLimit    string    `json:"daily_limit"`
	MonthlyLimit  string    `json:"monthly_limit"`
	SingleOpLimit string    `json:"single_op_limit"`
	UpdatedAt     time.Time `json:"updated_at"`
}
