package dto

type CardDTO struct {
	ID            uint64        `json:"id"`
	CardNumber    string        `json:"card_number"`
	RequestID     uint64        `json:"request_id"`
	RequestNumber string        `json:"request_number"`
	Client        ShortUserDTO  `json:"client"`
	ExpiresAt     string        `json:"expires_at"`
	IsActive      bool          `json:"is_active"`
	CreatedAt     string        `json:"created_at"`
	Limit         *CardLimitDTO `json:"limit,omitempty"`
}

type CardLimitDTO struct {
	DailyLimit    string `json:"daily_limit"`
	MonthlyLimit  string `json:"monthly_limit"`
	SingleOpLimit string `json:"single_op_limit"`
}
