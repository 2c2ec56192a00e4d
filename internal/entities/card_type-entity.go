package entities

type CardType struct {
	ID          uint64  `json:"id"`
	TypeName    string  `json:"type_name"`
	Description *string `json:"description,omitempty"`
	AnnualFee   string  `json:"annual_fee"`
	Currency    string  `json:"currency"`
}

// CardTypeLimitTemplate — лимиты по умолчанию для типа карты,
// применяются при выпуске карты.
type CardTypeLimitTemplate struct {
	ID            uint64 `json:"id"`
	CardTypeID    uint64 `json:"card_type_id"`
	DailyLimit    string `json:"daily_limit"`
	MonthlyLimit  string `json:"monthly_limit"`
	SingleOpLimit string `json:"single_op_limit"`
	IsDefault     bool   `json:"is_default"`
}
