package entities

import "time"

// UserOrganization — трудовая связь клиента с организацией, ограниченная
// по времени. Заявка на карту всегда ссылается именно на связь, а не на
// пользователя и организацию по отдельности: должность и окно действия
// принадлежат связи.
type UserOrganization struct {
	ID             uint64     `json:"id"`
	UserID         uint64     `json:"user_id"`
	OrganizationID uint64     `json:"organization_id"`
	Position       string     `json:"position"`
	IsActive       bool       `json:"is_active"`
	DateFrom       time.Time  `json:"date_from"`
	DateTo         *time.Time `json:"date_to,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	User         *User         `json:"user,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
}

// IsCurrentlyActive — связь действует на момент now:
// is_active и now внутри окна [DateFrom, DateTo] (DateTo == nil — бессрочно).
func (uo UserOrganization) IsCurrentlyActive(now time.Time) bool {
	if !uo.IsActive {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if uo.DateFrom.After(today) {
		return false
	}
	if uo.DateTo != nil && uo.DateTo.Before(today) {
		return false
	}
	return true
}
