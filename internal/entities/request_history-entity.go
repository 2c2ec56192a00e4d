package entities

import "time"

// RequestHistory — журнал изменений статуса заявки, только добавление.
type RequestHistory struct {
	ID          uint64    `json:"id"`
	RequestID   uint64    `json:"request_id"`
	OldStatusID *uint64   `json:"old_status_id,omitempty"`
	NewStatusID uint64    `json:"new_status_id"`
	ChangedByID uint64    `json:"changed_by_id"`
	Comment     *string   `json:"comment,omitempty"`
	ChangedAt   time.Time `json:"changed_at"`

	OldStatus *RequestStatus `json:"old_status,omitempty"`
	NewStatus *RequestStatus `json:"new_status,omitempty"`
	ChangedBy *Employee      `json:"changed_by,omitempty"`
}
