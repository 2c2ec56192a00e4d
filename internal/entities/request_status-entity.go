package entities

import "card-system/pkg/constants"

// RequestStatus — элемент справочника статусов заявки. Бизнес-логика
// сравнивает только Code; Name — отображаемое имя.
type RequestStatus struct {
	ID          uint64               `json:"id"`
	Code        constants.StatusCode `json:"code"`
	Name        string               `json:"name"`
	Description *string              `json:"description,omitempty"`
}
