package entities

import "card-system/pkg/constants"

type Role struct {
	ID          uint64             `json:"id"`
	Code        constants.RoleCode `json:"code"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
}
