package types

import "time"

// Поля сортировки списка заявок.
const (
	SortByClient       = "client"
	SortByOrganization = "organization"
	SortByCreatedAt    = "createdAt"
)

// RequestFilter — необязательные параметры фильтрации списка заявок.
// Отсутствующее поле (nil) не добавляет условия; присутствующие поля
// соединяются логическим И.
type RequestFilter struct {
	UserID             *uint64
	OrganizationID     *uint64
	CardTypeID         *uint64
	AssignedEmployeeID *uint64
	StatusID           *uint64

	// Календарные даты включительно: DateFrom — с начала дня,
	// DateTo — по конец дня (верхняя граница строго меньше начала следующего дня).
	DateFrom *time.Time
	DateTo   *time.Time

	// SortBy: client | organization | createdAt (по умолчанию createdAt).
	// SortDirection: "asc" без учета регистра, всё остальное — по убыванию.
	SortBy        string
	SortDirection string
}
