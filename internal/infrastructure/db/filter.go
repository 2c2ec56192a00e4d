package db

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"card-system/pkg/types"
)

// Колонки запроса списка заявок. Алиасы фиксированы запросом в
// репозитории заявок: cr — card_requests, uo — user_organizations,
// u — users, o — organizations.
const (
	colUserID           = "uo.user_id"
	colOrganizationID   = "uo.organization_id"
	colCardTypeID       = "cr.card_type_id"
	colAssignedEmployee = "cr.assigned_employee_id"
	colStatusID         = "cr.status_id"
	colCreatedAt        = "cr.created_at"
	colClientSurname    = "u.last_name"
	colOrganizationName = "o.name"
)

// ApplyRequestFilter добавляет к builder условия по присутствующим полям
// фильтра. Отсутствующие поля условий не дают; присутствующие соединяются
// по И. Для не-администратора безусловно закрепляется
// assigned_employee_id = actor.ID — даже если вызывающий передал чужой
// AssignedEmployeeID.
func ApplyRequestFilter(builder sq.SelectBuilder, filter types.RequestFilter, actor types.Actor) sq.SelectBuilder {
	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{colUserID: *filter.UserID})
	}
	if filter.OrganizationID != nil {
		builder = builder.Where(sq.Eq{colOrganizationID: *filter.OrganizationID})
	}
	if filter.CardTypeID != nil {
		builder = builder.Where(sq.Eq{colCardTypeID: *filter.CardTypeID})
	}
	if filter.AssignedEmployeeID != nil {
		builder = builder.Where(sq.Eq{colAssignedEmployee: *filter.AssignedEmployeeID})
	}
	if filter.StatusID != nil {
		builder = builder.Where(sq.Eq{colStatusID: *filter.StatusID})
	}

	// Диапазон дат включителен по календарным дням: нижняя граница — начало
	// дня DateFrom, верхняя — строго меньше начала дня, следующего за DateTo.
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{colCreatedAt: startOfDay(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.Lt{colCreatedAt: startOfDay(*filter.DateTo).AddDate(0, 0, 1)})
	}

	if !actor.IsAdmin() {
		builder = builder.Where(sq.Eq{colAssignedEmployee: actor.ID})
	}

	return builder
}

// ApplyRequestSort добавляет сортировку. Направление учитывается только
// для известных ключей; неизвестный ключ — безусловный откат к
// created_at DESC.
func ApplyRequestSort(builder sq.SelectBuilder, sortBy, sortDirection string) sq.SelectBuilder {
	var col string
	switch sortBy {
	case types.SortByClient:
		col = colClientSurname
	case types.SortByOrganization:
		col = colOrganizationName
	case types.SortByCreatedAt, "":
		col = colCreatedAt
	default:
		return builder.OrderBy(colCreatedAt + " DESC")
	}

	dir := "DESC"
	if strings.EqualFold(sortDirection, "asc") {
		dir = "ASC"
	}

	return builder.OrderBy(col + " " + dir)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
