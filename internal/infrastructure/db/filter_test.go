package db

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-system/pkg/constants"
	"card-system/pkg/types"
)

func baseBuilder() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("cr.id").
		From("card_requests AS cr")
}

func adminActor() types.Actor {
	return types.Actor{ID: 1, RoleCode: constants.RoleAdmin}
}

func managerActor(id uint64) types.Actor {
	return types.Actor{ID: id, RoleCode: constants.RoleManager}
}

func uptr(v uint64) *uint64 { return &v }

func TestApplyRequestFilter_EmptyFilterAdmin(t *testing.T) {
	query, args, err := ApplyRequestFilter(baseBuilder(), types.RequestFilter{}, adminActor()).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestApplyRequestFilter_AllFields(t *testing.T) {
	dateFrom := time.Date(2026, time.May, 10, 14, 30, 0, 0, time.UTC)
	dateTo := time.Date(2026, time.May, 20, 9, 15, 0, 0, time.UTC)
	filter := types.RequestFilter{
		UserID:             uptr(7),
		OrganizationID:     uptr(3),
		CardTypeID:         uptr(2),
		AssignedEmployeeID: uptr(11),
		StatusID:           uptr(4),
		DateFrom:           &dateFrom,
		DateTo:             &dateTo,
	}

	query, args, err := ApplyRequestFilter(baseBuilder(), filter, adminActor()).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "uo.user_id = $")
	assert.Contains(t, query, "uo.organization_id = $")
	assert.Contains(t, query, "cr.card_type_id = $")
	assert.Contains(t, query, "cr.assigned_employee_id = $")
	assert.Contains(t, query, "cr.status_id = $")
	assert.Contains(t, query, "cr.created_at >= $")
	assert.Contains(t, query, "cr.created_at < $")
	assert.Len(t, args, 7)
}

func TestApplyRequestFilter_SingleField(t *testing.T) {
	filter := types.RequestFilter{StatusID: uptr(5)}

	query, args, err := ApplyRequestFilter(baseBuilder(), filter, adminActor()).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "cr.status_id = $1")
	assert.NotContains(t, query, "uo.user_id")
	assert.NotContains(t, query, "cr.created_at")
	assert.Equal(t, []interface{}{uint64(5)}, args)
}

func TestApplyRequestFilter_DateRangeIsInclusiveByCalendarDay(t *testing.T) {
	loc := time.UTC
	dateFrom := time.Date(2026, time.May, 10, 23, 59, 59, 0, loc)
	dateTo := time.Date(2026, time.May, 10, 0, 0, 1, 0, loc)
	filter := types.RequestFilter{DateFrom: &dateFrom, DateTo: &dateTo}

	_, args, err := ApplyRequestFilter(baseBuilder(), filter, adminActor()).ToSql()
	require.NoError(t, err)
	require.Len(t, args, 2)

	// Нижняя граница приводится к началу дня, верхняя — к началу следующего:
	// заявка, созданная в 23:59 дня date_to, попадает в выборку.
	assert.Equal(t, time.Date(2026, time.May, 10, 0, 0, 0, 0, loc), args[0])
	assert.Equal(t, time.Date(2026, time.May, 11, 0, 0, 0, 0, loc), args[1])
}

func TestApplyRequestFilter_ManagerAlwaysPinnedToOwnRequests(t *testing.T) {
	query, args, err := ApplyRequestFilter(baseBuilder(), types.RequestFilter{}, managerActor(42)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "cr.assigned_employee_id = $1")
	assert.Equal(t, []interface{}{uint64(42)}, args)
}

func TestApplyRequestFilter_ManagerCannotFilterByForeignEmployee(t *testing.T) {
	// Менеджер просит чужие заявки: его собственное условие всё равно
	// добавляется, и пересечение оказывается пустым.
	filter := types.RequestFilter{AssignedEmployeeID: uptr(99)}

	query, args, err := ApplyRequestFilter(baseBuilder(), filter, managerActor(42)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "cr.assigned_employee_id = $1 AND cr.assigned_employee_id = $2")
	assert.Equal(t, []interface{}{uint64(99), uint64(42)}, args)
}

func TestApplyRequestSort_ByClient(t *testing.T) {
	query, _, err := ApplyRequestSort(baseBuilder(), types.SortByClient, "asc").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY u.last_name ASC")
}

func TestApplyRequestSort_ByOrganization(t *testing.T) {
	query, _, err := ApplyRequestSort(baseBuilder(), types.SortByOrganization, "desc").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY o.name DESC")
}

func TestApplyRequestSort_UnknownKeyFallsBackToCreatedAtDesc(t *testing.T) {
	// Направление вызывающего для неизвестного ключа игнорируется.
	query, _, err := ApplyRequestSort(baseBuilder(), "surname; DROP TABLE cr", "asc").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY cr.created_at DESC")
	assert.NotContains(t, query, "DROP TABLE")
}

func TestApplyRequestSort_CreatedAtHonorsDirection(t *testing.T) {
	query, _, err := ApplyRequestSort(baseBuilder(), types.SortByCreatedAt, "asc").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY cr.created_at ASC")
}

func TestApplyRequestSort_DirectionCaseInsensitive(t *testing.T) {
	query, _, err := ApplyRequestSort(baseBuilder(), types.SortByClient, "ASC").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "u.last_name ASC")

	query, _, err = ApplyRequestSort(baseBuilder(), types.SortByClient, "Asc").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "u.last_name ASC")
}

func TestApplyRequestSort_DefaultIsCreatedAtDesc(t *testing.T) {
	query, _, err := ApplyRequestSort(baseBuilder(), "", "").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY cr.created_at DESC")
}

func TestApplyRequestSort_InvalidDirectionFallsBackToDesc(t *testing.T) {
	query, _, err := ApplyRequestSort(baseBuilder(), types.SortByOrganization, "sideways").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "o.name DESC")
}
