package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"card-system/pkg/constants"
)

func TestCardRequestCanEdit(t *testing.T) {
	issued := CardRequest{Status: &RequestStatus{Code: constants.StatusIssued}}
	assert.False(t, issued.CanEdit())

	for _, code := range []constants.StatusCode{
		constants.StatusNew, constants.StatusInReview,
		constants.StatusApproved, constants.StatusRejected,
	} {
		request := CardRequest{Status: &RequestStatus{Code: code}}
		assert.True(t, request.CanEdit(), "статус %s должен допускать изменения", code)
	}
}

func TestUserOrganizationIsCurrentlyActive(t *testing.T) {
	now := time.Date(2026, time.May, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	t.Run("бессрочная связь", func(t *testing.T) {
		link := UserOrganization{IsActive: true, DateFrom: yesterday}
		assert.True(t, link.IsCurrentlyActive(now))
	})

	t.Run("окно действует", func(t *testing.T) {
		link := UserOrganization{IsActive: true, DateFrom: yesterday, DateTo: &tomorrow}
		assert.True(t, link.IsCurrentlyActive(now))
	})

	t.Run("границы окна включительны", func(t *testing.T) {
		today := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
		link := UserOrganization{IsActive: true, DateFrom: today, DateTo: &today}
		assert.True(t, link.IsCurrentlyActive(now))
	})

	t.Run("ещё не началась", func(t *testing.T) {
		link := UserOrganization{IsActive: true, DateFrom: tomorrow}
		assert.False(t, link.IsCurrentlyActive(now))
	})

	t.Run("уже закончилась", func(t *testing.T) {
		link := UserOrganization{IsActive: true, DateFrom: yesterday.AddDate(0, -1, 0), DateTo: &yesterday}
		assert.False(t, link.IsCurrentlyActive(now))
	})

	t.Run("выключенная связь", func(t *testing.T) {
		link := UserOrganization{IsActive: false, DateFrom: yesterday}
		assert.False(t, link.IsCurrentlyActive(now))
	})
}

func TestEmployeeIsAdmin(t *testing.T) {
	admin := Employee{Role: &Role{Code: constants.RoleAdmin}}
	manager := Employee{Role: &Role{Code: constants.RoleManager}}
	noRole := Employee{}

	assert.True(t, admin.IsAdmin())
	assert.False(t, manager.IsAdmin())
	assert.False(t, noRole.IsAdmin())
}

func TestFullName(t *testing.T) {
	middle := "Сергеевич"
	user := User{FirstName: "Иван", LastName: "Кузнецов", MiddleName: &middle}
	assert.Equal(t, "Кузнецов Иван Сергеевич", user.FullName())

	short := User{FirstName: "Иван", LastName: "Кузнецов"}
	assert.Equal(t, "Кузнецов Иван", short.FullName())
}
