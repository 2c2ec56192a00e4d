package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeDisplayName(t *testing.T) {
	assert.Equal(t, "Новая", StatusNew.DisplayName())
	assert.Equal(t, "Выпущена", StatusIssued.DisplayName())

	// Неизвестный код не прячется за пустой строкой.
	assert.Equal(t, "ARCHIVED", StatusCode("ARCHIVED").DisplayName())
}

func TestStatusCodeFromName(t *testing.T) {
	code, err := StatusCodeFromName("Выпущена")
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, code)

	_, err = StatusCodeFromName("Несуществующий")
	assert.Error(t, err)
}

func TestRoleCodeDisplayName(t *testing.T) {
	assert.Equal(t, "Администратор", RoleAdmin.DisplayName())
	assert.Equal(t, "Менеджер", RoleManager.DisplayName())
}
