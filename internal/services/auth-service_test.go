package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/entities"
	"card-system/pkg/config"
	"card-system/pkg/constants"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/utils"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute}
}

func activeEmployee(t *testing.T, password string) *entities.Employee {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entities.Employee{
		ID:           10,
		FirstName:    "Ольга",
		LastName:     "Иванова",
		Email:        "manager@bank.example",
		PasswordHash: hash,
		IsActive:     true,
		Role:         &entities.Role{ID: 2, Code: constants.RoleManager, Name: "Менеджер"},
	}
}

func newAuthService(repo *fakeEmployeeRepo, logs *fakeAccessLogRepo, cache *fakeCache) AuthServiceInterface {
	return NewAuthService(repo, logs, cache, fakeJWT{}, zap.NewNop(), testAuthConfig())
}

func TestLogin_Success(t *testing.T) {
	employee := activeEmployee(t, "correct-pass")
	repo := &fakeEmployeeRepo{
		FindByEmailAndActiveFn: func(ctx context.Context, email string) (*entities.Employee, error) {
			return employee, nil
		},
	}
	logs := &fakeAccessLogRepo{}
	svc := newAuthService(repo, logs, newFakeCache())

	response, err := svc.Login(context.Background(), dto.LoginDTO{
		Email: employee.Email, Password: "correct-pass",
	}, LoginMeta{IPAddress: "10.0.0.1", UserAgent: "test"})
	require.NoError(t, err)

	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.Equal(t, "Иванова Ольга", response.Employee.FIO)

	require.Len(t, logs.Logs, 1)
	assert.True(t, logs.Logs[0].IsSuccessful)
	assert.Equal(t, "10.0.0.1", logs.Logs[0].IPAddress)
}

// Несуществующий email, неактивная учётная запись и неверный пароль
// должны быть неразличимы для клиента.
func TestLogin_UniformErrorForAllFailures(t *testing.T) {
	employee := activeEmployee(t, "correct-pass")

	cases := []struct {
		name string
		repo *fakeEmployeeRepo
		pass string
	}{
		{
			name: "несуществующий email",
			repo: &fakeEmployeeRepo{
				FindByEmailAndActiveFn: func(ctx context.Context, email string) (*entities.Employee, error) {
					return nil, apperrors.ErrNotFound
				},
			},
			pass: "correct-pass",
		},
		{
			// Репозиторий ищет только активных: для неактивного
			// сотрудника результат тот же, что и для несуществующего.
			name: "неактивная учётная запись",
			repo: &fakeEmployeeRepo{
				FindByEmailAndActiveFn: func(ctx context.Context, email string) (*entities.Employee, error) {
					return nil, apperrors.ErrNotFound
				},
			},
			pass: "correct-pass",
		},
		{
			name: "неверный пароль",
			repo: &fakeEmployeeRepo{
				FindByEmailAndActiveFn: func(ctx context.Context, email string) (*entities.Employee, error) {
					return employee, nil
				},
			},
			pass: "wrong-pass",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := &fakeAccessLogRepo{}
			svc := newAuthService(tc.repo, logs, newFakeCache())

			_, err := svc.Login(context.Background(), dto.LoginDTO{
				Email: "manager@bank.example", Password: tc.pass,
			}, LoginMeta{})

			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
			require.Len(t, logs.Logs, 1)
			assert.False(t, logs.Logs[0].IsSuccessful)
		})
	}
}

func TestLogin_LockoutAfterMaxAttempts(t *testing.T) {
	employee := activeEmployee(t, "correct-pass")
	repo := &fakeEmployeeRepo{
		FindByEmailAndActiveFn: func(ctx context.Context, email string) (*entities.Employee, error) {
			return employee, nil
		},
	}
	cache := newFakeCache()
	svc := newAuthService(repo, &fakeAccessLogRepo{}, cache)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), dto.LoginDTO{
			Email: employee.Email, Password: "wrong-pass",
		}, LoginMeta{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// После исчерпания попыток даже верный пароль не пускает.
	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email: employee.Email, Password: "correct-pass",
	}, LoginMeta{})
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)

	lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, employee.ID)
	_, ok := cache.values[lockoutKey]
	assert.True(t, ok)
}

func TestLogin_SuccessResetsAttemptCounter(t *testing.T) {
	employee := activeEmployee(t, "correct-pass")
	repo := &fakeEmployeeRepo{
		FindByEmailAndActiveFn: func(ctx context.Context, email string) (*entities.Employee, error) {
			return employee, nil
		},
	}
	cache := newFakeCache()
	svc := newAuthService(repo, &fakeAccessLogRepo{}, cache)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email: employee.Email, Password: "wrong-pass",
	}, LoginMeta{})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginDTO{
		Email: employee.Email, Password: "correct-pass",
	}, LoginMeta{})
	require.NoError(t, err)

	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, employee.ID)
	assert.Zero(t, cache.counters[attemptsKey])
}

func TestResolveActor(t *testing.T) {
	t.Run("активный менеджер", func(t *testing.T) {
		employee := activeEmployee(t, "pass")
		repo := &fakeEmployeeRepo{
			FindEmployeeFn: func(ctx context.Context, id uint64) (*entities.Employee, error) {
				return employee, nil
			},
		}
		svc := newAuthService(repo, &fakeAccessLogRepo{}, newFakeCache())

		actor, err := svc.ResolveActor(context.Background(), employee.ID)
		require.NoError(t, err)
		assert.Equal(t, employee.ID, actor.ID)
		assert.False(t, actor.IsAdmin())
	})

	t.Run("деактивированный сотрудник", func(t *testing.T) {
		repo := &fakeEmployeeRepo{
			FindEmployeeFn: func(ctx context.Context, id uint64) (*entities.Employee, error) {
				return &entities.Employee{ID: id, IsActive: false}, nil
			},
		}
		svc := newAuthService(repo, &fakeAccessLogRepo{}, newFakeCache())

		_, err := svc.ResolveActor(context.Background(), 10)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("удалённый сотрудник", func(t *testing.T) {
		repo := &fakeEmployeeRepo{
			FindEmployeeFn: func(ctx context.Context, id uint64) (*entities.Employee, error) {
				return nil, apperrors.ErrNotFound
			},
		}
		svc := newAuthService(repo, &fakeAccessLogRepo{}, newFakeCache())

		_, err := svc.ResolveActor(context.Background(), 10)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
