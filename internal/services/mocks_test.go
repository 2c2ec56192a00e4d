package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"card-system/internal/entities"
	"card-system/internal/repositories"
	"card-system/pkg/constants"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/service"
	"card-system/pkg/types"
)

// Фейки на функциональных полях: тест задаёт только то, что ему нужно.

type fakeEmployeeRepo struct {
	FindEmployeeFn         func(ctx context.Context, id uint64) (*entities.Employee, error)
	FindByEmailAndActiveFn func(ctx context.Context, email string) (*entities.Employee, error)
	EmailExistsFn          func(ctx context.Context, email string) (bool, error)
	GetEmployeesFn         func(ctx context.Context) ([]entities.Employee, error)
	CreateEmployeeFn       func(ctx context.Context, employee entities.Employee) (uint64, error)
	SetActiveFn            func(ctx context.Context, id uint64, isActive bool) error
}

func (f *fakeEmployeeRepo) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error) {
	return f.FindEmployeeFn(ctx, id)
}

func (f *fakeEmployeeRepo) FindByEmailAndActive(ctx context.Context, email string) (*entities.Employee, error) {
	return f.FindByEmailAndActiveFn(ctx, email)
}

func (f *fakeEmployeeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return f.EmailExistsFn(ctx, email)
}

func (f *fakeEmployeeRepo) GetEmployees(ctx context.Context) ([]entities.Employee, error) {
	return f.GetEmployeesFn(ctx)
}

func (f *fakeEmployeeRepo) CreateEmployee(ctx context.Context, employee entities.Employee) (uint64, error) {
	return f.CreateEmployeeFn(ctx, employee)
}

func (f *fakeEmployeeRepo) SetActive(ctx context.Context, id uint64, isActive bool) error {
	return f.SetActiveFn(ctx, id, isActive)
}

type fakeAccessLogRepo struct {
	Logs []entities.AccessLog
}

func (f *fakeAccessLogRepo) CreateAccessLog(ctx context.Context, log entities.AccessLog) error {
	f.Logs = append(f.Logs, log)
	return nil
}

// fakeCache — кеш в памяти, имитирует поведение Redis-обёртки:
// Get по отсутствующему ключу возвращает ошибку.
type fakeCache struct {
	values   map[string]string
	counters map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, counters: map[string]int64{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.values[key] = "locked"
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
		delete(f.counters, k)
	}
	return nil
}

func (f *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}

type fakeJWT struct{}

func (fakeJWT) GenerateTokens(employeeID uint64) (string, string, error) {
	return "access-token", "refresh-token", nil
}

func (fakeJWT) ValidateToken(tokenString string) (*service.JwtCustomClaim, error) {
	return nil, apperrors.ErrInvalidToken
}

func (fakeJWT) GetAccessTokenTTL() time.Duration  { return time.Hour }
func (fakeJWT) GetRefreshTokenTTL() time.Duration { return time.Hour }

type fakeRoleRepo struct {
	FindRoleFn func(ctx context.Context, id uint64) (*entities.Role, error)
}

func (f *fakeRoleRepo) FindRole(ctx context.Context, id uint64) (*entities.Role, error) {
	return f.FindRoleFn(ctx, id)
}

func (f *fakeRoleRepo) FindRoleByCode(ctx context.Context, code constants.RoleCode) (*entities.Role, error) {
	return nil, apperrors.ErrNotFound
}

type fakeRequestRepo struct {
	FindRequestFn       func(ctx context.Context, id uint64) (*entities.CardRequest, error)
	LockRequestStatusFn func(ctx context.Context, id uint64) (uint64, error)
	CreateRequestFn     func(ctx context.Context, request entities.CardRequest) (uint64, error)
	UpdateRequestFn     func(ctx context.Context, id uint64, request entities.CardRequest) error
	UpdateStatusFn      func(ctx context.Context, id uint64, statusID uint64) error
}

func (f *fakeRequestRepo) GetRequests(ctx context.Context, actor types.Actor, filter types.RequestFilter) ([]entities.CardRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) FindRequest(ctx context.Context, id uint64) (*entities.CardRequest, error) {
	return f.FindRequestFn(ctx, id)
}

func (f *fakeRequestRepo) FindByRequestNumber(ctx context.Context, number string) (*entities.CardRequest, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeRequestRepo) LockRequestStatus(ctx context.Context, q repositories.Querier, id uint64) (uint64, error) {
	return f.LockRequestStatusFn(ctx, id)
}

func (f *fakeRequestRepo) CreateRequest(ctx context.Context, tx pgx.Tx, request entities.CardRequest) (uint64, error) {
	return f.CreateRequestFn(ctx, request)
}

func (f *fakeRequestRepo) UpdateRequest(ctx context.Context, tx pgx.Tx, id uint64, request entities.CardRequest) error {
	return f.UpdateRequestFn(ctx, id, request)
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, statusID uint64) error {
	return f.UpdateStatusFn(ctx, id, statusID)
}

type fakeHistoryRepo struct {
	Entries []entities.RequestHistory
}

func (f *fakeHistoryRepo) CreateHistory(ctx context.Context, tx pgx.Tx, history entities.RequestHistory) error {
	f.Entries = append(f.Entries, history)
	return nil
}

func (f *fakeHistoryRepo) GetHistoryByRequest(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error) {
	return f.Entries, nil
}

type fakeStatusRepo struct {
	Statuses []entities.RequestStatus
}

func (f *fakeStatusRepo) GetStatuses(ctx context.Context) ([]entities.RequestStatus, error) {
	return f.Statuses, nil
}

func (f *fakeStatusRepo) FindStatus(ctx context.Context, id uint64) (*entities.RequestStatus, error) {
	for i := range f.Statuses {
		if f.Statuses[i].ID == id {
			return &f.Statuses[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStatusRepo) FindStatusByCode(ctx context.Context, code constants.StatusCode) (*entities.RequestStatus, error) {
	for i := range f.Statuses {
		if f.Statuses[i].Code == code {
			return &f.Statuses[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeCardTypeRepo struct {
	CardTypes []entities.CardType
	Templates map[uint64]entities.CardTypeLimitTemplate
}

func (f *fakeCardTypeRepo) GetCardTypes(ctx context.Context) ([]entities.CardType, error) {
	return f.CardTypes, nil
}

func (f *fakeCardTypeRepo) FindCardType(ctx context.Context, id uint64) (*entities.CardType, error) {
	for i := range f.CardTypes {
		if f.CardTypes[i].ID == id {
			return &f.CardTypes[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCardTypeRepo) FindDefaultLimitTemplate(ctx context.Context, cardTypeID uint64) (*entities.CardTypeLimitTemplate, error) {
	if t, ok := f.Templates[cardTypeID]; ok {
		return &t, nil
	}
	return nil, apperrors.ErrNotFound
}

type fakeBranchRepo struct {
	Branches []entities.Branch
}

func (f *fakeBranchRepo) GetBranches(ctx context.Context) ([]entities.Branch, error) {
	return f.Branches, nil
}

func (f *fakeBranchRepo) FindBranch(ctx context.Context, id uint64) (*entities.Branch, error) {
	for i := range f.Branches {
		if f.Branches[i].ID == id {
			return &f.Branches[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeUserOrgRepo struct {
	Links []entities.UserOrganization
}

func (f *fakeUserOrgRepo) FindUserOrganization(ctx context.Context, id uint64) (*entities.UserOrganization, error) {
	for i := range f.Links {
		if f.Links[i].ID == id {
			return &f.Links[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserOrgRepo) GetByOrganization(ctx context.Context, organizationID uint64) ([]entities.UserOrganization, error) {
	return f.Links, nil
}

type fakeCardRepo struct {
	Cards  []entities.Card
	Limits []entities.CardLimit
}

func (f *fakeCardRepo) GetCards(ctx context.Context, actor types.Actor) ([]entities.Card, error) {
	return f.Cards, nil
}

func (f *fakeCardRepo) FindCard(ctx context.Context, id uint64) (*entities.Card, error) {
	for i := range f.Cards {
		if f.Cards[i].ID == id {
			return &f.Cards[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCardRepo) FindCardByRequest(ctx context.Context, requestID uint64) (*entities.Card, error) {
	for i := range f.Cards {
		if f.Cards[i].RequestID == requestID {
			return &f.Cards[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCardRepo) CreateCard(ctx context.Context, tx pgx.Tx, card entities.Card) (uint64, error) {
	card.ID = uint64(len(f.Cards) + 1)
	f.Cards = append(f.Cards, card)
	return card.ID, nil
}

func (f *fakeCardRepo) CreateCardLimit(ctx context.Context, tx pgx.Tx, limit entities.CardLimit) error {
	f.Limits = append(f.Limits, limit)
	return nil
}

// fakeTxManager выполняет функцию без настоящей транзакции.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}
