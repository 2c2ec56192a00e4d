package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/entities"
	"card-system/pkg/constants"
)

type requestServiceFixture struct {
	requestRepo  *fakeRequestRepo
	historyRepo  *fakeHistoryRepo
	statusRepo   *fakeStatusRepo
	cardTypeRepo *fakeCardTypeRepo
	branchRepo   *fakeBranchRepo
	uoRepo       *fakeUserOrgRepo
	cardRepo     *fakeCardRepo
	svc          CardRequestServiceInterface
}

func newRequestFixture() *requestServiceFixture {
	f := &requestServiceFixture{
		requestRepo: &fakeRequestRepo{},
		historyRepo: &fakeHistoryRepo{},
		statusRepo: &fakeStatusRepo{Statuses: []entities.RequestStatus{
			{ID: 1, Code: constants.StatusNew, Name: "Новая"},
			{ID: 2, Code: constants.StatusInReview, Name: "На рассмотрении"},
			{ID: 3, Code: constants.StatusApproved, Name: "Одобрена"},
			{ID: 4, Code: constants.StatusRejected, Name: "Отклонена"},
			{ID: 5, Code: constants.StatusIssued, Name: "Выпущена"},
		}},
		cardTypeRepo: &fakeCardTypeRepo{
			CardTypes: []entities.CardType{{ID: 1, TypeName: "Зарплатная"}},
			Templates: map[uint64]entities.CardTypeLimitTemplate{
				1: {ID: 1, CardTypeID: 1, DailyLimit: "150000.00", MonthlyLimit: "1500000.00", SingleOpLimit: "100000.00", IsDefault: true},
			},
		},
		branchRepo: &fakeBranchRepo{Branches: []entities.Branch{{ID: 1, Name: "Центральное отделение"}}},
		uoRepo: &fakeUserOrgRepo{Links: []entities.UserOrganization{
			{
				ID: 1, UserID: 1, OrganizationID: 1, Position: "Инженер",
				IsActive: true, DateFrom: time.Now().AddDate(-1, 0, 0),
				User:         &entities.User{ID: 1, FirstName: "Иван", LastName: "Кузнецов"},
				Organization: &entities.Organization{ID: 1, Name: "ООО «Вектор»"},
			},
		}},
		cardRepo: &fakeCardRepo{},
	}
	f.svc = NewCardRequestService(
		f.requestRepo, f.historyRepo, f.statusRepo, f.cardTypeRepo,
		f.branchRepo, f.uoRepo, f.cardRepo, fakeTxManager{}, zap.NewNop(),
	)
	return f
}

func requestWithStatus(assignedTo uint64, status entities.RequestStatus) *entities.CardRequest {
	return &entities.CardRequest{
		ID:                 100,
		RequestNumber:      "REQ-20260510-AABBCCDDEEFF",
		UserOrganizationID: 1,
		CardTypeID:         1,
		BranchID:           1,
		StatusID:           status.ID,
		AssignedEmployeeID: &assignedTo,
		Status:             &status,
		UserOrganization: &entities.UserOrganization{
			ID: 1, Position: "Инженер",
			User:         &entities.User{ID: 1, FirstName: "Иван", LastName: "Кузнецов"},
			Organization: &entities.Organization{ID: 1, Name: "ООО «Вектор»"},
		},
		CardType: &entities.CardType{ID: 1, TypeName: "Зарплатная"},
		Branch:   &entities.Branch{ID: 1, Name: "Центральное отделение"},
	}
}

func TestUpdateRequest_IssuedIsImmutable(t *testing.T) {
	f := newRequestFixture()
	issued := requestWithStatus(5, entities.RequestStatus{ID: 5, Code: constants.StatusIssued, Name: "Выпущена"})
	f.requestRepo.FindRequestFn = func(ctx context.Context, id uint64) (*entities.CardRequest, error) {
		return issued, nil
	}

	_, err := f.svc.UpdateRequest(managerCtx(5), 100, dto.UpdateCardRequestDTO{})
	requireHTTPCode(t, err, http.StatusConflict)
}

// Параллельное изменение: заявка выпущена между первоначальным чтением
// и взятием блокировки строки, правка не должна пройти.
func TestUpdateRequest_RaceGuardedByRowLock(t *testing.T) {
	f := newRequestFixture()
	approved := requestWithStatus(5, entities.RequestStatus{ID: 3, Code: constants.StatusApproved, Name: "Одобрена"})
	f.requestRepo.FindRequestFn = func(ctx context.Context, id uint64) (*entities.CardRequest, error) {
		return approved, nil
	}
	f.requestRepo.LockRequestStatusFn = func(ctx context.Context, id uint64) (uint64, error) {
		return 5, nil
	}
	updateCalled := false
	f.requestRepo.UpdateRequestFn = func(ctx context.Context, id uint64, request entities.CardRequest) error {
		updateCalled = true
		return nil
	}

	_, err := f.svc.UpdateRequest(managerCtx(5), 100, dto.UpdateCardRequestDTO{})
	requireHTTPCode(t, err, http.StatusConflict)
	assert.False(t, updateCalled)
}

func TestChangeStatus_IssuedIsTerminal(t *testing.T) {
	f := newRequestFixture()
	issued := requestWithStatus(5, entities.RequestStatus{ID: 5, Code: constants.StatusIssued, Name: "Выпущена"})
	f.requestRepo.FindRequestFn = func(ctx context.Context, id uint64) (*entities.CardRequest, error) {
		return issued, nil
	}
	f.requestRepo.LockRequestStatusFn = func(ctx context.Context, id uint64) (uint64, error) {
		return 5, nil
	}

	_, err := f.svc.ChangeStatus(managerCtx(5), 100, dto.ChangeStatusDTO{NewStatusID: 2})
	requireHTTPCode(t, err, http.StatusConflict)
	assert.Empty(t, f.historyRepo.Entries)
}

// Параллельная смена: к моменту взятия блокировки заявка уже выпущена,
// хотя первоначальное чтение видело её одобренной.
func TestChangeStatus_RaceGuardedByRowLock(t *testing.T) {
	f := newRequestFixture()
	approved := requestWithStatus(5, entities.RequestStatus{ID: 3, Code: constants.StatusApproved, Name: "Одобрена"})
	f.requestRepo.FindRequestFn = func(ctx context.Context, id uint64) (*entities.CardRequest, error) {
		return approved, nil
	}
	f.requestRepo.LockRequestStatusFn = func(ctx context.Context, id uint64) (uint64, error) {
		return 5, nil
	}

	_, err := f.svc.ChangeStatus(managerCtx(5), 100, dto.ChangeStatusDTO{NewStatusID: 2})
	requireHTTPCode(t, err, http.StatusConflict)
}

func TestChangeStatus_TransitionToIssuedCreatesCardWithLimits(t *testing.T) {
	f := newRequestFixture()
	approved := requestWithStatus(5, entities.RequestStatus{ID: 3, Code: constants.StatusApproved, Name: "Одобрена"})
	f.requestRepo.FindRequestFn = func(ctx context.Context, id uint64) (*entities.CardRequest, error) {
		return approved, nil
	}
	f.requestRepo.LockRequestStatusFn = func(ctx context.Context, id uint64) (uint64, error) {
		return 3, nil
	}
	var updatedStatusID uint64
	f.requestRepo.UpdateStatusFn = func(ctx context.Context, id uint64, statusID uint64) error {
		updatedStatusID = statusID
		return nil
	}

	_, err := f.svc.ChangeStatus(managerCtx(5), 100, dto.ChangeStatusDTO{NewStatusID: 5, Comment: "Карта готова"})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), updatedStatusID)

	require.Len(t, f.cardRepo.Cards, 1)
	card := f.cardRepo.Cards[0]
	assert.Equal(t, uint64(100), card.RequestID)
	assert.Regexp(t, `^\d{16}$`, card.CardNumber)
	assert.True(t, card.IsActive)

	require.Len(t, f.cardRepo.Limits, 1)
	assert.Equal(t, "150000.00", f.cardRepo.Limits[0].DailyLimit)

	require.Len(t, f.historyRepo.Entries, 1)
	entry := f.historyRepo.Entries[0]
	require.NotNil(t, entry.OldStatusID)
	assert.Equal(t, uint64(3), *entry.OldStatusID)
	assert.Equal(t, uint64(5), entry.NewStatusID)
	assert.Equal(t, uint64(5), entry.ChangedByID)
	require.NotNil(t, entry.Comment)
	assert.Equal(t, "Карта готова", *entry.Comment)
}

func TestChangeStatus_NonIssuedTransitionDoesNotCreateCard(t *testing.T) {
	f := newRequestFixture()
	newReq := requestWithStatus(5, entities.RequestStatus{ID: 1, Code: constants.StatusNew, Name: "Новая"})
	f.requestRepo.FindRequestFn = func(ctx context.Context, id uint64) (*entities.CardRequest, error) {
		return newReq, nil
	}
	f.requestRepo.LockRequestStatusFn = func(ctx context.Context, id uint64) (uint64, error) {
		return 1, nil
	}
	f.requestRepo.UpdateStatusFn = func(ctx context.Context, id uint64, statusID uint64) error {
		return nil
	}

	_, err := f.svc.ChangeStatus(managerCtx(5), 100, dto.ChangeStatusDTO{NewStatusID: 2})
	require.NoError(t, err)

	assert.Empty(t, f.cardRepo.Cards)
	require.Len(t, f.historyRepo.Entries, 1)
}

func TestGetRequest_ManagerCannotSeeForeignRequest(t *testing.T) {
	f := newRequestFixture()
	foreign := requestWithStatus(99, entities.RequestStatus{ID: 1, Code: constants.StatusNew, Name: "Новая"})
	f.requestRepo.FindRequestFn = func(ctx context.Context, id uint64) (*entities.CardRequest, error) {
		return foreign, nil
	}

	// Чужая заявка для менеджера — ошибка прав, а не «не найдено».
	_, err := f.svc.GetRequest(managerCtx(5), 100)
	requireHTTPCode(t, err, http.StatusForbidden)

	// Администратор видит любую.
	result, err := f.svc.GetRequest(adminCtx(), 100)
	require.NoError(t, err)
	assert.Equal(t, "REQ-20260510-AABBCCDDEEFF", result.RequestNumber)
}

func TestCreateRequest_AssignsCreatorAndWritesHistory(t *testing.T) {
	f := newRequestFixture()

	var created entities.CardRequest
	f.requestRepo.CreateRequestFn = func(ctx context.Context, request entities.CardRequest) (uint64, error) {
		created = request
		return 100, nil
	}
	f.requestRepo.FindRequestFn = func(ctx context.Context, id uint64) (*entities.CardRequest, error) {
		result := requestWithStatus(5, entities.RequestStatus{ID: 1, Code: constants.StatusNew, Name: "Новая"})
		result.RequestNumber = created.RequestNumber
		return result, nil
	}

	result, err := f.svc.CreateRequest(managerCtx(5), dto.CreateCardRequestDTO{
		UserOrganizationID: 1, CardTypeID: 1, BranchID: 1, Comments: "Срочно",
	})
	require.NoError(t, err)

	require.NotNil(t, created.AssignedEmployeeID)
	assert.Equal(t, uint64(5), *created.AssignedEmployeeID)
	assert.Equal(t, uint64(1), created.StatusID)
	assert.Regexp(t, `^REQ-\d{8}-[0-9A-F]{12}$`, created.RequestNumber)
	assert.Equal(t, created.RequestNumber, result.RequestNumber)

	require.Len(t, f.historyRepo.Entries, 1)
	assert.Nil(t, f.historyRepo.Entries[0].OldStatusID)
	assert.Equal(t, uint64(1), f.historyRepo.Entries[0].NewStatusID)
}

func TestCreateRequest_RejectsInactiveLink(t *testing.T) {
	f := newRequestFixture()
	expired := time.Now().AddDate(0, -1, 0)
	f.uoRepo.Links[0].DateTo = &expired

	_, err := f.svc.CreateRequest(managerCtx(5), dto.CreateCardRequestDTO{
		UserOrganizationID: 1, CardTypeID: 1, BranchID: 1,
	})
	requireHTTPCode(t, err, http.StatusBadRequest)
}

func TestCreateRequest_RejectsUnknownReferences(t *testing.T) {
	f := newRequestFixture()

	_, err := f.svc.CreateRequest(managerCtx(5), dto.CreateCardRequestDTO{
		UserOrganizationID: 404, CardTypeID: 1, BranchID: 1,
	})
	requireHTTPCode(t, err, http.StatusBadRequest)

	_, err = f.svc.CreateRequest(managerCtx(5), dto.CreateCardRequestDTO{
		UserOrganizationID: 1, CardTypeID: 404, BranchID: 1,
	})
	requireHTTPCode(t, err, http.StatusBadRequest)
}
