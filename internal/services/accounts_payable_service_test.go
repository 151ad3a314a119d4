package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
)

type MockAccountPayableRepository struct {
	mock.Mock
}

func (m *MockAccountPayableRepository) Create(ctx context.Context, entry *models.AccountPayable) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) CreateBatch(ctx context.Context, entries []*models.AccountPayable) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.AccountPayable, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) Update(ctx context.Context, entry *models.AccountPayable) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) List(ctx context.Context, workspaceID uuid.UUID, filter repositories.PayableFilter) ([]*models.AccountPayable, int, error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.AccountPayable), args.Int(1), args.Error(2)
}

func (m *MockAccountPayableRepository) Summary(ctx context.Context, workspaceID uuid.UUID, now time.Time) (*models.PayableSummary, error) {
	args := m.Called(ctx, workspaceID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PayableSummary), args.Error(1)
}

func (m *MockAccountPayableRepository) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPayableSummary(ctx context.Context, workspaceID uuid.UUID) (*models.PayableSummary, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PayableSummary), args.Error(1)
}

func (m *MockCacheService) SetPayableSummary(ctx context.Context, workspaceID uuid.UUID, summary *models.PayableSummary, ttl time.Duration) error {
	args := m.Called(ctx, workspaceID, summary, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetContractSummary(ctx context.Context, workspaceID uuid.UUID) (*models.ContractSummary, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractSummary), args.Error(1)
}

func (m *MockCacheService) SetContractSummary(ctx context.Context, workspaceID uuid.UUID, summary *models.ContractSummary, ttl time.Duration) error {
	args := m.Called(ctx, workspaceID, summary, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type AccountsPayableServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockAccountPayableRepository
	mockCache   *MockCacheService
	service     AccountsPayableService
	workspaceID uuid.UUID
	ctx         context.Context
}

func (suite *AccountsPayableServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockAccountPayableRepository{}
	suite.mockCache = &MockCacheService{}
	suite.mockRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())
	suite.service = NewAccountsPayableService(suite.mockRepo, suite.mockCache)
	suite.workspaceID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *AccountsPayableServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestAccountsPayableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountsPayableServiceTestSuite))
}

func (suite *AccountsPayableServiceTestSuite) TestCreate_Success() {
	req := &CreatePayableRequest{
		Amount:  1500,
		DueDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
	}

	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		entry := args.Get(1).(*models.AccountPayable)
		assert.Equal(suite.T(), suite.workspaceID, entry.WorkspaceID)
		assert.InDelta(suite.T(), 1500.0, entry.Amount, 0.0001)
		assert.InDelta(suite.T(), 1500.0, entry.TotalAmount, 0.0001)
		assert.Equal(suite.T(), models.AccountPending, entry.Status)
		assert.False(suite.T(), entry.LaunchDate.IsZero())
	})
	suite.mockCache.On("InvalidateWorkspace", suite.ctx, suite.workspaceID).Return(nil)

	entry, err := suite.service.Create(suite.ctx, suite.workspaceID, req)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), entry)
}

func (suite *AccountsPayableServiceTestSuite) TestCreate_RejectsNonPositiveAmount() {
	req := &CreatePayableRequest{
		Amount:  0,
		DueDate: time.Now(),
	}

	entry, err := suite.service.Create(suite.ctx, suite.workspaceID, req)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), entry)
	assert.Contains(suite.T(), err.Error(), "amount must be positive")
}

func (suite *AccountsPayableServiceTestSuite) TestCreate_RejectsMissingDueDate() {
	req := &CreatePayableRequest{Amount: 100}

	entry, err := suite.service.Create(suite.ctx, suite.workspaceID, req)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), entry)
	assert.Contains(suite.T(), err.Error(), "due date is required")
}

func (suite *AccountsPayableServiceTestSuite) TestCreate_TotalAmountOverride() {
	total := 4500.0
	req := &CreatePayableRequest{
		Amount:      1500,
		TotalAmount: &total,
		DueDate:     time.Now(),
	}

	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		entry := args.Get(1).(*models.AccountPayable)
		assert.InDelta(suite.T(), 4500.0, entry.TotalAmount, 0.0001)
	})
	suite.mockCache.On("InvalidateWorkspace", suite.ctx, suite.workspaceID).Return(nil)

	_, err := suite.service.Create(suite.ctx, suite.workspaceID, req)
	assert.NoError(suite.T(), err)
}

func (suite *AccountsPayableServiceTestSuite) TestSummary_CacheHit() {
	cached := &models.PayableSummary{
		Open: models.SummaryBucket{Count: 3, Total: 900},
	}

	suite.mockCache.On("GetPayableSummary", suite.ctx, suite.workspaceID).Return(cached, nil)

	summary, err := suite.service.Summary(suite.ctx, suite.workspaceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, summary)
	suite.mockRepo.AssertNotCalled(suite.T(), "Summary")
}

func (suite *AccountsPayableServiceTestSuite) TestSummary_CacheMissComputesAndStores() {
	computed := &models.PayableSummary{
		DueToday: models.SummaryBucket{Count: 1, Total: 100},
	}

	suite.mockCache.On("GetPayableSummary", suite.ctx, suite.workspaceID).Return(nil, nil)
	suite.mockRepo.On("Summary", suite.ctx, suite.workspaceID, mock.AnythingOfType("time.Time")).Return(computed, nil)
	suite.mockCache.On("SetPayableSummary", suite.ctx, suite.workspaceID, computed, 5*time.Minute).Return(nil)

	summary, err := suite.service.Summary(suite.ctx, suite.workspaceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), computed, summary)
}

func (suite *AccountsPayableServiceTestSuite) TestMarkPaid_SetsStatusAndPaidDate() {
	id := uuid.New()
	paidDate := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.Local)
	existing := &models.AccountPayable{
		ID:          id,
		WorkspaceID: suite.workspaceID,
		Amount:      100,
		TotalAmount: 100,
		DueDate:     time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
		Status:      models.AccountPending,
	}

	suite.mockRepo.On("GetByID", suite.ctx, suite.workspaceID, id).Return(existing, nil)
	suite.mockRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		entry := args.Get(1).(*models.AccountPayable)
		assert.Equal(suite.T(), models.AccountPaid, entry.Status)
		assert.Equal(suite.T(), paidDate, *entry.PaidDate)
	})
	suite.mockCache.On("InvalidateWorkspace", suite.ctx, suite.workspaceID).Return(nil)

	err := suite.service.MarkPaid(suite.ctx, suite.workspaceID, id, paidDate)
	assert.NoError(suite.T(), err)
}

func (suite *AccountsPayableServiceTestSuite) TestMarkPaid_NotFound() {
	id := uuid.New()

	suite.mockRepo.On("GetByID", suite.ctx, suite.workspaceID, id).Return(nil, nil)

	err := suite.service.MarkPaid(suite.ctx, suite.workspaceID, id, time.Now())
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "entry not found")
}

func (suite *AccountsPayableServiceTestSuite) TestDelete_InvalidatesCache() {
	id := uuid.New()

	suite.mockRepo.On("Delete", suite.ctx, suite.workspaceID, id).Return(nil)
	suite.mockCache.On("InvalidateWorkspace", suite.ctx, suite.workspaceID).Return(nil)

	err := suite.service.Delete(suite.ctx, suite.workspaceID, id)
	assert.NoError(suite.T(), err)
}

func (suite *AccountsPayableServiceTestSuite) TestList_PassesThrough() {
	filter := repositories.PayableFilter{Limit: 10, Offset: 0, Status: models.AccountPending}
	expected := []*models.AccountPayable{{ID: uuid.New()}}

	suite.mockRepo.On("List", suite.ctx, suite.workspaceID, filter).Return(expected, 1, nil)

	entries, total, err := suite.service.List(suite.ctx, suite.workspaceID, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, total)
	assert.Equal(suite.T(), expected, entries)
}

func (suite *AccountsPayableServiceTestSuite) TestRefreshSummary_RepositoryError() {
	suite.mockRepo.On("Summary", suite.ctx, suite.workspaceID, mock.AnythingOfType("time.Time")).Return(nil, errors.New("query timeout"))

	summary, err := suite.service.RefreshSummary(suite.ctx, suite.workspaceID)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), summary)
}
