package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) Create(ctx context.Context, equipment *models.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Equipment, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Update(ctx context.Context, equipment *models.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}

func (m *MockEquipmentRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockEquipmentRepository) List(ctx context.Context, workspaceID uuid.UUID, search string) ([]*models.EquipmentWithUsage, error) {
	args := m.Called(ctx, workspaceID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EquipmentWithUsage), args.Error(1)
}

type EquipmentServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockEquipmentRepository
	service     EquipmentService
	workspaceID uuid.UUID
	ctx         context.Context
}

func (suite *EquipmentServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockEquipmentRepository{}
	suite.mockRepo.Test(suite.T())
	suite.service = NewEquipmentService(suite.mockRepo)
	suite.workspaceID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *EquipmentServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestEquipmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EquipmentServiceTestSuite))
}

func (suite *EquipmentServiceTestSuite) withUsage(name string, active int, nextMaintenance *time.Time) *models.EquipmentWithUsage {
	return &models.EquipmentWithUsage{
		Equipment: models.Equipment{
			ID:              uuid.New(),
			WorkspaceID:     suite.workspaceID,
			Name:            name,
			NextMaintenance: nextMaintenance,
		},
		ActiveContracts:   active,
		HasActiveContract: active > 0,
	}
}

func (suite *EquipmentServiceTestSuite) TestList_DerivedStatus() {
	overdueMaintenance := time.Now().Add(-24 * time.Hour)
	futureMaintenance := time.Now().Add(24 * time.Hour)

	items := []*models.EquipmentWithUsage{
		suite.withUsage("Betoneira", 1, nil),
		suite.withUsage("Andaime", 0, &overdueMaintenance),
		suite.withUsage("Gerador", 0, &futureMaintenance),
		suite.withUsage("Compressor", 0, nil),
	}

	suite.mockRepo.On("List", suite.ctx, suite.workspaceID, "").Return(items, nil)

	views, err := suite.service.List(suite.ctx, suite.workspaceID, "", "")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 4)
	assert.Equal(suite.T(), EquipmentRented, views[0].Status)
	assert.Equal(suite.T(), EquipmentMaintenance, views[1].Status)
	assert.Equal(suite.T(), EquipmentAvailable, views[2].Status)
	assert.Equal(suite.T(), EquipmentAvailable, views[3].Status)
}

func (suite *EquipmentServiceTestSuite) TestList_StatusFilter() {
	items := []*models.EquipmentWithUsage{
		suite.withUsage("Betoneira", 1, nil),
		suite.withUsage("Compressor", 0, nil),
	}

	suite.mockRepo.On("List", suite.ctx, suite.workspaceID, "").Return(items, nil)

	views, err := suite.service.List(suite.ctx, suite.workspaceID, "", EquipmentRented)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 1)
	assert.Equal(suite.T(), "Betoneira", views[0].Name)
}

func (suite *EquipmentServiceTestSuite) TestCreate_RejectsNegativeDailyRate() {
	rate := -10.0
	req := &CreateEquipmentRequest{Name: "Betoneira", DailyRate: &rate}

	equipment, err := suite.service.Create(suite.ctx, suite.workspaceID, req)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), equipment)
}

func (suite *EquipmentServiceTestSuite) TestCreate_Success() {
	req := &CreateEquipmentRequest{Name: "Betoneira"}

	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Equipment")).Return(nil).Run(func(args mock.Arguments) {
		equipment := args.Get(1).(*models.Equipment)
		assert.Equal(suite.T(), suite.workspaceID, equipment.WorkspaceID)
		assert.NotEqual(suite.T(), uuid.Nil, equipment.ID)
	})

	equipment, err := suite.service.Create(suite.ctx, suite.workspaceID, req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Betoneira", equipment.Name)
}
