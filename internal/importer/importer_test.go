package importer

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
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateBatch(ctx context.Context, entries []*models.AccountPayable) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

type ImporterTestSuite struct {
	suite.Suite
	mockStore   *MockStore
	importer    *Importer
	workspaceID uuid.UUID
	ctx         context.Context
}

func (suite *ImporterTestSuite) SetupTest() {
	suite.mockStore = &MockStore{}
	suite.mockStore.Test(suite.T())
	suite.importer = New(suite.mockStore)
	suite.workspaceID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ImporterTestSuite) TearDownTest() {
	suite.mockStore.AssertExpectations(suite.T())
}

func TestImporterTestSuite(t *testing.T) {
	suite.Run(t, new(ImporterTestSuite))
}

func (suite *ImporterTestSuite) TestImport_SingleRow() {
	csvText := "VENCIMENTO;VALOR;FORNECEDOR;STATUS\n15/03/2024;1.500,00;Fornecedor X;Pago\n"

	var captured []*models.AccountPayable
	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]*models.AccountPayable)
	})

	result, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.TotalRows)
	assert.Equal(suite.T(), 1, result.Inserted)
	assert.Equal(suite.T(), 0, result.Rejected)
	assert.Empty(suite.T(), result.Warnings)

	assert.Len(suite.T(), captured, 1)
	entry := captured[0]
	assert.Equal(suite.T(), suite.workspaceID, entry.WorkspaceID)
	assert.Equal(suite.T(), time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local), entry.DueDate)
	assert.InDelta(suite.T(), 1500.00, entry.Amount, 0.0001)
	assert.InDelta(suite.T(), 1500.00, entry.TotalAmount, 0.0001)
	assert.Equal(suite.T(), "Fornecedor X", *entry.Supplier)
	assert.Equal(suite.T(), models.AccountPaid, entry.Status)
	assert.NotEqual(suite.T(), uuid.Nil, entry.ID)
}

func (suite *ImporterTestSuite) TestImport_CommaAndSemicolonParseIdentically() {
	semicolon := "VENCIMENTO;VALOR\n15/03/2024;100,50\n"
	comma := "VENCIMENTO,VALOR\n15/03/2024,\"100,50\"\n"

	var fromSemicolon, fromComma []*models.AccountPayable
	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		fromSemicolon = args.Get(1).([]*models.AccountPayable)
	}).Once()

	_, err := suite.importer.Import(suite.ctx, semicolon, suite.workspaceID)
	assert.NoError(suite.T(), err)

	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		fromComma = args.Get(1).([]*models.AccountPayable)
	}).Once()

	_, err = suite.importer.Import(suite.ctx, comma, suite.workspaceID)
	assert.NoError(suite.T(), err)

	assert.Len(suite.T(), fromSemicolon, 1)
	assert.Len(suite.T(), fromComma, 1)
	assert.Equal(suite.T(), fromSemicolon[0].DueDate, fromComma[0].DueDate)
	assert.Equal(suite.T(), fromSemicolon[0].Amount, fromComma[0].Amount)
}

func (suite *ImporterTestSuite) TestImport_RowsWithoutDueDateAreRejected() {
	csvText := "VENCIMENTO;VALOR\n15/03/2024;100,00\n-;200,00\n;300,00\n"

	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil)

	result, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, result.TotalRows)
	assert.Equal(suite.T(), 1, result.Inserted)
	assert.Equal(suite.T(), 2, result.Rejected)
	assert.Equal(suite.T(), result.TotalRows, result.Inserted+result.Rejected)
	assert.Len(suite.T(), result.RowErrors, 2)
}

func (suite *ImporterTestSuite) TestImport_NonPositiveAmountRejected() {
	csvText := "VENCIMENTO;VALOR\n15/03/2024;0\n16/03/2024;-50,00\n17/03/2024;100,00\n"

	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil)

	result, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Inserted)
	assert.Equal(suite.T(), 2, result.Rejected)
}

func (suite *ImporterTestSuite) TestImport_TotalAmountFallsBackToAmount() {
	csvText := "VENCIMENTO;VALOR;VALOR TOTAL NF\n15/03/2024;500,00;2.000,00\n16/03/2024;500,00;-\n"

	var captured []*models.AccountPayable
	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]*models.AccountPayable)
	})

	result, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, result.Inserted)

	assert.InDelta(suite.T(), 2000.00, captured[0].TotalAmount, 0.0001)
	assert.InDelta(suite.T(), 500.00, captured[1].TotalAmount, 0.0001)
}

func (suite *ImporterTestSuite) TestImport_UnrecognizedStatusWarnsAndDefaultsToPending() {
	csvText := "VENCIMENTO;VALOR;STATUS\n15/03/2024;100,00;aguardando\n"

	var captured []*models.AccountPayable
	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]*models.AccountPayable)
	})

	result, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Inserted)
	assert.Len(suite.T(), result.Warnings, 1)
	assert.Contains(suite.T(), result.Warnings[0], "aguardando")
	assert.Equal(suite.T(), models.AccountPending, captured[0].Status)
}

func (suite *ImporterTestSuite) TestImport_AtrasadoMapsToLate() {
	csvText := "VENCIMENTO;VALOR;STATUS\n15/03/2024;100,00;Atrasado\n"

	var captured []*models.AccountPayable
	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]*models.AccountPayable)
	})

	_, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.AccountLate, captured[0].Status)
}

func (suite *ImporterTestSuite) TestImport_EmptyInput() {
	result, err := suite.importer.Import(suite.ctx, "   \n  ", suite.workspaceID)
	assert.ErrorIs(suite.T(), err, ErrEmptyInput)
	assert.Nil(suite.T(), result)
}

func (suite *ImporterTestSuite) TestImport_NoValidRows() {
	csvText := "VENCIMENTO;VALOR\n-;100,00\n15/03/2024;0\n"

	result, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	assert.ErrorIs(suite.T(), err, ErrNoValidRows)
	assert.Equal(suite.T(), 2, result.TotalRows)
	assert.Equal(suite.T(), 2, result.Rejected)
	assert.Equal(suite.T(), 0, result.Inserted)
}

func (suite *ImporterTestSuite) TestImport_StoreFailureReportsNothingInserted() {
	csvText := "VENCIMENTO;VALOR\n15/03/2024;100,00\n"

	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(errors.New("connection reset"))

	result, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	var persistence *PersistenceError
	assert.ErrorAs(suite.T(), err, &persistence)
	assert.Equal(suite.T(), 0, result.Inserted)
	assert.Equal(suite.T(), 1, result.TotalRows)
}

func (suite *ImporterTestSuite) TestImport_OptionalFields() {
	csvText := "VENCIMENTO;VALOR;NF;EMISSAO;FORNECEDOR;PARCELA;FORMA DE PG\n" +
		"15/03/2024;100,00;NF-123;01/03/2024;ACME;3;Boleto\n"

	var captured []*models.AccountPayable
	suite.mockStore.On("CreateBatch", suite.ctx, mock.AnythingOfType("[]*models.AccountPayable")).Return(nil).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]*models.AccountPayable)
	})

	_, err := suite.importer.Import(suite.ctx, csvText, suite.workspaceID)
	assert.NoError(suite.T(), err)

	entry := captured[0]
	assert.Equal(suite.T(), "NF-123", *entry.InvoiceNumber)
	assert.Equal(suite.T(), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), *entry.IssueDate)
	assert.Equal(suite.T(), "ACME", *entry.Supplier)
	assert.Equal(suite.T(), 3, *entry.InstallmentCount)
	assert.Equal(suite.T(), "Boleto", *entry.PaymentMethod)
}
