package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

type AccountPayableRepoTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	repo        AccountPayableRepository
	workspaceID uuid.UUID
	ctx         context.Context
}

func (suite *AccountPayableRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewAccountPayableRepository(mock)
	suite.workspaceID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *AccountPayableRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestAccountPayableRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AccountPayableRepoTestSuite))
}

func (suite *AccountPayableRepoTestSuite) newEntry() *models.AccountPayable {
	supplier := "Fornecedor X"
	return &models.AccountPayable{
		ID:          uuid.New(),
		WorkspaceID: suite.workspaceID,
		Supplier:    &supplier,
		Amount:      1500,
		TotalAmount: 1500,
		DueDate:     time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
		LaunchDate:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local),
		Status:      models.AccountPending,
	}
}

func (suite *AccountPayableRepoTestSuite) TestCreate_Success() {
	entry := suite.newEntry()

	suite.mock.ExpectExec(`INSERT INTO accounts_payable`).
		WithArgs(entry.ID, entry.WorkspaceID, entry.InvoiceNumber, entry.IssueDate, entry.Supplier, entry.ProductOrService, entry.CostCategory, entry.PaymentMethod, entry.Amount, entry.TotalAmount, entry.InstallmentCount, entry.DueDate, entry.LaunchDate, entry.PaidDate, entry.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, entry)
	assert.NoError(suite.T(), err)
}

func (suite *AccountPayableRepoTestSuite) TestCreateBatch_AllOrNothing() {
	first := suite.newEntry()
	second := suite.newEntry()

	suite.mock.ExpectBegin()
	batch := suite.mock.ExpectBatch()
	batch.ExpectExec(`INSERT INTO accounts_payable`).
		WithArgs(first.ID, first.WorkspaceID, first.InvoiceNumber, first.IssueDate, first.Supplier, first.ProductOrService, first.CostCategory, first.PaymentMethod, first.Amount, first.TotalAmount, first.InstallmentCount, first.DueDate, first.LaunchDate, first.PaidDate, first.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch.ExpectExec(`INSERT INTO accounts_payable`).
		WithArgs(second.ID, second.WorkspaceID, second.InvoiceNumber, second.IssueDate, second.Supplier, second.ProductOrService, second.CostCategory, second.PaymentMethod, second.Amount, second.TotalAmount, second.InstallmentCount, second.DueDate, second.LaunchDate, second.PaidDate, second.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.CreateBatch(suite.ctx, []*models.AccountPayable{first, second})
	assert.NoError(suite.T(), err)
}

func (suite *AccountPayableRepoTestSuite) TestCreateBatch_RollbackOnFailure() {
	entry := suite.newEntry()

	suite.mock.ExpectBegin()
	batch := suite.mock.ExpectBatch()
	batch.ExpectExec(`INSERT INTO accounts_payable`).
		WithArgs(entry.ID, entry.WorkspaceID, entry.InvoiceNumber, entry.IssueDate, entry.Supplier, entry.ProductOrService, entry.CostCategory, entry.PaymentMethod, entry.Amount, entry.TotalAmount, entry.InstallmentCount, entry.DueDate, entry.LaunchDate, entry.PaidDate, entry.Status).
		WillReturnError(errors.New("unique violation"))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateBatch(suite.ctx, []*models.AccountPayable{entry})
	assert.Error(suite.T(), err)
}

func (suite *AccountPayableRepoTestSuite) TestCreateBatch_EmptyIsNoop() {
	err := suite.repo.CreateBatch(suite.ctx, nil)
	assert.NoError(suite.T(), err)
}

func (suite *AccountPayableRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()

	suite.mock.ExpectQuery(`SELECT .+ FROM accounts_payable WHERE workspace_id = \$1 AND id = \$2`).
		WithArgs(suite.workspaceID, id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	entry, err := suite.repo.GetByID(suite.ctx, suite.workspaceID, id)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), entry)
}

func (suite *AccountPayableRepoTestSuite) TestDelete_Success() {
	id := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM accounts_payable`).
		WithArgs(suite.workspaceID, id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.ctx, suite.workspaceID, id)
	assert.NoError(suite.T(), err)
}

func (suite *AccountPayableRepoTestSuite) TestMarkOverdue_ReturnsAffectedCount() {
	cutoff := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)

	suite.mock.ExpectExec(`UPDATE accounts_payable`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("UPDATE", 7))

	count, err := suite.repo.MarkOverdue(suite.ctx, cutoff)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), count)
}

func (suite *AccountPayableRepoTestSuite) TestSummary_BucketsScanned() {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)
	startOfDay := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
	endOfDay := startOfDay.AddDate(0, 0, 1)
	startOfMonth := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	rows := pgxmock.NewRows([]string{"c1", "t1", "c2", "t2", "c3", "t3", "c4", "t4"}).
		AddRow(2, 300.0, 5, 1200.0, 1, 99.9, 3, 450.0)

	suite.mock.ExpectQuery(`SELECT\s+COUNT`).
		WithArgs(suite.workspaceID, startOfDay, endOfDay, startOfMonth, endOfMonth).
		WillReturnRows(rows)

	summary, err := suite.repo.Summary(suite.ctx, suite.workspaceID, now)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, summary.DueToday.Count)
	assert.InDelta(suite.T(), 300.0, summary.DueToday.Total, 0.0001)
	assert.Equal(suite.T(), 5, summary.Open.Count)
	assert.Equal(suite.T(), 1, summary.Overdue.Count)
	assert.InDelta(suite.T(), 450.0, summary.PaidThisMonth.Total, 0.0001)
}
