package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

func TestParseCurrency(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{"R$ 1.234,56", 1234.56},
		{"r$1.234,56", 1234.56},
		{"1500.00", 1500.00},
		{"1234,56", 1234.56},
		{"1.234.567", 1234567},
		{"2,500.75", 2500.75},
		{"R$ 300", 300},
		{" 1 500,00 ", 1500.00},
		{"", 0},
		{"abc", 0},
		{"R$", 0},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.expected, ParseCurrency(tc.input), 0.0001, "input %q", tc.input)
	}
}

func TestParseDate_BrazilianFormat(t *testing.T) {
	parsed := ParseDate("15/03/2024")
	assert.NotNil(t, parsed)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local), *parsed)
}

func TestParseDate_ISOFallback(t *testing.T) {
	parsed := ParseDate("2024-03-15")
	assert.NotNil(t, parsed)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local), *parsed)
}

func TestParseDate_EmptyAndPlaceholder(t *testing.T) {
	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("-"))
	assert.Nil(t, ParseDate("   "))
}

func TestParseDate_Garbage(t *testing.T) {
	assert.Nil(t, ParseDate("not a date"))
	assert.Nil(t, ParseDate("15/03"))
	assert.Nil(t, ParseDate("0/0/0"))
}

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		input      string
		expected   models.AccountStatus
		recognized bool
	}{
		{"Pago", models.AccountPaid, true},
		{"PAGO", models.AccountPaid, true},
		{"PAID", models.AccountPaid, true},
		{"Pendente", models.AccountPending, true},
		{"PENDING", models.AccountPending, true},
		{"Em Aberto", models.AccountPending, true},
		{"Atrasado", models.AccountLate, true},
		{"ATRASADA", models.AccountLate, true},
		{"LATE", models.AccountLate, true},
		{"OVERDUE", models.AccountLate, true},
		{"", models.AccountPending, true},
		{"aguardando aprovacao", models.AccountPending, false},
		{"???", models.AccountPending, false},
	}

	for _, tc := range testCases {
		status, recognized := ParseStatus(tc.input)
		assert.Equal(t, tc.expected, status, "input %q", tc.input)
		assert.Equal(t, tc.recognized, recognized, "input %q", tc.input)
	}
}
