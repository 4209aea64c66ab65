package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/expense-parser/internal/models"
)

func testParser(opts ...Option) *Parser {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestBindColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    columnBinding
	}{
		{
			name:    "card export",
			headers: []string{"Trans Date", "Merchant", "Amount"},
			want:    columnBinding{0, 1, -1, 2},
		},
		{
			name:    "bank export with both sides",
			headers: []string{" Posted Date ", "Details", "Deposit", "Withdrawal"},
			want:    columnBinding{0, 1, 2, 3},
		},
		{
			name:    "first matching column wins",
			headers: []string{"Transaction Date", "Post Date", "Description", "Debit", "Credit"},
			want:    columnBinding{0, 2, 4, 3},
		},
		{
			name:    "a column binds to one role only",
			headers: []string{"Payment Date", "Vendor", "Payment Amount"},
			want:    columnBinding{0, 1, 2, -1},
		},
		{
			name:    "unrecognized headers",
			headers: []string{"Foo", "Bar"},
			want:    columnBinding{-1, -1, -1, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bindColumns(tt.headers))
		})
	}
}

func TestExtractTabular(t *testing.T) {
	grid := models.Grid{
		Headers: []string{"Trans Date", "Merchant", "Amount"},
		Rows: [][]string{
			{"10/19/2024", "  COFFEE SHOP ", "$4.50"},
			{"10/20/2024", "", "1.00"},
			{"10/21/2024", "nan", "2.00"},
			{"not a date", "BOOKSTORE", "1,204.10"},
			{"10/22/2024", "REFUND", "(15.00)"},
			{"10/23/2024", "SHORT ROW"},
		},
	}

	txns, err := testParser().ExtractTabular(grid)
	require.NoError(t, err)
	require.Len(t, txns, 4)

	assert.Equal(t, "2024-10-19", txns[0].Date)
	assert.Equal(t, "COFFEE SHOP", txns[0].Description)
	assert.Equal(t, "4.50", txns[0].Debit.StringFixed(2))
	assert.True(t, txns[0].Credit.IsZero())

	// unparseable date falls back to the injected clock
	assert.Equal(t, "2026-03-07", txns[1].Date)
	assert.Equal(t, "BOOKSTORE", txns[1].Description)
	assert.Equal(t, "1204.10", txns[1].Debit.StringFixed(2))

	// negative debit is money in
	assert.Equal(t, "REFUND", txns[2].Description)
	assert.Equal(t, "15.00", txns[2].Credit.StringFixed(2))
	assert.True(t, txns[2].Debit.IsZero())

	assert.Equal(t, "SHORT ROW", txns[3].Description)
	assert.True(t, txns[3].Debit.IsZero())
}

func TestExtractTabular_CreditAndDebitColumns(t *testing.T) {
	grid := models.Grid{
		Headers: []string{"Date", "Description", "Credit", "Debit"},
		Rows: [][]string{
			{"2024-03-01", "PAYROLL", "2,500.00", ""},
			{"2024-03-02", "GROCERY MART", "", "82.15"},
			{"2024-03-03", "CHARGEBACK", "-10.00", ""},
		},
	}

	txns, err := testParser().ExtractTabular(grid)
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "2500.00", txns[0].Credit.StringFixed(2))
	assert.True(t, txns[0].Debit.IsZero())
	assert.Equal(t, "82.15", txns[1].Debit.StringFixed(2))
	assert.True(t, txns[1].Credit.IsZero())
	assert.True(t, txns[2].Credit.IsZero())
	assert.Equal(t, "10.00", txns[2].Debit.StringFixed(2))
}

func TestExtractTabular_SpreadsheetDateRenderings(t *testing.T) {
	grid := models.Grid{
		Headers: []string{"Date", "Description", "Debit"},
		Rows: [][]string{
			{"2024-10-19 00:00:00", "TIMESTAMP CELL", "1.00"},
			{"1-5-24", "DASH SHORT YEAR", "2.00"},
		},
	}

	txns, err := testParser().ExtractTabular(grid)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "2024-10-19", txns[0].Date)
	assert.Equal(t, "2024-01-05", txns[1].Date)
}

func TestExtractTabular_NoRows(t *testing.T) {
	txns, err := testParser().ExtractTabular(models.Grid{Headers: []string{"Date", "Description"}})
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestExtractTabular_MissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		missing []string
	}{
		{"nothing recognizable", []string{"Foo", "Bar"}, []string{"date", "description"}},
		{"no description", []string{"Date", "Amount"}, []string{"description"}},
		{"no date", []string{"Merchant", "Amount"}, []string{"date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testParser().ExtractTabular(models.Grid{Headers: tt.headers, Rows: [][]string{{"1", "2"}}})

			var mce *MissingColumnsError
			require.True(t, errors.As(err, &mce))
			assert.Equal(t, tt.missing, mce.Missing)
			assert.Equal(t, tt.headers, mce.Headers)
		})
	}
}
