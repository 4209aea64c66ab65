package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/expense-parser/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Date: "2024-01-15", Description: "CARD PAYMENT TESCO", Debit: decimal.RequireFromString("25.99")},
		{Date: "2024-01-16", Description: "SALARY, ACME LTD", Credit: decimal.RequireFromString("2500")},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, sampleTransactions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Description,Credit,Debit", lines[0])
	assert.Equal(t, "2024-01-15,CARD PAYMENT TESCO,0.00,25.99", lines[1])
	assert.Equal(t, `2024-01-16,"SALARY, ACME LTD",2500.00,0.00`, lines[2])
}

func TestCSVWriter_WriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, nil))

	assert.Equal(t, "Date,Description,Credit,Debit", strings.TrimSpace(buf.String()))
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{}
	require.NoError(t, w.WriteToFile(path, sampleTransactions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CARD PAYMENT TESCO")
}
