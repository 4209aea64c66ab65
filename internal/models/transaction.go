package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date form of a Transaction.
const DateLayout = "2006-01-02"

// Transaction is a single normalized statement entry.
//
// Category, Provider and Person are never set by the parser. They exist so that
// downstream ingestion can attach its own data without changing the record shape.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Credit      decimal.Decimal `json:"credit"`
	Debit       decimal.Decimal `json:"debit"`
	Category    string          `json:"category,omitempty"`
	Provider    string          `json:"provider,omitempty"`
	Person      string          `json:"person,omitempty"`
}

// MarshalJSON writes credit and debit as JSON numbers instead of quoted strings.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type wire struct {
		Date        string      `json:"date"`
		Description string      `json:"description"`
		Credit      json.Number `json:"credit"`
		Debit       json.Number `json:"debit"`
		Category    string      `json:"category,omitempty"`
		Provider    string      `json:"provider,omitempty"`
		Person      string      `json:"person,omitempty"`
	}
	return json.Marshal(wire{
		Date:        t.Date,
		Description: t.Description,
		Credit:      json.Number(t.Credit.String()),
		Debit:       json.Number(t.Debit.String()),
		Category:    t.Category,
		Provider:    t.Provider,
		Person:      t.Person,
	})
}

// Grid is a decoded tabular source: a header row plus data rows.
// Rows may be shorter than Headers; missing cells read as empty.
type Grid struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value at row r, column c, or "" when the row is short.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g.Rows) || c < 0 || c >= len(g.Rows[r]) {
		return ""
	}
	return g.Rows[r][c]
}
