package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/expense-parser/internal/models"
)

// columnRole is the meaning a tabular column can be bound to.
type columnRole int

const (
	roleDate columnRole = iota
	roleDescription
	roleCredit
	roleDebit
	numRoles
)

func (r columnRole) String() string {
	switch r {
	case roleDate:
		return "date"
	case roleDescription:
		return "description"
	case roleCredit:
		return "credit"
	case roleDebit:
		return "debit"
	}
	return "unknown"
}

// roleKeywords is indexed by columnRole. A header binds to a role when its
// lowercased name contains any of the role's keywords.
var roleKeywords = [numRoles][]string{
	roleDate:        {"date", "trans date", "transaction date", "posted date"},
	roleDescription: {"description", "merchant", "vendor", "detail"},
	roleCredit:      {"credit", "payment", "deposit"},
	roleDebit:       {"debit", "charge", "amount", "purchase", "withdrawal"},
}

// columnBinding maps each role to a column index, or -1 when unbound.
type columnBinding [numRoles]int

// bindColumns walks the headers in order and gives each column to the first
// role that is still unbound and whose keywords match. A column is bound to
// at most one role.
func bindColumns(headers []string) columnBinding {
	b := columnBinding{-1, -1, -1, -1}
	for col, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		for role := roleDate; role < numRoles; role++ {
			if b[role] >= 0 || !containsAny(name, roleKeywords[role]) {
				continue
			}
			b[role] = col
			break
		}
	}
	return b
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// ExtractTabular maps a decoded grid into transactions using header heuristics.
// It fails with *MissingColumnsError when no date or description column is found.
func (p *Parser) ExtractTabular(grid models.Grid) ([]models.Transaction, error) {
	b := bindColumns(grid.Headers)

	var missing []string
	for _, role := range []columnRole{roleDate, roleDescription} {
		if b[role] < 0 {
			missing = append(missing, role.String())
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Headers: grid.Headers}
	}

	p.log.Debug().
		Int("date_col", b[roleDate]).
		Int("description_col", b[roleDescription]).
		Int("credit_col", b[roleCredit]).
		Int("debit_col", b[roleDebit]).
		Int("rows", len(grid.Rows)).
		Msg("bound tabular columns")

	now := p.now()
	transactions := make([]models.Transaction, 0, len(grid.Rows))
	for r := range grid.Rows {
		desc := strings.TrimSpace(grid.Cell(r, b[roleDescription]))
		if desc == "" || desc == "nan" {
			continue
		}

		credit, debit := decimal.Zero, decimal.Zero
		if b[roleCredit] >= 0 {
			credit = NormalizeAmount(grid.Cell(r, b[roleCredit]))
		}
		if b[roleDebit] >= 0 {
			debit = NormalizeAmount(grid.Cell(r, b[roleDebit]))
		}
		credit, debit = foldSigns(credit, debit)

		transactions = append(transactions, models.Transaction{
			Date:        normalizeCellDate(grid.Cell(r, b[roleDate]), now),
			Description: desc,
			Credit:      credit,
			Debit:       debit,
		})
	}
	return transactions, nil
}

// foldSigns keeps both sides non-negative: money shown as negative in the
// debit column flowed in, and a negative credit flowed out.
func foldSigns(credit, debit decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if debit.IsNegative() {
		credit = credit.Add(debit.Abs())
		debit = decimal.Zero
	}
	if credit.IsNegative() {
		debit = debit.Add(credit.Abs())
		credit = decimal.Zero
	}
	return credit, debit
}
