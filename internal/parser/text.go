package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/expense-parser/internal/models"
)

// yearWindow is how many leading characters of a document are searched for a year.
const yearWindow = 1000

var (
	// 10/19/2024, 1-5-24, 19/10/2024
	numericDatePattern = regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	// "September 18 ", a month name and day with no year
	monthDatePattern = regexp.MustCompile(`^([A-Za-z]{3,}\s+\d{1,2})\s+`)
	// Trailing amount: optional currency glyph, digits with commas, two decimals.
	trailingAmountPattern = regexp.MustCompile(`[$£€¥]?\s*([\d,]+\.\d{2})\s*$`)
	yearPattern           = regexp.MustCompile(`\b20[2-3]\d\b`)
)

// lineKind is the grammar a statement line was classified into.
type lineKind int

const (
	unmatched lineKind = iota
	numericDated
	monthDated
)

// classifyLine decides which grammar applies and returns the leading date token.
// The numeric grammar wins when both could match.
func classifyLine(line string) (lineKind, string) {
	if m := numericDatePattern.FindStringSubmatch(line); m != nil {
		return numericDated, m[1]
	}
	if m := monthDatePattern.FindStringSubmatch(line); m != nil {
		return monthDated, m[1]
	}
	return unmatched, ""
}

// inferYear looks for a 202x/203x year near the top of the document,
// typically in the statement period header.
func inferYear(text string, now time.Time) int {
	head := text
	if r := []rune(text); len(r) > yearWindow {
		head = string(r[:yearWindow])
	}
	if m := yearPattern.FindString(head); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			return y
		}
	}
	return now.Year()
}

// splitAmount finds the trailing amount of the text after the date token and
// returns everything before the last occurrence of the amount digits as the
// description, so a currency glyph stays with the description. ok is false
// when there is no amount or nothing is left for the description.
func splitAmount(remaining string) (description, amount string, ok bool) {
	m := trailingAmountPattern.FindStringSubmatch(remaining)
	if m == nil {
		return "", "", false
	}
	amount = m[1]
	description = strings.TrimSpace(remaining[:strings.LastIndex(remaining, amount)])
	if description == "" {
		return "", "", false
	}
	return description, amount, true
}

// ExtractText recovers transactions from page text, one candidate per line.
// It returns ErrNoTransactions when no line matches either date grammar.
func (p *Parser) ExtractText(pages []string) ([]models.Transaction, error) {
	text := strings.Join(pages, "\n")
	now := p.now()
	year := inferYear(text, now)

	p.log.Debug().Int("pages", len(pages)).Int("year_context", year).Msg("extracting text lines")

	var transactions []models.Transaction
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		kind, token := classifyLine(line)
		var date string
		switch kind {
		case numericDated:
			date = NormalizeDate(token, now)
		case monthDated:
			t, err := time.Parse("January 2 2006", strings.Join(strings.Fields(token), " ")+" "+strconv.Itoa(year))
			if err != nil {
				continue
			}
			date = t.Format(models.DateLayout)
		default:
			continue
		}

		description, amount, ok := splitAmount(strings.TrimSpace(line[len(token):]))
		if !ok {
			continue
		}
		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: description,
			Credit:      decimal.Zero,
			Debit:       NormalizeAmount(amount),
		})
	}

	if len(transactions) == 0 {
		return nil, ErrNoTransactions
	}
	return transactions, nil
}
