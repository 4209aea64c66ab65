package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/expense-parser/internal/extractor"
	"github.com/insightdelivered/expense-parser/internal/models"
)

// SheetDecoder turns raw spreadsheet bytes into a named-column grid.
type SheetDecoder interface {
	DecodeCSV(data []byte) (models.Grid, error)
	DecodeWorkbook(data []byte) (models.Grid, error)
}

// PageExtractor returns the text of each page of a PDF.
type PageExtractor interface {
	ExtractPages(data []byte) ([]string, error)
}

// Parser dispatches statement files to the tabular or text extractor.
// It holds no per-call state and is safe for concurrent use.
type Parser struct {
	sheets SheetDecoder
	pdf    PageExtractor
	clock  func() time.Time
	log    zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the time source used for date and year fallbacks.
func WithClock(clock func() time.Time) Option {
	return func(p *Parser) { p.clock = clock }
}

// WithLogger sets the logger for debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// WithSheetDecoder replaces the CSV/workbook decoder.
func WithSheetDecoder(d SheetDecoder) Option {
	return func(p *Parser) { p.sheets = d }
}

// WithPageExtractor replaces the PDF text extractor.
func WithPageExtractor(e PageExtractor) Option {
	return func(p *Parser) { p.pdf = e }
}

// New returns a Parser backed by the default extractors.
func New(opts ...Option) *Parser {
	p := &Parser{
		sheets: extractor.Spreadsheet{},
		pdf:    extractor.PDF{},
		clock:  time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) now() time.Time {
	return p.clock()
}

// Extension returns the lowercased text after the final dot of filename,
// or the whole lowercased name when it has no dot.
func Extension(filename string) string {
	name := strings.ToLower(filename)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Parse routes a file to the right extractor by its extension.
func (p *Parser) Parse(data []byte, filename string) ([]models.Transaction, error) {
	ext := Extension(filename)
	log := p.log.With().Str("file", filename).Str("format", ext).Logger()

	var (
		transactions []models.Transaction
		err          error
	)
	switch ext {
	case "csv":
		transactions, err = p.parseTabular(ext, data, p.sheets.DecodeCSV)
	case "xlsx", "xls":
		transactions, err = p.parseTabular(ext, data, p.sheets.DecodeWorkbook)
	case "pdf":
		transactions, err = p.parsePDF(data)
	default:
		return nil, &UnsupportedFormatError{Extension: ext}
	}
	if err != nil {
		log.Debug().Err(err).Msg("parse failed")
		return nil, fmt.Errorf("parsing %s: %w", ext, err)
	}

	log.Debug().Int("transactions", len(transactions)).Msg("parsed statement")
	return transactions, nil
}

func (p *Parser) parseTabular(format string, data []byte, decode func([]byte) (models.Grid, error)) ([]models.Transaction, error) {
	grid, err := decode(data)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	transactions, err := p.ExtractTabular(grid)
	if err != nil {
		return nil, fmt.Errorf("tabular extraction: %w", err)
	}
	return transactions, nil
}

func (p *Parser) parsePDF(data []byte) ([]models.Transaction, error) {
	pages, err := p.pdf.ExtractPages(data)
	if err != nil {
		return nil, &DecodeError{Format: "pdf", Err: err}
	}
	transactions, err := p.ExtractText(pages)
	if err != nil {
		return nil, fmt.Errorf("text extraction: %w", err)
	}
	return transactions, nil
}
