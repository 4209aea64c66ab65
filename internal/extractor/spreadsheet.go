package extractor

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/insightdelivered/expense-parser/internal/models"
)

// ErrEmptySheet is returned when a source has no header row.
var ErrEmptySheet = errors.New("no header row found")

// Spreadsheet decodes CSV text and Excel workbooks into grids.
// The first row is always the header row.
type Spreadsheet struct{}

// DecodeCSV reads UTF-8 CSV. A leading byte order mark is dropped and rows
// with a different number of fields than the header are kept as-is.
func (Spreadsheet) DecodeCSV(data []byte) (models.Grid, error) {
	if !utf8.Valid(data) {
		return models.Grid{}, errors.New("CSV is not valid UTF-8")
	}

	in := transform.NewReader(bytes.NewReader(data), unicode.UTF8BOM.NewDecoder())
	reader := gocsv.LazyCSVReader(in)

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil && !errors.Is(err, csv.ErrFieldCount) {
			return models.Grid{}, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, record)
	}

	return toGrid(records)
}

// DecodeWorkbook reads the first sheet of an Excel workbook using the
// cells' formatted values.
func (Spreadsheet) DecodeWorkbook(data []byte) (models.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return models.Grid{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.Grid{}, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return models.Grid{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return toGrid(rows)
}

func toGrid(records [][]string) (models.Grid, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return models.Grid{}, ErrEmptySheet
	}
	return models.Grid{Headers: records[0], Rows: records[1:]}, nil
}
