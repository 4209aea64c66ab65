package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/expense-parser/internal/models"
)

// csvRow is the exported column layout.
type csvRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Credit      string `csv:"Credit"`
	Debit       string `csv:"Debit"`
}

// CSVWriter writes transactions to CSV format.
type CSVWriter struct{}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, transactions []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, transactions); err != nil {
		return err
	}
	return f.Close()
}

// Write writes a header row and one row per transaction to out.
func (w *CSVWriter) Write(out io.Writer, transactions []models.Transaction) error {
	rows := make([]csvRow, 0, len(transactions))
	for _, txn := range transactions {
		rows = append(rows, csvRow{
			Date:        txn.Date,
			Description: txn.Description,
			Credit:      txn.Credit.StringFixed(2),
			Debit:       txn.Debit.StringFixed(2),
		})
	}
	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
