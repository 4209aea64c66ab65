package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/expense-parser/internal/config"
	"github.com/insightdelivered/expense-parser/internal/logger"
)

const version = "1.0.0"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "expense-parser",
		Short: "Normalize bank and card statements into transactions",
		Long: `Expense Statement Parser

Reads statement exports (CSV, XLSX/XLS, PDF) and normalizes them into
transactions with a date, description, credit and debit.

Examples:
  # Convert a PDF statement to CSV next to the input
  expense-parser parse statement.pdf

  # Print transactions as JSON
  expense-parser parse --format=json export.csv

  # Run the upload API
  expense-parser serve`,
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// newLogger writes to stderr so parse output on stdout stays clean.
func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.Log.JSON {
		return logger.NewWithWriter(os.Stderr, cfg.Log.Level)
	}
	return logger.New(cfg.Log.Level)
}
