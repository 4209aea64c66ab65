package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/expense-parser/internal/config"
	"github.com/insightdelivered/expense-parser/internal/models"
	"github.com/insightdelivered/expense-parser/internal/parser"
	"github.com/insightdelivered/expense-parser/internal/writer"
)

type parseOptions struct {
	format string
	outDir string
	stdout bool
}

func newParseCommand() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file> [file ...]",
		Short: "Parse statement files into CSV or JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "csv", "Output format: csv or json")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Directory for output files (defaults to each input's directory)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write to stdout instead of files")

	return cmd
}

func runParse(cmd *cobra.Command, opts *parseOptions, args []string) error {
	format := strings.ToLower(opts.format)
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown format %q: use csv or json", opts.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	p := parser.New(parser.WithLogger(log))

	for _, inputPath := range args {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", inputPath, err)
		}

		transactions, err := p.Parse(data, filepath.Base(inputPath))
		if err != nil {
			return fmt.Errorf("processing %s: %w", inputPath, err)
		}
		log.Info().Str("file", inputPath).Int("transactions", len(transactions)).Msg("parsed")

		if opts.stdout {
			if err := writeTransactions(cmd.OutOrStdout(), format, transactions); err != nil {
				return err
			}
			continue
		}

		outPath := outputPath(inputPath, opts.outDir, format)
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %q: %w", outPath, err)
		}
		if err := writeTransactions(f, format, transactions); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info().Str("output", outPath).Msg("written")
	}
	return nil
}

// outputPath swaps the input's extension for the output format, placing the
// file in outDir when one is given.
func outputPath(inputPath, outDir, format string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + "." + format
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}
	return filepath.Join(outDir, base)
}

func writeTransactions(out io.Writer, format string, transactions []models.Transaction) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(transactions)
	}
	w := &writer.CSVWriter{}
	return w.Write(out, transactions)
}
