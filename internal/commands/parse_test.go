package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/expense-parser/internal/models"
)

const sampleCSV = "Date,Description,Credit,Debit\n2024-03-01,PAYROLL,2500.00,\n2024-03-02,GROCERY MART,,82.15\n"

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand_StdoutJSON(t *testing.T) {
	input := writeInput(t, "march.csv", sampleCSV)

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"parse", "--stdout", "--format=json", input})
	require.NoError(t, cmd.Execute())

	var txns []models.Transaction
	require.NoError(t, json.Unmarshal(out.Bytes(), &txns))
	require.Len(t, txns, 2)
	assert.Equal(t, "PAYROLL", txns[0].Description)
	assert.Equal(t, "2500.00", txns[0].Credit.StringFixed(2))
	assert.Equal(t, "82.15", txns[1].Debit.StringFixed(2))
}

func TestParseCommand_WritesCSVFile(t *testing.T) {
	input := writeInput(t, "march.csv", sampleCSV)
	outDir := t.TempDir()

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"parse", "--out-dir", outDir, input})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(outDir, "march.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-03-02,GROCERY MART,0.00,82.15")
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(input string) []string
	}{
		{"unknown format", func(in string) []string { return []string{"parse", "--format=xml", in} }},
		{"missing file", func(in string) []string { return []string{"parse", in + ".missing"} }},
		{"no args", func(string) []string { return []string{"parse"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t, "march.csv", sampleCSV)
			cmd := NewRootCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args(input))
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("in", "jan.json"), outputPath(filepath.Join("in", "jan.pdf"), "", "json"))
	assert.Equal(t, filepath.Join("out", "jan.csv"), outputPath(filepath.Join("in", "jan.pdf"), "out", "csv"))
}
