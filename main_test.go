package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sales_ledger/internal/sales"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LEDGER_REFERENCE_DATE", "2026-02-28")
	t.Setenv("LEDGER_LOG_LEVEL", "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := root.Execute()
	return out.String(), err
}

func TestQueryCommand(t *testing.T) {
	out, err := runCLI(t, "query")
	require.NoError(t, err)

	assert.Contains(t, out, "Sandwich")
	assert.Contains(t, out, "Total revenue:  116.50")
	assert.Contains(t, out, "Units sold:     19")
	assert.Contains(t, out, "Average ticket: 23.30")
	assert.Contains(t, out, "Showing 5 of 5 records")
}

func TestQueryCommand_Preset(t *testing.T) {
	out, err := runCLI(t, "query", "--preset", "today", "--sort", "product", "--dir", "asc")
	require.NoError(t, err)

	assert.Contains(t, out, "Showing 2 of 5 records")
	assert.NotContains(t, out, "T-shirt")
	assert.Contains(t, out, "Total revenue:  31.50")
}

func TestQueryCommand_BadDate(t *testing.T) {
	_, err := runCLI(t, "query", "--start", "yesterday")
	assert.ErrorContains(t, err, "invalid --start")
}

func TestQueryCommand_RecordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- {id: 1, date: "2026-01-05", product: Scone, quantity: 2, unitPrice: 2.50, total: 5.00}
- {id: 2, date: "2026-01-06", product: Latte, quantity: 1, unitPrice: 4.00, total: 4.00}
`), 0o600))
	t.Setenv("LEDGER_RECORDS_FILE", path)

	out, err := runCLI(t, "query", "--end", "2026-01-05")
	require.NoError(t, err)
	assert.Contains(t, out, "Scone")
	assert.Contains(t, out, "Showing 1 of 2 records")
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	_, err := runCLI(t, "export", "--preset", "month", "-o", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}

func TestQueryFlags_UnknownDirection(t *testing.T) {
	f := queryFlags{sort: "total", dir: "bogus"}

	req, err := f.request(time.Now)
	require.NoError(t, err)
	assert.Equal(t, sales.SortSpec{Key: sales.SortByTotal, Direction: sales.Ascending}, req.Sort)
}

func TestExportCommand_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.xlsx")
	_, err := runCLI(t, "export", "-o", path)
	assert.ErrorContains(t, err, "failed to create")
}
