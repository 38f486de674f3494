package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstaudit/internal/analysis"
	"gstaudit/internal/bill"
	"gstaudit/internal/category"
	"gstaudit/internal/validator"
)

const cleanBill = `{"store_name": "Saravana Bhavan", "bill_number": "SB-1",
	"items": [{"item_name": "Masala Dosa", "quantity": 1, "total_price": 200}],
	"gross_amount": 200, "discount": 0, "subtotal": 200,
	"cgst_charged": 5, "sgst_charged": 5, "total_gst_charged": 10, "grand_total": 210}`

func newEngine(t *testing.T) *analysis.Engine {
	t.Helper()
	resolver, err := category.NewResolver(nil, category.Options{})
	require.NoError(t, err)
	return analysis.NewEngine(resolver, validator.NewDefaultEngine(nil), nil)
}

func writeBill(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAnalyzeAll_KeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.json", "b.json", "c.txt", "d.json"} {
		body := cleanBill
		if name == "c.txt" {
			body = "the photo was too dark to read"
		}
		paths = append(paths, writeBill(t, dir, name, body))
	}

	reports, err := analyzeAll(t.Context(), newEngine(t), paths, 2)
	require.NoError(t, err)
	require.Len(t, reports, len(paths))

	for i, r := range reports {
		assert.Equal(t, paths[i], r.Source)
	}
	require.NotNil(t, reports[0].Result)
	assert.False(t, reports[0].Result.Discrepancy.Found)
	assert.Equal(t, 10.0, reports[0].Result.CorrectCalculation.TotalGST)

	assert.Nil(t, reports[2].Result)
	assert.NotEmpty(t, reports[2].Error)
}

func TestAnalyzeAll_MissingFileAborts(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeBill(t, dir, "a.json", cleanBill), filepath.Join(dir, "missing.json")}

	reports, err := analyzeAll(t.Context(), newEngine(t), paths, 0)
	require.Error(t, err)
	assert.Nil(t, reports)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestAnalyzeOne_Unrecoverable(t *testing.T) {
	r := analyzeOne(newEngine(t), "stdin", []byte(`{"store_name": "Empty Cafe"}`))

	require.Empty(t, r.Error)
	require.NotNil(t, r.Result)
	assert.Equal(t, 0.0, r.Result.ConfidenceScore)
	assert.Len(t, r.Result.Warnings, 1)
}

func TestWriteJSON_OneObjectPerLine(t *testing.T) {
	reports := []report{
		{Source: "a.json", Result: &bill.Response{RestaurantName: "Café & Co"}},
		{Source: "b.txt", Error: "no bill data found"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, reports, false))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "Café & Co")

	var second report
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "b.txt", second.Source)
	assert.Nil(t, second.Result)
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	reports := []report{
		{Source: "a.json", Result: &bill.Response{BillNumber: "SB-1", ConfidenceBand: "HIGH"}},
		{Source: "b.txt", Error: "no bill data found"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, reports))

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, out, "Source,Restaurant Name,Bill Number")
	assert.Contains(t, out, "a.json,,SB-1,")
	assert.Contains(t, out, "b.txt,")
	assert.Contains(t, out, "no bill data found")
}
