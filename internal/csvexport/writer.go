package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"gstaudit/internal/bill"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row, one row per audited bill.
var columns = []string{
	"Source",
	"Restaurant Name",
	"Bill Number",
	"Bill Date",
	"GSTIN",
	"Item Count",
	"Gross Amount",
	"Discount",
	"Subtotal",
	"Charged GST",
	"Correct GST",
	"Charged Grand Total",
	"Correct Grand Total",
	"Discrepancy Found",
	"Discrepancy Amount",
	"Confidence Score",
	"Confidence Band",
	"Warnings",
	"Error",
}

// Writer wraps csv.Writer for exporting bill audits as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteAudit writes one row for source. When resp is nil only the source and
// errMsg columns are filled.
func (w *Writer) WriteAudit(source string, resp *bill.Response, errMsg string) error {
	return w.csv.Write(auditToRow(source, resp, errMsg))
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func auditToRow(source string, resp *bill.Response, errMsg string) []string {
	row := make([]string, len(columns))
	row[0] = source
	row[18] = errMsg
	if resp == nil {
		return row
	}

	row[1] = resp.RestaurantName
	row[2] = resp.BillNumber
	row[3] = resp.Date
	row[4] = resp.GSTIN
	row[5] = strconv.Itoa(len(resp.Items))
	row[6] = formatMoney(resp.GrossAmount)
	row[7] = formatMoney(resp.Discount)
	row[8] = formatMoney(resp.Subtotal)
	row[9] = formatMoney(resp.BillCharges.TotalGST)
	row[10] = formatMoney(resp.CorrectCalculation.TotalGST)
	row[11] = formatMoney(resp.BillCharges.GrandTotal)
	row[12] = formatMoney(resp.CorrectCalculation.GrandTotal)
	row[13] = formatBool(resp.Discrepancy.Found)
	row[14] = formatMoney(resp.Discrepancy.Amount)
	row[15] = strconv.FormatFloat(resp.ConfidenceScore, 'f', 2, 64)
	row[16] = resp.ConfidenceBand
	row[17] = strings.Join(resp.Warnings, "; ")
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
