package reference

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstaudit/internal/port"
)

var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%?`)

// Workbook column headers, matched case-insensitively.
const (
	colCode     = "hsn_code"
	colName     = "item_name"
	colCategory = "item_category"
	colRate     = "gst_rate"
)

// LoadWorkbook reads reference rows from an XLSX sheet whose first row holds the
// headers hsn_code, item_name, item_category and gst_rate (any order).
// An empty sheet name selects the first sheet. Rows without a readable rate are skipped.
func LoadWorkbook(path, sheet string) ([]port.GSTRate, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]port.GSTRate, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := make(map[string]int, 4)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	rateIdx, ok := cols[colRate]
	if !ok {
		return nil, fmt.Errorf("workbook header is missing %q column", colRate)
	}
	_, hasCode := cols[colCode]
	_, hasName := cols[colName]
	if !hasCode && !hasName {
		return nil, fmt.Errorf("workbook header needs %q or %q column", colCode, colName)
	}

	entries := make([]port.GSTRate, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rate, ok := ParseRate(cellVal(row, rateIdx))
		if !ok {
			continue
		}
		e := port.GSTRate{Rate: rate}
		if idx, ok := cols[colCode]; ok {
			e.Code = strings.TrimSpace(cellVal(row, idx))
		}
		if idx, ok := cols[colName]; ok {
			e.Name = strings.TrimSpace(cellVal(row, idx))
		}
		if idx, ok := cols[colCategory]; ok {
			e.Category = strings.TrimSpace(cellVal(row, idx))
		}
		if e.Code == "" && e.Name == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ParseRate reads a rate cell such as "18", "18%", "5% (without ITC)", "Exempt" or "Nil".
// Ranged cells like "12%-18%" yield the first rate.
func ParseRate(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	switch strings.ToLower(s) {
	case "exempt", "nil":
		return decimal.Zero, true
	}
	m := ratePattern.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, false
	}
	return rate, true
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
