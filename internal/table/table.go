// Package table defines the raw tables handed over by spreadsheet readers.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RentTable is a labelled rental schedule. Each row maps a column label to
// its cell value; Columns keeps the original column order.
type RentTable struct {
	Columns []string
	Rows    []map[string]any
}

// BankTable is a position-addressed bank statement without reliable labels.
type BankTable struct {
	Rows [][]any
}

// Cell returns the cell at column i of row, or nil when the row is short.
func (t BankTable) Cell(row, i int) any {
	if row < 0 || row >= len(t.Rows) || i < 0 || i >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][i]
}

// Width returns the length of the widest row.
func (t BankTable) Width() int {
	w := 0
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Strings renders every cell of the first n rows as text (all rows if n <= 0).
func (t BankTable) Strings(n int) [][]string {
	rows := t.Rows
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = make([]string, len(r))
		for j, v := range r {
			out[i][j] = String(v)
		}
	}
	return out
}

// String renders a cell value as trimmed text. nil becomes "".
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// IsEmpty reports whether a cell holds nothing but whitespace.
func IsEmpty(v any) bool {
	return String(v) == ""
}
