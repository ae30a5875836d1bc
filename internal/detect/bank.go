package detect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/garagepay/paytrack/internal/parse"
)

// DefaultSampleRows is how many statement rows are inspected.
const DefaultSampleRows = 50

var (
	numericRe   = regexp.MustCompile(`^[+-]?\s*\d[\d\s\x{00a0}\x{202f},.]*(?:\s*(?:руб\.?|р\.|RUB|RUR|₽|\$|€))?$`)
	thousandsRe = regexp.MustCompile(`\d[\s\x{00a0}\x{202f},]\d{3}(?:\D|$)`)
	centsRe     = regexp.MustCompile(`[.,]\d{2}(?:\D|$)`)
	signRe      = regexp.MustCompile(`^[+-]`)
)

// BankMapping holds detected 0-based column positions.
// Description is -1 when no description column exists.
type BankMapping struct {
	Date        int
	Amount      int
	Description int
}

// BankColumns inspects up to sampleRows rows and picks the date, amount and
// description positions.
//
//   - date: first position where any cell contains DD.MM.YYYY
//   - amount: best scoring remaining position; each numeric cell scores 1,
//     plus 2 if it looks like money (thousands group or two decimals),
//     plus 1 if it carries an explicit sign. Ties keep the earlier position.
//   - description: first remaining position with a non-empty cell
func BankColumns(rows [][]string, sampleRows int) (BankMapping, error) {
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}
	if len(rows) > sampleRows {
		rows = rows[:sampleRows]
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	m := BankMapping{Date: -1, Amount: -1, Description: -1}

	for col := 0; col < width && m.Date < 0; col++ {
		for _, r := range rows {
			if col < len(r) && parse.HasDotDate(r[col]) {
				m.Date = col
				break
			}
		}
	}

	best := 0
	for col := 0; col < width; col++ {
		if col == m.Date {
			continue
		}
		if s := amountScore(rows, col); s > best {
			best = s
			m.Amount = col
		}
	}

	for col := 0; col < width && m.Description < 0; col++ {
		if col == m.Date || col == m.Amount {
			continue
		}
		for _, r := range rows {
			if col < len(r) && strings.TrimSpace(r[col]) != "" {
				m.Description = col
				break
			}
		}
	}

	var missing []string
	if m.Date < 0 {
		missing = append(missing, FieldDate)
	}
	if m.Amount < 0 {
		missing = append(missing, FieldAmount)
	}
	if len(missing) > 0 {
		available := make([]string, width)
		for i := range available {
			available[i] = strconv.Itoa(i)
		}
		return BankMapping{}, &MissingColumnError{Table: "bank", Missing: missing, Available: available}
	}
	return m, nil
}

func amountScore(rows [][]string, col int) int {
	score := 0
	for _, r := range rows {
		if col >= len(r) {
			continue
		}
		cell := strings.TrimSpace(r[col])
		if cell == "" || parse.HasDotDate(cell) || !numericRe.MatchString(cell) {
			continue
		}
		score++
		if thousandsRe.MatchString(cell) || centsRe.MatchString(cell) {
			score += 2
		}
		if signRe.MatchString(cell) {
			score++
		}
	}
	return score
}
