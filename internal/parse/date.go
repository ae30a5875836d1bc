// Package parse turns loosely formatted spreadsheet cells into dates and
// amounts. Every function reports failure through its error; none of them
// logs or skips on its own.
package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/garagepay/paytrack/internal/model"
)

// DotDateLayout is the DD.MM.YYYY layout used by bank statements.
const DotDateLayout = "02.01.2006"

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958465

var (
	// ErrEmpty is returned for blank cells.
	ErrEmpty = errors.New("empty value")
	// ErrNoDate is returned when a cell carries no recognizable date.
	ErrNoDate = errors.New("no date found")
)

var (
	dotDateRe = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)
	isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[ T].*)?$`)
	dmyDateRe = regexp.MustCompile(`^(\d{1,2})[./](\d{1,2})[./](\d{4})(?:\s.*)?$`)
)

// HasDotDate reports whether s contains a DD.MM.YYYY substring.
func HasDotDate(s string) bool {
	return dotDateRe.MatchString(s)
}

// FindDotDate returns the first DD.MM.YYYY substring of s.
func FindDotDate(s string) (string, bool) {
	m := dotDateRe.FindString(s)
	return m, m != ""
}

// DotDate extracts the first DD.MM.YYYY substring of s and parses it.
// The date must exist in the calendar.
func DotDate(s string) (time.Time, error) {
	m, ok := FindDotDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("%w in %q", ErrNoDate, s)
	}
	t, err := time.Parse(DotDateLayout, m)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", m, err)
	}
	return t, nil
}

// CivilDate parses a rental schedule date cell. It accepts time.Time values,
// Excel serial numbers, YYYY-MM-DD (optionally followed by a time) and
// DD.MM.YYYY or DD/MM/YYYY strings. Time of day is dropped. A day of 29-31
// is accepted in any month so that the month-end rule can be applied later.
func CivilDate(v any) (model.CivilDate, error) {
	switch x := v.(type) {
	case nil:
		return model.CivilDate{}, ErrEmpty
	case time.Time:
		return model.DateOf(x), nil
	case float64:
		return serialDate(x)
	case int:
		return serialDate(float64(x))
	case int64:
		return serialDate(float64(x))
	case decimal.Decimal:
		return serialDate(x.InexactFloat64())
	case string:
		return civilDateString(x)
	default:
		return model.CivilDate{}, fmt.Errorf("unsupported date value %T", v)
	}
}

func civilDateString(s string) (model.CivilDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.CivilDate{}, ErrEmpty
	}
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return civil(m[1], m[2], m[3])
	}
	if m := dmyDateRe.FindStringSubmatch(s); m != nil {
		return civil(m[3], m[2], m[1])
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(f)
	}
	return model.CivilDate{}, fmt.Errorf("%w in %q", ErrNoDate, s)
}

func civil(year, month, day string) (model.CivilDate, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if y < 1 || m < 1 || m > 12 || d < 1 || d > 31 {
		return model.CivilDate{}, fmt.Errorf("date out of range: %s-%s-%s", year, month, day)
	}
	return model.CivilDate{Year: y, Month: time.Month(m), Day: d}, nil
}

func serialDate(f float64) (model.CivilDate, error) {
	if f < 1 || f > maxExcelSerial {
		return model.CivilDate{}, fmt.Errorf("excel serial date %v out of range", f)
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return model.CivilDate{}, fmt.Errorf("converting excel serial %v: %w", f, err)
	}
	return model.DateOf(t), nil
}
