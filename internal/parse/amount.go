package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrNoAmount is returned when a cell carries no digit run.
var ErrNoAmount = errors.New("no amount found")

// bankAmountRe matches an optionally signed run of digits, spaces and commas.
// Non-breaking spaces count as spaces; banks use them as thousands separators.
var bankAmountRe = regexp.MustCompile(`[+-]?[\d\s\x{00a0}\x{202f},]+`)

// BankAmount extracts the first signed digit run from a bank statement cell,
// drops the spaces, turns the comma into a decimal point and parses it.
// "-1 200,00" yields -1200. Anything after a '.' is not part of the run.
func BankAmount(s string) (decimal.Decimal, error) {
	m := bankAmountRe.FindString(s)
	if m == "" {
		return decimal.Zero, fmt.Errorf("%w in %q", ErrNoAmount, s)
	}
	num := strings.ReplaceAll(stripSpaces(m), ",", ".")
	num = strings.TrimPrefix(num, "+")
	if num == "" || num == "-" {
		return decimal.Zero, fmt.Errorf("%w in %q", ErrNoAmount, s)
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", m, err)
	}
	return d, nil
}

// Amount parses a rental schedule amount cell. Numbers pass through;
// strings may carry spaces, a currency suffix, a decimal comma, or comma
// thousands separators next to a decimal point.
func Amount(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, ErrEmpty
	case decimal.Decimal:
		return x, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case string:
		return amountString(x)
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount value %T", v)
	}
}

var currencyReplacer = strings.NewReplacer("₽", "", "руб.", "", "руб", "", "р.", "", "RUB", "", "$", "")

func amountString(s string) (decimal.Decimal, error) {
	num := currencyReplacer.Replace(stripSpaces(s))
	num = strings.TrimPrefix(num, "+")
	if num == "" {
		return decimal.Zero, ErrEmpty
	}
	if strings.Contains(num, ".") {
		num = strings.ReplaceAll(num, ",", "")
	} else {
		num = strings.ReplaceAll(num, ",", ".")
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
