// Package matcher pairs rent obligations with incoming bank transactions.
//
// Matching is strict on amount and lenient on date:
//   - Amount must be exactly equal (decimal equality, no epsilon)
//   - Date must be within ToleranceDays of the adjusted due date
//   - Among candidates the first one in statement order wins
//
// A transaction stays available after it matched unless ConsumeOnMatch is
// set, so by default one payment may settle several identical obligations.
package matcher

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garagepay/paytrack/internal/model"
)

// Config controls matching.
type Config struct {
	ToleranceDays  int
	ConsumeOnMatch bool
}

// DefaultConfig returns the standard ±3 day window without consumption.
func DefaultConfig() Config {
	return Config{ToleranceDays: 3}
}

// FindMatching returns the first transaction whose amount equals expected
// and whose date lies within toleranceDays of expectedDate.
// garage is only used for logging.
func FindMatching(garage string, expected decimal.Decimal, expectedDate time.Time, txns []model.BankTransaction, toleranceDays int) (model.BankTransaction, bool) {
	i := findIndex(expected, expectedDate, txns, toleranceDays, nil)
	if i < 0 {
		return model.BankTransaction{}, false
	}
	slog.Debug("found matching payment",
		"garage", garage,
		"amount", expected.String(),
		"date", txns[i].Date.Format(time.DateOnly))
	return txns[i], true
}

func findIndex(expected decimal.Decimal, expectedDate time.Time, txns []model.BankTransaction, toleranceDays int, used []bool) int {
	for i, tx := range txns {
		if used != nil && used[i] {
			continue
		}
		if !tx.Amount.Equal(expected) {
			continue
		}
		diff := model.DaysBetween(expectedDate, tx.Date)
		if diff < 0 {
			diff = -diff
		}
		if diff <= toleranceDays {
			return i
		}
	}
	return -1
}

// Pool matches obligations against one report's transaction set.
// Match is safe for concurrent use only when ConsumeOnMatch is false.
type Pool struct {
	config Config
	txns   []model.BankTransaction
	used   []bool
	logger *slog.Logger
}

// NewPool creates a Pool over txns. The slice is not copied or modified.
func NewPool(txns []model.BankTransaction, config Config, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pool{config: config, txns: txns, logger: logger}
	if config.ConsumeOnMatch {
		p.used = make([]bool, len(txns))
	}
	return p
}

// Config returns the pool's matching configuration.
func (p *Pool) Config() Config {
	return p.config
}

// Match finds a payment for o around its adjusted due date.
// It returns the adjusted due date and the matched transaction, or nil.
func (p *Pool) Match(o model.RentObligation) (time.Time, *model.BankTransaction) {
	due := AdjustDueDate(o.PaymentDate)
	if due.Day() != o.PaymentDate.Day {
		p.logger.Debug("adjusted payment date",
			"garage", o.GarageName,
			"from", o.PaymentDate.String(),
			"to", due.Format(time.DateOnly))
	}

	i := findIndex(o.PaymentAmount, due, p.txns, p.config.ToleranceDays, p.used)
	if i < 0 {
		return due, nil
	}
	if p.used != nil {
		p.used[i] = true
	}
	tx := p.txns[i]
	p.logger.Debug("found matching payment",
		"garage", o.GarageName,
		"amount", o.PaymentAmount.String(),
		"date", tx.Date.Format(time.DateOnly))
	return due, &tx
}
