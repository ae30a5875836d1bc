package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is one incoming payment line extracted from a bank statement.
type BankTransaction struct {
	Date        time.Time
	Amount      decimal.Decimal // always positive; outgoing rows never become transactions
	Description string
	Row         int // 0-based row in the source statement
}
