// Package status classifies rent obligations on a reference date.
package status

import (
	"time"

	"github.com/garagepay/paytrack/internal/model"
)

// DefaultGraceDays is how long an unpaid obligation stays NOT_DUE after its due date.
const DefaultGraceDays = 3

// Classify derives the status of one obligation.
//
//	matched                      -> RECEIVED
//	asOf before due              -> NOT_DUE
//	0..graceDays days after due  -> NOT_DUE
//	later                        -> OVERDUE
func Classify(matched bool, due, asOf time.Time, graceDays int) model.PaymentStatus {
	if matched {
		return model.StatusReceived
	}
	delta := model.DaysBetween(due, asOf)
	if delta > graceDays {
		return model.StatusOverdue
	}
	return model.StatusNotDue
}
