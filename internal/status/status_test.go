package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/garagepay/paytrack/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	due := date(2025, 2, 28)
	tests := []struct {
		name    string
		matched bool
		asOf    time.Time
		want    model.PaymentStatus
	}{
		{"matched before due", true, date(2025, 2, 1), model.StatusReceived},
		{"matched long after", true, date(2025, 6, 1), model.StatusReceived},
		{"future", false, date(2025, 2, 20), model.StatusNotDue},
		{"due today", false, due, model.StatusNotDue},
		{"grace day 3", false, date(2025, 3, 3), model.StatusNotDue},
		{"grace exceeded", false, date(2025, 3, 4), model.StatusOverdue},
		{"ten days late", false, date(2025, 3, 10), model.StatusOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.matched, due, tt.asOf, DefaultGraceDays))
		})
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	due := date(2024, 1, 31)
	asOf := time.Date(2024, 2, 3, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, model.StatusNotDue, Classify(false, due, asOf, DefaultGraceDays))
}

func TestClassify_CustomGrace(t *testing.T) {
	due := date(2024, 1, 10)
	assert.Equal(t, model.StatusOverdue, Classify(false, due, date(2024, 1, 11), 0))
	assert.Equal(t, model.StatusNotDue, Classify(false, due, date(2024, 1, 10), 0))
	assert.Equal(t, model.StatusNotDue, Classify(false, due, date(2024, 1, 17), 7))
}
