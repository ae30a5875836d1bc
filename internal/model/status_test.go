package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusLabel(t *testing.T) {
	tests := []struct {
		status PaymentStatus
		want   string
	}{
		{StatusReceived, "получен"},
		{StatusOverdue, "просрочен"},
		{StatusNotDue, "срок не наступил"},
		{PaymentStatus("UNKNOWN"), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Label(), "Label(%s)", tt.status)
	}
}

func TestCivilDate(t *testing.T) {
	d := CivilDate{Year: 2025, Month: time.February, Day: 30}
	assert.Equal(t, "2025-02-30", d.String())

	got := DateOf(time.Date(2024, 1, 31, 18, 45, 0, 0, time.UTC))
	assert.Equal(t, CivilDate{Year: 2024, Month: time.January, Day: 31}, got)
}

func TestDaysBetween(t *testing.T) {
	jan31 := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)
	feb1 := time.Date(2024, 2, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(jan31, feb1))
	assert.Equal(t, -1, DaysBetween(feb1, jan31))
	assert.Equal(t, 0, DaysBetween(jan31, jan31))
	assert.Equal(t, 366, DaysBetween(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
