package parse

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagepay/paytrack/internal/model"
)

func civilDate(y int, m time.Month, d int) model.CivilDate {
	return model.CivilDate{Year: y, Month: m, Day: d}
}

func TestFindDotDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"01.02.2024", "01.02.2024", true},
		{"Дата операции 15.03.2025 12:00", "15.03.2025", true},
		{"1.2.2024", "", false},
		{"2024-02-01", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := FindDotDate(tt.in)
		assert.Equal(t, tt.ok, ok, "FindDotDate(%q)", tt.in)
		assert.Equal(t, tt.want, got, "FindDotDate(%q)", tt.in)
		assert.Equal(t, tt.ok, HasDotDate(tt.in))
	}
}

func TestDotDate(t *testing.T) {
	got, err := DotDate("  01.02.2024 Поступление")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = DotDate("нет даты")
	require.ErrorIs(t, err, ErrNoDate)

	_, err = DotDate("31.02.2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestCivilDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want model.CivilDate
	}{
		{"time", time.Date(2024, 1, 31, 13, 5, 0, 0, time.UTC), civilDate(2024, time.January, 31)},
		{"iso", "2024-01-31", civilDate(2024, time.January, 31)},
		{"iso with time", "2024-01-31 00:00:00", civilDate(2024, time.January, 31)},
		{"iso T", "2024-03-05T10:00:00Z", civilDate(2024, time.March, 5)},
		{"dotted", "31.01.2024", civilDate(2024, time.January, 31)},
		{"slashed", "5/3/2024", civilDate(2024, time.March, 5)},
		{"feb 29 non-leap kept", "2025-02-29", civilDate(2025, time.February, 29)},
		{"apr 31 kept", "31.04.2025", civilDate(2025, time.April, 31)},
		{"excel serial float", 45322.0, civilDate(2024, time.January, 31)},
		{"excel serial int", 45322, civilDate(2024, time.January, 31)},
		{"excel serial string", "45322", civilDate(2024, time.January, 31)},
		{"excel serial decimal", decimal.NewFromInt(45322), civilDate(2024, time.January, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CivilDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCivilDate_Errors(t *testing.T) {
	_, err := CivilDate(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = CivilDate("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = CivilDate("не дата")
	assert.ErrorIs(t, err, ErrNoDate)

	for _, bad := range []string{"2024-13-01", "32.01.2024", "00.01.2024", "2024-00-10"} {
		_, err = CivilDate(bad)
		assert.Error(t, err, "CivilDate(%q)", bad)
	}

	_, err = CivilDate(-5.0)
	assert.Error(t, err)

	_, err = CivilDate(true)
	assert.Error(t, err)
}
