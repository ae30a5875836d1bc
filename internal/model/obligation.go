package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CivilDate is a calendar date as written in the rental schedule.
// Day may exceed the length of Month (e.g. 30 February) until the
// month-end adjustment turns it into a real date.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the CivilDate of t, ignoring time of day.
func DateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// RentObligation is one expected rent payment for one garage.
type RentObligation struct {
	GarageName    string
	PaymentAmount decimal.Decimal
	PaymentDate   CivilDate
	TenantName    string
}

// DaysBetween returns the number of calendar days from a to b, ignoring
// time of day. It is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
