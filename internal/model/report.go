package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReportRow is the outcome for a single obligation.
type PaymentReportRow struct {
	GarageName          string
	ExpectedPaymentDate time.Time // after month-end adjustment
	PaymentAmount       decimal.Decimal
	Status              PaymentStatus
	TenantName          string
	ActualPaymentDate   *time.Time // nil unless Status is StatusReceived
}

// PaymentSummary aggregates a report by status.
type PaymentSummary struct {
	TotalGarages     int
	ReceivedPayments int
	OverduePayments  int
	NotDuePayments   int
	StatusBreakdown  map[PaymentStatus]int
}
