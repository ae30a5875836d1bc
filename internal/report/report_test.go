package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagepay/paytrack/internal/matcher"
	"github.com/garagepay/paytrack/internal/model"
	"github.com/garagepay/paytrack/internal/status"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func obligation(garage string, amount int64, y int, m time.Month, d int) model.RentObligation {
	return model.RentObligation{
		GarageName:    garage,
		PaymentAmount: decimal.NewFromInt(amount),
		PaymentDate:   model.CivilDate{Year: y, Month: m, Day: d},
		TenantName:    "Арендатор гаража",
	}
}

func txn(amount string, y, m, d int) model.BankTransaction {
	return model.BankTransaction{Date: date(y, m, d), Amount: decimal.RequireFromString(amount)}
}

func opts(asOf time.Time) Options {
	return Options{AsOf: asOf, GraceDays: status.DefaultGraceDays}
}

func TestAssemble_ReceivedAcrossMonthBoundary(t *testing.T) {
	pool := matcher.NewPool([]model.BankTransaction{txn("5000", 2024, 2, 1)}, matcher.DefaultConfig(), nil)
	rep, err := Assemble(context.Background(), []model.RentObligation{obligation("A1", 5000, 2024, time.January, 31)}, pool, opts(date(2024, 2, 10)))
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)

	row := rep.Rows[0]
	assert.Equal(t, "A1", row.GarageName)
	assert.Equal(t, date(2024, 1, 31), row.ExpectedPaymentDate)
	assert.Equal(t, model.StatusReceived, row.Status)
	require.NotNil(t, row.ActualPaymentDate)
	assert.Equal(t, date(2024, 2, 1), *row.ActualPaymentDate)
}

func TestAssemble_OverdueAfterAdjustment(t *testing.T) {
	pool := matcher.NewPool(nil, matcher.DefaultConfig(), nil)
	rep, err := Assemble(context.Background(), []model.RentObligation{obligation("B2", 3000, 2025, time.February, 29)}, pool, opts(date(2025, 3, 10)))
	require.NoError(t, err)

	row := rep.Rows[0]
	assert.Equal(t, date(2025, 2, 28), row.ExpectedPaymentDate)
	assert.Equal(t, model.StatusOverdue, row.Status)
	assert.Nil(t, row.ActualPaymentDate)
}

func TestAssemble_NoTransactionsNeverReceived(t *testing.T) {
	pool := matcher.NewPool(nil, matcher.DefaultConfig(), nil)
	obligations := []model.RentObligation{
		obligation("A", 100, 2024, time.March, 1),
		obligation("B", 100, 2024, time.March, 8),
		obligation("C", 100, 2024, time.March, 20),
	}
	rep, err := Assemble(context.Background(), obligations, pool, opts(date(2024, 3, 10)))
	require.NoError(t, err)

	assert.Equal(t, model.StatusOverdue, rep.Rows[0].Status)
	assert.Equal(t, model.StatusNotDue, rep.Rows[1].Status, "inside grace period")
	assert.Equal(t, model.StatusNotDue, rep.Rows[2].Status, "not yet due")
	assert.Equal(t, 0, rep.Summary.ReceivedPayments)
}

func TestAssemble_ConsumeOnMatch(t *testing.T) {
	txns := []model.BankTransaction{txn("3000", 2024, 6, 1)}
	obligations := []model.RentObligation{
		obligation("A1", 3000, 2024, time.June, 1),
		obligation("A2", 3000, 2024, time.June, 1),
	}

	shared := matcher.NewPool(txns, matcher.DefaultConfig(), nil)
	rep, err := Assemble(context.Background(), obligations, shared, opts(date(2024, 6, 20)))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.ReceivedPayments)

	consuming := matcher.NewPool(txns, matcher.Config{ToleranceDays: 3, ConsumeOnMatch: true}, nil)
	rep, err = Assemble(context.Background(), obligations, consuming, opts(date(2024, 6, 20)))
	require.NoError(t, err)
	assert.Equal(t, model.StatusReceived, rep.Rows[0].Status)
	assert.Equal(t, model.StatusOverdue, rep.Rows[1].Status)
}

func TestAssemble_ParallelMatchesSequential(t *testing.T) {
	var obligations []model.RentObligation
	var txns []model.BankTransaction
	for i := 0; i < 200; i++ {
		amount := int64(1000 + i%17)
		obligations = append(obligations, obligation(fmt.Sprintf("G%03d", i), amount, 2024, time.Month(1+i%12), 1+i%31))
		if i%3 == 0 {
			txns = append(txns, txn(decimal.NewFromInt(amount).String(), 2024, 1+i%12, 1+i%28))
		}
	}
	pool := matcher.NewPool(txns, matcher.DefaultConfig(), nil)
	asOf := date(2024, 7, 1)

	seq, err := Assemble(context.Background(), obligations, pool, opts(asOf))
	require.NoError(t, err)

	par := opts(asOf)
	par.Workers = 8
	got, err := Assemble(context.Background(), obligations, pool, par)
	require.NoError(t, err)

	assert.Equal(t, seq, got)
}

func TestAssemble_Idempotent(t *testing.T) {
	txns := []model.BankTransaction{txn("5000", 2024, 2, 1), txn("700", 2024, 3, 3)}
	obligations := []model.RentObligation{
		obligation("A1", 5000, 2024, time.January, 31),
		obligation("A2", 700, 2024, time.March, 1),
		obligation("A3", 900, 2024, time.March, 1),
	}
	run := func() *Report {
		rep, err := Assemble(context.Background(), obligations, matcher.NewPool(txns, matcher.DefaultConfig(), nil), opts(date(2024, 3, 15)))
		require.NoError(t, err)
		return rep
	}
	assert.Equal(t, run(), run())
}

func TestAssemble_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pool := matcher.NewPool(nil, matcher.DefaultConfig(), nil)
	_, err := Assemble(ctx, []model.RentObligation{obligation("A", 1, 2024, time.January, 1)}, pool, opts(date(2024, 1, 1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	rows := []model.PaymentReportRow{
		{Status: model.StatusReceived},
		{Status: model.StatusReceived},
		{Status: model.StatusOverdue},
	}
	s := Summarize(rows)
	assert.Equal(t, 3, s.TotalGarages)
	assert.Equal(t, 2, s.ReceivedPayments)
	assert.Equal(t, 1, s.OverduePayments)
	assert.Equal(t, 0, s.NotDuePayments)
	assert.Equal(t, map[model.PaymentStatus]int{model.StatusReceived: 2, model.StatusOverdue: 1}, s.StatusBreakdown)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.TotalGarages)
	assert.Empty(t, empty.StatusBreakdown)
}

func TestOverdue(t *testing.T) {
	rep := &Report{Rows: []model.PaymentReportRow{
		{GarageName: "A", Status: model.StatusReceived},
		{GarageName: "B", Status: model.StatusOverdue},
		{GarageName: "C", Status: model.StatusNotDue},
	}}
	rows, err := rep.Overdue()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].GarageName)

	only, err := rep.OnlyOverdue()
	require.NoError(t, err)
	assert.Equal(t, 1, only.Summary.TotalGarages)
	assert.Equal(t, 1, only.Summary.OverduePayments)

	var missing *Report
	_, err = missing.Overdue()
	assert.ErrorIs(t, err, ErrPrecondition)
}
