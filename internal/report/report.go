// Package report assembles per-obligation payment statuses into a report.
package report

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garagepay/paytrack/internal/matcher"
	"github.com/garagepay/paytrack/internal/model"
	"github.com/garagepay/paytrack/internal/status"
)

// ErrPrecondition is returned when an operation needs a report that was never generated.
var ErrPrecondition = errors.New("precondition failed")

// Report is the outcome of one report generation.
type Report struct {
	ID      string
	AsOf    time.Time
	Rows    []model.PaymentReportRow
	Summary model.PaymentSummary
}

// Options controls assembly.
type Options struct {
	AsOf      time.Time
	GraceDays int
	Workers   int // >1 evaluates obligations concurrently when the pool does not consume matches
}

// Assemble builds one row per obligation, in obligation order, and the summary.
func Assemble(ctx context.Context, obligations []model.RentObligation, pool *matcher.Pool, opts Options) (*Report, error) {
	rows := make([]model.PaymentReportRow, len(obligations))

	if opts.Workers > 1 && !pool.Config().ConsumeOnMatch {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := range obligations {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				rows[i] = buildRow(obligations[i], pool, opts)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, o := range obligations {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rows[i] = buildRow(o, pool, opts)
		}
	}

	return &Report{
		AsOf:    opts.AsOf,
		Rows:    rows,
		Summary: Summarize(rows),
	}, nil
}

func buildRow(o model.RentObligation, pool *matcher.Pool, opts Options) model.PaymentReportRow {
	due, tx := pool.Match(o)
	row := model.PaymentReportRow{
		GarageName:          o.GarageName,
		ExpectedPaymentDate: due,
		PaymentAmount:       o.PaymentAmount,
		Status:              status.Classify(tx != nil, due, opts.AsOf, opts.GraceDays),
		TenantName:          o.TenantName,
	}
	if tx != nil {
		actual := tx.Date
		row.ActualPaymentDate = &actual
	}
	return row
}

// Summarize counts rows per status.
func Summarize(rows []model.PaymentReportRow) model.PaymentSummary {
	breakdown := make(map[model.PaymentStatus]int)
	for _, r := range rows {
		breakdown[r.Status]++
	}
	return model.PaymentSummary{
		TotalGarages:     len(rows),
		ReceivedPayments: breakdown[model.StatusReceived],
		OverduePayments:  breakdown[model.StatusOverdue],
		NotDuePayments:   breakdown[model.StatusNotDue],
		StatusBreakdown:  breakdown,
	}
}

// Overdue returns only the OVERDUE rows.
func (r *Report) Overdue() ([]model.PaymentReportRow, error) {
	if r == nil {
		return nil, ErrPrecondition
	}
	var out []model.PaymentReportRow
	for _, row := range r.Rows {
		if row.Status == model.StatusOverdue {
			out = append(out, row)
		}
	}
	return out, nil
}

// OnlyOverdue returns a copy of r restricted to OVERDUE rows, with the
// summary recomputed.
func (r *Report) OnlyOverdue() (*Report, error) {
	rows, err := r.Overdue()
	if err != nil {
		return nil, err
	}
	return &Report{ID: r.ID, AsOf: r.AsOf, Rows: rows, Summary: Summarize(rows)}, nil
}
