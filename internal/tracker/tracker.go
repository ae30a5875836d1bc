// Package tracker runs the end-to-end report pipeline: column detection,
// normalization, matching and status assembly.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/garagepay/paytrack/internal/config"
	"github.com/garagepay/paytrack/internal/detect"
	"github.com/garagepay/paytrack/internal/matcher"
	"github.com/garagepay/paytrack/internal/model"
	"github.com/garagepay/paytrack/internal/normalize"
	"github.com/garagepay/paytrack/internal/parse"
	"github.com/garagepay/paytrack/internal/report"
	"github.com/garagepay/paytrack/internal/table"
)

// Service generates payment reports with a fixed configuration.
type Service struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service. A nil logger means slog.Default().
func NewService(cfg config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, logger: logger, now: time.Now}
}

// transactions detects the statement layout and extracts incoming payments.
// A statement without any DD.MM.YYYY cell is an empty payment set rather
// than an error, so every obligation is classified by date alone.
func (s *Service) transactions(bank table.BankTable, sample int) ([]model.BankTransaction, error) {
	bankMap, err := detect.BankColumns(bank.Strings(sample), sample)
	var missing *detect.MissingColumnError
	if errors.As(err, &missing) && slices.Contains(missing.Missing, detect.FieldDate) && !hasDatedRow(bank) {
		s.logger.Warn("no date rows found in bank statement")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("detecting bank columns: %w", err)
	}
	s.logger.Debug("detected bank columns",
		"date", bankMap.Date, "amount", bankMap.Amount, "description", bankMap.Description)

	return normalize.Bank(bank, bankMap, s.logger), nil
}

// hasDatedRow reports whether any cell of the whole statement, not just the
// detection sample, carries a DD.MM.YYYY date.
func hasDatedRow(bank table.BankTable) bool {
	for _, row := range bank.Strings(0) {
		for _, cell := range row {
			if parse.HasDotDate(cell) {
				return true
			}
		}
	}
	return false
}

// Generate produces a report for the rental schedule and bank statement.
// A zero asOf means today. Every call gets a fresh ID, so identical inputs
// yield identical rows and summary but different reports. Detection and validation failures are returned
// wrapped, so callers can use errors.As on
// *detect.MissingColumnError and *normalize.DataValidationError.
func (s *Service) Generate(ctx context.Context, rent table.RentTable, bank table.BankTable, asOf time.Time) (*report.Report, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	asOf = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	rentMap, err := detect.RentColumns(rent.Columns, s.cfg.Detection.Keywords)
	if err != nil {
		return nil, fmt.Errorf("detecting rent columns: %w", err)
	}
	s.logger.Debug("detected rent columns",
		"garage", rentMap.Garage, "amount", rentMap.Amount,
		"date", rentMap.Date, "tenant", rentMap.Tenant)

	obligations, err := normalize.Rent(rent, rentMap, normalize.RentOptions{
		TenantPlaceholder: s.cfg.Rent.TenantPlaceholder,
		Logger:            s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("normalizing rent data: %w", err)
	}

	sample := s.cfg.Detection.BankSampleRows
	if sample <= 0 {
		sample = detect.DefaultSampleRows
	}
	txns, err := s.transactions(bank, sample)
	if err != nil {
		return nil, err
	}
	pool := matcher.NewPool(txns, s.cfg.MatcherConfig(), s.logger)

	rep, err := report.Assemble(ctx, obligations, pool, report.Options{
		AsOf:      asOf,
		GraceDays: s.cfg.Status.GraceDays,
		Workers:   s.cfg.Matching.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("assembling report: %w", err)
	}
	rep.ID = uuid.NewString()

	s.logger.Info("generated payment report",
		"report_id", rep.ID,
		"as_of", asOf.Format(time.DateOnly),
		"garages", rep.Summary.TotalGarages,
		"received", rep.Summary.ReceivedPayments,
		"overdue", rep.Summary.OverduePayments,
		"not_due", rep.Summary.NotDuePayments)
	return rep, nil
}
