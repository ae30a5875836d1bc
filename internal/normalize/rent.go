// Package normalize converts raw spreadsheet rows into typed records.
package normalize

import (
	"log/slog"

	"github.com/garagepay/paytrack/internal/detect"
	"github.com/garagepay/paytrack/internal/model"
	"github.com/garagepay/paytrack/internal/parse"
	"github.com/garagepay/paytrack/internal/table"
)

// DefaultTenantName is assigned when the schedule has no tenant column.
const DefaultTenantName = "Арендатор гаража"

// RentOptions tunes rent normalization.
type RentOptions struct {
	TenantPlaceholder string
	Logger            *slog.Logger
}

// Rent converts schedule rows into obligations using the detected mapping.
// Rows whose mapped cells are all blank are dropped. The first row with an
// unparseable date or amount fails the whole table.
func Rent(t table.RentTable, m detect.RentMapping, opts RentOptions) ([]model.RentObligation, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	placeholder := opts.TenantPlaceholder
	if placeholder == "" {
		placeholder = DefaultTenantName
	}

	var obligations []model.RentObligation
	for i, row := range t.Rows {
		garage := table.String(row[m.Garage])
		rawAmount := row[m.Amount]
		rawDate := row[m.Date]
		if garage == "" && table.IsEmpty(rawAmount) && table.IsEmpty(rawDate) {
			continue
		}

		date, err := parse.CivilDate(rawDate)
		if err != nil {
			return nil, &DataValidationError{Row: i + 1, Field: detect.FieldDate, Value: table.String(rawDate), Err: err}
		}
		amount, err := parse.Amount(rawAmount)
		if err != nil {
			return nil, &DataValidationError{Row: i + 1, Field: detect.FieldAmount, Value: table.String(rawAmount), Err: err}
		}
		if !amount.IsPositive() {
			logger.Warn("non-positive rent amount", "row", i+1, "garage", garage, "amount", amount.String())
		}

		tenant := placeholder
		if m.Tenant != "" {
			if name := table.String(row[m.Tenant]); name != "" {
				tenant = name
			}
		}

		obligations = append(obligations, model.RentObligation{
			GarageName:    garage,
			PaymentAmount: amount,
			PaymentDate:   date,
			TenantName:    tenant,
		})
	}

	logger.Info("processed rent data", "rows", len(t.Rows), "obligations", len(obligations))
	return obligations, nil
}
