package normalize

import (
	"fmt"
	"log/slog"

	"github.com/garagepay/paytrack/internal/detect"
	"github.com/garagepay/paytrack/internal/model"
	"github.com/garagepay/paytrack/internal/parse"
	"github.com/garagepay/paytrack/internal/table"
)

// Bank extracts incoming payments from statement rows. Only rows whose date
// cell contains DD.MM.YYYY are considered; rows that then fail date or
// amount extraction are logged and skipped. Outgoing (non-positive) amounts
// are dropped silently.
func Bank(t table.BankTable, m detect.BankMapping, logger *slog.Logger) []model.BankTransaction {
	if logger == nil {
		logger = slog.Default()
	}

	var txns []model.BankTransaction
	dated := 0
	for i := range t.Rows {
		dateCell := table.String(t.Cell(i, m.Date))
		if !parse.HasDotDate(dateCell) {
			continue
		}
		dated++

		tx, err := bankRow(t, i, m)
		if err != nil {
			logger.Warn("skipping bank statement row", "row", i, "error", err)
			continue
		}
		if !tx.Amount.IsPositive() {
			continue
		}
		txns = append(txns, tx)
	}

	if dated == 0 {
		logger.Warn("no date rows found in bank statement")
		return nil
	}
	logger.Info("processed bank statement data", "dated_rows", dated, "incoming", len(txns))
	return txns
}

func bankRow(t table.BankTable, i int, m detect.BankMapping) (model.BankTransaction, error) {
	date, err := parse.DotDate(table.String(t.Cell(i, m.Date)))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("%w: %w", ErrRowSkipped, err)
	}
	amount, err := parse.BankAmount(table.String(t.Cell(i, m.Amount)))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("%w: %w", ErrRowSkipped, err)
	}
	var desc string
	if m.Description >= 0 {
		desc = table.String(t.Cell(i, m.Description))
	}
	return model.BankTransaction{
		Date:        date,
		Amount:      amount,
		Description: desc,
		Row:         i,
	}, nil
}
