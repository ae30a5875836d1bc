package sheet

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/garagepay/paytrack/internal/model"
	"github.com/garagepay/paytrack/internal/report"
)

// Sheet names of the exported workbook.
const (
	ReportSheet  = "Отчет по платежам"
	SummarySheet = "Сводка"
)

const dateLayout = time.DateOnly

var reportHeader = []string{
	"Гараж",
	"Ожидаемая дата оплаты",
	"Сумма",
	"Статус",
	"Арендатор",
	"Фактическая дата оплаты",
}

var summaryHeader = []string{
	"Всего гаражей",
	"Получено",
	"Просрочено",
	"Срок не наступил",
}

// csvHeader uses stable machine-readable column names.
var csvHeader = []string{
	"garage_name",
	"expected_payment_date",
	"payment_amount",
	"status",
	"tenant_name",
	"actual_payment_date",
}

const (
	numFields   = 6
	colGarage   = 0
	colExpected = 1
	colAmount   = 2
	colStatus   = 3
	colTenant   = 4
	colActual   = 5
)

const columnWidth = 24

// WriteXLSX writes the report as a workbook with a report sheet and a summary sheet.
func WriteXLSX(w io.Writer, rep *report.Report) error {
	if rep == nil {
		return fmt.Errorf("writing xlsx: %w", report.ErrPrecondition)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeRow(f, ReportSheet, 1, toAny(reportHeader)); err != nil {
		return err
	}
	for i, row := range rep.Rows {
		if err := writeRow(f, ReportSheet, i+2, xlsxRow(row)); err != nil {
			return err
		}
	}

	last := len(rep.Rows) + 1
	styles := []struct {
		col   string
		style int
	}{{"B", dateStyle}, {"C", moneyStyle}, {"F", dateStyle}}
	if last > 1 {
		for _, s := range styles {
			if err := f.SetCellStyle(ReportSheet, fmt.Sprintf("%s2", s.col), fmt.Sprintf("%s%d", s.col, last), s.style); err != nil {
				return fmt.Errorf("styling column %s: %w", s.col, err)
			}
		}
	}
	if err := f.SetCellStyle(ReportSheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetColWidth(ReportSheet, "A", "F", columnWidth); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	s := rep.Summary
	if err := writeRow(f, SummarySheet, 1, toAny(summaryHeader)); err != nil {
		return err
	}
	if err := writeRow(f, SummarySheet, 2, []any{s.TotalGarages, s.ReceivedPayments, s.OverduePayments, s.NotDuePayments}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("styling summary header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func xlsxRow(r model.PaymentReportRow) []any {
	row := make([]any, numFields)
	row[colGarage] = r.GarageName
	row[colExpected] = r.ExpectedPaymentDate
	row[colAmount] = r.PaymentAmount.InexactFloat64()
	row[colStatus] = r.Status.Label()
	row[colTenant] = r.TenantName
	if r.ActualPaymentDate != nil {
		row[colActual] = *r.ActualPaymentDate
	} else {
		row[colActual] = ""
	}
	return row
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// WriteCSV writes report rows as CSV with a header line.
func WriteCSV(w io.Writer, rep *report.Report) error {
	if rep == nil {
		return fmt.Errorf("writing csv: %w", report.ErrPrecondition)
	}
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rep.Rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a report row to CSV fields.
func MarshalRow(r model.PaymentReportRow) []string {
	row := make([]string, numFields)
	row[colGarage] = r.GarageName
	row[colExpected] = r.ExpectedPaymentDate.Format(dateLayout)
	row[colAmount] = r.PaymentAmount.StringFixed(2)
	row[colStatus] = string(r.Status)
	row[colTenant] = r.TenantName
	if r.ActualPaymentDate != nil {
		row[colActual] = r.ActualPaymentDate.Format(dateLayout)
	}
	return row
}

type jsonReport struct {
	ID      string      `json:"id,omitempty"`
	AsOf    string      `json:"as_of"`
	Rows    []jsonRow   `json:"rows"`
	Summary jsonSummary `json:"summary"`
}

type jsonRow struct {
	GarageName          string          `json:"garage_name"`
	ExpectedPaymentDate string          `json:"expected_payment_date"`
	PaymentAmount       decimal.Decimal `json:"payment_amount"`
	Status              string          `json:"status"`
	StatusLabel         string          `json:"status_label"`
	TenantName          string          `json:"tenant_name"`
	ActualPaymentDate   *string         `json:"actual_payment_date"`
}

type jsonSummary struct {
	TotalGarages     int            `json:"total_garages"`
	ReceivedPayments int            `json:"received_payments"`
	OverduePayments  int            `json:"overdue_payments"`
	NotDuePayments   int            `json:"not_due_payments"`
	StatusBreakdown  map[string]int `json:"status_breakdown"`
}

// WriteJSON writes the report as an indented JSON document.
func WriteJSON(w io.Writer, rep *report.Report) error {
	if rep == nil {
		return fmt.Errorf("writing json: %w", report.ErrPrecondition)
	}
	out := jsonReport{
		ID:   rep.ID,
		AsOf: rep.AsOf.Format(dateLayout),
		Rows: make([]jsonRow, 0, len(rep.Rows)),
		Summary: jsonSummary{
			TotalGarages:     rep.Summary.TotalGarages,
			ReceivedPayments: rep.Summary.ReceivedPayments,
			OverduePayments:  rep.Summary.OverduePayments,
			NotDuePayments:   rep.Summary.NotDuePayments,
			StatusBreakdown:  make(map[string]int, len(rep.Summary.StatusBreakdown)),
		},
	}
	for status, n := range rep.Summary.StatusBreakdown {
		out.Summary.StatusBreakdown[string(status)] = n
	}
	for _, r := range rep.Rows {
		jr := jsonRow{
			GarageName:          r.GarageName,
			ExpectedPaymentDate: r.ExpectedPaymentDate.Format(dateLayout),
			PaymentAmount:       r.PaymentAmount,
			Status:              string(r.Status),
			StatusLabel:         r.Status.Label(),
			TenantName:          r.TenantName,
		}
		if r.ActualPaymentDate != nil {
			s := r.ActualPaymentDate.Format(dateLayout)
			jr.ActualPaymentDate = &s
		}
		out.Rows = append(out.Rows, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}
