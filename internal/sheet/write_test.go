package sheet

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/garagepay/paytrack/internal/model"
	"github.com/garagepay/paytrack/internal/report"
)

func sampleReport() *report.Report {
	paid := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	rows := []model.PaymentReportRow{
		{
			GarageName:          "Гараж 1",
			ExpectedPaymentDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			PaymentAmount:       decimal.NewFromInt(5000),
			Status:              model.StatusReceived,
			TenantName:          "Иванов",
			ActualPaymentDate:   &paid,
		},
		{
			GarageName:          "Гараж 2",
			ExpectedPaymentDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			PaymentAmount:       decimal.RequireFromString("7000.50"),
			Status:              model.StatusOverdue,
			TenantName:          "Арендатор гаража",
		},
	}
	return &report.Report{
		ID:      "9b2f4c1e-0000-4000-8000-000000000001",
		AsOf:    time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		Rows:    rows,
		Summary: report.Summarize(rows),
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, reportHeader, rows[0])
	assert.Equal(t, "Гараж 1", rows[1][colGarage])
	assert.Equal(t, "получен", rows[1][colStatus])
	assert.Equal(t, "просрочен", rows[2][colStatus])

	raw, err := f.GetCellValue(ReportSheet, "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "7000.5", raw)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, summaryHeader, summary[0])
	assert.Equal(t, []string{"2", "1", "1", "0"}, summary[1])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "garage_name,expected_payment_date,payment_amount,status,tenant_name,actual_payment_date", lines[0])
	assert.Equal(t, "Гараж 1,2024-03-05,5000.00,RECEIVED,Иванов,2024-03-07", lines[1])
	assert.Equal(t, "Гараж 2,2024-02-29,7000.50,OVERDUE,Арендатор гаража,", lines[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var got struct {
		ID      string `json:"id"`
		AsOf    string `json:"as_of"`
		Rows    []map[string]any
		Summary struct {
			TotalGarages    int            `json:"total_garages"`
			StatusBreakdown map[string]int `json:"status_breakdown"`
		}
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "2024-03-20", got.AsOf)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "RECEIVED", got.Rows[0]["status"])
	assert.Equal(t, "получен", got.Rows[0]["status_label"])
	assert.Equal(t, "2024-03-07", got.Rows[0]["actual_payment_date"])
	assert.Nil(t, got.Rows[1]["actual_payment_date"])
	assert.Equal(t, "7000.5", got.Rows[1]["payment_amount"])
	assert.Equal(t, 2, got.Summary.TotalGarages)
	assert.Equal(t, 1, got.Summary.StatusBreakdown["OVERDUE"])
}

func TestWriters_NilReport(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteXLSX(&buf, nil), report.ErrPrecondition)
	assert.ErrorIs(t, WriteCSV(&buf, nil), report.ErrPrecondition)
	assert.ErrorIs(t, WriteJSON(&buf, nil), report.ErrPrecondition)
	assert.Zero(t, buf.Len())
}
