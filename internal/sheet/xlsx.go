package sheet

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/garagepay/paytrack/internal/table"
)

// dateLikeRe matches rendered dates such as 07.03.2024, 3/7/24 or 2024-03-07.
var dateLikeRe = regexp.MustCompile(`\d{1,4}[./-]\d{1,2}[./-]\d{1,4}|\d:\d{2}`)

// XLSXReader reads the first sheet of an Office Open XML workbook.
type XLSXReader struct{}

// Format returns the file extension handled.
func (x *XLSXReader) Format() string { return "xlsx" }

// ReadRent reads raw cell values, so date cells arrive as serial numbers.
func (x *XLSXReader) ReadRent(r io.ReadSeeker) (table.RentTable, error) {
	f, name, err := openXLSX(r)
	if err != nil {
		return table.RentTable{}, err
	}
	defer f.Close()

	grid, err := sheetRows(f, name, excelize.Options{RawCellValue: true})
	if err != nil {
		return table.RentTable{}, err
	}
	return rentFromGrid(grid)
}

// ReadBank reads values as they appear in the statement, except plain
// numbers: those keep their stored value so a "#,##0.00" format never turns
// 5000 into "5,000.00". Cells rendered as dates stay rendered.
func (x *XLSXReader) ReadBank(r io.ReadSeeker) (table.BankTable, error) {
	f, name, err := openXLSX(r)
	if err != nil {
		return table.BankTable{}, err
	}
	defer f.Close()

	shown, err := sheetRows(f, name)
	if err != nil {
		return table.BankTable{}, err
	}
	raw, err := sheetRows(f, name, excelize.Options{RawCellValue: true})
	if err != nil {
		return table.BankTable{}, err
	}
	return bankFromGrid(mergeNumeric(shown, raw)), nil
}

func openXLSX(r io.Reader) (*excelize.File, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("opening xlsx: %w", err)
	}
	name := f.GetSheetName(0)
	if name == "" {
		f.Close()
		return nil, "", ErrEmptySheet
	}
	return f, name, nil
}

func sheetRows(f *excelize.File, name string, opts ...excelize.Options) ([][]string, error) {
	grid, err := f.GetRows(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	return grid, nil
}

// mergeNumeric replaces formatted cells of shown with their raw value from
// raw when the raw value is a number and the formatted text is not a date.
func mergeNumeric(shown, raw [][]string) [][]string {
	for i, row := range shown {
		if i >= len(raw) {
			break
		}
		for j, cell := range row {
			if j >= len(raw[i]) {
				break
			}
			v := raw[i][j]
			if v == cell || dateLikeRe.MatchString(cell) {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				row[j] = v
			}
		}
	}
	return shown
}
