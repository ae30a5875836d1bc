package sheet

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/garagepay/paytrack/internal/table"
)

// xlsCharset is used for legacy workbooks without unicode strings.
const xlsCharset = "windows-1251"

// XLSReader reads the first sheet of a legacy BIFF workbook.
type XLSReader struct{}

// Format returns the file extension handled.
func (x *XLSReader) Format() string { return "xls" }

func (x *XLSReader) ReadRent(r io.ReadSeeker) (table.RentTable, error) {
	grid, err := readXLS(r)
	if err != nil {
		return table.RentTable{}, err
	}
	return rentFromGrid(grid)
}

func (x *XLSReader) ReadBank(r io.ReadSeeker) (table.BankTable, error) {
	grid, err := readXLS(r)
	if err != nil {
		return table.BankTable{}, err
	}
	return bankFromGrid(grid), nil
}

func readXLS(r io.ReadSeeker) ([][]string, error) {
	wb, err := xls.OpenReader(r, xlsCharset)
	if err != nil {
		return nil, fmt.Errorf("opening xls: %w", err)
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, ErrEmptySheet
	}

	var grid [][]string
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		rec := make([]string, row.LastCol()+1)
		for j := range rec {
			rec[j] = row.Col(j)
		}
		grid = append(grid, rec)
	}
	// drop trailing empty rows
	for len(grid) > 0 && len(grid[len(grid)-1]) == 0 {
		grid = grid[:len(grid)-1]
	}
	if len(grid) == 0 {
		return nil, ErrEmptySheet
	}
	return grid, nil
}
