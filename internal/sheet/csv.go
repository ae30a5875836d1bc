package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/garagepay/paytrack/internal/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReader reads delimited text exports. The delimiter is sniffed from the
// first line and non UTF-8 input is decoded as Windows-1251.
type CSVReader struct{}

// Format returns the file extension handled.
func (c *CSVReader) Format() string { return "csv" }

func (c *CSVReader) ReadRent(r io.ReadSeeker) (table.RentTable, error) {
	grid, err := readCSV(r)
	if err != nil {
		return table.RentTable{}, err
	}
	return rentFromGrid(grid)
}

func (c *CSVReader) ReadBank(r io.ReadSeeker) (table.BankTable, error) {
	grid, err := readCSV(r)
	if err != nil {
		return table.BankTable{}, err
	}
	return bankFromGrid(grid), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	data, err = decodeText(data)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySheet
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	grid, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return grid, nil
}

func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	out, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding windows-1251: %w", err)
	}
	return out, nil
}

// sniffDelimiter picks the most frequent of ';', tab and ',' on the first
// line, preferring ';' on ties since decimal commas are common.
func sniffDelimiter(data []byte) rune {
	line, _, _ := strings.Cut(string(data), "\n")
	best, bestCount := ';', strings.Count(line, ";")
	for _, d := range []rune{'\t', ','} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
