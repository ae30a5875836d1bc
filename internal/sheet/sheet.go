// Package sheet reads rental schedules and bank statements from spreadsheet
// files and writes finished reports back out.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/garagepay/paytrack/internal/table"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without a reader.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptySheet is returned when the first sheet has no rows.
	ErrEmptySheet = errors.New("sheet has no rows")
)

// Reader converts one spreadsheet format into tables.
type Reader interface {
	Format() string
	ReadRent(r io.ReadSeeker) (table.RentTable, error)
	ReadBank(r io.ReadSeeker) (table.BankTable, error)
}

// Registry holds readers keyed by file extension.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := normalizeExt(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for a format or extension ("xlsx" or ".xlsx"), or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[normalizeExt(format)]
}

// ForPath returns the reader matching the extension of path.
func (r *Registry) ForPath(path string) (Reader, error) {
	ext := filepath.Ext(path)
	if rd := r.Get(ext); rd != nil && ext != "" {
		return rd, nil
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(r.Formats(), ", "))
}

// Formats lists registered formats as ".ext", sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.readers))
	for k := range r.readers {
		out = append(out, "."+k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXReader{})
	r.Register(&XLSReader{})
	r.Register(&CSVReader{})
	return r
}

// OpenRent reads a rental schedule file using the default registry.
func OpenRent(path string) (table.RentTable, error) {
	return DefaultRegistry().OpenRent(path)
}

// OpenBank reads a bank statement file using the default registry.
func OpenBank(path string) (table.BankTable, error) {
	return DefaultRegistry().OpenBank(path)
}

// OpenRent reads a rental schedule file with the reader for its extension.
func (r *Registry) OpenRent(path string) (table.RentTable, error) {
	rd, err := r.ForPath(path)
	if err != nil {
		return table.RentTable{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return table.RentTable{}, fmt.Errorf("opening rent file: %w", err)
	}
	defer f.Close()

	t, err := rd.ReadRent(f)
	if err != nil {
		return table.RentTable{}, fmt.Errorf("reading rent file %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// OpenBank reads a bank statement file with the reader for its extension.
func (r *Registry) OpenBank(path string) (table.BankTable, error) {
	rd, err := r.ForPath(path)
	if err != nil {
		return table.BankTable{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return table.BankTable{}, fmt.Errorf("opening bank statement: %w", err)
	}
	defer f.Close()

	t, err := rd.ReadBank(f)
	if err != nil {
		return table.BankTable{}, fmt.Errorf("reading bank statement %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

func normalizeExt(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}

// rentFromGrid uses the first row as column labels. Blank labels become
// "Unnamed: N" and repeated labels get a ".N" suffix so every column keeps
// a distinct key.
func rentFromGrid(grid [][]string) (table.RentTable, error) {
	if len(grid) == 0 {
		return table.RentTable{}, ErrEmptySheet
	}
	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}

	header := grid[0]
	columns := make([]string, width)
	seen := make(map[string]int, width)
	for i := range columns {
		label := ""
		if i < len(header) {
			label = strings.TrimSpace(header[i])
		}
		if label == "" {
			label = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[label] > 0 {
			base := label
			for n := seen[base]; ; n++ {
				label = fmt.Sprintf("%s.%d", base, n)
				if seen[label] == 0 {
					seen[base] = n + 1
					break
				}
			}
		}
		seen[label]++
		columns[i] = label
	}

	rows := make([]map[string]any, 0, len(grid)-1)
	for _, rec := range grid[1:] {
		row := make(map[string]any, width)
		for i, col := range columns {
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				row[col] = rec[i]
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}
	return table.RentTable{Columns: columns, Rows: rows}, nil
}

// bankFromGrid keeps every row, header rows included, as positional cells.
func bankFromGrid(grid [][]string) table.BankTable {
	rows := make([][]any, len(grid))
	for i, rec := range grid {
		row := make([]any, len(rec))
		for j, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				row[j] = cell
			}
		}
		rows[i] = row
	}
	return table.BankTable{Rows: rows}
}
