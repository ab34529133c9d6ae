// pkg/dataset/csv.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
)

// MaxRowsForFullProfile caps how many rows are kept from oversized inputs.
// Larger files are row-sampled down to this cap before profiling.
const MaxRowsForFullProfile = 100000

// sampleSeed keeps oversized-input sampling reproducible across runs
const sampleSeed = 42

// ReadFile parses a CSV file into a typed dataset. The first record is the
// header. Column types are inferred from the data: numeric if every non-null
// cell parses as a number, time if every non-null cell parses as a date,
// text otherwise. Empty and null-token cells become nulls.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV content from r into a typed dataset
func Read(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("CSV header is empty")
	}

	raw := make([][]string, len(header))
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", rows+1, err)
		}
		for i := range header {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			raw[i] = append(raw[i], cell)
		}
		rows++
	}

	columns := make([]*Column, len(header))
	for i, name := range header {
		columns[i] = inferColumn(name, raw[i])
	}

	d, err := New(columns...)
	if err != nil {
		return nil, err
	}
	if d.NumRows() > MaxRowsForFullProfile {
		d = Sample(d, MaxRowsForFullProfile)
	}
	return d, nil
}

// inferColumn picks a column type from its raw cells and coerces them
func inferColumn(name string, cells []string) *Column {
	numeric := true
	timish := true
	nonNull := 0
	for _, cell := range cells {
		if IsNullToken(cell) {
			continue
		}
		nonNull++
		if numeric {
			if _, err := ToFloat(cell); err != nil {
				numeric = false
			}
		}
		if timish {
			if _, err := ToTime(cell); err != nil {
				timish = false
			}
		}
	}

	col := &Column{Name: name, Type: TypeText, Values: make([]any, len(cells))}
	if nonNull > 0 && numeric {
		col.Type = TypeNumeric
	} else if nonNull > 0 && timish {
		col.Type = TypeTime
	}

	for i, cell := range cells {
		if IsNullToken(cell) {
			continue
		}
		switch col.Type {
		case TypeNumeric:
			f, _ := ToFloat(cell)
			col.Values[i] = f
		case TypeTime:
			t, _ := ToTime(cell)
			col.Values[i] = t
		default:
			col.Values[i] = cell
		}
	}
	return col
}

// Sample returns a dataset holding n randomly chosen rows of d, preserving
// original row order. Sampling is deterministic.
func Sample(d *Dataset, n int) *Dataset {
	if n >= d.NumRows() {
		return d
	}
	rng := rand.New(rand.NewSource(sampleSeed))
	picked := rng.Perm(d.NumRows())[:n]
	sort.Ints(picked)

	keep := make([]bool, d.NumRows())
	for _, i := range picked {
		keep[i] = true
	}
	sampled := d.Copy()
	sampled.FilterRows(keep)
	return sampled
}

// WriteFile writes the dataset as CSV with a header row. Nulls render as
// empty cells.
func WriteFile(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(d, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Write writes the dataset as CSV to w
func Write(d *Dataset, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(d.ColumnNames()); err != nil {
		return err
	}

	record := make([]string, d.NumCols())
	for i := 0; i < d.NumRows(); i++ {
		for j, col := range d.Columns {
			record[j] = ToString(col.Values[i])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
