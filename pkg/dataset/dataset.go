// pkg/dataset/dataset.go
package dataset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type is the declared type of a column
type Type int

const (
	TypeNumeric Type = iota
	TypeText
	TypeTime
)

// String returns a string representation of the column type
func (t Type) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeText:
		return "text"
	case TypeTime:
		return "time"
	default:
		return "unknown"
	}
}

// Column holds one named, typed column. Cells are float64 for numeric
// columns, string for text, time.Time for time; nil marks a null.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// Dataset is an ordered table of typed columns of uniform length.
type Dataset struct {
	Columns []*Column
}

// New creates a dataset from columns, validating shape
func New(columns ...*Column) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, errors.New("dataset requires at least one column")
	}

	seen := make(map[string]bool, len(columns))
	length := len(columns[0].Values)
	for _, col := range columns {
		if col.Name == "" {
			return nil, errors.New("column name cannot be empty")
		}
		if seen[col.Name] {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = true
		if len(col.Values) != length {
			return nil, fmt.Errorf("column %q has %d rows, expected %d",
				col.Name, len(col.Values), length)
		}
	}

	return &Dataset{Columns: columns}, nil
}

// NumRows returns the number of rows in the dataset
func (d *Dataset) NumRows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// NumCols returns the number of columns in the dataset
func (d *Dataset) NumCols() int {
	return len(d.Columns)
}

// ColumnNames returns column names in dataset order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or nil if absent
func (d *Dataset) Column(name string) *Column {
	for _, col := range d.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// Copy returns a deep copy. Transforms always operate on a copy so the
// caller's reference is never mutated.
func (d *Dataset) Copy() *Dataset {
	columns := make([]*Column, len(d.Columns))
	for i, col := range d.Columns {
		values := make([]any, len(col.Values))
		copy(values, col.Values)
		columns[i] = &Column{Name: col.Name, Type: col.Type, Values: values}
	}
	return &Dataset{Columns: columns}
}

// FilterRows keeps only rows where keep[i] is true, in place
func (d *Dataset) FilterRows(keep []bool) {
	for _, col := range d.Columns {
		filtered := col.Values[:0]
		for i, v := range col.Values {
			if keep[i] {
				filtered = append(filtered, v)
			}
		}
		col.Values = filtered
	}
}

// Row returns one row as a column name -> value map
func (d *Dataset) Row(i int) map[string]any {
	row := make(map[string]any, len(d.Columns))
	for _, col := range d.Columns {
		row[col.Name] = col.Values[i]
	}
	return row
}

// Preview returns up to n leading rows for display
func (d *Dataset) Preview(n int) []map[string]any {
	if n > d.NumRows() {
		n = d.NumRows()
	}
	rows := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, d.Row(i))
	}
	return rows
}

// DuplicateMask marks every row that is an exact duplicate of an earlier row
// across all columns. The first occurrence is not marked.
func (d *Dataset) DuplicateMask() []bool {
	seen := make(map[string]bool, d.NumRows())
	mask := make([]bool, d.NumRows())
	for i := 0; i < d.NumRows(); i++ {
		key := d.rowKey(i)
		if seen[key] {
			mask[i] = true
		}
		seen[key] = true
	}
	return mask
}

// rowKey builds a comparison key for duplicate detection. The unit separator
// avoids collisions between adjacent cell values.
func (d *Dataset) rowKey(i int) string {
	var b strings.Builder
	for _, col := range d.Columns {
		v := col.Values[i]
		if v == nil {
			b.WriteString("\x00")
		} else if t, ok := v.(time.Time); ok {
			b.WriteString(t.Format(time.RFC3339Nano))
		} else {
			fmt.Fprintf(&b, "%v", v)
		}
		b.WriteString("\x1f")
	}
	return b.String()
}

// IsNull reports whether the cell at row i is null
func (c *Column) IsNull(i int) bool {
	return c.Values[i] == nil
}

// NullCount returns the number of null cells in the column
func (c *Column) NullCount() int {
	count := 0
	for _, v := range c.Values {
		if v == nil {
			count++
		}
	}
	return count
}

// Floats returns all non-null cells as float64. Only meaningful for numeric
// columns; non-numeric cells are skipped.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := v.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

// DistinctNonNull returns the count of distinct non-null values
func (c *Column) DistinctNonNull() int {
	seen := make(map[string]bool)
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		seen[c.cellString(i)] = true
	}
	return len(seen)
}

// DistinctLowered returns the count of distinct non-null values after
// lower-casing. A smaller count than DistinctNonNull means casing variants
// of the same value exist.
func (c *Column) DistinctLowered() int {
	seen := make(map[string]bool)
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		seen[strings.ToLower(c.cellString(i))] = true
	}
	return len(seen)
}

// cellString formats the cell at row i for comparison purposes
func (c *Column) cellString(i int) string {
	v := c.Values[i]
	if v == nil {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%v", v)
}
