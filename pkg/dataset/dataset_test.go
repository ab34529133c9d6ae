package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesShape(t *testing.T) {
	_, err := New()
	assert.Error(t, err)

	_, err = New(
		&Column{Name: "a", Type: TypeNumeric, Values: []any{1.0, 2.0}},
		&Column{Name: "a", Type: TypeText, Values: []any{"x", "y"}},
	)
	assert.Error(t, err, "duplicate column names must be rejected")

	_, err = New(
		&Column{Name: "a", Type: TypeNumeric, Values: []any{1.0, 2.0}},
		&Column{Name: "b", Type: TypeText, Values: []any{"x"}},
	)
	assert.Error(t, err, "ragged columns must be rejected")
}

func TestCopyIsIndependent(t *testing.T) {
	d, err := New(&Column{Name: "a", Type: TypeNumeric, Values: []any{1.0, 2.0, nil}})
	require.NoError(t, err)

	cp := d.Copy()
	cp.Columns[0].Values[0] = 99.0

	assert.Equal(t, 1.0, d.Columns[0].Values[0], "mutating the copy must not touch the original")
}

func TestFilterRows(t *testing.T) {
	d, err := New(
		&Column{Name: "a", Type: TypeNumeric, Values: []any{1.0, 2.0, 3.0}},
		&Column{Name: "b", Type: TypeText, Values: []any{"x", "y", "z"}},
	)
	require.NoError(t, err)

	d.FilterRows([]bool{true, false, true})

	assert.Equal(t, 2, d.NumRows())
	assert.Equal(t, []any{1.0, 3.0}, d.Columns[0].Values)
	assert.Equal(t, []any{"x", "z"}, d.Columns[1].Values)
}

func TestDuplicateMask(t *testing.T) {
	d, err := New(
		&Column{Name: "a", Type: TypeNumeric, Values: []any{1.0, 2.0, 1.0, nil, nil}},
		&Column{Name: "b", Type: TypeText, Values: []any{"x", "y", "x", nil, nil}},
	)
	require.NoError(t, err)

	mask := d.DuplicateMask()

	// First occurrences stay unmarked; later identical rows (including
	// all-null rows) are marked.
	assert.Equal(t, []bool{false, false, true, false, true}, mask)
}

func TestDuplicateMaskDistinguishesNullFromEmpty(t *testing.T) {
	d, err := New(&Column{Name: "a", Type: TypeText, Values: []any{nil, ""}})
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false}, d.DuplicateMask())
}

func TestNullCountAndFloats(t *testing.T) {
	col := &Column{Name: "a", Type: TypeNumeric, Values: []any{1.0, nil, 3.0, nil}}

	assert.Equal(t, 2, col.NullCount())
	assert.Equal(t, []float64{1.0, 3.0}, col.Floats())
}

func TestDistinctLowered(t *testing.T) {
	col := &Column{Name: "region", Type: TypeText, Values: []any{"north", "North", "south", nil}}

	assert.Equal(t, 3, col.DistinctNonNull())
	assert.Equal(t, 2, col.DistinctLowered())
}
