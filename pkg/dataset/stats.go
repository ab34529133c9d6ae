// pkg/dataset/stats.go
package dataset

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Quantile computes the p-quantile of xs using linear interpolation between
// order statistics (the same definition the reference profiling tools use,
// so IQR fences computed here match theirs exactly). xs need not be sorted.
// Returns false if xs is empty.
func Quantile(xs []float64, p float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0], true
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], true
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), true
}

// Fences returns the IQR outlier fences (Q1-1.5*IQR, Q3+1.5*IQR) for the
// column's non-null numeric values. Returns false for a column with no
// numeric values.
func (c *Column) Fences() (lower, upper float64, ok bool) {
	xs := c.Floats()
	q1, ok1 := Quantile(xs, 0.25)
	q3, ok3 := Quantile(xs, 0.75)
	if !ok1 || !ok3 {
		return 0, 0, false
	}
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr, true
}

// Mean returns the mean of the column's non-null numeric values
func (c *Column) Mean() (float64, bool) {
	xs := c.Floats()
	if len(xs) == 0 {
		return 0, false
	}
	return stat.Mean(xs, nil), true
}

// Median returns the median of the column's non-null numeric values
func (c *Column) Median() (float64, bool) {
	return Quantile(c.Floats(), 0.5)
}

// Mode returns the most frequent non-null value. Ties break toward the
// smallest value (numerically, chronologically, or lexicographically) so
// the result is deterministic.
func (c *Column) Mode() (any, bool) {
	counts := make(map[string]int)
	values := make(map[string]any)
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		key := c.cellString(i)
		counts[key]++
		values[key] = v
	}
	if len(counts) == 0 {
		return nil, false
	}

	var bestKey string
	best := -1
	for key, count := range counts {
		if count > best || (count == best && lessValue(values[key], values[bestKey])) {
			best = count
			bestKey = key
		}
	}
	return values[bestKey], true
}

// lessValue orders two same-typed cells for mode tie-breaking
func lessValue(a, b any) bool {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	}
	return false
}

// ValueCounts returns distinct non-null values ordered by descending
// frequency; ties preserve first appearance. Used for rare-label grouping.
func (c *Column) ValueCounts() []any {
	type entry struct {
		value any
		count int
		first int
	}
	byKey := make(map[string]*entry)
	order := make([]*entry, 0)
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		key := c.cellString(i)
		if e, ok := byKey[key]; ok {
			e.count++
			continue
		}
		e := &entry{value: v, count: 1, first: i}
		byKey[key] = e
		order = append(order, e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	out := make([]any, len(order))
	for i, e := range order {
		out[i] = e.value
	}
	return out
}

// Summarize computes descriptive statistics for every column
func Summarize(d *Dataset) []Summary {
	summaries := make([]Summary, 0, d.NumCols())
	for _, col := range d.Columns {
		s := Summary{
			Name:          col.Name,
			Type:          col.Type,
			NullCount:     col.NullCount(),
			DistinctCount: col.DistinctNonNull(),
		}
		if col.Type == TypeNumeric {
			xs := col.Floats()
			if len(xs) > 0 {
				s.Mean = stat.Mean(xs, nil)
				if len(xs) > 1 {
					s.StdDev = stat.StdDev(xs, nil)
				}
				s.Min, s.Max = minMax(xs)
				s.HasStats = true
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// Summary holds descriptive statistics for one column
type Summary struct {
	Name          string
	Type          Type
	NullCount     int
	DistinctCount int
	HasStats      bool
	Mean          float64
	StdDev        float64
	Min           float64
	Max           float64
}

func minMax(xs []float64) (lo, hi float64) {
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
