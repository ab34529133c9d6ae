// pkg/cleaner/operations.go
package cleaner

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/David-Botos/data-triage/pkg/dataset"
	"github.com/David-Botos/data-triage/pkg/model"
)

// rareLabelKeep is how many of the most frequent categories survive
// group_rare; everything else is relabeled to rareLabel.
const (
	rareLabelKeep = 10
	rareLabel     = "Other"
	unknownLabel  = "Unknown"
)

// columnOperation mutates one column (possibly dropping rows) and returns
// the audit entry describing the change.
type columnOperation func(d *dataset.Dataset, col *dataset.Column) (string, error)

// columnOperations is the dispatch table for column-scoped action codes
var columnOperations = map[string]columnOperation{
	model.ActionDropRows:       dropMissingRows,
	model.ActionFillMean:       fillMean,
	model.ActionFillMedian:     fillMedian,
	model.ActionFillMode:       fillMode,
	model.ActionFillUnknown:    fillUnknown,
	model.ActionForwardFill:    forwardFill,
	model.ActionClipOutliers:   clipOutliers,
	model.ActionDropOutliers:   dropOutliers,
	model.ActionConvertNumeric: convertNumeric,
	model.ActionTitleCase:      titleCase,
	model.ActionLowerCase:      lowerCase,
	model.ActionGroupRare:      groupRare,
}

func dropMissingRows(d *dataset.Dataset, col *dataset.Column) (string, error) {
	keep := make([]bool, d.NumRows())
	for i := range keep {
		keep[i] = !col.IsNull(i)
	}
	d.FilterRows(keep)
	return fmt.Sprintf("Dropped rows with missing values in '%s'", col.Name), nil
}

func fillMean(d *dataset.Dataset, col *dataset.Column) (string, error) {
	val, ok := col.Mean()
	if !ok {
		return "", &skipError{reason: fmt.Sprintf("column %q has no values to compute a mean", col.Name)}
	}
	fillNulls(col, val)
	return fmt.Sprintf("Filled missing '%s' with mean (%.2f)", col.Name, val), nil
}

func fillMedian(d *dataset.Dataset, col *dataset.Column) (string, error) {
	val, ok := col.Median()
	if !ok {
		return "", &skipError{reason: fmt.Sprintf("column %q has no values to compute a median", col.Name)}
	}
	fillNulls(col, val)
	return fmt.Sprintf("Filled missing '%s' with median (%.2f)", col.Name, val), nil
}

func fillMode(d *dataset.Dataset, col *dataset.Column) (string, error) {
	val, ok := col.Mode()
	if !ok {
		return "", &skipError{reason: fmt.Sprintf("column %q has no values to compute a mode", col.Name)}
	}
	fillNulls(col, val)
	return fmt.Sprintf("Filled missing '%s' with mode (%s)", col.Name, dataset.ToString(val)), nil
}

func fillUnknown(d *dataset.Dataset, col *dataset.Column) (string, error) {
	fillNulls(col, unknownLabel)
	col.Type = dataset.TypeText
	return fmt.Sprintf("Filled missing '%s' with '%s'", col.Name, unknownLabel), nil
}

func forwardFill(d *dataset.Dataset, col *dataset.Column) (string, error) {
	var last any
	for i, v := range col.Values {
		if v == nil {
			col.Values[i] = last // leading nulls stay null
		} else {
			last = v
		}
	}
	return fmt.Sprintf("Forward-filled missing values in '%s'", col.Name), nil
}

func clipOutliers(d *dataset.Dataset, col *dataset.Column) (string, error) {
	lower, upper, ok := col.Fences()
	if !ok {
		return "", &skipError{reason: fmt.Sprintf("column %q has no numeric values to fence", col.Name)}
	}
	for i, v := range col.Values {
		f, isFloat := v.(float64)
		if !isFloat {
			continue
		}
		if f < lower {
			col.Values[i] = lower
		} else if f > upper {
			col.Values[i] = upper
		}
	}
	return fmt.Sprintf("Clipped outliers in '%s' to [%.2f, %.2f]", col.Name, lower, upper), nil
}

func dropOutliers(d *dataset.Dataset, col *dataset.Column) (string, error) {
	lower, upper, ok := col.Fences()
	if !ok {
		return "", &skipError{reason: fmt.Sprintf("column %q has no numeric values to fence", col.Name)}
	}
	keep := make([]bool, d.NumRows())
	for i, v := range col.Values {
		f, isFloat := v.(float64)
		// Nulls are not outliers; they survive this action
		keep[i] = !isFloat || (f >= lower && f <= upper)
	}
	d.FilterRows(keep)
	return fmt.Sprintf("Dropped outlier rows in '%s'", col.Name), nil
}

func convertNumeric(d *dataset.Dataset, col *dataset.Column) (string, error) {
	for i, v := range col.Values {
		if v == nil {
			continue
		}
		if f, err := dataset.ToFloat(v); err == nil {
			col.Values[i] = f
		} else {
			col.Values[i] = nil
		}
	}
	col.Type = dataset.TypeNumeric
	return fmt.Sprintf("Converted '%s' to Numeric (invalid values set to missing)", col.Name), nil
}

func titleCase(d *dataset.Dataset, col *dataset.Column) (string, error) {
	caser := cases.Title(language.Und)
	for i, v := range col.Values {
		if v == nil {
			continue
		}
		col.Values[i] = caser.String(dataset.ToString(v))
	}
	col.Type = dataset.TypeText
	return fmt.Sprintf("Standardized '%s' to Title Case", col.Name), nil
}

func lowerCase(d *dataset.Dataset, col *dataset.Column) (string, error) {
	for i, v := range col.Values {
		if v == nil {
			continue
		}
		col.Values[i] = strings.ToLower(dataset.ToString(v))
	}
	col.Type = dataset.TypeText
	return fmt.Sprintf("Standardized '%s' to Lower Case", col.Name), nil
}

func groupRare(d *dataset.Dataset, col *dataset.Column) (string, error) {
	top := col.ValueCounts()
	if len(top) > rareLabelKeep {
		top = top[:rareLabelKeep]
	}
	keep := make(map[string]bool, len(top))
	for _, v := range top {
		keep[dataset.ToString(v)] = true
	}
	for i, v := range col.Values {
		if v == nil {
			continue
		}
		if !keep[dataset.ToString(v)] {
			col.Values[i] = rareLabel
		}
	}
	return fmt.Sprintf("Grouped rare categories in '%s' into '%s'", col.Name, rareLabel), nil
}

// removeDuplicates drops fully duplicate rows, retaining first occurrences
func removeDuplicates(d *dataset.Dataset) string {
	before := d.NumRows()
	mask := d.DuplicateMask()
	keep := make([]bool, len(mask))
	for i, isDupe := range mask {
		keep[i] = !isDupe
	}
	d.FilterRows(keep)
	return fmt.Sprintf("Removed %d duplicate rows", before-d.NumRows())
}

// fillNulls replaces every null cell with val
func fillNulls(col *dataset.Column, val any) {
	for i, v := range col.Values {
		if v == nil {
			col.Values[i] = val
		}
	}
}
