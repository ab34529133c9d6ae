// pkg/profiler/profiler.go
package profiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-Botos/data-triage/pkg/dataset"
	"github.com/David-Botos/data-triage/pkg/model"
)

// Detection thresholds. Fixed constants separating structural defects from
// expected variation; tune here, not at call sites.
const (
	// MissingHighPct is the null percentage above which a missing-value
	// issue is High severity rather than Medium. The boundary itself
	// (exactly 20%) stays Medium.
	MissingHighPct = 20.0

	// OutlierCeilingPct suppresses outlier issues once the outlier fraction
	// reaches this share of rows; that much spread is a distribution
	// characteristic, not a defect.
	OutlierCeilingPct = 15.0

	// NumericTextFloor is the fraction of cells that must parse as numbers
	// before a text column is flagged as mistyped.
	NumericTextFloor = 0.80

	// CasingDistinctCap bounds the distinct-value count for the text-casing
	// check; beyond it the column is treated as free text.
	CasingDistinctCap = 50

	// CardinalityFloor is the distinct-value count above which a text
	// column becomes a visualization risk.
	CardinalityFloor = 50
)

// identifierTokens mark numeric columns that are identifiers, not
// measurements; their distributions are never flagged for outliers.
var identifierTokens = []string{"id", "key", "code"}

// Profiler inspects datasets and produces severity-ranked issues, each
// carrying its candidate resolution strategies.
type Profiler struct {
	logger *zap.Logger
}

// NewProfiler creates a new Profiler instance
func NewProfiler(logger *zap.Logger) (*Profiler, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Profiler{logger: logger}, nil
}

// Analyze runs all detection checks against the dataset and returns the
// detected issues in fixed check order, columns in dataset order within each
// check. Issue ids are fresh per pass; re-analyzing yields equal content
// under new ids.
func (p *Profiler) Analyze(d *dataset.Dataset) []model.DetectedIssue {
	issues := []model.DetectedIssue{}
	if d == nil || d.NumRows() == 0 {
		return issues
	}

	issues = append(issues, p.checkMissingValues(d)...)
	issues = append(issues, p.checkDuplicates(d)...)
	issues = append(issues, p.checkOutliers(d)...)
	issues = append(issues, p.checkInconsistentTypes(d)...)
	issues = append(issues, p.checkTextCasing(d)...)
	issues = append(issues, p.checkHighCardinality(d)...)

	p.logger.Info("Dataset analyzed",
		zap.Int("rows", d.NumRows()),
		zap.Int("columns", d.NumCols()),
		zap.Int("issues", len(issues)))

	return issues
}

// Profile analyzes the dataset and assembles the full profile returned to
// the caller: shape, column summaries, issues and a preview sample.
func (p *Profiler) Profile(d *dataset.Dataset, filename string) model.DatasetProfile {
	profile := model.DatasetProfile{
		Filename:     filename,
		TotalRows:    d.NumRows(),
		TotalColumns: d.NumCols(),
		Columns:      d.ColumnNames(),
		Issues:       p.Analyze(d),
		SampleData:   d.Preview(5),
	}
	for _, s := range dataset.Summarize(d) {
		profile.Summaries = append(profile.Summaries, model.ColumnSummary{
			Name:          s.Name,
			Type:          s.Type.String(),
			NullCount:     s.NullCount,
			DistinctCount: s.DistinctCount,
			Mean:          s.Mean,
			StdDev:        s.StdDev,
			Min:           s.Min,
			Max:           s.Max,
		})
	}
	return profile
}

// checkMissingValues flags every column containing nulls
func (p *Profiler) checkMissingValues(d *dataset.Dataset) []model.DetectedIssue {
	var issues []model.DetectedIssue
	rows := d.NumRows()

	for _, col := range d.Columns {
		count := col.NullCount()
		if count == 0 {
			continue
		}

		pct := float64(count) / float64(rows) * 100
		severity := model.SeverityMedium
		if pct > MissingHighPct {
			severity = model.SeverityHigh
		}

		numeric := col.Type == dataset.TypeNumeric
		label := "Column"
		if numeric {
			label = "Numeric column"
		}

		issues = append(issues, model.DetectedIssue{
			ID:     uuid.New().String(),
			Type:   model.IssueMissingValues,
			Column: col.Name,
			Description: fmt.Sprintf("%s '%s' has %d missing values (%.1f%%).",
				label, col.Name, count, pct),
			Severity:    severity,
			Impact:      "Missing data causes errors in aggregation and voids chart rendering.",
			RowCount:    count,
			TotalRows:   rows,
			NumericHint: numeric,
			Strategies:  missingValueStrategies(numeric),
		})
	}
	return issues
}

// missingValueStrategies builds the fill catalog for a missing-value issue.
// Numeric and non-numeric columns get different fill options; ordering
// reflects priority.
func missingValueStrategies(numeric bool) []model.ResolutionStrategy {
	strategies := []model.ResolutionStrategy{
		{Name: "Drop Rows", Description: "Remove rows with missing values", ActionCode: model.ActionDropRows},
	}
	if numeric {
		strategies = append(strategies,
			model.ResolutionStrategy{Name: "Fill with Median", Description: "Replace with median", ActionCode: model.ActionFillMedian},
			model.ResolutionStrategy{Name: "Fill with Mean", Description: "Replace with average", ActionCode: model.ActionFillMean},
			model.ResolutionStrategy{Name: "Forward Fill", Description: "Carry the previous value forward", ActionCode: model.ActionForwardFill},
		)
	} else {
		strategies = append(strategies,
			model.ResolutionStrategy{Name: "Fill with Mode", Description: "Replace with most frequent value", ActionCode: model.ActionFillMode},
			model.ResolutionStrategy{Name: "Fill 'Unknown'", Description: "Replace with 'Unknown' string", ActionCode: model.ActionFillUnknown},
		)
	}
	return append(strategies, ignoreStrategy("Keep data as is"))
}

// checkDuplicates emits one dataset-wide issue when fully duplicate rows exist
func (p *Profiler) checkDuplicates(d *dataset.Dataset) []model.DetectedIssue {
	dupes := 0
	for _, isDupe := range d.DuplicateMask() {
		if isDupe {
			dupes++
		}
	}
	if dupes == 0 {
		return nil
	}

	return []model.DetectedIssue{{
		ID:          uuid.New().String(),
		Type:        model.IssueDuplicates,
		Description: fmt.Sprintf("Dataset contains %d exact duplicate rows.", dupes),
		Severity:    model.SeverityHigh,
		Impact:      "Duplicates artificially inflate counts and bias statistical models.",
		RowCount:    dupes,
		TotalRows:   d.NumRows(),
		Strategies: []model.ResolutionStrategy{
			{Name: "Remove Duplicates", Description: "Keep only the first occurrence", ActionCode: model.ActionRemoveDuplicates},
			ignoreStrategy("Keep duplicates"),
		},
	}}
}

// checkOutliers flags numeric measurement columns with values beyond the IQR
// fences. Identifier-named columns are skipped regardless of distribution.
func (p *Profiler) checkOutliers(d *dataset.Dataset) []model.DetectedIssue {
	var issues []model.DetectedIssue
	rows := d.NumRows()

	for _, col := range d.Columns {
		if col.Type != dataset.TypeNumeric || isIdentifierColumn(col.Name) {
			continue
		}

		lower, upper, ok := col.Fences()
		if !ok {
			continue
		}
		outliers := 0
		for _, x := range col.Floats() {
			if x < lower || x > upper {
				outliers++
			}
		}

		pct := float64(outliers) / float64(rows) * 100
		if pct <= 0 || pct >= OutlierCeilingPct {
			continue
		}

		issues = append(issues, model.DetectedIssue{
			ID:          uuid.New().String(),
			Type:        model.IssueOutliers,
			Column:      col.Name,
			Description: fmt.Sprintf("Column '%s' has %d potential outliers.", col.Name, outliers),
			Severity:    model.SeverityMedium,
			Impact:      "Outliers skew averages and distort axis scaling in charts.",
			RowCount:    outliers,
			TotalRows:   rows,
			NumericHint: true,
			Strategies: []model.ResolutionStrategy{
				{Name: "Clip Values", Description: "Cap values at min/max thresholds", ActionCode: model.ActionClipOutliers},
				{Name: "Remove Rows", Description: "Delete rows with outliers", ActionCode: model.ActionDropOutliers},
				ignoreStrategy("Keep actual values"),
			},
		})
	}
	return issues
}

// checkInconsistentTypes flags text columns that are mostly, but not
// entirely, numeric
func (p *Profiler) checkInconsistentTypes(d *dataset.Dataset) []model.DetectedIssue {
	var issues []model.DetectedIssue
	rows := d.NumRows()

	for _, col := range d.Columns {
		if col.Type != dataset.TypeText {
			continue
		}

		numeric := 0
		for _, v := range col.Values {
			if v == nil {
				continue
			}
			if _, err := dataset.ToFloat(v); err == nil {
				numeric++
			}
		}

		ratio := float64(numeric) / float64(rows)
		if ratio <= NumericTextFloor || ratio >= 1.0 {
			continue
		}

		issues = append(issues, model.DetectedIssue{
			ID:     uuid.New().String(),
			Type:   model.IssueInconsistentType,
			Column: col.Name,
			Description: fmt.Sprintf("Column '%s' stores numbers as text (%d of %d values are numeric).",
				col.Name, numeric, rows),
			Severity:  model.SeverityHigh,
			Impact:    "Numbers stored as text break aggregation, sorting and numeric charts.",
			RowCount:  rows - numeric,
			TotalRows: rows,
			Strategies: []model.ResolutionStrategy{
				{Name: "Convert to Numeric", Description: "Coerce to numbers; failures become missing", ActionCode: model.ActionConvertNumeric},
				ignoreStrategy("Keep as text"),
			},
		})
	}
	return issues
}

// checkTextCasing flags low-cardinality text columns whose distinct values
// collapse under lower-casing
func (p *Profiler) checkTextCasing(d *dataset.Dataset) []model.DetectedIssue {
	var issues []model.DetectedIssue

	for _, col := range d.Columns {
		if col.Type != dataset.TypeText {
			continue
		}
		distinct := col.DistinctNonNull()
		if distinct == 0 || distinct >= CasingDistinctCap {
			continue
		}
		lowered := col.DistinctLowered()
		if lowered >= distinct {
			continue
		}

		issues = append(issues, model.DetectedIssue{
			ID:     uuid.New().String(),
			Type:   model.IssueTextInconsistency,
			Column: col.Name,
			Description: fmt.Sprintf("Column '%s' mixes letter casing (%d values collapse to %d when lower-cased).",
				col.Name, distinct, lowered),
			Severity:  model.SeverityLow,
			Impact:    "Casing variants of the same value split groups and inflate category counts.",
			RowCount:  distinct - lowered,
			TotalRows: d.NumRows(),
			Strategies: []model.ResolutionStrategy{
				{Name: "Title Case", Description: "Standardize to Title Case", ActionCode: model.ActionTitleCase},
				{Name: "Lower Case", Description: "Standardize to lower case", ActionCode: model.ActionLowerCase},
				ignoreStrategy("Keep current casing"),
			},
		})
	}
	return issues
}

// checkHighCardinality flags text columns with too many distinct values to
// chart meaningfully
func (p *Profiler) checkHighCardinality(d *dataset.Dataset) []model.DetectedIssue {
	var issues []model.DetectedIssue
	rows := d.NumRows()

	for _, col := range d.Columns {
		if col.Type != dataset.TypeText {
			continue
		}
		unique := col.DistinctNonNull()
		if unique <= CardinalityFloor || unique >= rows {
			continue
		}

		issues = append(issues, model.DetectedIssue{
			ID:     uuid.New().String(),
			Type:   model.IssueVisualizationRisk,
			Column: col.Name,
			Description: fmt.Sprintf("Column '%s' has %d unique values (High Cardinality).",
				col.Name, unique),
			Severity:  model.SeverityLow,
			Impact:    "Cannot be used effectively in Bar or Pie charts. Will clutter visualization.",
			RowCount:  rows,
			TotalRows: rows,
			Strategies: []model.ResolutionStrategy{
				{Name: "Group Rare Labels", Description: "Group infrequent values into 'Other'", ActionCode: model.ActionGroupRare},
				ignoreStrategy("Keep all categories"),
			},
		})
	}
	return issues
}

// isIdentifierColumn reports whether the column name marks an identifier
func isIdentifierColumn(name string) bool {
	lowered := strings.ToLower(name)
	for _, token := range identifierTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

func ignoreStrategy(description string) model.ResolutionStrategy {
	return model.ResolutionStrategy{Name: "Ignore", Description: description, ActionCode: model.ActionIgnore}
}
