// pkg/advisor/advisor.go

// Package advisor picks the single best default remediation for a detected
// issue. Pure and deterministic: same issue in, same action code out.
package advisor

import (
	"strings"

	"github.com/David-Botos/data-triage/pkg/model"
)

const (
	// dropAbsoluteFloor: below this many affected rows, dropping is cheaper
	// than filling regardless of dataset size.
	dropAbsoluteFloor = 20

	// dropRelativeFloor: affected-row share of the dataset below which
	// dropping is still the default.
	dropRelativeFloor = 0.05
)

// DefaultStrategy returns the advisor's recommended action code for an
// issue. ActionIgnore is the no-op sentinel for unrecognized issue types.
func DefaultStrategy(issue model.DetectedIssue) string {
	switch issue.Type {
	case model.IssueDuplicates:
		return model.ActionRemoveDuplicates

	case model.IssueMissingValues:
		return missingValueDefault(issue)

	case model.IssueOutliers:
		return model.ActionClipOutliers

	case model.IssueVisualizationRisk:
		return model.ActionGroupRare

	case model.IssueInconsistentType:
		return model.ActionConvertNumeric

	case model.IssueTextInconsistency:
		return model.ActionTitleCase

	default:
		return model.ActionIgnore
	}
}

// missingValueDefault decides between dropping and filling. Few affected
// rows (absolute or relative to the dataset) drop; date-like columns
// forward-fill; numeric columns take the median; everything else the mode.
func missingValueDefault(issue model.DetectedIssue) string {
	if issue.RowCount < dropAbsoluteFloor {
		return model.ActionDropRows
	}
	if issue.TotalRows > 0 &&
		float64(issue.RowCount)/float64(issue.TotalRows) < dropRelativeFloor {
		return model.ActionDropRows
	}

	column := strings.ToLower(issue.Column)
	if strings.Contains(column, "date") || strings.Contains(column, "time") {
		return model.ActionForwardFill
	}
	if issue.NumericHint {
		return model.ActionFillMedian
	}
	return model.ActionFillMode
}
