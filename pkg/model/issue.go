// pkg/model/issue.go
package model

// Severity ranks how urgently an issue should be addressed
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// IssueType identifies the kind of data-quality defect detected
type IssueType string

const (
	IssueMissingValues     IssueType = "Missing Values"
	IssueDuplicates        IssueType = "Duplicates"
	IssueOutliers          IssueType = "Outliers"
	IssueInconsistentType  IssueType = "Inconsistent Type"  // numbers stored as text
	IssueTextInconsistency IssueType = "Text Inconsistency" // "north" vs "North"
	IssueVisualizationRisk IssueType = "Visualization Risk"
)

// Action codes dispatched by the cleaner. Stable identifiers; the strategy
// catalogs attached to issues reference these.
const (
	ActionIgnore           = "ignore"
	ActionDropRows         = "drop_rows"
	ActionFillMean         = "fill_mean"
	ActionFillMedian       = "fill_median"
	ActionFillMode         = "fill_mode"
	ActionFillUnknown      = "fill_unknown"
	ActionForwardFill      = "ffill"
	ActionRemoveDuplicates = "remove_duplicates"
	ActionClipOutliers     = "clip_outliers"
	ActionDropOutliers     = "drop_outliers"
	ActionConvertNumeric   = "convert_numeric"
	ActionTitleCase        = "title_case"
	ActionLowerCase        = "lower_case"
	ActionGroupRare        = "group_rare"
)

// ResolutionStrategy describes one candidate fix for an issue. Strategies are
// generated fresh per issue at detection time and carry no state.
type ResolutionStrategy struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ActionCode  string `json:"action_code"`
}

// DetectedIssue represents one quality defect found during a detection pass.
// IDs are unique within a pass only; a new pass produces a full replacement
// set with fresh ids.
type DetectedIssue struct {
	ID          string               `json:"id"`
	Type        IssueType            `json:"type"`
	Column      string               `json:"column,omitempty"` // empty for dataset-wide issues
	Description string               `json:"description"`
	Severity    Severity             `json:"severity"`
	Impact      string               `json:"impact"`
	RowCount    int                  `json:"row_count"`
	TotalRows   int                  `json:"total_rows"`   // dataset row count at detection time
	NumericHint bool                 `json:"numeric_hint"` // affected column is numeric
	Strategies  []ResolutionStrategy `json:"strategies"`
}

// IndexIssues builds the id -> issue lookup the cleaner resolves fixes
// against. Issues from a superseded pass must not be mixed in.
func IndexIssues(issues []DetectedIssue) map[string]DetectedIssue {
	index := make(map[string]DetectedIssue, len(issues))
	for _, issue := range issues {
		index[issue.ID] = issue
	}
	return index
}
