// pkg/model/report.go
package model

// FixRequest selects one strategy for one detected issue.
type FixRequest struct {
	IssueID      string `json:"issue_id"`
	StrategyCode string `json:"strategy_code"`
}

// SkippedFix records a selection the cleaner could not act on. Stale ids and
// unrecognized codes are skipped rather than failed so partially-stale
// batches can be replayed, but the caller still gets to see what was dropped.
type SkippedFix struct {
	IssueID      string `json:"issue_id"`
	StrategyCode string `json:"strategy_code"`
	Reason       string `json:"reason"`
}

// ColumnSummary holds descriptive statistics for one column of a profile.
// Mean/StdDev/Min/Max are only populated for numeric columns.
type ColumnSummary struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	NullCount     int     `json:"null_count"`
	DistinctCount int     `json:"distinct_count"`
	Mean          float64 `json:"mean,omitempty"`
	StdDev        float64 `json:"std_dev,omitempty"`
	Min           float64 `json:"min,omitempty"`
	Max           float64 `json:"max,omitempty"`
}

// DatasetProfile is the full analysis result returned after ingesting a
// dataset: shape, detected issues and a small sample for preview.
type DatasetProfile struct {
	Filename     string           `json:"filename"`
	TotalRows    int              `json:"total_rows"`
	TotalColumns int              `json:"total_columns"`
	Columns      []string         `json:"columns"`
	Summaries    []ColumnSummary  `json:"summaries"`
	Issues       []DetectedIssue  `json:"issues"`
	SampleData   []map[string]any `json:"sample_data"`
	SessionID    string           `json:"session_id,omitempty"`
}

// CleaningReport summarizes one apply pass over a dataset.
type CleaningReport struct {
	RowsBefore           int             `json:"rows_before"`
	RowsAfter            int             `json:"rows_after"`
	ActionsTaken         []string        `json:"actions_taken"`
	Skipped              []SkippedFix    `json:"skipped,omitempty"`
	RemainingIssues      []DetectedIssue `json:"remaining_issues"`
	ChartRecommendations []string        `json:"chart_recommendations"`
}

// Insight is the narrated state of an issue set plus the advisor's default
// action plan. The narration and the plan are computed independently from
// the same issues and may not cover identical subsets.
type Insight struct {
	InsightText        string       `json:"insight"`
	RecommendedActions []FixRequest `json:"recommended_actions"`
	ActionCount        int          `json:"action_count"`
}
