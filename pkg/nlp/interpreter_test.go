package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-Botos/data-triage/pkg/model"
)

func sampleIssues() []model.DetectedIssue {
	return []model.DetectedIssue{
		{
			ID: "missing-1", Type: model.IssueMissingValues, Column: "age",
			Severity: model.SeverityHigh, RowCount: 300, TotalRows: 1000, NumericHint: true,
		},
		{
			ID: "dup-1", Type: model.IssueDuplicates,
			Severity: model.SeverityHigh, RowCount: 12, TotalRows: 1000,
		},
		{
			ID: "case-1", Type: model.IssueTextInconsistency, Column: "region",
			Severity: model.SeverityLow, RowCount: 2, TotalRows: 1000,
		},
		{
			ID: "type-1", Type: model.IssueInconsistentType, Column: "amount",
			Severity: model.SeverityHigh, RowCount: 5, TotalRows: 1000,
		},
	}
}

func TestInterpretMissingValues(t *testing.T) {
	// "all" also appears in the command; the more specific missing-values
	// intent must win.
	fixes := Interpret("fix all missing values", sampleIssues())

	require.Len(t, fixes, 1)
	assert.Equal(t, "missing-1", fixes[0].IssueID)
	assert.Equal(t, model.ActionFillMedian, fixes[0].StrategyCode)
}

func TestInterpretHighSeverity(t *testing.T) {
	fixes := Interpret("fix the high severity issues", sampleIssues())

	require.Len(t, fixes, 3)
	assert.Equal(t, model.FixRequest{IssueID: "missing-1", StrategyCode: model.ActionFillMedian}, fixes[0])
	assert.Equal(t, model.FixRequest{IssueID: "dup-1", StrategyCode: model.ActionRemoveDuplicates}, fixes[1])
	assert.Equal(t, model.FixRequest{IssueID: "type-1", StrategyCode: model.ActionConvertNumeric}, fixes[2])
}

func TestInterpretTextCasing(t *testing.T) {
	fixes := Interpret("clean up the text casing", sampleIssues())

	require.Len(t, fixes, 1)
	assert.Equal(t, model.FixRequest{IssueID: "case-1", StrategyCode: model.ActionTitleCase}, fixes[0])
}

func TestInterpretTypes(t *testing.T) {
	fixes := Interpret("convert the number columns", sampleIssues())

	require.Len(t, fixes, 1)
	assert.Equal(t, model.FixRequest{IssueID: "type-1", StrategyCode: model.ActionConvertNumeric}, fixes[0])
}

func TestInterpretEverything(t *testing.T) {
	fixes := Interpret("fix everything", sampleIssues())
	assert.Len(t, fixes, len(sampleIssues()))
}

func TestInterpretUnrecognizedCommand(t *testing.T) {
	fixes := Interpret("banana", sampleIssues())

	assert.NotNil(t, fixes)
	assert.Empty(t, fixes)
}

func TestInterpretIsCaseInsensitive(t *testing.T) {
	fixes := Interpret("FIX ALL MISSING VALUES", sampleIssues())
	require.Len(t, fixes, 1)
	assert.Equal(t, "missing-1", fixes[0].IssueID)
}

func TestInterpretNoIssues(t *testing.T) {
	fixes := Interpret("fix everything", nil)
	assert.Empty(t, fixes)
}
