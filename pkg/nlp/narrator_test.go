package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-Botos/data-triage/pkg/model"
)

func TestNarrateCleanDataset(t *testing.T) {
	insight := Narrate(nil)

	assert.Contains(t, insight.InsightText, "looks clean")
	assert.Empty(t, insight.RecommendedActions)
	assert.Zero(t, insight.ActionCount)
}

func TestNarrateMentionsHighSeverityIssues(t *testing.T) {
	insight := Narrate(sampleIssues())

	assert.Contains(t, insight.InsightText, "found 4 quality issues")
	assert.Contains(t, insight.InsightText, "Missing Values in 'age'")
	assert.Contains(t, insight.InsightText, "Duplicates")
	assert.Contains(t, insight.InsightText, "numbers as text")
	assert.Contains(t, insight.InsightText, "'fix all issues'")
}

func TestNarrateSingularIssue(t *testing.T) {
	insight := Narrate(sampleIssues()[:1])
	assert.Contains(t, insight.InsightText, "found 1 quality issue.")
}

func TestNarrateMentionsCardinalityRisk(t *testing.T) {
	insight := Narrate([]model.DetectedIssue{{
		ID: "viz-1", Type: model.IssueVisualizationRisk, Column: "sku",
		Severity: model.SeverityLow, RowCount: 100, TotalRows: 100,
	}})

	assert.Contains(t, insight.InsightText, "too many categories")
}

func TestNarrateRecommendsAdvisorDefaults(t *testing.T) {
	insight := Narrate(sampleIssues())

	require.Len(t, insight.RecommendedActions, 4)
	assert.Equal(t, 4, insight.ActionCount)

	byID := map[string]string{}
	for _, action := range insight.RecommendedActions {
		byID[action.IssueID] = action.StrategyCode
	}
	assert.Equal(t, model.ActionFillMedian, byID["missing-1"])
	assert.Equal(t, model.ActionRemoveDuplicates, byID["dup-1"])
	assert.Equal(t, model.ActionTitleCase, byID["case-1"])
	assert.Equal(t, model.ActionConvertNumeric, byID["type-1"])
}

func TestNarrateExcludesIgnoreDefaults(t *testing.T) {
	insight := Narrate([]model.DetectedIssue{{
		ID: "odd-1", Type: model.IssueType("Something New"), Severity: model.SeverityLow,
	}})

	assert.Empty(t, insight.RecommendedActions)
	assert.Zero(t, insight.ActionCount)
	assert.Contains(t, insight.InsightText, "found 1 quality issue.")
}
