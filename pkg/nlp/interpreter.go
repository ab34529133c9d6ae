// pkg/nlp/interpreter.go

// Package nlp maps free-text commands onto remediation batches and narrates
// the state of an issue set. Intent classification is closed-vocabulary
// keyword matching, deliberately not a scoring classifier.
package nlp

import (
	"strings"

	"github.com/David-Botos/data-triage/pkg/advisor"
	"github.com/David-Botos/data-triage/pkg/model"
)

// intent pairs a keyword predicate with a plan builder. Intents are
// evaluated in order and only the first match fires.
type intent struct {
	name     string
	keywords []string
	plan     func(issues []model.DetectedIssue) []model.FixRequest
}

var intents = []intent{
	{
		name:     "fix-high-severity",
		keywords: []string{"high", "critical"},
		plan:     advisorPlan(func(i model.DetectedIssue) bool { return i.Severity == model.SeverityHigh }),
	},
	{
		name:     "fix-missing-values",
		keywords: []string{"missing"},
		plan:     advisorPlan(func(i model.DetectedIssue) bool { return i.Type == model.IssueMissingValues }),
	},
	{
		name:     "fix-text-casing",
		keywords: []string{"text", "case"},
		plan:     fixedPlan(model.IssueTextInconsistency, model.ActionTitleCase),
	},
	{
		name:     "fix-types",
		keywords: []string{"type", "number"},
		plan:     fixedPlan(model.IssueInconsistentType, model.ActionConvertNumeric),
	},
	{
		name:     "fix-everything",
		keywords: []string{"all", "everything"},
		plan:     advisorPlan(func(model.DetectedIssue) bool { return true }),
	},
}

// Interpret classifies the command into exactly one intent and expands it
// into an ordered selection batch. An unrecognized command yields an empty
// batch, not an error.
func Interpret(command string, issues []model.DetectedIssue) []model.FixRequest {
	lowered := strings.ToLower(command)

	for _, in := range intents {
		for _, keyword := range in.keywords {
			if strings.Contains(lowered, keyword) {
				return in.plan(issues)
			}
		}
	}
	return []model.FixRequest{}
}

// advisorPlan selects matching issues and pairs each with its advisor
// default
func advisorPlan(match func(model.DetectedIssue) bool) func([]model.DetectedIssue) []model.FixRequest {
	return func(issues []model.DetectedIssue) []model.FixRequest {
		fixes := []model.FixRequest{}
		for _, issue := range issues {
			if match(issue) {
				fixes = append(fixes, model.FixRequest{
					IssueID:      issue.ID,
					StrategyCode: advisor.DefaultStrategy(issue),
				})
			}
		}
		return fixes
	}
}

// fixedPlan pairs every issue of one type with a fixed action code,
// bypassing the advisor
func fixedPlan(issueType model.IssueType, code string) func([]model.DetectedIssue) []model.FixRequest {
	return func(issues []model.DetectedIssue) []model.FixRequest {
		fixes := []model.FixRequest{}
		for _, issue := range issues {
			if issue.Type == issueType {
				fixes = append(fixes, model.FixRequest{IssueID: issue.ID, StrategyCode: code})
			}
		}
		return fixes
	}
}
