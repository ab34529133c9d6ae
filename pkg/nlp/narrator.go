// pkg/nlp/narrator.go
package nlp

import (
	"fmt"
	"strings"

	"github.com/David-Botos/data-triage/pkg/advisor"
	"github.com/David-Botos/data-triage/pkg/model"
)

// Narrate builds a natural-language summary of the issue set plus the
// advisor's default action plan. The narration and the plan are computed
// independently; a category may be mentioned even when its advisor default
// is ignore.
func Narrate(issues []model.DetectedIssue) model.Insight {
	actions := recommendedActions(issues)
	return model.Insight{
		InsightText:        insightText(issues),
		RecommendedActions: actions,
		ActionCount:        len(actions),
	}
}

// insightText renders the templated summary paragraph
func insightText(issues []model.DetectedIssue) string {
	if len(issues) == 0 {
		return "Your dataset looks clean. No quality issues detected - you're ready to explore and visualize."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I scanned your dataset and found %d quality %s.",
		len(issues), pluralize("issue", len(issues)))

	var highNames []string
	hasType := false
	hasVizRisk := false
	for _, issue := range issues {
		if issue.Severity == model.SeverityHigh {
			highNames = append(highNames, issueLabel(issue))
		}
		switch issue.Type {
		case model.IssueInconsistentType:
			hasType = true
		case model.IssueVisualizationRisk:
			hasVizRisk = true
		}
	}

	if len(highNames) > 0 {
		fmt.Fprintf(&b, " High severity: %s - these should be fixed before any analysis.",
			strings.Join(highNames, ", "))
	}
	if hasType {
		b.WriteString(" Some columns store numbers as text; converting them will unlock numeric charts and aggregation.")
	}
	if hasVizRisk {
		b.WriteString(" At least one column has too many categories to chart cleanly; grouping rare labels will help.")
	}
	b.WriteString(" Tell me to 'fix all issues' and I'll apply the recommended defaults.")

	return b.String()
}

// recommendedActions is every issue's advisor default, excluding the ignore
// sentinel
func recommendedActions(issues []model.DetectedIssue) []model.FixRequest {
	actions := []model.FixRequest{}
	for _, issue := range issues {
		code := advisor.DefaultStrategy(issue)
		if code == model.ActionIgnore {
			continue
		}
		actions = append(actions, model.FixRequest{IssueID: issue.ID, StrategyCode: code})
	}
	return actions
}

// issueLabel names an issue for narration
func issueLabel(issue model.DetectedIssue) string {
	if issue.Column == "" {
		return string(issue.Type)
	}
	return fmt.Sprintf("%s in '%s'", issue.Type, issue.Column)
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
