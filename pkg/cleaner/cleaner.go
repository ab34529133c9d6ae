// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/data-triage/pkg/dataset"
	"github.com/David-Botos/data-triage/pkg/model"
)

// Cleaner applies selected resolution strategies to a dataset and produces
// a human-readable audit trail of what was done.
type Cleaner struct {
	logger *zap.Logger
}

// NewCleaner creates a new Cleaner instance
func NewCleaner(logger *zap.Logger) (*Cleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Cleaner{logger: logger}, nil
}

// Apply executes the selections in order against a copy of d. Each selection
// sees the dataset state left by the previous one; statistics are always
// recomputed on current data. The caller's dataset is never mutated.
//
// Stale selections (unknown issue id, unrecognized action code) and
// selections whose statistic cannot be computed are skipped and reported in
// the returned skip list; they never abort the batch. A column-scoped action
// referencing a missing column is a malformed request and fails fast.
func (c *Cleaner) Apply(
	d *dataset.Dataset,
	fixes []model.FixRequest,
	issueIndex map[string]model.DetectedIssue,
) (*dataset.Dataset, []string, []model.SkippedFix, error) {
	if d == nil {
		return nil, nil, nil, errors.New("dataset cannot be nil")
	}

	clean := d.Copy()
	auditLog := []string{}
	skipped := []model.SkippedFix{}

	for _, fix := range fixes {
		if fix.StrategyCode == model.ActionIgnore {
			continue
		}

		issue, ok := issueIndex[fix.IssueID]
		if !ok {
			skipped = append(skipped, model.SkippedFix{
				IssueID:      fix.IssueID,
				StrategyCode: fix.StrategyCode,
				Reason:       "unknown issue id",
			})
			continue
		}

		entry, err := c.applyOne(clean, issue, fix.StrategyCode)
		if err != nil {
			var skip *skipError
			if errors.As(err, &skip) {
				skipped = append(skipped, model.SkippedFix{
					IssueID:      fix.IssueID,
					StrategyCode: fix.StrategyCode,
					Reason:       skip.reason,
				})
				continue
			}
			return nil, nil, nil, err
		}
		if entry != "" {
			auditLog = append(auditLog, entry)
		}
	}

	c.logger.Info("Applied fixes",
		zap.Int("requested", len(fixes)),
		zap.Int("applied", len(auditLog)),
		zap.Int("skipped", len(skipped)),
		zap.Int("rows_before", d.NumRows()),
		zap.Int("rows_after", clean.NumRows()))

	return clean, auditLog, skipped, nil
}

// applyOne dispatches a single action code. Dataset-wide codes ignore the
// issue's column; column-scoped codes require it.
func (c *Cleaner) applyOne(d *dataset.Dataset, issue model.DetectedIssue, code string) (string, error) {
	// Dataset-wide actions first
	if code == model.ActionRemoveDuplicates {
		return removeDuplicates(d), nil
	}

	op, ok := columnOperations[code]
	if !ok {
		// Tolerate stale strategy catalogs: treat like ignore, but report
		return "", &skipError{reason: fmt.Sprintf("unsupported action code %q", code)}
	}

	col, err := requireColumn(d, issue)
	if err != nil {
		return "", err
	}
	return op(d, col)
}

// requireColumn resolves the issue's column reference, failing fast on a
// malformed request rather than silently skipping.
func requireColumn(d *dataset.Dataset, issue model.DetectedIssue) (*dataset.Column, error) {
	if issue.Column == "" {
		return nil, fmt.Errorf("issue %s (%s): missing required column reference", issue.ID, issue.Type)
	}
	col := d.Column(issue.Column)
	if col == nil {
		return nil, fmt.Errorf("issue %s (%s): missing required column reference %q",
			issue.ID, issue.Type, issue.Column)
	}
	return col, nil
}

// skipError marks a selection that should be dropped from the batch and
// reported, as opposed to a malformed request that aborts it.
type skipError struct {
	reason string
}

func (e *skipError) Error() string {
	return e.reason
}
