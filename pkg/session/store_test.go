package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/data-triage/pkg/cleaner"
	"github.com/David-Botos/data-triage/pkg/dataset"
	"github.com/David-Botos/data-triage/pkg/model"
	"github.com/David-Botos/data-triage/pkg/profiler"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	p, err := profiler.NewProfiler(zap.NewNop())
	require.NoError(t, err)
	c, err := cleaner.NewCleaner(zap.NewNop())
	require.NoError(t, err)
	s, err := NewStore(p, c, zap.NewNop())
	require.NoError(t, err)
	return s
}

// duplicatedDataset has exactly one issue: two duplicate rows.
func duplicatedDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := dataset.New(
		&dataset.Column{Name: "age", Type: dataset.TypeNumeric, Values: []any{25.0, 30.0, 25.0, 25.0}},
		&dataset.Column{Name: "name", Type: dataset.TypeText, Values: []any{"Alice", "Bob", "Alice", "Alice"}},
	)
	require.NoError(t, err)
	return d
}

func TestCreateProfilesDataset(t *testing.T) {
	store := newStore(t)

	profile, err := store.Create(duplicatedDataset(t), "people.csv")
	require.NoError(t, err)

	assert.NotEmpty(t, profile.SessionID)
	assert.Equal(t, "people.csv", profile.Filename)
	assert.Equal(t, 4, profile.TotalRows)
	require.Len(t, profile.Issues, 1)
	assert.Equal(t, model.IssueDuplicates, profile.Issues[0].Type)

	issues, err := store.Issues(profile.SessionID)
	require.NoError(t, err)
	assert.Equal(t, profile.Issues, issues)
}

func TestCreateDoesNotRetainCallerDataset(t *testing.T) {
	store := newStore(t)
	d := duplicatedDataset(t)

	profile, err := store.Create(d, "people.csv")
	require.NoError(t, err)

	// Mutating the caller's dataset must not leak into the session.
	d.Columns[0].Values[0] = 999.0

	got, err := store.Dataset(profile.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.Columns[0].Values[0])
}

func TestUnknownSessionID(t *testing.T) {
	store := newStore(t)

	_, err := store.Issues("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.ApplyFixes("nope", nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Dataset("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestApplyFixesConvergesToClean(t *testing.T) {
	store := newStore(t)
	profile, err := store.Create(duplicatedDataset(t), "people.csv")
	require.NoError(t, err)

	fixes, err := store.Interpret(profile.SessionID, "fix everything")
	require.NoError(t, err)
	require.Len(t, fixes, 1)

	report, err := store.ApplyFixes(profile.SessionID, fixes)
	require.NoError(t, err)

	assert.Equal(t, 4, report.RowsBefore)
	assert.Equal(t, 2, report.RowsAfter)
	assert.Equal(t, []string{"Removed 2 duplicate rows"}, report.ActionsTaken)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.RemainingIssues, "the session should converge to clean")
	assert.NotEmpty(t, report.ChartRecommendations)

	insight, err := store.Insight(profile.SessionID)
	require.NoError(t, err)
	assert.Contains(t, insight.InsightText, "looks clean")
}

func TestApplyFixesRejectsStaleSelections(t *testing.T) {
	store := newStore(t)
	profile, err := store.Create(duplicatedDataset(t), "people.csv")
	require.NoError(t, err)

	fixes, err := store.Interpret(profile.SessionID, "fix everything")
	require.NoError(t, err)

	_, err = store.ApplyFixes(profile.SessionID, fixes)
	require.NoError(t, err)

	// The first apply superseded the issue set; the old ids are stale now.
	report, err := store.ApplyFixes(profile.SessionID, fixes)
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "unknown issue id", report.Skipped[0].Reason)
	assert.Empty(t, report.ActionsTaken)
}

func TestAuditLogAccumulates(t *testing.T) {
	store := newStore(t)
	profile, err := store.Create(duplicatedDataset(t), "people.csv")
	require.NoError(t, err)

	fixes, err := store.Interpret(profile.SessionID, "fix everything")
	require.NoError(t, err)
	_, err = store.ApplyFixes(profile.SessionID, fixes)
	require.NoError(t, err)

	log, err := store.AuditLog(profile.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Removed 2 duplicate rows"}, log)
}

func TestDeleteRemovesSession(t *testing.T) {
	store := newStore(t)
	profile, err := store.Create(duplicatedDataset(t), "people.csv")
	require.NoError(t, err)

	store.Delete(profile.SessionID)

	_, err = store.Issues(profile.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
