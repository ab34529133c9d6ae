// pkg/session/store.go

// Package session holds live dataset copies between calls. It is an
// explicit key-value store with single-writer-per-key discipline, not
// ambient global state: each session carries its own mutex so at most one
// apply pass is in flight per logical dataset.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-Botos/data-triage/pkg/cleaner"
	"github.com/David-Botos/data-triage/pkg/dataset"
	"github.com/David-Botos/data-triage/pkg/model"
	"github.com/David-Botos/data-triage/pkg/nlp"
	"github.com/David-Botos/data-triage/pkg/profiler"
)

// ErrSessionNotFound is returned when a session id is unknown or expired
var ErrSessionNotFound = errors.New("session not found")

// session is the per-key state: original and current dataset copies, the
// issue index from the latest detection pass, and the audit trail.
type session struct {
	id       string
	filename string
	original *dataset.Dataset
	current  *dataset.Dataset
	issues   []model.DetectedIssue
	index    map[string]model.DetectedIssue
	auditLog []string
	mu       sync.Mutex // serializes apply per session
}

// Store owns all sessions and runs the detect -> plan -> apply -> re-detect
// cycle against them.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session

	profiler *profiler.Profiler
	cleaner  *cleaner.Cleaner
	logger   *zap.Logger
}

// NewStore creates a session store wired to a profiler and cleaner
func NewStore(p *profiler.Profiler, c *cleaner.Cleaner, logger *zap.Logger) (*Store, error) {
	if p == nil || c == nil {
		return nil, errors.New("profiler and cleaner cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Store{
		sessions: make(map[string]*session),
		profiler: p,
		cleaner:  c,
		logger:   logger,
	}, nil
}

// Create registers a new session for the dataset, runs the first detection
// pass, and returns the resulting profile. The store keeps its own copies;
// the caller's dataset is not retained.
func (s *Store) Create(d *dataset.Dataset, filename string) (model.DatasetProfile, error) {
	if d == nil {
		return model.DatasetProfile{}, errors.New("dataset cannot be nil")
	}

	sess := &session{
		id:       uuid.New().String(),
		filename: filename,
		original: d.Copy(),
		current:  d.Copy(),
	}
	profile := s.profiler.Profile(sess.current, filename)
	sess.issues = profile.Issues
	sess.index = model.IndexIssues(profile.Issues)
	profile.SessionID = sess.id

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("Session created",
		zap.String("session_id", sess.id),
		zap.String("filename", filename),
		zap.Int("rows", d.NumRows()),
		zap.Int("issues", len(profile.Issues)))

	return profile, nil
}

// Issues returns the issue set from the session's latest detection pass
func (s *Store) Issues(id string) ([]model.DetectedIssue, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return append([]model.DetectedIssue(nil), sess.issues...), nil
}

// Insight narrates the session's current issue set
func (s *Store) Insight(id string) (model.Insight, error) {
	issues, err := s.Issues(id)
	if err != nil {
		return model.Insight{}, err
	}
	return nlp.Narrate(issues), nil
}

// Interpret maps a free-text command onto a selection batch against the
// session's current issues. Read-only planning; nothing is applied.
func (s *Store) Interpret(id, command string) ([]model.FixRequest, error) {
	issues, err := s.Issues(id)
	if err != nil {
		return nil, err
	}
	return nlp.Interpret(command, issues), nil
}

// ApplyFixes runs one apply pass over the session's current dataset, then
// re-analyzes the result so the session always holds a fresh issue set.
// Calls for the same session are serialized.
func (s *Store) ApplyFixes(id string, fixes []model.FixRequest) (model.CleaningReport, error) {
	sess, err := s.get(id)
	if err != nil {
		return model.CleaningReport{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	cleaned, audit, skipped, err := s.cleaner.Apply(sess.current, fixes, sess.index)
	if err != nil {
		return model.CleaningReport{}, fmt.Errorf("apply failed for session %s: %w", id, err)
	}

	rowsBefore := sess.current.NumRows()
	sess.current = cleaned
	sess.auditLog = append(sess.auditLog, audit...)

	// Iterative convergence: the new dataset state supersedes the old pass
	sess.issues = s.profiler.Analyze(sess.current)
	sess.index = model.IndexIssues(sess.issues)

	return model.CleaningReport{
		RowsBefore:           rowsBefore,
		RowsAfter:            cleaned.NumRows(),
		ActionsTaken:         audit,
		Skipped:              skipped,
		RemainingIssues:      sess.issues,
		ChartRecommendations: cleaner.RecommendCharts(cleaned),
	}, nil
}

// Dataset returns a copy of the session's current dataset for export
func (s *Store) Dataset(id string) (*dataset.Dataset, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.current.Copy(), nil
}

// AuditLog returns the accumulated audit trail for the session
func (s *Store) AuditLog(id string) ([]string, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return append([]string(nil), sess.auditLog...), nil
}

// Delete removes a session and its datasets
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) get(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}
