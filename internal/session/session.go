// Package session holds the one-shot load of a survey export and its result.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"handlestats/adapters/fetch"
	dstats "handlestats/domain/stats"
	apperrors "handlestats/internal/errors"
)

// State is the lifecycle stage of a session.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Analyzer computes a result from raw export bytes.
type Analyzer interface {
	Analyze(raw []byte) (*dstats.Result, error)
}

// Snapshot is a consistent view of the session.
type Snapshot struct {
	State  State          `json:"state"`
	Source string         `json:"source"`
	Error  string         `json:"error,omitempty"`
	Result *dstats.Result `json:"-"`
}

// Session fetches once and analyzes once. A failed fetch or parse is terminal;
// there is no retry.
type Session struct {
	fetcher  fetch.Fetcher
	analyzer Analyzer

	once   sync.Once
	mu     sync.RWMutex
	state  State
	result *dstats.Result
	err    error
}

// New creates a session in the loading state.
func New(fetcher fetch.Fetcher, analyzer Analyzer) *Session {
	return &Session{
		fetcher:  fetcher,
		analyzer: analyzer,
		state:    StateLoading,
	}
}

// Load performs the single fetch and analysis. Later calls return the
// outcome of the first.
func (s *Session) Load(ctx context.Context) error {
	s.once.Do(func() {
		result, err := s.run(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.state, s.err = StateError, err
			log.Printf("[Session] Load of %s failed: %v", s.fetcher.Source(), err)
			return
		}
		s.state, s.result = StateReady, result
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) run(ctx context.Context) (*dstats.Result, error) {
	startTime := time.Now()
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	result, err := s.analyzer.Analyze(raw)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to analyze %s", s.fetcher.Source())
	}
	log.Printf("[Session] Analyzed %d participants from %s in %.2fms",
		result.Participants, s.fetcher.Source(), float64(time.Since(startTime).Nanoseconds())/1e6)
	return result, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		State:  s.state,
		Source: s.fetcher.Source(),
		Result: s.result,
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}
