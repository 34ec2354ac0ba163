package orchestrator

import (
	"sync"
	"time"

	"company-intel-agents/internal/messages"
)

// FlowState tracks where one intelligence run is in its lifecycle.
type FlowState string

const (
	StateAwaitingProfile  FlowState = "awaiting_profile"
	StateBranchesInFlight FlowState = "branches_in_flight"
	StateFailed           FlowState = "failed"
	StateComplete         FlowState = "complete"
)

// Flow is the accumulated result of one run, keyed by correlation ID.
// The two branches land independently; the flow is complete when both
// have reported or terminally failed. The three result pointers are
// written once and never mutated afterwards, so Get's shallow copy can
// share them.
type Flow struct {
	Website     string
	CompanyName string
	StartedAt   time.Time
	State       FlowState

	Company  *messages.CompanyData
	News     *messages.NewsResponse
	Analysis *messages.CompanyAnalysis

	NewsDone    bool
	FinanceDone bool
}

func (f *Flow) branchesDone() bool {
	return f.NewsDone && f.FinanceDone
}

// FlowStore is the orchestrator's in-memory view of active runs.
type FlowStore struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

func NewFlowStore() *FlowStore {
	return &FlowStore{flows: make(map[string]*Flow)}
}

// Begin registers a new run under the correlation ID.
func (s *FlowStore) Begin(correlationID, website string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[correlationID] = &Flow{
		Website:   website,
		StartedAt: time.Now().UTC(),
		State:     StateAwaitingProfile,
	}
}

// Get returns a copy of the flow taken under the store lock, or false
// for an unknown ID. Handler goroutines for one flow overlap, so the
// live flow never leaves the store.
func (s *FlowStore) Get(correlationID string) (Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[correlationID]
	if !ok {
		return Flow{}, false
	}
	return *f, true
}

// Update applies fn to the flow under the store lock and returns the
// post-update state. fn sees a consistent view of both branch flags.
func (s *FlowStore) Update(correlationID string, fn func(*Flow)) (FlowState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[correlationID]
	if !ok {
		return "", false
	}
	fn(f)
	if f.State == StateBranchesInFlight && f.branchesDone() {
		f.State = StateComplete
	}
	return f.State, true
}

// Len reports the number of tracked flows.
func (s *FlowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}
