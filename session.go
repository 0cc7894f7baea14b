package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"meditrack/extract"
)

// Review session states. A session starts in stateClassified right after
// extraction, moves to stateReviewing on the first edit, and terminates in
// stateCommitted or stateDiscarded. Terminal sessions reject further edits.
const (
	stateClassified = "classified"
	stateReviewing  = "reviewing"
	stateCommitted  = "committed"
	stateDiscarded  = "discarded"
)

const sessionTTL = 30 * time.Minute

type reviewSession struct {
	ID        string
	OwnerID   string
	State     string
	Result    extract.Result
	RawText   string
	CreatedAt time.Time
}

func (s *reviewSession) terminal() bool {
	return s.State == stateCommitted || s.State == stateDiscarded
}

// sessionRegistry holds in-flight review sessions in memory. Sessions are
// transient by design: a restart drops uncommitted reviews, the stored
// reports are unaffected.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*reviewSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: map[string]*reviewSession{}}
}

func (r *sessionRegistry) create(ownerID string, res extract.Result, rawText string) *reviewSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked()
	s := &reviewSession{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		State:     stateClassified,
		Result:    res,
		RawText:   rawText,
		CreatedAt: time.Now(),
	}
	r.sessions[s.ID] = s
	return s
}

func (r *sessionRegistry) get(ownerID, id string) (*reviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return nil, fmt.Errorf("review session %s not found", id)
	}
	return s, nil
}

// update applies fn to a live session and marks it reviewing.
func (r *sessionRegistry) update(ownerID, id string, fn func(*reviewSession)) (*reviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return nil, fmt.Errorf("review session %s not found", id)
	}
	if s.terminal() {
		return nil, fmt.Errorf("review session %s is %s", id, s.State)
	}
	fn(s)
	s.State = stateReviewing
	return s, nil
}

// finish moves a live session to a terminal state.
func (r *sessionRegistry) finish(ownerID, id, state string) (*reviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return nil, fmt.Errorf("review session %s not found", id)
	}
	if s.terminal() {
		return nil, fmt.Errorf("review session %s is %s", id, s.State)
	}
	s.State = state
	return s, nil
}

func (r *sessionRegistry) evictLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for id, s := range r.sessions {
		if s.CreatedAt.Before(cutoff) || s.terminal() {
			delete(r.sessions, id)
		}
	}
}
