package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// memrepo is an in-memory repository implementation used when no external
// store is configured. Records are deep-copied on the way in and out.
type memrepo struct {
	mu       sync.RWMutex
	sessions map[string]*SessionRecord
}

func NewMemoryRepository() Repository {
	return &memrepo{sessions: make(map[string]*SessionRecord)}
}

func (m *memrepo) Insert(ctx context.Context, rec *SessionRecord) error {
	if rec == nil {
		return fmt.Errorf("nil session record")
	}
	key := m.key(rec.SessionID)
	if key == "" {
		return fmt.Errorf("session record without id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[key]; exists {
		return ErrDuplicateSession
	}
	m.sessions[key] = cloneRecord(rec)
	return nil
}

func (m *memrepo) Get(ctx context.Context, sessionID string) (*SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.sessions[m.key(sessionID)]; ok && rec != nil {
		return cloneRecord(rec), nil
	}
	return nil, nil
}

func (m *memrepo) Update(ctx context.Context, rec *SessionRecord) error {
	if rec == nil {
		return fmt.Errorf("nil session record")
	}
	key := m.key(rec.SessionID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[key]; !exists {
		return ErrSessionNotFound
	}
	m.sessions[key] = cloneRecord(rec)
	return nil
}

func (m *memrepo) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, m.key(sessionID))
	m.mu.Unlock()
	return nil
}

func (m *memrepo) key(id string) string {
	return strings.TrimSpace(id)
}

func cloneRecord(rec *SessionRecord) *SessionRecord {
	if rec == nil {
		return nil
	}
	cp := *rec
	if rec.Chain != nil {
		c := *rec.Chain
		cp.Chain = &c
	}
	if rec.Outcome != nil {
		o := *rec.Outcome
		cp.Outcome = &o
	}
	return &cp
}
