package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"cancelflow/internal/common/logger"
	"cancelflow/internal/infrastructure/analytics"
	"cancelflow/internal/infrastructure/store"
)

// ErrSessionNotFound is returned for unknown session ids
var ErrSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// SessionManager keeps one controller per open wizard session so
// concurrent sessions (multiple tabs, multiple users) never share
// state. Sessions leave the map on Close or via EvictIdle; nothing
// is persisted for an evicted session.
type SessionManager struct {
	store     store.Store
	publisher analytics.Publisher
	auditor   Auditor
	logger    logger.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewSessionManager(s store.Store, p analytics.Publisher, a Auditor, l logger.Logger) *SessionManager {
	return &SessionManager{
		store:     s,
		publisher: p,
		auditor:   a,
		logger:    l,
		sessions:  make(map[string]*sessionEntry),
	}
}

// Open creates a controller, opens a session on it and registers it
// under the new session id
func (m *SessionManager) Open(ctx context.Context, userID string) (string, *Controller) {
	c := NewController(m.store, m.publisher, m.auditor, m.logger)
	sessionID := c.Open(ctx, userID)

	m.mu.Lock()
	m.sessions[sessionID] = &sessionEntry{controller: c, lastSeen: time.Now()}
	m.mu.Unlock()

	return sessionID, c
}

// Get returns the controller for a session id and marks the session
// as active
func (m *SessionManager) Get(sessionID string) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = time.Now()

	return e.controller, nil
}

// Close closes the session and forgets it
func (m *SessionManager) Close(sessionID string) error {
	m.mu.Lock()
	e, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	e.controller.Close()
	return nil
}

// EvictIdle closes and forgets every session not touched for at least
// maxIdle, returning how many were evicted. Abandoned wizards hold no
// pending writes, so eviction is just dropping in-memory state.
func (m *SessionManager) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var evicted []*Controller
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.controller)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, c := range evicted {
		c.Close()
	}

	return len(evicted)
}
