package database

import (
	"context"
	"sync"
	"time"

	"mediguard-backend/models"
)

type session struct {
	turns   []models.ChatTurn
	tracker []models.TrackerEntry
}

// live reports whether the session still holds an unexpired record.
func (s *session) live(now time.Time) bool {
	for _, t := range s.turns {
		if now.Before(t.ExpiresAt) {
			return true
		}
	}
	for _, e := range s.tracker {
		if now.Before(e.ExpiresAt) {
			return true
		}
	}
	return false
}

// MemoryStore is an in-process SessionStore. Expired records are dropped
// on read, and writes periodically sweep away sessions whose records have
// all expired.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*session
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Kind() string { return "memory" }

func (m *MemoryStore) AppendChatTurn(ctx context.Context, turn *models.ChatTurn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = m.now()
	}
	turn.ExpiresAt = turn.Timestamp.Add(m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	s := m.sessionLocked(turn.SessionID)
	s.turns = append(s.turns, *turn)
	return nil
}

// ListChatTurns returns the newest limit turns in chronological order.
// limit <= 0 means all.
func (m *MemoryStore) ListChatTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return []models.ChatTurn{}, nil
	}

	now := m.now()
	live := s.turns[:0]
	for _, t := range s.turns {
		if now.Before(t.ExpiresAt) {
			live = append(live, t)
		}
	}
	s.turns = live

	return append([]models.ChatTurn{}, tail(live, limit)...), nil
}

func (m *MemoryStore) ClearSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) AddTrackerEntry(ctx context.Context, entry *models.TrackerEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = m.now()
	}
	entry.ExpiresAt = entry.CreatedAt.Add(m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	s := m.sessionLocked(entry.SessionID)
	s.tracker = append(s.tracker, *entry)
	return nil
}

func (m *MemoryStore) RecentTrackerEntries(ctx context.Context, sessionID string, limit int) ([]models.TrackerEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return []models.TrackerEntry{}, nil
	}

	now := m.now()
	live := s.tracker[:0]
	for _, e := range s.tracker {
		if now.Before(e.ExpiresAt) {
			live = append(live, e)
		}
	}
	s.tracker = live

	return append([]models.TrackerEntry{}, tail(live, limit)...), nil
}

func (m *MemoryStore) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*session)
	return nil
}

// sweepLocked deletes fully expired sessions, at most once per half TTL.
func (m *MemoryStore) sweepLocked() {
	now := m.now()
	if now.Before(m.nextSweep) {
		return
	}
	for id, s := range m.sessions {
		if !s.live(now) {
			delete(m.sessions, id)
		}
	}
	m.nextSweep = now.Add(m.ttl / 2)
}

func (m *MemoryStore) sessionLocked(id string) *session {
	s, ok := m.sessions[id]
	if !ok {
		s = &session{}
		m.sessions[id] = s
	}
	return s
}

func tail[T any](items []T, limit int) []T {
	if limit <= 0 || len(items) <= limit {
		return items
	}
	return items[len(items)-limit:]
}
