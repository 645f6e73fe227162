package ledger

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. Expired records are pruned
// on write.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]Record
	latest   map[string]string
}

// NewMemoryStore builds an empty store. A zero ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Record),
		latest:   make(map[string]string),
	}
}

// Put stores a record and makes it the visitor's latest.
func (s *MemoryStore) Put(_ context.Context, record Record) error {
	now := s.now()
	record, err := Normalize(record, now)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	s.sessions[record.SessionID] = record
	if current, ok := s.sessions[s.latest[record.VisitorID]]; !ok || !record.CreatedAt.Before(current.CreatedAt) {
		s.latest[record.VisitorID] = record.SessionID
	}
	return nil
}

// Latest returns the visitor's most recent unexpired record.
func (s *MemoryStore) Latest(_ context.Context, visitorID string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessionID, ok := s.latest[strings.TrimSpace(visitorID)]
	if !ok {
		return Record{}, false, nil
	}
	return s.lookupLocked(sessionID)
}

// Get returns one unexpired record by session id.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupLocked(strings.TrimSpace(sessionID))
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) lookupLocked(sessionID string) (Record, bool, error) {
	record, ok := s.sessions[sessionID]
	if !ok || Expired(record, s.ttl, s.now()) {
		return Record{}, false, nil
	}
	return record, true, nil
}

func (s *MemoryStore) pruneLocked(now time.Time) {
	for id, record := range s.sessions {
		if Expired(record, s.ttl, now) {
			delete(s.sessions, id)
			if s.latest[record.VisitorID] == id {
				delete(s.latest, record.VisitorID)
			}
		}
	}
}
