package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store backed by a mutex-guarded map.
// Suitable for single-instance deployments; use RedisStore when the
// service runs behind a load balancer.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Put(_ context.Context, email string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[email]
	return rec, ok, nil
}

func (s *MemoryStore) Update(_ context.Context, email string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context, now time.Time, resetWindow time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for email, rec := range s.records {
		stale := false
		if rec.Verified {
			stale = now.After(rec.VerifiedAt.Add(resetWindow))
		} else {
			stale = now.After(rec.ExpiresAt)
		}
		if stale {
			delete(s.records, email)
			removed++
		}
	}
	return removed, nil
}

var _ Store = (*MemoryStore)(nil)
