package selection

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	coord    *Coordinator
	lastSeen time.Time
}

// Store holds one Coordinator per user. Entries idle for longer than the TTL
// are treated as gone and removed by Run.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	idleTTL time.Duration
	now     func() time.Time
}

func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Get returns the user's selection, creating it with newCoord when there is
// none. created reports whether a new one was made.
func (s *Store) Get(userID string, newCoord func() *Coordinator) (coord *Coordinator, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[userID]
	if !ok || s.idle(e, now) {
		e = &entry{coord: newCoord()}
		s.entries[userID] = e
		created = true
	}
	e.lastSeen = now
	return e.coord, created
}

// Delete discards the user's selection.
func (s *Store) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) idle(e *entry, now time.Time) bool {
	return s.idleTTL > 0 && now.Sub(e.lastSeen) >= s.idleTTL
}

// Evict removes idle selections and returns how many were removed.
func (s *Store) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.entries {
		if s.idle(e, now) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Run evicts idle selections every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				logger.DebugContext(ctx, "idle selections evicted", "count", n)
			}
		}
	}
}
