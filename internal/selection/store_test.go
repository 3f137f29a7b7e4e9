package selection

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreGetCreatesOnce(t *testing.T) {
	s := NewStore(time.Minute)

	a, created := s.Get("u1", func() *Coordinator { return NewCoordinator(day) })
	assert.True(t, created)

	b, created := s.Get("u1", func() *Coordinator { return NewCoordinator(day) })
	assert.False(t, created)
	assert.Same(t, a, b)

	_, created = s.Get("u2", func() *Coordinator { return NewCoordinator(day) })
	assert.True(t, created)
	assert.Equal(t, 2, s.Len())

	s.Delete("u1")
	assert.Equal(t, 1, s.Len())
}

func TestStoreIdleExpiry(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s := NewStore(30 * time.Minute)
	s.now = func() time.Time { return now }

	first, _ := s.Get("u1", func() *Coordinator { return NewCoordinator(day) })
	s.Get("u2", func() *Coordinator { return NewCoordinator(day) })

	now = now.Add(20 * time.Minute)
	s.Get("u2", func() *Coordinator { return NewCoordinator(day) })

	now = now.Add(10 * time.Minute)
	again, created := s.Get("u1", func() *Coordinator { return NewCoordinator(day) })
	assert.True(t, created, "idle selection is replaced")
	assert.NotSame(t, first, again)

	now = now.Add(25 * time.Minute)
	assert.Equal(t, 1, s.Evict())
	assert.Equal(t, 1, s.Len())
}

func TestStoreRunStopsWithContext(t *testing.T) {
	s := NewStore(time.Millisecond)
	s.Get("u1", func() *Coordinator { return NewCoordinator(day) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("store janitor did not stop")
	}
}
