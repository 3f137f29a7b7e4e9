package booking

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/bookingrule"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// memRepository is an in-memory Repository with the same overlap rule as the
// database exclusion constraint.
type memRepository struct {
	mu       sync.Mutex
	bookings map[string]*Booking
	seq      int
	listErr  error
	creates  int
}

func newMemRepository(bookings ...*Booking) *memRepository {
	r := &memRepository{bookings: make(map[string]*Booking)}
	for _, b := range bookings {
		if b.ID == "" {
			r.seq++
			b.ID = "b" + strconv.Itoa(r.seq)
		}
		r.bookings[b.ID] = b
	}
	return r
}

func (r *memRepository) sorted() []*Booking {
	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r *memRepository) ListByDay(_ context.Context, from, to time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*Booking
	for _, b := range r.sorted() {
		if !b.StartTime.Before(from) && b.StartTime.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepository) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.sorted() {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (r *memRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepository) CreateHold(_ context.Context, b *Booking, now time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	candidate := b.Interval()
	var cleared []*Booking
	for _, existing := range r.bookings {
		if existing.CourtID != b.CourtID || !candidate.Overlaps(existing.Interval()) {
			continue
		}
		if !existing.IsExpiredHold(now) {
			return nil, ErrTimeConflict
		}
		cleared = append(cleared, existing)
	}
	for _, old := range cleared {
		delete(r.bookings, old.ID)
	}
	r.seq++
	r.creates++
	b.ID = "b" + strconv.Itoa(r.seq)
	b.CreatedAt = now
	cp := *b
	r.bookings[b.ID] = &cp
	return cleared, nil
}

func (r *memRepository) MarkPaid(_ context.Context, id string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != StatusPendingPayment || b.IsExpiredHold(now) {
		return false, nil
	}
	b.Status = StatusPaid
	b.ExpiresAt = nil
	return true, nil
}

func (r *memRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memRepository) CountActive(_ context.Context, userID, courtType string, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bookings {
		if b.UserID == userID && b.CourtType == courtType && b.EndTime.After(now) && b.IsLive(now) {
			n++
		}
	}
	return n, nil
}

func (r *memRepository) DeleteExpiredHolds(_ context.Context, now time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []*Booking
	for id, b := range r.bookings {
		if b.IsExpiredHold(now) {
			removed = append(removed, b)
			delete(r.bookings, id)
		}
	}
	return removed, nil
}

type countingNotifier struct {
	mu    sync.Mutex
	kicks int
}

func (n *countingNotifier) Kick() {
	n.mu.Lock()
	n.kicks++
	n.mu.Unlock()
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.kicks
}

type courtCatalog struct {
	court.Service
	courts map[string]*court.Court
}

func (c courtCatalog) GetByID(_ context.Context, id string) (*court.Court, error) {
	ct, ok := c.courts[id]
	if !ok {
		return nil, court.ErrNotFound
	}
	return ct, nil
}

type typeCatalog struct {
	courttype.Service
	types map[string]*courttype.CourtType
}

func (c typeCatalog) GetByName(_ context.Context, name string) (*courttype.CourtType, error) {
	ct, ok := c.types[name]
	if !ok {
		return nil, courttype.ErrNotFound
	}
	return ct, nil
}

type ruleBook struct {
	bookingrule.Service
	rules map[string]*bookingrule.Rule
}

func (r ruleBook) Get(_ context.Context, courtType string) (*bookingrule.Rule, error) {
	return r.rules[courtType], nil
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
