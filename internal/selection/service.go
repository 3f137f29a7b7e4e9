package selection

import (
	"context"
	"log/slog"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
)

type Service interface {
	Get(ctx context.Context, session auth.Session) (View, error)
	SetDate(ctx context.Context, session auth.Session, date time.Time) (View, error)
	SelectCourtType(ctx context.Context, session auth.Session, typeName string) (View, error)
	SelectCourt(ctx context.Context, session auth.Session, courtID string) (View, error)
	SelectTime(ctx context.Context, session auth.Session, hour string) (View, error)
	BackToTypeSelection(ctx context.Context, session auth.Session) (View, error)
	Submit(ctx context.Context, session auth.Session) (*booking.Booking, error)
}

type service struct {
	store      *Store
	bookings   booking.Service
	courtTypes courttype.Service
	courts     court.Service
	location   *time.Location
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(
	store *Store,
	bookings booking.Service,
	courtTypes courttype.Service,
	courts court.Service,
	loc *time.Location,
	logger *slog.Logger,
) Service {
	return &service{
		store:      store,
		bookings:   bookings,
		courtTypes: courtTypes,
		courts:     courts,
		location:   loc,
		logger:     logger,
		now:        time.Now,
	}
}

// newCoordinator starts a selection on today's venue-local date.
func (s *service) newCoordinator() *Coordinator {
	return NewCoordinator(s.now().In(s.location))
}

// coordinator returns the caller's selection, loading data for new ones so
// that the first mutation has choices to validate against.
func (s *service) coordinator(ctx context.Context, session auth.Session) *Coordinator {
	coord, created := s.store.Get(session.UserID, s.newCoordinator)
	if created {
		s.refresh(ctx, session, coord)
	}
	return coord
}

// refresh reloads everything derived from the selection. Load failures are
// logged and leave that part empty.
func (s *service) refresh(ctx context.Context, session auth.Session, coord *Coordinator) {
	q := coord.BeginRefresh()
	snap := Snapshot{}

	types, err := s.courtTypes.List(ctx, courttype.Filter{EnabledOnly: true})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load court types for selection", "user_id", session.UserID, "error", err)
		types = nil
	}
	snap.CourtTypes = types

	snap.CourtType = ResolveCourtType(q.CourtType, types)
	if snap.CourtType != "" {
		courts, err := s.courts.List(ctx, court.Filter{CourtType: snap.CourtType})
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to load courts for selection",
				"user_id", session.UserID, "court_type", snap.CourtType, "error", err)
			courts = nil
		}
		snap.Courts = courts

		courtID := q.CourtID
		if snap.CourtType != q.CourtType {
			courtID = ""
		}
		snap.CourtID = ResolveCourt(courtID, courts)

		avail, err := s.bookings.Availability(ctx, q.Date, snap.CourtType, snap.CourtID)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to load availability for selection",
				"user_id", session.UserID, "court_type", snap.CourtType, "error", err)
		}
		snap.Availability = avail

		gate, err := s.bookings.Gate(ctx, session.UserID, snap.CourtType, q.Date)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to evaluate booking rules for selection",
				"user_id", session.UserID, "court_type", snap.CourtType, "error", err)
		} else {
			snap.Gate = &gate
		}
	}

	if !coord.Apply(q.Seq, snap) {
		s.logger.DebugContext(ctx, "discarded stale selection refresh", "user_id", session.UserID, "seq", q.Seq)
	}
}

func (s *service) Get(ctx context.Context, session auth.Session) (View, error) {
	// Existing selections are refreshed too so that availability is current.
	coord, _ := s.store.Get(session.UserID, s.newCoordinator)
	s.refresh(ctx, session, coord)
	return coord.View(), nil
}

func (s *service) SetDate(ctx context.Context, session auth.Session, date time.Time) (View, error) {
	coord := s.coordinator(ctx, session)
	coord.SetDate(date)
	s.refresh(ctx, session, coord)
	return coord.View(), nil
}

func (s *service) SelectCourtType(ctx context.Context, session auth.Session, typeName string) (View, error) {
	coord := s.coordinator(ctx, session)
	if err := coord.SelectCourtType(typeName); err != nil {
		return View{}, err
	}
	s.refresh(ctx, session, coord)
	return coord.View(), nil
}

func (s *service) SelectCourt(ctx context.Context, session auth.Session, courtID string) (View, error) {
	coord := s.coordinator(ctx, session)
	if err := coord.SelectCourt(courtID); err != nil {
		return View{}, err
	}
	s.refresh(ctx, session, coord)
	return coord.View(), nil
}

func (s *service) SelectTime(ctx context.Context, session auth.Session, hour string) (View, error) {
	coord := s.coordinator(ctx, session)
	if err := coord.SelectTime(hour); err != nil {
		return View{}, err
	}
	s.refresh(ctx, session, coord)
	return coord.View(), nil
}

func (s *service) BackToTypeSelection(ctx context.Context, session auth.Session) (View, error) {
	coord := s.coordinator(ctx, session)
	coord.BackToTypeSelection()
	s.refresh(ctx, session, coord)
	return coord.View(), nil
}

// Submit turns a complete selection into a booking hold. The selection is
// discarded whatever the outcome.
func (s *service) Submit(ctx context.Context, session auth.Session) (*booking.Booking, error) {
	coord := s.coordinator(ctx, session)
	v := coord.View()
	s.store.Delete(session.UserID)

	if v.State != StateTimeSelected {
		return nil, ErrIncomplete
	}
	if v.Gate != nil && v.Gate.Blocked() {
		return nil, v.Gate.Err
	}

	b, err := s.bookings.Create(ctx, session, booking.CreateRequest{
		CourtID: v.CourtID,
		Date:    v.Date,
		Hour:    v.Hour,
	})
	if err != nil {
		s.logger.InfoContext(ctx, "selection submit rejected", "user_id", session.UserID, "error", err)
		return nil, err
	}
	return b, nil
}
