package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/bookingrule"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
)

// Policy holds the club-wide booking settings.
type Policy struct {
	Slot    SlotPolicy
	HoldTTL time.Duration
}

type CreateRequest struct {
	CourtID string
	Date    time.Time // calendar day; only year, month and day are used
	Hour    string
}

// Availability is the bookable state of one court type (or one court) on a day.
type Availability struct {
	Date          time.Time
	CourtType     *courttype.CourtType
	CourtID       string
	Bookings      []*Booking
	OccupiedHours []int
	Slots         []HourSlot
}

type Service interface {
	Availability(ctx context.Context, date time.Time, courtType, courtID string) (*Availability, error)
	Gate(ctx context.Context, userID, courtType string, date time.Time) (GateResult, error)
	Create(ctx context.Context, session auth.Session, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, session auth.Session, id string) (*Booking, error)
	List(ctx context.Context, session auth.Session, filter Filter) ([]*Booking, int, error)
	Cancel(ctx context.Context, session auth.Session, id string) error
	ConfirmPayment(ctx context.Context, id string) (*Booking, error)
	PolicyFor(ct *courttype.CourtType) SlotPolicy
}

type service struct {
	repo       Repository
	query      *Query
	courts     court.Service
	courtTypes courttype.Service
	rules      bookingrule.Service
	events     EventPublisher
	policy     Policy
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(
	repo Repository,
	query *Query,
	courts court.Service,
	courtTypes courttype.Service,
	rules bookingrule.Service,
	events EventPublisher,
	policy Policy,
	logger *slog.Logger,
) Service {
	return &service{
		repo:       repo,
		query:      query,
		courts:     courts,
		courtTypes: courtTypes,
		rules:      rules,
		events:     events,
		policy:     policy,
		logger:     logger,
		now:        time.Now,
	}
}

// PolicyFor applies a court type's own operating hours over the defaults.
func (s *service) PolicyFor(ct *courttype.CourtType) SlotPolicy {
	if ct == nil {
		return s.policy.Slot
	}
	return s.policy.Slot.WithHours(ct.OpenTime, ct.CloseTime)
}

func (s *service) enabledCourtType(ctx context.Context, typeName string) (*courttype.CourtType, error) {
	ct, err := s.courtTypes.GetByName(ctx, typeName)
	if err != nil {
		if errors.Is(err, courttype.ErrNotFound) {
			return nil, ErrCourtTypeNotFound
		}
		return nil, err
	}
	if !ct.IsEnabled {
		return nil, ErrCourtTypeDisabled
	}
	return ct, nil
}

func (s *service) Availability(ctx context.Context, date time.Time, courtType, courtID string) (*Availability, error) {
	ct, err := s.enabledCourtType(ctx, courtType)
	if err != nil {
		return nil, err
	}

	if courtID != "" {
		c, err := s.courts.GetByID(ctx, courtID)
		if err != nil {
			if errors.Is(err, court.ErrNotFound) {
				return nil, ErrCourtNotFound
			}
			return nil, err
		}
		if c.CourtType != ct.TypeName {
			return nil, ErrInvalidInput
		}
	}

	bookings := ForCourtType(s.query.ActiveOnDate(ctx, date), ct.TypeName)
	relevant := bookings
	if courtID != "" {
		relevant = ForCourt(bookings, courtID)
	}

	policy := s.PolicyFor(ct)

	return &Availability{
		Date:          date,
		CourtType:     ct,
		CourtID:       courtID,
		Bookings:      bookings,
		OccupiedHours: OccupiedHours(bookings, ct.TypeName, courtID, policy.Location),
		Slots:         DaySlots(date, Intervals(relevant), s.now(), policy),
	}, nil
}

func (s *service) Gate(ctx context.Context, userID, courtType string, date time.Time) (GateResult, error) {
	rule, err := s.rules.Get(ctx, courtType)
	if err != nil {
		return GateResult{}, err
	}

	now := s.now()
	count, err := s.repo.CountActive(ctx, userID, courtType, now)
	if err != nil {
		return GateResult{}, err
	}

	return CheckGate(rule, count, date, now, s.policy.Slot.Location), nil
}

func (s *service) Create(ctx context.Context, session auth.Session, req CreateRequest) (*Booking, error) {
	hour, err := ParseHour(req.Hour)
	if err != nil {
		return nil, err
	}

	c, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	ct, err := s.enabledCourtType(ctx, c.CourtType)
	if err != nil {
		return nil, err
	}

	// Limits are checked before anything is written.
	gate, err := s.Gate(ctx, session.UserID, ct.TypeName, req.Date)
	if err != nil {
		return nil, err
	}
	if gate.Blocked() {
		return nil, gate.Err
	}

	policy := s.PolicyFor(ct)
	existing := ForCourt(s.query.ActiveOnDate(ctx, req.Date), c.ID)
	now := s.now()
	if err := checkHour(req.Date, hour, Intervals(existing), now, policy); err != nil {
		return nil, err
	}

	start := SlotStart(req.Date, hour, policy.Location)
	expiresAt := now.Add(s.policy.HoldTTL)
	b := &Booking{
		CourtID:   c.ID,
		CourtName: c.Name,
		CourtType: c.CourtType,
		UserID:    session.UserID,
		StartTime: start,
		EndTime:   start.Add(SlotDuration),
		Status:    StatusPendingPayment,
		ExpiresAt: &expiresAt,
	}

	// The database has the final word on overlaps.
	cleared, err := s.repo.CreateHold(ctx, b, now)
	if err != nil {
		return nil, err
	}
	for _, old := range cleared {
		s.publish(ctx, EventExpired, old)
	}

	s.logger.InfoContext(ctx, "booking hold created",
		"booking_id", b.ID, "court_id", b.CourtID, "user_id", b.UserID,
		"start_time", b.StartTime, "expires_at", expiresAt)
	s.publish(ctx, EventHeld, b)

	return b, nil
}

func (s *service) GetByID(ctx context.Context, session auth.Session, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != session.UserID && !session.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

// List returns the caller's own bookings. Staff may list anyone's.
func (s *service) List(ctx context.Context, session auth.Session, filter Filter) ([]*Booking, int, error) {
	if !session.IsStaff() {
		filter.UserID = session.UserID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, session auth.Session, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != session.UserID && !session.IsStaff() {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "booking cancelled",
		"booking_id", b.ID, "user_id", b.UserID, "actor_id", session.UserID)
	s.publish(ctx, EventCancelled, b)
	return nil
}

// ConfirmPayment promotes a hold to paid. Paid bookings are returned as is.
func (s *service) ConfirmPayment(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusPaid {
		return b, nil
	}

	now := s.now()
	if b.IsExpiredHold(now) {
		return nil, ErrHoldExpired
	}

	updated, err := s.repo.MarkPaid(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost a race with expiry, the reaper or another confirmation.
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrHoldExpired
			}
			return nil, err
		}
		if current.Status == StatusPaid {
			return current, nil
		}
		return nil, ErrHoldExpired
	}

	b.Status = StatusPaid
	b.ExpiresAt = nil
	b.UpdatedAt = now

	s.logger.InfoContext(ctx, "booking paid", "booking_id", b.ID, "user_id", b.UserID)
	s.publish(ctx, EventPaid, b)
	return b, nil
}

// publish never fails the caller.
func (s *service) publish(ctx context.Context, eventType string, b *Booking) {
	if err := s.events.PublishJSON(ctx, eventType, NewEvent(eventType, b, s.now())); err != nil {
		s.logger.WarnContext(ctx, "failed to publish booking event",
			"event", eventType, "booking_id", b.ID, "error", err)
	}
}
