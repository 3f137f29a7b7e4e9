package bookingrule

import (
	"context"
	"errors"
	"log/slog"
)

type Service interface {
	List(ctx context.Context) ([]*Rule, error)
	// Get returns the rule for courtType, or nil when the type has no limits.
	Get(ctx context.Context, courtType string) (*Rule, error)
	Set(ctx context.Context, rule Rule) (*Rule, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, courtType string) (*Rule, error) {
	rule, err := s.repo.Get(ctx, courtType)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return rule, err
}

func (s *service) Set(ctx context.Context, rule Rule) (*Rule, error) {
	if rule.MaxActiveBookings < 1 || rule.MaxDaysAhead < 0 {
		return nil, ErrInvalidLimits
	}

	if err := s.repo.Upsert(ctx, &rule); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "booking rule updated",
		"court_type", rule.CourtType,
		"max_active_bookings", rule.MaxActiveBookings,
		"max_days_ahead", rule.MaxDaysAhead)

	return &rule, nil
}
