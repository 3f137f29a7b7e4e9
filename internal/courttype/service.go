package courttype

import (
	"context"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
)

type CreateRequest struct {
	TypeName    string
	DisplayName string
	IsEnabled   bool
	OpenTime    string
	CloseTime   string
}

// UpdateRequest holds the editable fields. Nil means unchanged; an empty
// hour string resets it to the club default.
type UpdateRequest struct {
	DisplayName *string
	IsEnabled   *bool
	OpenTime    *string
	CloseTime   *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CourtType, error)
	GetByID(ctx context.Context, id string) (*CourtType, error)
	GetByName(ctx context.Context, typeName string) (*CourtType, error)
	List(ctx context.Context, filter Filter) ([]*CourtType, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*CourtType, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*CourtType, error) {
	typeName := strings.ToLower(strings.TrimSpace(req.TypeName))
	if typeName == "" {
		return nil, ErrTypeNameRequired
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = typeName
	}

	if err := validateHours(req.OpenTime, req.CloseTime); err != nil {
		return nil, err
	}

	ct := &CourtType{
		TypeName:    typeName,
		DisplayName: displayName,
		IsEnabled:   req.IsEnabled,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
	}

	if err := s.repo.Create(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CourtType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByName(ctx context.Context, typeName string) (*CourtType, error) {
	return s.repo.GetByName(ctx, typeName)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*CourtType, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*CourtType, error) {
	ct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if d := strings.TrimSpace(*req.DisplayName); d != "" {
			ct.DisplayName = d
		}
	}
	if req.IsEnabled != nil {
		ct.IsEnabled = *req.IsEnabled
	}
	if req.OpenTime != nil {
		ct.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		ct.CloseTime = *req.CloseTime
	}

	if err := validateHours(ct.OpenTime, ct.CloseTime); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// validateHours accepts whole "HH:MM" hours; either side may be empty.
// "24:00" is allowed as a closing time.
func validateHours(open, close string) error {
	openHour, err := clockHour(open)
	if err != nil {
		return err
	}
	closeHour, err := clockHour(close)
	if err != nil {
		return err
	}
	if open != "" && close != "" && openHour >= closeHour {
		return ErrInvalidHours
	}
	return nil
}

func clockHour(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	h, ok := request.WholeHour(s)
	if !ok {
		return 0, ErrInvalidHours
	}
	return h, nil
}
