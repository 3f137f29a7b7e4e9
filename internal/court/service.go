package court

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
)

type CreateRequest struct {
	Name      string
	CourtType string
}

type UpdateRequest struct {
	Name      *string
	CourtType *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Court, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo          Repository
	courtTypes    courttype.Service
}

func NewService(repo Repository, courtTypes courttype.Service) Service {
	return &service{
		repo:          repo,
		courtTypes:    courtTypes,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if err := s.checkCourtType(ctx, req.CourtType); err != nil {
		return nil, err
	}

	c := &Court{
		Name:      name,
		CourtType: req.CourtType,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		c.Name = name
	}
	if req.CourtType != nil && *req.CourtType != c.CourtType {
		if err := s.checkCourtType(ctx, *req.CourtType); err != nil {
			return nil, err
		}
		c.CourtType = *req.CourtType
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) checkCourtType(ctx context.Context, typeName string) error {
	if typeName == "" {
		return ErrInvalidCourtType
	}
	if _, err := s.courtTypes.GetByName(ctx, typeName); err != nil {
		if errors.Is(err, courttype.ErrNotFound) {
			return ErrInvalidCourtType
		}
		return err
	}
	return nil
}
