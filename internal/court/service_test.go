package court

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *Court) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*Court)
	return c, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter Filter) ([]*Court, error) {
	args := m.Called(ctx, filter)
	cs, _ := args.Get(0).([]*Court)
	return cs, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, c *Court) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// typeCatalog is a read-only courttype.Service backed by a map of type names.
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

func newCatalog(names ...string) typeCatalog {
	types := make(map[string]*courttype.CourtType, len(names))
	for _, n := range names {
		types[n] = &courttype.CourtType{TypeName: n, IsEnabled: true}
	}
	return typeCatalog{types: types}
}

func TestCreateCourt(t *testing.T) {
	ctx := context.Background()

	t.Run("known type", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(c *Court) bool {
			return c.Name == "Court 1" && c.CourtType == "tennis"
		})).Return(nil)

		c, err := NewService(repo, newCatalog("tennis")).Create(ctx, CreateRequest{Name: " Court 1 ", CourtType: "tennis"})
		require.NoError(t, err)
		assert.Equal(t, "Court 1", c.Name)
		repo.AssertExpectations(t)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewService(new(mockRepository), newCatalog("tennis")).Create(ctx, CreateRequest{Name: "P1", CourtType: "padel"})
		assert.ErrorIs(t, err, ErrInvalidCourtType)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewService(new(mockRepository), newCatalog("tennis")).Create(ctx, CreateRequest{Name: " ", CourtType: "tennis"})
		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestUpdateCourtChecksNewType(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("GetByID", ctx, "c1").Return(&Court{ID: "c1", Name: "Court 1", CourtType: "tennis"}, nil)

	padel := "padel"
	_, err := NewService(repo, newCatalog("tennis")).Update(ctx, "c1", UpdateRequest{CourtType: &padel})
	assert.ErrorIs(t, err, ErrInvalidCourtType)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
