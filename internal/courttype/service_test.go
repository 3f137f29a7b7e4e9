package courttype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, ct *CourtType) error {
	return m.Called(ctx, ct).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*CourtType, error) {
	args := m.Called(ctx, id)
	ct, _ := args.Get(0).(*CourtType)
	return ct, args.Error(1)
}

func (m *mockRepository) GetByName(ctx context.Context, typeName string) (*CourtType, error) {
	args := m.Called(ctx, typeName)
	ct, _ := args.Get(0).(*CourtType)
	return ct, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter Filter) ([]*CourtType, error) {
	args := m.Called(ctx, filter)
	cts, _ := args.Get(0).([]*CourtType)
	return cts, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, ct *CourtType) error {
	return m.Called(ctx, ct).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes type name", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*courttype.CourtType")).Return(nil)

		ct, err := NewService(repo).Create(ctx, CreateRequest{TypeName: " Padel ", IsEnabled: true, OpenTime: "09:00", CloseTime: "21:00"})
		require.NoError(t, err)
		assert.Equal(t, "padel", ct.TypeName)
		assert.Equal(t, "padel", ct.DisplayName)
		repo.AssertExpectations(t)
	})

	t.Run("requires type name", func(t *testing.T) {
		_, err := NewService(new(mockRepository)).Create(ctx, CreateRequest{TypeName: "  "})
		assert.ErrorIs(t, err, ErrTypeNameRequired)
	})
}

func TestValidateHours(t *testing.T) {
	tests := []struct {
		open, close string
		wantErr     bool
	}{
		{"", "", false},
		{"08:00", "22:00", false},
		{"08:00", "", false},
		{"06:00", "24:00", false},
		{"08:30", "22:00", true},
		{"22:00", "08:00", true},
		{"10:00", "10:00", true},
		{"8am", "22:00", true},
		{"8:00", "22:00", false},
		{"08:00", "24:30", true},
	}

	for _, tt := range tests {
		err := validateHours(tt.open, tt.close)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidHours, "%s-%s", tt.open, tt.close)
		} else {
			assert.NoError(t, err, "%s-%s", tt.open, tt.close)
		}
	}
}

func TestUpdateTogglesEnablement(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("GetByID", ctx, "ct1").Return(&CourtType{ID: "ct1", TypeName: "tennis", IsEnabled: true}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(ct *CourtType) bool { return !ct.IsEnabled })).Return(nil)

	disabled := false
	ct, err := NewService(repo).Update(ctx, "ct1", UpdateRequest{IsEnabled: &disabled})
	require.NoError(t, err)
	assert.False(t, ct.IsEnabled)
	repo.AssertExpectations(t)
}

func TestUpdateRejectsInvertedHours(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("GetByID", ctx, "ct1").Return(&CourtType{ID: "ct1", TypeName: "tennis", OpenTime: "08:00", CloseTime: "22:00"}, nil)

	closeTime := "07:00"
	_, err := NewService(repo).Update(ctx, "ct1", UpdateRequest{CloseTime: &closeTime})
	assert.ErrorIs(t, err, ErrInvalidHours)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
