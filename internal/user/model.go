package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusUnauthorized, "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
	ErrSelfDemotion       = apperror.New(http.StatusForbidden, "admins cannot change their own role or deactivate themselves")
)

// User represents a club member or staff account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         auth.Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email       string
	DisplayName string
	Role        auth.Role
	IsActive    *bool // Use pointer to distinguish between false and nil (not set)

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// UpdateRequest holds the admin-editable fields. Nil means unchanged.
type UpdateRequest struct {
	DisplayName *string
	Role        *auth.Role
	IsActive    *bool
}
