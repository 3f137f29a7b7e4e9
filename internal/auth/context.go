package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserID  = "userID"
	ctxEmail   = "userEmail"
	ctxSession = "session"
)

// Session is the authenticated caller of a request. It is resolved once by the
// role middleware and handed explicitly to the services that need it.
type Session struct {
	UserID string
	Email  string
	Role   Role
}

// IsStaff reports whether the caller may act on other users' bookings.
func (s Session) IsStaff() bool {
	return s.Role.AtLeast(RoleOperator)
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// SetSession stores the resolved session on the request.
func SetSession(c *gin.Context, s Session) {
	c.Set(ctxSession, s)
}

// GetSession returns the session stored by RequireRole.
func GetSession(c *gin.Context) (Session, bool) {
	v, ok := c.Get(ctxSession)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
