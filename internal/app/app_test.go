package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	bookingHttp "github.com/nekogravitycat/club-booking-backend/internal/booking/http"
	courtHttp "github.com/nekogravitycat/club-booking-backend/internal/court/http"
	courttypeHttp "github.com/nekogravitycat/club-booking-backend/internal/courttype/http"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/mq/mqtest"
	"github.com/nekogravitycat/club-booking-backend/internal/user"
)

const webhookSecret = "test-webhook-secret"

type testApp struct {
	t        *testing.T
	pool     *pgxpool.Pool
	router   *gin.Engine
	jwt      *auth.JWTManager
	events   *mqtest.RecordingPublisher
	location *time.Location
}

// newTestApp wires the full application against TEST_DB_DSN.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../db/schema.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "TRUNCATE TABLE public.bookings, public.booking_rules, public.courts, public.court_types, public.users CASCADE")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	loc := time.UTC
	events := &mqtest.RecordingPublisher{}

	container, err := NewContainer(Config{
		DBPool:               pool,
		Logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTSecret:            "test-secret",
		JWTTTL:               30 * time.Minute,
		BcryptCost:           4, // Lower cost for testing purposes
		Location:             loc,
		MinLead:              2 * time.Hour,
		DefaultOpenTime:      "00:00",
		DefaultCloseTime:     "24:00",
		HoldTTL:              15 * time.Minute,
		SelectionIdleTTL:     time.Minute,
		Publisher:            events,
		PaymentWebhookSecret: webhookSecret,
	})
	require.NoError(t, err)

	return &testApp{t: t, pool: pool, router: container.Router, jwt: container.JWTManager, events: events, location: loc}
}

func (a *testApp) createUser(email string, role auth.Role) string {
	a.t.Helper()
	hash, err := auth.NewBcryptPasswordHasherWithCost(4).Hash("password123")
	require.NoError(a.t, err)

	u := &user.User{Email: email, PasswordHash: hash, DisplayName: &email, Role: role, IsActive: true}
	require.NoError(a.t, user.NewPgxRepository(a.pool).Create(context.Background(), u))

	token, err := a.jwt.GenerateAccessToken(u.ID, email)
	require.NoError(a.t, err)
	return token
}

func (a *testApp) do(method, path string, body any, token string, header ...string) *httptest.ResponseRecorder {
	var reqBody []byte
	if raw, ok := body.([]byte); ok {
		reqBody = raw
	} else if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestBookingFlow(t *testing.T) {
	a := newTestApp(t)

	adminToken := a.createUser("admin@club.test", auth.RoleAdmin)
	deskToken := a.createUser("desk@club.test", auth.RoleOperator)
	bossToken := a.createUser("boss@club.test", auth.RoleSupervisor)
	anaToken := a.createUser("ana@club.test", auth.RoleUser)
	benToken := a.createUser("ben@club.test", auth.RoleUser)

	var courtID string
	t.Run("setup court", func(t *testing.T) {
		w := a.do(http.MethodPost, "/v1/court-types", courttypeHttp.CreateRequest{TypeName: "tennis", DisplayName: "Tennis"}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = a.do(http.MethodPost, "/v1/court-types", courttypeHttp.CreateRequest{TypeName: "padel"}, anaToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = a.do(http.MethodPost, "/v1/courts", courtHttp.CreateRequest{Name: "Court 1", CourtType: "tennis"}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var c courtHttp.CourtResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		courtID = c.ID

		w = a.do(http.MethodPut, "/v1/booking-rules/tennis", map[string]int{"max_active_bookings": 2, "max_days_ahead": 14}, bossToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	date := time.Now().In(a.location).AddDate(0, 0, 2).Format("2006-01-02")

	var holdID string
	t.Run("hold and conflict", func(t *testing.T) {
		w := a.do(http.MethodPost, "/v1/bookings", bookingHttp.CreateBookingRequest{CourtID: courtID, Date: date, Hour: "10:00"}, anaToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var b bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "pending_payment", b.Status)
		require.NotNil(t, b.ExpiresAt)
		holdID = b.ID

		w = a.do(http.MethodPost, "/v1/bookings", bookingHttp.CreateBookingRequest{CourtID: courtID, Date: date, Hour: "10:00"}, benToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = a.do(http.MethodGet, "/v1/availability?date="+date+"&court_type=tennis", nil, benToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var avail bookingHttp.AvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
		assert.Contains(t, avail.OccupiedHours, "10:00")
		assert.NotContains(t, avail.OccupiedHours, "11:00")
	})

	t.Run("active count gate", func(t *testing.T) {
		w := a.do(http.MethodPost, "/v1/bookings", bookingHttp.CreateBookingRequest{CourtID: courtID, Date: date, Hour: "12:00"}, anaToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = a.do(http.MethodPost, "/v1/bookings", bookingHttp.CreateBookingRequest{CourtID: courtID, Date: date, Hour: "14:00"}, anaToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "maximum active bookings")
	})

	t.Run("permissions", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/v1/bookings/"+holdID, nil, benToken).Code)
		assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/bookings/"+holdID, nil, deskToken).Code)
		assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/v1/bookings/"+holdID+"/confirm", nil, anaToken).Code)
	})

	t.Run("payment", func(t *testing.T) {
		body, _ := json.Marshal(bookingHttp.PaymentWebhookRequest{BookingID: holdID, Status: "paid"})

		w := a.do(http.MethodPost, "/v1/payments/webhook", body, "", bookingHttp.SignatureHeader, "00")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = a.do(http.MethodPost, "/v1/payments/webhook", body, "",
			bookingHttp.SignatureHeader, bookingHttp.Sign([]byte(webhookSecret), body))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Confirming again is a no-op.
		w = a.do(http.MethodPost, "/v1/bookings/"+holdID+"/confirm", nil, deskToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var b bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "paid", b.Status)
	})

	t.Run("cancel", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, "/v1/bookings/"+holdID, nil, benToken).Code)
		assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, "/v1/bookings/"+holdID, nil, anaToken).Code)
		assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/v1/bookings/"+holdID, nil, anaToken).Code)
	})

	assert.Contains(t, a.events.Keys(), "booking.held")
	assert.Contains(t, a.events.Keys(), "booking.paid")
	assert.Contains(t, a.events.Keys(), "booking.cancelled")
}

func TestSelectionFlow(t *testing.T) {
	a := newTestApp(t)

	adminToken := a.createUser("admin@club.test", auth.RoleAdmin)
	anaToken := a.createUser("ana@club.test", auth.RoleUser)

	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/v1/court-types", courttypeHttp.CreateRequest{TypeName: "padel"}, adminToken).Code)
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/v1/courts", courtHttp.CreateRequest{Name: "Padel 1", CourtType: "padel"}, adminToken).Code)

	date := time.Now().In(a.location).AddDate(0, 0, 1).Format("2006-01-02")

	w := a.do(http.MethodPut, "/v1/selection/date", map[string]string{"date": date}, anaToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sel struct {
		State     string `json:"state"`
		CourtType string `json:"court_type"`
		CourtID   string `json:"court_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sel))
	assert.Equal(t, "court_selected", sel.State, "single type and court are picked automatically")
	assert.Equal(t, "padel", sel.CourtType)

	w = a.do(http.MethodPut, "/v1/selection/time", map[string]string{"hour": "18:00"}, anaToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/v1/selection/submit", nil, anaToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The selection starts over after submission.
	w = a.do(http.MethodPost, "/v1/selection/submit", nil, anaToken)
	assert.Equal(t, http.StatusConflict, w.Code)
}
