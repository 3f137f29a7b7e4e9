package booking

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to TEST_DB_DSN and loads db/schema.sql. Tests using it
// are skipped when no database is configured.
func testPool(t *testing.T) *pgxpool.Pool {
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
	return pool
}

func seedCourt(t *testing.T, pool *pgxpool.Pool) (userID, courtID string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO public.users (email, password_hash) VALUES ('ana@club.test', 'x') RETURNING id`).Scan(&userID))
	_, err := pool.Exec(ctx, `INSERT INTO public.court_types (type_name) VALUES ('tennis')`)
	require.NoError(t, err)
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO public.courts (name, court_type) VALUES ('Court 1', 'tennis') RETURNING id`).Scan(&courtID))
	return userID, courtID
}

func newHold(userID, courtID string, start, expires time.Time) *Booking {
	return &Booking{
		CourtID:   courtID,
		UserID:    userID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    StatusPendingPayment,
		ExpiresAt: &expires,
	}
}

func TestPgxRepositoryHoldLifecycle(t *testing.T) {
	pool := testPool(t)
	repo := NewPgxRepository(pool)
	ctx := context.Background()
	userID, courtID := seedCourt(t, pool)

	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(48 * time.Hour).Truncate(time.Hour)

	first := newHold(userID, courtID, start, now.Add(15*time.Minute))
	_, err := repo.CreateHold(ctx, first, now)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	// Overlapping live hold is refused by the exclusion constraint.
	clash := newHold(userID, courtID, start.Add(30*time.Minute), now.Add(15*time.Minute))
	_, err = repo.CreateHold(ctx, clash, now)
	assert.ErrorIs(t, err, ErrTimeConflict)

	// Touching intervals are fine.
	next := newHold(userID, courtID, start.Add(time.Hour), now.Add(15*time.Minute))
	_, err = repo.CreateHold(ctx, next, now)
	require.NoError(t, err)

	count, err := repo.CountActive(ctx, userID, "tennis", now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Court 1", got.CourtName)
	assert.Equal(t, "tennis", got.CourtType)

	ok, err := repo.MarkPaid(ctx, first.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, got.Status)
	assert.Nil(t, got.ExpiresAt)

	ok, err = repo.MarkPaid(ctx, first.ID, now)
	require.NoError(t, err)
	assert.False(t, ok, "already paid")

	// After the second hold expires it stops counting and its slot can be
	// taken before any reaper has run.
	later := now.Add(20 * time.Minute)
	count, err = repo.CountActive(ctx, userID, "tennis", later)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ok, err = repo.MarkPaid(ctx, next.ID, later)
	require.NoError(t, err)
	assert.False(t, ok, "expired hold cannot be paid")

	replacement := newHold(userID, courtID, start.Add(time.Hour), later.Add(15*time.Minute))
	cleared, err := repo.CreateHold(ctx, replacement, later)
	require.NoError(t, err)
	require.Len(t, cleared, 1)
	assert.Equal(t, next.ID, cleared[0].ID)
	assert.Equal(t, courtID, cleared[0].CourtID)

	_, err = repo.GetByID(ctx, next.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := repo.ListByDay(ctx, start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPgxRepositoryDeleteExpiredHolds(t *testing.T) {
	pool := testPool(t)
	repo := NewPgxRepository(pool)
	ctx := context.Background()
	userID, courtID := seedCourt(t, pool)

	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(72 * time.Hour).Truncate(time.Hour)

	expiring := newHold(userID, courtID, start, now.Add(time.Minute))
	live := newHold(userID, courtID, start.Add(2*time.Hour), now.Add(time.Hour))
	_, err := repo.CreateHold(ctx, expiring, now)
	require.NoError(t, err)
	_, err = repo.CreateHold(ctx, live, now)
	require.NoError(t, err)

	removed, err := repo.DeleteExpiredHolds(ctx, now.Add(5*time.Minute))
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, expiring.ID, removed[0].ID)

	removed, err = repo.DeleteExpiredHolds(ctx, now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, removed)

	assert.ErrorIs(t, repo.Delete(ctx, expiring.ID), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, live.ID))
}
