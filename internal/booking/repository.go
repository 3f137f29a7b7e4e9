package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// ListByDay returns paid and pending bookings starting in [from, to),
	// expired holds included.
	ListByDay(ctx context.Context, from, to time.Time) ([]*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	GetByID(ctx context.Context, id string) (*Booking, error)

	// CreateHold clears expired holds overlapping b on the same court and
	// inserts b in one transaction. It returns the cleared holds.
	// Overlaps with live rows yield ErrTimeConflict.
	CreateHold(ctx context.Context, b *Booking, now time.Time) ([]*Booking, error)

	// MarkPaid promotes an unexpired hold. It reports false when no row matched.
	MarkPaid(ctx context.Context, id string, now time.Time) (bool, error)
	Delete(ctx context.Context, id string) error

	// CountActive counts the user's paid and unexpired pending bookings of a
	// court type that have not ended at now.
	CountActive(ctx context.Context, userID, courtType string, now time.Time) (int, error)

	// DeleteExpiredHolds removes pending holds expired at now and returns them.
	DeleteExpiredHolds(ctx context.Context, now time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var liveStatuses = []Status{StatusPaid, StatusPendingPayment}

func selectBookings(extra ...string) squirrel.SelectBuilder {
	cols := append([]string{
		"b.id", "b.court_id", "c.name", "c.court_type", "b.user_id", "u.display_name",
		"b.start_time", "b.end_time", "b.status", "b.expires_at", "b.created_at", "b.updated_at",
	}, extra...)
	return psql.Select(cols...).
		From("public.bookings b").
		Join("public.courts c ON b.court_id = c.id").
		Join("public.users u ON b.user_id = u.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.CourtID, &b.CourtName, &b.CourtType, &b.UserID, &b.UserName,
		&b.StartTime, &b.EndTime, &b.Status, &b.ExpiresAt, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func isConflict(err error) bool {
	var e *pgconn.PgError
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == pgerrcode.ExclusionViolation || e.Code == pgerrcode.UniqueViolation
}

func (r *pgxRepository) ListByDay(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.GtOrEq{"b.start_time": from}).
		Where(squirrel.Lt{"b.start_time": to}).
		Where(squirrel.Eq{"b.status": liveStatuses}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings by day query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings by day failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := selectBookings("count(*) OVER() as total_count")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"b.court_id": filter.CourtID})
	}
	if filter.CourtType != "" {
		query = query.Where(squirrel.Eq{"c.court_type": filter.CourtType})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"b.end_time": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"b.start_time": *filter.To})
	}

	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("b.start_time " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) CreateHold(ctx context.Context, b *Booking, now time.Time) ([]*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Expired holds still sit under the exclusion constraint until reaped.
	clearSQL, clearArgs, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"court_id": b.CourtID, "status": StatusPendingPayment}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		Where(squirrel.Lt{"start_time": b.EndTime}).
		Where(squirrel.Gt{"end_time": b.StartTime}).
		Suffix("RETURNING " + removedHoldColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build clear expired holds query failed: %w", err)
	}
	rows, err := tx.Query(ctx, clearSQL, clearArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to clear expired holds: %w", err)
	}
	cleared, err := scanRemovedHolds(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to clear expired holds: %w", err)
	}

	insertSQL, insertArgs, err := psql.Insert("public.bookings").
		Columns("court_id", "user_id", "start_time", "end_time", "status", "expires_at").
		Values(b.CourtID, b.UserID, b.StartTime, b.EndTime, b.Status, b.ExpiresAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isConflict(err) {
			return nil, ErrTimeConflict
		}
		return nil, fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isConflict(err) {
			return nil, ErrTimeConflict
		}
		return nil, fmt.Errorf("commit booking failed: %w", err)
	}
	return cleared, nil
}

func (r *pgxRepository) MarkPaid(ctx context.Context, id string, now time.Time) (bool, error) {
	query, args, err := psql.Update("public.bookings").
		Set("status", StatusPaid).
		Set("expires_at", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": StatusPendingPayment}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build mark paid query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark booking paid failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountActive(ctx context.Context, userID, courtType string, now time.Time) (int, error) {
	query, args, err := psql.Select("count(*)").
		From("public.bookings b").
		Join("public.courts c ON b.court_id = c.id").
		Where(squirrel.Eq{"b.user_id": userID, "c.court_type": courtType}).
		Where(squirrel.Gt{"b.end_time": now}).
		Where(squirrel.Or{
			squirrel.Eq{"b.status": StatusPaid},
			squirrel.And{
				squirrel.Eq{"b.status": StatusPendingPayment},
				squirrel.Gt{"b.expires_at": now},
			},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count active bookings query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active bookings failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) DeleteExpiredHolds(ctx context.Context, now time.Time) ([]*Booking, error) {
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"status": StatusPendingPayment}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		Suffix("RETURNING " + removedHoldColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete expired holds query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("delete expired holds failed: %w", err)
	}
	removed, err := scanRemovedHolds(rows)
	if err != nil {
		return nil, fmt.Errorf("delete expired holds failed: %w", err)
	}
	return removed, nil
}

const removedHoldColumns = "id, court_id, user_id, start_time, end_time, expires_at"

// scanRemovedHolds reads the rows of a DELETE ... RETURNING removedHoldColumns.
func scanRemovedHolds(rows pgx.Rows) ([]*Booking, error) {
	defer rows.Close()

	var removed []*Booking
	for rows.Next() {
		b := Booking{Status: StatusPendingPayment}
		if err := rows.Scan(&b.ID, &b.CourtID, &b.UserID, &b.StartTime, &b.EndTime, &b.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan expired hold failed: %w", err)
		}
		removed = append(removed, &b)
	}
	return removed, rows.Err()
}
