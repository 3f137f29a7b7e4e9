package bookingrule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]*Rule, error)
	Get(ctx context.Context, courtType string) (*Rule, error)
	Upsert(ctx context.Context, rule *Rule) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) List(ctx context.Context) ([]*Rule, error) {
	query, args, err := psql.Select("court_type", "max_active_bookings", "max_days_ahead", "updated_at").
		From("public.booking_rules").
		OrderBy("court_type ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list booking rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list booking rules failed: %w", err)
	}
	defer rows.Close()

	var result []*Rule
	for rows.Next() {
		var rule Rule
		if err := rows.Scan(&rule.CourtType, &rule.MaxActiveBookings, &rule.MaxDaysAhead, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan booking rule failed: %w", err)
		}
		result = append(result, &rule)
	}
	return result, rows.Err()
}

func (r *pgxRepository) Get(ctx context.Context, courtType string) (*Rule, error) {
	query, args, err := psql.Select("court_type", "max_active_bookings", "max_days_ahead", "updated_at").
		From("public.booking_rules").
		Where(squirrel.Eq{"court_type": courtType}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking rule query failed: %w", err)
	}

	var rule Rule
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rule.CourtType, &rule.MaxActiveBookings, &rule.MaxDaysAhead, &rule.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking rule failed: %w", err)
	}
	return &rule, nil
}

func (r *pgxRepository) Upsert(ctx context.Context, rule *Rule) error {
	query, args, err := psql.Insert("public.booking_rules").
		Columns("court_type", "max_active_bookings", "max_days_ahead").
		Values(rule.CourtType, rule.MaxActiveBookings, rule.MaxDaysAhead).
		Suffix(`ON CONFLICT (court_type) DO UPDATE SET
			max_active_bookings = EXCLUDED.max_active_bookings,
			max_days_ahead = EXCLUDED.max_days_ahead,
			updated_at = now()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert booking rule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rule.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrUnknownCourtType
		}
		return fmt.Errorf("upsert booking rule failed: %w", err)
	}
	return nil
}
