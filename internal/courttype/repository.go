package courttype

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
	Create(ctx context.Context, ct *CourtType) error
	GetByID(ctx context.Context, id string) (*CourtType, error)
	GetByName(ctx context.Context, typeName string) (*CourtType, error)
	List(ctx context.Context, filter Filter) ([]*CourtType, error)
	Update(ctx context.Context, ct *CourtType) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectCourtTypes() squirrel.SelectBuilder {
	return psql.Select(
		"id", "type_name", "display_name", "is_enabled",
		"COALESCE(to_char(open_time, 'HH24:MI'), '')",
		"COALESCE(to_char(close_time, 'HH24:MI'), '')",
		"created_at",
	).From("public.court_types")
}

func scanCourtType(row pgx.Row) (*CourtType, error) {
	var ct CourtType
	if err := row.Scan(&ct.ID, &ct.TypeName, &ct.DisplayName, &ct.IsEnabled, &ct.OpenTime, &ct.CloseTime, &ct.CreatedAt); err != nil {
		return nil, err
	}
	return &ct, nil
}

// clockValue maps "" to NULL so the column falls back to club defaults.
func clockValue(s string) any {
	if s == "" {
		return nil
	}
	return squirrel.Expr("?::time", s)
}

func (r *pgxRepository) Create(ctx context.Context, ct *CourtType) error {
	query, args, err := psql.Insert("public.court_types").
		Columns("type_name", "display_name", "is_enabled", "open_time", "close_time").
		Values(ct.TypeName, ct.DisplayName, ct.IsEnabled, clockValue(ct.OpenTime), clockValue(ct.CloseTime)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court type query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&ct.ID, &ct.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrTypeNameTaken
		}
		return fmt.Errorf("create court type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Eq) (*CourtType, error) {
	query, args, err := selectCourtTypes().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get court type query failed: %w", err)
	}

	ct, err := scanCourtType(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court type failed: %w", err)
	}
	return ct, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*CourtType, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByName(ctx context.Context, typeName string) (*CourtType, error) {
	return r.getOne(ctx, squirrel.Eq{"type_name": typeName})
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*CourtType, error) {
	qb := selectCourtTypes().OrderBy("display_name ASC")
	if filter.EnabledOnly {
		qb = qb.Where(squirrel.Eq{"is_enabled": true})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list court types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list court types failed: %w", err)
	}
	defer rows.Close()

	var result []*CourtType
	for rows.Next() {
		ct, err := scanCourtType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan court type failed: %w", err)
		}
		result = append(result, ct)
	}
	return result, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, ct *CourtType) error {
	query, args, err := psql.Update("public.court_types").
		Set("display_name", ct.DisplayName).
		Set("is_enabled", ct.IsEnabled).
		Set("open_time", clockValue(ct.OpenTime)).
		Set("close_time", clockValue(ct.CloseTime)).
		Where(squirrel.Eq{"id": ct.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update court type query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update court type failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.court_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete court type query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrInUse
		}
		return fmt.Errorf("delete court type failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
