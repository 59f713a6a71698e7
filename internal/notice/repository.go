package notice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"noticeadmin/internal/pkg/response"
)

type Repository interface {
	Search(ctx context.Context, cond SearchCondition, page PageRequest) (response.Page[Notice], error)
	GetByID(ctx context.Context, id int64) (*Notice, error)
	Create(ctx context.Context, n *Notice) error
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// buildSearchQuery translates a search condition into SQL. Only the
// clauses whose condition field is set are added; they are always
// combined with AND. The sort order is fixed: post_date DESC, id DESC.
func buildSearchQuery(cond SearchCondition, page PageRequest) (string, []any, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "title", "category_cd", "post_date", "start_date", "end_date",
		"content", "created_at", "updated_at", "count(*) OVER() AS total_count").
		From("t_notice")

	if cond.Title != "" {
		query = query.Where(squirrel.ILike{"title": "%" + cond.Title + "%"})
	}
	if cond.CategoryCode != "" {
		query = query.Where(squirrel.Eq{"category_cd": cond.CategoryCode})
	}
	if cond.PostDate != nil {
		query = query.Where(squirrel.Eq{"post_date": *cond.PostDate})
	}
	if cond.EffectiveFrom != nil {
		query = query.Where(squirrel.GtOrEq{"start_date": *cond.EffectiveFrom})
	}
	if cond.EffectiveTo != nil {
		query = query.Where(squirrel.LtOrEq{"end_date": *cond.EffectiveTo})
	}

	query = query.OrderBy("post_date DESC", "id DESC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Number * page.Size))

	return query.ToSql()
}

func (r *pgxRepository) Search(ctx context.Context, cond SearchCondition, page PageRequest) (response.Page[Notice], error) {
	var empty response.Page[Notice]

	sql, args, err := buildSearchQuery(cond, page)
	if err != nil {
		return empty, fmt.Errorf("build search notice query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return empty, fmt.Errorf("search notices failed: %w", err)
	}
	defer rows.Close()

	var items []Notice
	var total int

	for rows.Next() {
		var n Notice
		if err := rows.Scan(
			&n.ID, &n.Title, &n.CategoryCode, &n.PostDate, &n.StartDate, &n.EndDate,
			&n.Content, &n.CreatedAt, &n.UpdatedAt, &total,
		); err != nil {
			return empty, fmt.Errorf("scan notice failed: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return empty, fmt.Errorf("read notices failed: %w", err)
	}

	return response.NewPage(items, page.Number, page.Size, total), nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Notice, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "title", "category_cd", "post_date", "start_date", "end_date",
		"content", "created_at", "updated_at").
		From("t_notice").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get notice query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, sql, args...)

	var n Notice
	if err := row.Scan(
		&n.ID, &n.Title, &n.CategoryCode, &n.PostDate, &n.StartDate, &n.EndDate,
		&n.Content, &n.CreatedAt, &n.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get notice failed: %w", err)
	}
	return &n, nil
}

func (r *pgxRepository) Create(ctx context.Context, n *Notice) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Insert("t_notice").
		Columns("title", "category_cd", "post_date", "start_date", "end_date",
			"content", "created_at", "updated_at").
		Values(n.Title, n.CategoryCode, n.PostDate, n.StartDate, n.EndDate,
			n.Content, n.CreatedAt, n.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create notice query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n.ID); err != nil {
		return fmt.Errorf("create notice failed: %w", mapValueError(err))
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, n *Notice) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Update("t_notice").
		Set("title", n.Title).
		Set("category_cd", n.CategoryCode).
		Set("post_date", n.PostDate).
		Set("start_date", n.StartDate).
		Set("end_date", n.EndDate).
		Set("content", n.Content).
		Set("updated_at", n.UpdatedAt).
		Where(squirrel.Eq{"id": n.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update notice query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update notice failed: %w", mapValueError(err))
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent: deleting an id that no longer exists is not an
// error.
func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Delete("t_notice").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete notice query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete notice failed: %w", err)
	}
	return nil
}

// mapValueError converts Postgres column-value errors on the varchar(100)
// title column into the domain sentinel. Form validation rejects long
// titles first, so this only fires for callers that bypass the forms.
func mapValueError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.StringDataRightTruncationDataException, pgerrcode.CheckViolation:
			return ErrTitleTooLong
		}
	}
	return err
}
