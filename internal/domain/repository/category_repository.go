package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsdesk/internal/common"
	"newsdesk/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type pgCategoryRepository struct {
	db *sql.DB
}

func NewPgCategoryRepository(db *sql.DB) CategoryRepository {
	return &pgCategoryRepository{db: db}
}

func (r *pgCategoryRepository) Create(ctx context.Context, c *model.Category) error {
	query := `INSERT INTO categories (id, name, slug, description)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for name or slug
			return fmt.Errorf("category with this name or slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCategoryRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCategoryRepository) Update(ctx context.Context, c *model.Category) error {
	query := `UPDATE categories SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("category with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCategoryRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCategoryRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCategoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	query := `SELECT id, name, slug, description, created_at, updated_at
	          FROM categories WHERE slug = $1`
	c := &model.Category{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCategoryRepository.FindBySlug: %w", err)
	}
	return c, nil
}

func (r *pgCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `SELECT id, name, slug, description, created_at, updated_at
	          FROM categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgCategoryRepository.List: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgCategoryRepository.List scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCategoryRepository.List rows: %w", err)
	}
	return categories, nil
}
