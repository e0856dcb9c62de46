package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"newsdesk/internal/common"
	"newsdesk/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ArticleFilter narrows List results. Empty fields are ignored; an empty
// Statuses slice means all statuses.
type ArticleFilter struct {
	Statuses     []model.ArticleStatus
	AuthorID     string
	CategorySlug string
}

type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id string) error
	FindBySlug(ctx context.Context, slug string) (*model.Article, error)
	List(ctx context.Context, limit, offset int, filter ArticleFilter) ([]model.Article, int, error)
	SetPublished(ctx context.Context, id string, publishedAt time.Time) error
	IncrementViews(ctx context.Context, id string) error
}

type pgArticleRepository struct {
	db *sql.DB
}

func NewPgArticleRepository(db *sql.DB) ArticleRepository {
	return &pgArticleRepository{db: db}
}

func (r *pgArticleRepository) Create(ctx context.Context, a *model.Article) error {
	query := `INSERT INTO articles (id, title, slug, content, summary, featured_image, author_id, category_id, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Slug, a.Content, a.Summary, a.FeaturedImage,
		a.AuthorID, a.CategoryID, a.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("article with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgArticleRepository.Create: %w", err)
	}
	return nil
}

// Update never touches slug, author_id, views_count or published_at.
func (r *pgArticleRepository) Update(ctx context.Context, a *model.Article) error {
	query := `UPDATE articles SET
	            title = $1, content = $2, summary = $3, featured_image = $4,
	            category_id = $5, status = $6, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		a.Title, a.Content, a.Summary, a.FeaturedImage, a.CategoryID, a.Status, a.ID,
	)
	if err != nil {
		return fmt.Errorf("pgArticleRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgArticleRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

const articleSelect = `
        SELECT a.id, a.title, a.slug, a.content, a.summary, a.featured_image,
               a.author_id, u.username AS author_username,
               a.category_id, c.name AS category_name, c.slug AS category_slug,
               a.status, a.views_count, a.created_at, a.updated_at, a.published_at
        FROM articles a
        JOIN users u ON a.author_id = u.id
        LEFT JOIN categories c ON a.category_id = c.id`

func scanArticle(row interface{ Scan(...any) error }) (*model.Article, error) {
	a := &model.Article{}
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Summary, &a.FeaturedImage,
		&a.AuthorID, &a.AuthorUsername,
		&a.CategoryID, &a.CategoryName, &a.CategorySlug,
		&a.Status, &a.ViewsCount, &a.CreatedAt, &a.UpdatedAt, &a.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *pgArticleRepository) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	query := articleSelect + ` WHERE a.slug = $1`
	a, err := scanArticle(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgArticleRepository.FindBySlug: %w", err)
	}
	return a, nil
}

func (r *pgArticleRepository) List(ctx context.Context, limit, offset int, filter ArticleFilter) ([]model.Article, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i := range filter.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", argID)
			args = append(args, filter.Statuses[i])
			argID++
		}
		conditions = append(conditions, fmt.Sprintf("a.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.AuthorID != "" {
		conditions = append(conditions, fmt.Sprintf("a.author_id = $%d", argID))
		args = append(args, filter.AuthorID)
		argID++
	}
	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argID))
		args = append(args, filter.CategorySlug)
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM articles a
        JOIN users u ON a.author_id = u.id
        LEFT JOIN categories c ON a.category_id = c.id` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgArticleRepository.List count: %w", err)
	}

	query := articleSelect + where +
		fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgArticleRepository.List: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgArticleRepository.List scan: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgArticleRepository.List rows: %w", err)
	}
	return articles, total, nil
}

func (r *pgArticleRepository) SetPublished(ctx context.Context, id string, publishedAt time.Time) error {
	query := `UPDATE articles SET status = $1, published_at = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, model.StatusPublished, publishedAt, id)
	if err != nil {
		return fmt.Errorf("pgArticleRepository.SetPublished: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgArticleRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE articles SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgArticleRepository.IncrementViews: %w", err)
	}
	return nil
}
