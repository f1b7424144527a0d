package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/giglegig/portfolio-api/internal/database"
	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(db *database.DB) *BlogRepository {
	return &BlogRepository{pool: db.Pool}
}

const blogColumns = `b.id, b.title, b.content, b.summary, b.image_url, b.tags, b.published, b.author_id, COALESCE(u.username, ''), b.created_at, b.updated_at`

func scanBlogRow(scanner rowScanner) (*models.Blog, error) {
	var blog models.Blog

	err := scanner.Scan(
		&blog.ID, &blog.Title, &blog.Content, &blog.Summary, &blog.ImageURL,
		&blog.Tags, &blog.Published, &blog.AuthorID, &blog.AuthorName,
		&blog.CreatedAt, &blog.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if blog.Tags == nil {
		blog.Tags = []string{}
	}

	return &blog, nil
}

func scanBlogRows(rows pgx.Rows) ([]*models.Blog, error) {
	defer rows.Close()

	blogs := make([]*models.Blog, 0)

	for rows.Next() {
		blog, err := scanBlogRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return blogs, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b LEFT JOIN users u ON u.id = b.author_id
		WHERE b.id = $1
	`

	return scanBlogRow(r.pool.QueryRow(ctx, query, id))
}

// List returns one page of blogs, newest first. When publishedOnly is set,
// drafts are excluded. keyword matches title, content, or any tag,
// case-insensitively.
func (r *BlogRepository) List(ctx context.Context, keyword string, publishedOnly bool, limit, offset int) ([]*models.Blog, int, error) {
	where := `WHERE ($1 = '' OR b.title ILIKE '%' || $1 || '%' OR b.content ILIKE '%' || $1 || '%'
		OR EXISTS (SELECT 1 FROM unnest(b.tags) t WHERE t ILIKE '%' || $1 || '%'))
		AND (NOT $2 OR b.published)`

	var total int
	countQuery := `SELECT count(*) FROM blogs b ` + where
	if err := r.pool.QueryRow(ctx, countQuery, keyword, publishedOnly).Scan(&total); err != nil {
		return nil, 0, database.MapPostgresError(err)
	}

	query := `
		SELECT ` + blogColumns + `
		FROM blogs b LEFT JOIN users u ON u.id = b.author_id
		` + where + `
		ORDER BY b.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, keyword, publishedOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query blogs: %w", err)
	}

	blogs, err := scanBlogRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	blog.ID = uuid.New().String()

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	query := `
		INSERT INTO blogs (id, title, content, summary, image_url, tags, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		blog.ID, blog.Title, blog.Content, blog.Summary, blog.ImageURL,
		blog.Tags, blog.Published, blog.AuthorID, blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return r.GetByID(ctx, blog.ID)
}

func (r *BlogRepository) Update(ctx context.Context, id string, blog *models.Blog) (*models.Blog, error) {
	blog.UpdatedAt = time.Now()

	query := `
		UPDATE blogs
		SET title = $1, content = $2, summary = $3, image_url = $4, tags = $5, published = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.pool.Exec(ctx, query,
		blog.Title, blog.Content, blog.Summary, blog.ImageURL,
		blog.Tags, blog.Published, blog.UpdatedAt, id,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM blogs WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
