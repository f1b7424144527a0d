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

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{pool: db.Pool}
}

const projectColumns = `id, name, description, repo_url, demo_url, image_url, technologies, featured, display_order, created_at, updated_at`

func scanProjectRow(scanner rowScanner) (*models.Project, error) {
	var project models.Project

	err := scanner.Scan(
		&project.ID, &project.Name, &project.Description, &project.RepoURL,
		&project.DemoURL, &project.ImageURL, &project.Technologies,
		&project.Featured, &project.DisplayOrder,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if project.Technologies == nil {
		project.Technologies = []string{}
	}

	return &project, nil
}

func scanProjectRows(rows pgx.Rows) ([]*models.Project, error) {
	defer rows.Close()

	projects := make([]*models.Project, 0)

	for rows.Next() {
		project, err := scanProjectRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	return scanProjectRow(r.pool.QueryRow(ctx, query, id))
}

func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY display_order ASC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	return scanProjectRows(rows)
}

// ExistsByRepoURL reports whether a project already tracks the given
// repository URL. Used by the GitHub import to skip duplicates.
func (r *ProjectRepository) ExistsByRepoURL(ctx context.Context, repoURL string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM projects WHERE repo_url = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, repoURL).Scan(&exists); err != nil {
		return false, database.MapPostgresError(err)
	}

	return exists, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	project.ID = uuid.New().String()

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `
		INSERT INTO projects (id, name, description, repo_url, demo_url, image_url, technologies, featured, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + projectColumns

	return scanProjectRow(r.pool.QueryRow(ctx, query,
		project.ID, project.Name, project.Description, project.RepoURL,
		project.DemoURL, project.ImageURL, project.Technologies,
		project.Featured, project.DisplayOrder, project.CreatedAt, project.UpdatedAt,
	))
}

func (r *ProjectRepository) Update(ctx context.Context, id string, project *models.Project) (*models.Project, error) {
	project.UpdatedAt = time.Now()

	query := `
		UPDATE projects
		SET name = $1, description = $2, repo_url = $3, demo_url = $4, image_url = $5,
		    technologies = $6, featured = $7, display_order = $8, updated_at = $9
		WHERE id = $10
		RETURNING ` + projectColumns

	return scanProjectRow(r.pool.QueryRow(ctx, query,
		project.Name, project.Description, project.RepoURL, project.DemoURL,
		project.ImageURL, project.Technologies, project.Featured,
		project.DisplayOrder, project.UpdatedAt, id,
	))
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
