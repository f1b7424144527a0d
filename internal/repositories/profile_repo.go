package repositories

import (
	"context"
	"time"

	"github.com/giglegig/portfolio-api/internal/database"
	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository manages the site owner's single profile row. Nested
// structures (title, bio, languages, skills, history entries, social links)
// live in JSONB columns; pgx marshals them through the struct tags.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{pool: db.Pool}
}

const profileColumns = `id, full_name, title, bio, avatar, tagline, location, languages, skills, education, experience, project_experience, social, created_at, updated_at`

func scanProfileRow(scanner rowScanner) (*models.Profile, error) {
	var p models.Profile

	err := scanner.Scan(
		&p.ID, &p.FullName, &p.Title, &p.Bio, &p.Avatar, &p.Tagline,
		&p.Location, &p.Languages, &p.Skills, &p.Education, &p.Experience,
		&p.ProjectExperience, &p.Social, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &p, nil
}

// Get returns the profile row. ErrNotFound when none has been created yet.
func (r *ProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles LIMIT 1`

	return scanProfileRow(r.pool.QueryRow(ctx, query))
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	profile.ID = uuid.New().String()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (id, full_name, title, bio, avatar, tagline, location, languages, skills, education, experience, project_experience, social, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + profileColumns

	return scanProfileRow(r.pool.QueryRow(ctx, query,
		profile.ID, profile.FullName, profile.Title, profile.Bio,
		profile.Avatar, profile.Tagline, profile.Location, profile.Languages,
		profile.Skills, profile.Education, profile.Experience,
		profile.ProjectExperience, profile.Social,
		profile.CreatedAt, profile.UpdatedAt,
	))
}

func (r *ProfileRepository) Update(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error) {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE profiles
		SET full_name = $1, title = $2, bio = $3, avatar = $4, tagline = $5,
		    location = $6, languages = $7, skills = $8, education = $9,
		    experience = $10, project_experience = $11, social = $12, updated_at = $13
		WHERE id = $14
		RETURNING ` + profileColumns

	return scanProfileRow(r.pool.QueryRow(ctx, query,
		profile.FullName, profile.Title, profile.Bio, profile.Avatar,
		profile.Tagline, profile.Location, profile.Languages, profile.Skills,
		profile.Education, profile.Experience, profile.ProjectExperience,
		profile.Social, profile.UpdatedAt, id,
	))
}
