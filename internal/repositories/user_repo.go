package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giglegig/portfolio-api/internal/database"
	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner interface for scanning user rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanUserRow handles nullable fields and populates a User model from a database row
func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var passwordHash *string

	err := scanner.Scan(
		&user.ID, &user.Username, &user.Email, &passwordHash,
		&user.IsAdmin, &user.VerificationCode, &user.VerificationCodeExpires,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}

	return &user, nil
}

const userColumns = `id, username, email, password_hash, is_admin, verification_code, verification_code_expires, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, username))
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, username, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	var passwordHash *string
	if user.PasswordHash != "" {
		passwordHash = &user.PasswordHash
	}

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, passwordHash,
		user.IsAdmin, user.CreatedAt, user.UpdatedAt,
	))
}

func (r *UserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET username = $1, password_hash = NULLIF($2, ''), updated_at = $3
		WHERE id = $4
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.UpdatedAt, id,
	))
}

// UpdateEmail moves an existing account onto a new address. Used when the
// configured admin address changes and the stored admin row should follow it.
func (r *UserRepository) UpdateEmail(ctx context.Context, id, email string) (*models.User, error) {
	query := `
		UPDATE users SET email = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query, email, time.Now(), id))
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// SetVerificationCode stores a fresh code and expiry, replacing any
// previous pair still on the row.
func (r *UserRepository) SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error {
	query := `
		UPDATE users SET verification_code = $1, verification_code_expires = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, code, expires, time.Now(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ConsumeVerificationCode atomically matches email+code against an unexpired
// stored pair and clears it. Exactly one of two concurrent callers with the
// same code can win; the loser sees ErrInvalidOrExpiredCode.
func (r *UserRepository) ConsumeVerificationCode(ctx context.Context, email, code string) (*models.User, error) {
	query := `
		UPDATE users
		SET verification_code = NULL, verification_code_expires = NULL, updated_at = now()
		WHERE email = $1
		  AND verification_code = $2
		  AND verification_code_expires > now()
		RETURNING ` + userColumns

	user, err := scanUserRow(r.pool.QueryRow(ctx, query, email, code))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidOrExpiredCode
		}
		return nil, err
	}

	return user, nil
}

// ClearExpiredCodes removes stale code/expiry pairs. Run periodically by the
// background cleanup manager.
func (r *UserRepository) ClearExpiredCodes(ctx context.Context) (int64, error) {
	query := `
		UPDATE users
		SET verification_code = NULL, verification_code_expires = NULL
		WHERE verification_code IS NOT NULL
		  AND verification_code_expires <= now()
	`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired verification codes: %w", err)
	}

	return result.RowsAffected(), nil
}
