package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/giglegig/portfolio-api/pkg/auth"
	pkglogger "github.com/giglegig/portfolio-api/pkg/logger"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdateEmail(ctx context.Context, id, email string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error
	ConsumeVerificationCode(ctx context.Context, email, code string) (*models.User, error)
	ClearExpiredCodes(ctx context.Context) (int64, error)
}

// UserService handles account business logic
type UserService struct {
	repo        UserRepository
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *UserService {
	return &UserService{
		repo:        repo,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found", slog.String("user_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return user, nil
}

// UpdateAccount updates the caller's own account. Only non-zero fields are
// applied; an empty password leaves the stored hash alone.
func (s *UserService) UpdateAccount(ctx context.Context, id, username, password string) (*models.User, error) {
	existingUser, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found", slog.String("user_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if username != "" {
		existingUser.Username = username
	}

	passwordChanged := password != ""
	if passwordChanged {
		if err := auth.ValidatePassword(password); err != nil {
			s.auditLogger.LogPasswordChange(id, "", false)
			return nil, fmt.Errorf("invalid password: %w", err)
		}

		hashedPassword, err := auth.HashPassword(password)
		if err != nil {
			s.logger.Error("failed to hash password", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		existingUser.PasswordHash = hashedPassword
	}

	updatedUser, err := s.repo.Update(ctx, id, existingUser)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if passwordChanged {
		s.auditLogger.LogPasswordChange(id, "", true)
	}

	s.logger.Info("user updated", slog.String("user_id", id))
	return updatedUser, nil
}
