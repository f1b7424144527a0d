package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/giglegig/portfolio-api/internal/auth"
	"github.com/giglegig/portfolio-api/internal/models"
	pkgauth "github.com/giglegig/portfolio-api/pkg/auth"
	pkglogger "github.com/giglegig/portfolio-api/pkg/logger"
)

// AuthService handles login-code issuing, verification, and legacy
// password authentication
type AuthService struct {
	repo        UserRepository
	email       EmailSender
	tm          *auth.TokenManager
	timing      *auth.TimingDelay
	adminEmail  string
	codeExpiry  time.Duration
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(repo UserRepository, email EmailSender, tm *auth.TokenManager, timing *auth.TimingDelay, adminEmail string, codeExpiry time.Duration, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		repo:        repo,
		email:       email,
		tm:          tm,
		timing:      timing,
		adminEmail:  adminEmail,
		codeExpiry:  codeExpiry,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// UserResponse represents a user in the HTTP response
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AuthResponse represents the response from login operations
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	Token    string `json:"token"`
}

// generateCode returns a 6-digit code uniform in [100000, 999999]
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// RequestCode issues a one-time login code to the configured admin address.
// Requests for any other address are rejected before touching storage.
func (s *AuthService) RequestCode(ctx context.Context, email string) error {
	if email != s.adminEmail {
		s.logger.Info("login code refused for non-admin address",
			slog.String("email", pkglogger.SanitizedEmail(email)))
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "code_request_refused",
			FailureReason: "not_admin_email",
			Success:       false,
		})
		return models.ErrUnauthorized
	}

	user, err := s.resolveAdminUser(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("failed to generate login code", slog.Any("error", err))
		return models.ErrInternalServer
	}

	expiresAt := time.Now().Add(s.codeExpiry)
	if err := s.repo.SetVerificationCode(ctx, user.ID, code, expiresAt); err != nil {
		s.logger.Error("failed to store login code", slog.String("user_id", user.ID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	// The stored code stays valid on delivery failure; the admin can retry
	// the request and get a fresh one.
	if err := s.email.SendVerificationCode(ctx, email, code, expiresAt); err != nil {
		s.logger.Error("failed to deliver login code", slog.String("user_id", user.ID), slog.Any("error", err))
		return models.ErrEmailDelivery
	}

	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "code_requested",
		UserID:    user.ID,
		Success:   true,
	})
	return nil
}

// resolveAdminUser finds the admin account for the configured address,
// adopting the address onto an existing "admin" account or creating a fresh
// one when none exists yet.
func (s *AuthService) resolveAdminUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to look up admin by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// The admin address changed in config: move the stored admin account
	// onto the new address instead of growing a second one.
	existing, err := s.repo.GetByUsername(ctx, "admin")
	if err == nil {
		updated, uerr := s.repo.UpdateEmail(ctx, existing.ID, email)
		if uerr != nil {
			s.logger.Error("failed to adopt new admin email", slog.String("user_id", existing.ID), slog.Any("error", uerr))
			return nil, models.ErrInternalServer
		}
		s.logger.Info("admin account moved to new address", slog.String("user_id", updated.ID))
		return updated, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to look up admin by username", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// First login ever: create the admin account. No password hash is set;
	// the account authenticates by emailed codes only.
	created, err := s.repo.Create(ctx, &models.User{
		Username: fmt.Sprintf("admin_%d", time.Now().Unix()),
		Email:    email,
		IsAdmin:  true,
	})
	if err != nil {
		s.logger.Error("failed to create admin account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("admin account created", slog.String("user_id", created.ID))
	s.auditLogger.LogAccountAction("admin_created", created.ID, "", nil)
	return created, nil
}

// VerifyCode exchanges a pending login code for a session token. Wrong,
// expired, and missing codes all produce the same error and take roughly
// the same time.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*AuthResponse, error) {
	start := time.Now()

	if email != s.adminEmail {
		s.timing.WaitFrom(start, false)
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "code_verify_failed",
			FailureReason: "not_admin_email",
			Success:       false,
		})
		return nil, models.ErrUnauthorized
	}

	user, err := s.repo.ConsumeVerificationCode(ctx, email, code)
	if err != nil {
		s.timing.WaitFrom(start, false)
		if errors.Is(err, models.ErrInvalidOrExpiredCode) {
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "code_verify_failed",
				FailureReason: "invalid_or_expired_code",
				Success:       false,
			})
			return nil, models.ErrInvalidOrExpiredCode
		}
		s.logger.Error("failed to consume login code", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	token, err := s.tm.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.timing.WaitFrom(start, true)
	s.logger.Info("admin logged in", slog.String("user_id", user.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "code_verify_success",
		UserID:    user.ID,
		Success:   true,
	})

	return &AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		Token:    token,
	}, nil
}

// Login authenticates a user with email and password. Kept for accounts
// registered before code login; the admin account has no password hash and
// cannot log in this way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	start := time.Now()

	if email = strings.ToLower(strings.TrimSpace(email)); email == "" {
		return nil, models.ErrUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.timing.WaitFrom(start, false)
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login failed: invalid credentials")
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				FailureReason: "invalid_credentials",
				Success:       false,
			})
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// Accounts without a password hash authenticate by code only
	if user.PasswordHash == "" {
		s.timing.WaitFrom(start, false)
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			UserID:        user.ID,
			FailureReason: "no_password_set",
			Success:       false,
		})
		return nil, models.ErrUnauthorized
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.timing.WaitFrom(start, false)
		s.logger.Info("login failed: invalid credentials")
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			UserID:        user.ID,
			FailureReason: "invalid_credentials",
			Success:       false,
		})
		return nil, models.ErrUnauthorized
	}

	token, err := s.tm.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.timing.WaitFrom(start, true)
	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    user.ID,
		Success:   true,
	})

	return &AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		Token:    token,
	}, nil
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("registration failed: user already exists")
		return nil, models.ErrConflict
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check if user exists", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	createdUser, err := s.repo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	token, err := s.tm.GenerateToken(createdUser.ID, createdUser.Email)
	if err != nil {
		s.logger.Error("failed to generate token", slog.String("user_id", createdUser.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user registered", slog.String("user_id", createdUser.ID))
	s.auditLogger.LogAccountAction("user_registered", createdUser.ID, "", nil)

	return &AuthResponse{
		ID:       createdUser.ID,
		Username: createdUser.Username,
		Email:    createdUser.Email,
		IsAdmin:  createdUser.IsAdmin,
		Token:    token,
	}, nil
}
