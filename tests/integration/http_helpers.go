package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/giglegig/portfolio-api/internal/auth"
	"github.com/giglegig/portfolio-api/internal/config"
	"github.com/giglegig/portfolio-api/internal/database"
	"github.com/giglegig/portfolio-api/internal/handlers"
	middlewareCustom "github.com/giglegig/portfolio-api/internal/middleware"
	"github.com/giglegig/portfolio-api/internal/routes"
	"github.com/giglegig/portfolio-api/internal/services"
	pkglogger "github.com/giglegig/portfolio-api/pkg/logger"
)

// SentCode represents a captured verification code email
type SentCode struct {
	To        string
	Code      string
	ExpiresAt time.Time
}

// MockEmailService captures sent login codes for test assertions
type MockEmailService struct {
	SentCodes []SentCode
	FailNext  bool
	mu        sync.Mutex
}

// SendVerificationCode records the code instead of sending email
func (m *MockEmailService) SendVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return fmt.Errorf("simulated delivery failure")
	}

	m.SentCodes = append(m.SentCodes, SentCode{
		To:        email,
		Code:      code,
		ExpiresAt: expiresAt,
	})
	return nil
}

// LastCode returns the most recent captured code
func (m *MockEmailService) LastCode() *SentCode {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.SentCodes) == 0 {
		return nil
	}
	return &m.SentCodes[len(m.SentCodes)-1]
}

// MockStorage returns canned URLs instead of writing to S3
type MockStorage struct{}

func (m *MockStorage) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	return "https://cdn.test.local/uploads/" + filename, nil
}

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server       *httptest.Server
	Pool         *database.DB
	EmailService *MockEmailService
	Config       *config.Config

	logger *slog.Logger
}

// AdminEmail is the configured admin address for integration tests
const AdminEmail = "admin@test.local"

// NewTestServer initializes a complete HTTP server with real database plus
// mocked email and storage
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-32-characters-long-for-testing",
			AdminEmail:      AdminEmail,
			TokenExpiry:     30 * 24 * time.Hour,
			CodeExpiry:      10 * time.Minute,
			CleanupInterval: 1 * time.Hour,
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
		},
	}

	userRepo, blogRepo, projectRepo, profileRepo := InitializeRepositories(db)

	mockEmail := &MockEmailService{
		SentCodes: []SentCode{},
	}
	mockStorage := &MockStorage{}

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	auditLogger := pkglogger.NewAuditLogger(logger)

	// No artificial delays in tests
	timingDelay := auth.NewTimingDelay(auth.TimingConfig{})

	authService := services.NewAuthService(
		userRepo,
		mockEmail,
		tokenManager,
		timingDelay,
		cfg.Auth.AdminEmail,
		cfg.Auth.CodeExpiry,
		logger,
		auditLogger,
	)
	userService := services.NewUserService(userRepo, logger, auditLogger)
	blogService := services.NewBlogService(blogRepo, logger)
	projectService := services.NewProjectService(projectRepo, &stubGitHubClient{}, logger)
	profileService := services.NewProfileService(profileRepo, logger)

	userHandler := handlers.NewUserHandler(authService, userService)
	blogHandler := handlers.NewBlogHandler(blogService)
	projectHandler := handlers.NewProjectHandler(projectService)
	profileHandler := handlers.NewProfileHandler(profileService, mockStorage)
	uploadHandler := handlers.NewUploadHandler(mockStorage)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, userHandler, blogHandler, projectHandler, profileHandler, uploadHandler, tokenManager, userRepo)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:       server,
		Pool:         db,
		EmailService: mockEmail,
		Config:       cfg,
		logger:       logger,
	}
}

// stubGitHubClient returns empty results; import behavior is covered by
// service-level tests
type stubGitHubClient struct{}

func (s *stubGitHubClient) ListRepos(ctx context.Context, username string) ([]services.GitHubRepo, error) {
	return []services.GitHubRepo{}, nil
}

func (s *stubGitHubClient) ListRepoLanguages(ctx context.Context, username, repo string) ([]string, error) {
	return []string{}, nil
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with a session token
func (ts *TestServer) RequestWithAuth(method, path, token string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}
	return ts.Request(method, path, body, headers)
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// ExtractTokenFromResponse extracts the session token from an auth response
func ExtractTokenFromResponse(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	var authResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if token, ok := authResp["token"].(string); ok {
		return token, nil
	}
	return "", fmt.Errorf("no token in response")
}

// GetErrorMessage extracts error message from error response
func GetErrorMessage(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return "", err
	}
	if msg, ok := errResp["message"].(string); ok {
		return msg, nil
	}
	return "", nil
}
