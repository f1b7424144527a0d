package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giglegig/portfolio-api/internal/auth"
	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func testUser(isAdmin bool) *models.User {
	return &models.User{
		ID:       "user-123",
		Username: "admin",
		Email:    "admin@example.com",
		IsAdmin:  isAdmin,
	}
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken_InjectsUser(t *testing.T) {
	tm := auth.NewTokenManager("test-secret-32-characters-long!", time.Hour)
	token, err := tm.GenerateToken("user-123", "admin@example.com")
	require.NoError(t, err)

	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			assert.Equal(t, "user-123", id)
			return testUser(true), nil
		},
	}

	var injected *models.User
	handler := auth.RequireAuth(tm, repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		injected = auth.GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, injected)
	assert.Equal(t, "user-123", injected.ID)
	assert.True(t, injected.IsAdmin)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tm := auth.NewTokenManager("test-secret-32-characters-long!", time.Hour)
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			t.Fatal("repo should not be called")
			return nil, nil
		},
	}

	called := false
	handler := auth.RequireAuth(tm, repo)(okHandler(&called))

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	tm := auth.NewTokenManager("test-secret-32-characters-long!", time.Hour)
	repo := &mockUserRepo{}

	called := false
	handler := auth.RequireAuth(tm, repo)(okHandler(&called))

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret-32-characters-long!", -time.Minute)
	token, err := tm.GenerateToken("user-123", "admin@example.com")
	require.NoError(t, err)

	repo := &mockUserRepo{}

	called := false
	handler := auth.RequireAuth(tm, repo)(okHandler(&called))

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	otherTM := auth.NewTokenManager("some-other-secret-32-chars-long", time.Hour)
	token, err := otherTM.GenerateToken("user-123", "admin@example.com")
	require.NoError(t, err)

	tm := auth.NewTokenManager("test-secret-32-characters-long!", time.Hour)
	repo := &mockUserRepo{}

	called := false
	handler := auth.RequireAuth(tm, repo)(okHandler(&called))

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	tm := auth.NewTokenManager("test-secret-32-characters-long!", time.Hour)
	token, err := tm.GenerateToken("user-gone", "admin@example.com")
	require.NoError(t, err)

	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}

	called := false
	handler := auth.RequireAuth(tm, repo)(okHandler(&called))

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAdmin_NonAdmin_Forbidden(t *testing.T) {
	called := false
	handler := auth.RequireAdmin(okHandler(&called))

	req := httptest.NewRequest("POST", "/api/blogs", nil)
	ctx := context.WithValue(req.Context(), auth.UserContextKey, testUser(false))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)
}

func TestRequireAdmin_Admin_Passes(t *testing.T) {
	called := false
	handler := auth.RequireAdmin(okHandler(&called))

	req := httptest.NewRequest("POST", "/api/blogs", nil)
	ctx := context.WithValue(req.Context(), auth.UserContextKey, testUser(true))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestRequireAdmin_NoUserInContext(t *testing.T) {
	called := false
	handler := auth.RequireAdmin(okHandler(&called))

	req := httptest.NewRequest("POST", "/api/blogs", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}
