package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/giglegig/portfolio-api/internal/auth"
	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/giglegig/portfolio-api/internal/services"
	pkghttp "github.com/giglegig/portfolio-api/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAuthContext puts an authenticated user into the request context, the
// way the auth middleware does after validating a token
func WithAuthContext(req *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(req.Context(), auth.UserContextKey, user)
	return req.WithContext(ctx)
}

// WithAdminContext puts an authenticated admin into the request context
func WithAdminContext(req *http.Request, userID, email string) *http.Request {
	return WithAuthContext(req, &models.User{
		ID:       userID,
		Username: "admin",
		Email:    email,
		IsAdmin:  true,
	})
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// WithChiRouteContext adds chi URL parameters to request context for testing
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	RequestCodeFunc func(ctx context.Context, email string) error
	VerifyCodeFunc  func(ctx context.Context, email, code string) (*services.AuthResponse, error)
	LoginFunc       func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	RegisterFunc    func(ctx context.Context, username, email, password string) (*services.AuthResponse, error)
}

func (m *MockAuthService) RequestCode(ctx context.Context, email string) error {
	if m.RequestCodeFunc == nil {
		return models.ErrUnauthorized
	}
	return m.RequestCodeFunc(ctx, email)
}

func (m *MockAuthService) VerifyCode(ctx context.Context, email, code string) (*services.AuthResponse, error) {
	if m.VerifyCodeFunc == nil {
		return nil, models.ErrInvalidOrExpiredCode
	}
	return m.VerifyCodeFunc(ctx, email, code)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*services.AuthResponse, error) {
	if m.RegisterFunc == nil {
		return nil, models.ErrConflict
	}
	return m.RegisterFunc(ctx, username, email, password)
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	GetUserByIDFunc   func(ctx context.Context, id string) (*models.User, error)
	UpdateAccountFunc func(ctx context.Context, id, username, password string) (*models.User, error)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetUserByIDFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetUserByIDFunc(ctx, id)
}

func (m *MockUserService) UpdateAccount(ctx context.Context, id, username, password string) (*models.User, error) {
	if m.UpdateAccountFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateAccountFunc(ctx, id, username, password)
}

// MockBlogService implements BlogServiceInterface for testing
type MockBlogService struct {
	ListPublishedFunc func(ctx context.Context, keyword string, page int) (*models.BlogPage, error)
	GetBlogByIDFunc   func(ctx context.Context, id string) (*models.Blog, error)
	CreateBlogFunc    func(ctx context.Context, authorID string, blog *models.Blog) (*models.Blog, error)
	UpdateBlogFunc    func(ctx context.Context, id string, update *models.BlogUpdate) (*models.Blog, error)
	DeleteBlogFunc    func(ctx context.Context, id string) error
}

func (m *MockBlogService) ListPublished(ctx context.Context, keyword string, page int) (*models.BlogPage, error) {
	if m.ListPublishedFunc == nil {
		return &models.BlogPage{Blogs: []*models.Blog{}, Page: 1, Pages: 1}, nil
	}
	return m.ListPublishedFunc(ctx, keyword, page)
}

func (m *MockBlogService) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	if m.GetBlogByIDFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetBlogByIDFunc(ctx, id)
}

func (m *MockBlogService) CreateBlog(ctx context.Context, authorID string, blog *models.Blog) (*models.Blog, error) {
	if m.CreateBlogFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.CreateBlogFunc(ctx, authorID, blog)
}

func (m *MockBlogService) UpdateBlog(ctx context.Context, id string, update *models.BlogUpdate) (*models.Blog, error) {
	if m.UpdateBlogFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateBlogFunc(ctx, id, update)
}

func (m *MockBlogService) DeleteBlog(ctx context.Context, id string) error {
	if m.DeleteBlogFunc == nil {
		return models.ErrNotFound
	}
	return m.DeleteBlogFunc(ctx, id)
}

// MockProjectService implements ProjectServiceInterface for testing
type MockProjectService struct {
	ListProjectsFunc     func(ctx context.Context) ([]*models.Project, error)
	ListFeaturedFunc     func(ctx context.Context) ([]*models.Project, error)
	GetProjectByIDFunc   func(ctx context.Context, id string) (*models.Project, error)
	CreateProjectFunc    func(ctx context.Context, project *models.Project) (*models.Project, error)
	UpdateProjectFunc    func(ctx context.Context, id string, update *models.ProjectUpdate) (*models.Project, error)
	DeleteProjectFunc    func(ctx context.Context, id string) error
	ImportFromGitHubFunc func(ctx context.Context, username string) (*services.ImportResult, error)
}

func (m *MockProjectService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	if m.ListProjectsFunc == nil {
		return []*models.Project{}, nil
	}
	return m.ListProjectsFunc(ctx)
}

func (m *MockProjectService) ListFeatured(ctx context.Context) ([]*models.Project, error) {
	if m.ListFeaturedFunc == nil {
		return []*models.Project{}, nil
	}
	return m.ListFeaturedFunc(ctx)
}

func (m *MockProjectService) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	if m.GetProjectByIDFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetProjectByIDFunc(ctx, id)
}

func (m *MockProjectService) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if m.CreateProjectFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.CreateProjectFunc(ctx, project)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, id string, update *models.ProjectUpdate) (*models.Project, error) {
	if m.UpdateProjectFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateProjectFunc(ctx, id, update)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, id string) error {
	if m.DeleteProjectFunc == nil {
		return models.ErrNotFound
	}
	return m.DeleteProjectFunc(ctx, id)
}

func (m *MockProjectService) ImportFromGitHub(ctx context.Context, username string) (*services.ImportResult, error) {
	if m.ImportFromGitHubFunc == nil {
		return &services.ImportResult{Imported: []*models.Project{}}, nil
	}
	return m.ImportFromGitHubFunc(ctx, username)
}

// MockProfileService implements ProfileServiceInterface for testing
type MockProfileService struct {
	GetProfileFunc              func(ctx context.Context) (*models.Profile, error)
	UpsertProfileFunc           func(ctx context.Context, update *models.ProfileUpdate) (*models.Profile, error)
	SetAvatarFunc               func(ctx context.Context, avatarURL string) (*models.Profile, error)
	AddEducationFunc            func(ctx context.Context, entry models.Education) (*models.Profile, error)
	DeleteEducationFunc         func(ctx context.Context, id string) (*models.Profile, error)
	AddExperienceFunc           func(ctx context.Context, entry models.Experience) (*models.Profile, error)
	DeleteExperienceFunc        func(ctx context.Context, id string) (*models.Profile, error)
	AddProjectExperienceFunc    func(ctx context.Context, entry models.ProjectExperience) (*models.Profile, error)
	DeleteProjectExperienceFunc func(ctx context.Context, id string) (*models.Profile, error)
}

func (m *MockProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	if m.GetProfileFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetProfileFunc(ctx)
}

func (m *MockProfileService) UpsertProfile(ctx context.Context, update *models.ProfileUpdate) (*models.Profile, error) {
	if m.UpsertProfileFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.UpsertProfileFunc(ctx, update)
}

func (m *MockProfileService) SetAvatar(ctx context.Context, avatarURL string) (*models.Profile, error) {
	if m.SetAvatarFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.SetAvatarFunc(ctx, avatarURL)
}

func (m *MockProfileService) AddEducation(ctx context.Context, entry models.Education) (*models.Profile, error) {
	if m.AddEducationFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.AddEducationFunc(ctx, entry)
}

func (m *MockProfileService) DeleteEducation(ctx context.Context, id string) (*models.Profile, error) {
	if m.DeleteEducationFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.DeleteEducationFunc(ctx, id)
}

func (m *MockProfileService) AddExperience(ctx context.Context, entry models.Experience) (*models.Profile, error) {
	if m.AddExperienceFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.AddExperienceFunc(ctx, entry)
}

func (m *MockProfileService) DeleteExperience(ctx context.Context, id string) (*models.Profile, error) {
	if m.DeleteExperienceFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.DeleteExperienceFunc(ctx, id)
}

func (m *MockProfileService) AddProjectExperience(ctx context.Context, entry models.ProjectExperience) (*models.Profile, error) {
	if m.AddProjectExperienceFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.AddProjectExperienceFunc(ctx, entry)
}

func (m *MockProfileService) DeleteProjectExperience(ctx context.Context, id string) (*models.Profile, error) {
	if m.DeleteProjectExperienceFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.DeleteProjectExperienceFunc(ctx, id)
}

// MockObjectStorage implements the storage interface for testing uploads
type MockObjectStorage struct {
	UploadImageFunc func(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

func (m *MockObjectStorage) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if m.UploadImageFunc == nil {
		return "https://cdn.example.com/uploads/test.png", nil
	}
	return m.UploadImageFunc(ctx, filename, contentType, body)
}
