package services

import (
	"context"
	"time"

	"github.com/giglegig/portfolio-api/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc                 func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc              func(ctx context.Context, email string) (*models.User, error)
	GetByUsernameFunc           func(ctx context.Context, username string) (*models.User, error)
	CreateFunc                  func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc                  func(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdateEmailFunc             func(ctx context.Context, id, email string) (*models.User, error)
	DeleteFunc                  func(ctx context.Context, id string) error
	SetVerificationCodeFunc     func(ctx context.Context, id, code string, expires time.Time) error
	ConsumeVerificationCodeFunc func(ctx context.Context, email, code string) (*models.User, error)
	ClearExpiredCodesFunc       func(ctx context.Context) (int64, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateEmail(ctx context.Context, id, email string) (*models.User, error) {
	if m.UpdateEmailFunc != nil {
		return m.UpdateEmailFunc(ctx, id, email)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error {
	if m.SetVerificationCodeFunc != nil {
		return m.SetVerificationCodeFunc(ctx, id, code, expires)
	}
	return nil
}

func (m *MockUserRepository) ConsumeVerificationCode(ctx context.Context, email, code string) (*models.User, error) {
	if m.ConsumeVerificationCodeFunc != nil {
		return m.ConsumeVerificationCodeFunc(ctx, email, code)
	}
	return nil, models.ErrInvalidOrExpiredCode
}

func (m *MockUserRepository) ClearExpiredCodes(ctx context.Context) (int64, error) {
	if m.ClearExpiredCodesFunc != nil {
		return m.ClearExpiredCodesFunc(ctx)
	}
	return 0, nil
}

// MockEmailSender implements EmailSender for testing
type MockEmailSender struct {
	SendVerificationCodeFunc func(ctx context.Context, email, code string, expiresAt time.Time) error
}

func (m *MockEmailSender) SendVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	if m.SendVerificationCodeFunc != nil {
		return m.SendVerificationCodeFunc(ctx, email, code, expiresAt)
	}
	return nil
}

// MockBlogRepository implements BlogRepository for testing
type MockBlogRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Blog, error)
	ListFunc    func(ctx context.Context, keyword string, publishedOnly bool, limit, offset int) ([]*models.Blog, int, error)
	CreateFunc  func(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	UpdateFunc  func(ctx context.Context, id string, blog *models.Blog) (*models.Blog, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockBlogRepository) List(ctx context.Context, keyword string, publishedOnly bool, limit, offset int) ([]*models.Blog, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, keyword, publishedOnly, limit, offset)
	}
	return []*models.Blog{}, 0, nil
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, blog)
	}
	return nil, models.ErrInternalServer
}

func (m *MockBlogRepository) Update(ctx context.Context, id string, blog *models.Blog) (*models.Blog, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, blog)
	}
	return nil, models.ErrInternalServer
}

func (m *MockBlogRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProjectRepository implements ProjectRepository for testing
type MockProjectRepository struct {
	GetByIDFunc         func(ctx context.Context, id string) (*models.Project, error)
	ListFunc            func(ctx context.Context) ([]*models.Project, error)
	ExistsByRepoURLFunc func(ctx context.Context, repoURL string) (bool, error)
	CreateFunc          func(ctx context.Context, project *models.Project) (*models.Project, error)
	UpdateFunc          func(ctx context.Context, id string, project *models.Project) (*models.Project, error)
	DeleteFunc          func(ctx context.Context, id string) error
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Project{}, nil
}

func (m *MockProjectRepository) ExistsByRepoURL(ctx context.Context, repoURL string) (bool, error) {
	if m.ExistsByRepoURLFunc != nil {
		return m.ExistsByRepoURLFunc(ctx, repoURL)
	}
	return false, nil
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProjectRepository) Update(ctx context.Context, id string, project *models.Project) (*models.Project, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, project)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProfileRepository implements ProfileRepository for testing
type MockProfileRepository struct {
	GetFunc    func(ctx context.Context) (*models.Profile, error)
	CreateFunc func(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateFunc func(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error)
}

func (m *MockProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return nil, models.ErrNotFound
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProfileRepository) Update(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, profile)
	}
	return nil, models.ErrInternalServer
}

// MockGitHubClient implements GitHubClient for testing
type MockGitHubClient struct {
	ListReposFunc         func(ctx context.Context, username string) ([]GitHubRepo, error)
	ListRepoLanguagesFunc func(ctx context.Context, username, repo string) ([]string, error)
}

func (m *MockGitHubClient) ListRepos(ctx context.Context, username string) ([]GitHubRepo, error) {
	if m.ListReposFunc != nil {
		return m.ListReposFunc(ctx, username)
	}
	return []GitHubRepo{}, nil
}

func (m *MockGitHubClient) ListRepoLanguages(ctx context.Context, username, repo string) ([]string, error) {
	if m.ListRepoLanguagesFunc != nil {
		return m.ListRepoLanguagesFunc(ctx, username, repo)
	}
	return []string{}, nil
}

// NewTestUser constructs a password-less account for tests
func NewTestUser(id, username, email string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Username:  username,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestAdmin constructs an admin account for tests
func NewTestAdmin(id, email string) *models.User {
	user := NewTestUser(id, "admin", email)
	user.IsAdmin = true
	return user
}

// NewTestUserWithPassword constructs an account with a stored hash
func NewTestUserWithPassword(id, username, email, passwordHash string) *models.User {
	user := NewTestUser(id, username, email)
	user.PasswordHash = passwordHash
	return user
}
