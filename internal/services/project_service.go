package services

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"sort"
	"time"

	"github.com/giglegig/portfolio-api/internal/models"
	gocache "github.com/patrickmn/go-cache"
)

// featuredCount is how many random projects the featured endpoint returns
const featuredCount = 2

const projectListCacheKey = "projects:list"

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ExistsByRepoURL(ctx context.Context, repoURL string) (bool, error)
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	Update(ctx context.Context, id string, project *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult summarizes a GitHub import run
type ImportResult struct {
	Imported []*models.Project `json:"imported"`
	Skipped  int               `json:"skipped"`
}

// ProjectService handles project business logic
type ProjectService struct {
	repo   ProjectRepository
	github GitHubClient
	cache  *gocache.Cache
	logger *slog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo ProjectRepository, github GitHubClient, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		github: github,
		cache:  gocache.New(1*time.Minute, 5*time.Minute),
		logger: logger,
	}
}

// ListProjects returns all projects ordered by display order. Reads go
// through a short-lived cache; every mutation drops it.
func (s *ProjectService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	if cached, found := s.cache.Get(projectListCacheKey); found {
		return cached.([]*models.Project), nil
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.cache.Set(projectListCacheKey, projects, gocache.DefaultExpiration)
	return projects, nil
}

// ListFeatured returns up to featuredCount projects picked uniformly at
// random without replacement. With featuredCount or fewer projects stored,
// all of them come back.
func (s *ProjectService) ListFeatured(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	if len(projects) <= featuredCount {
		return projects, nil
	}

	picked, err := pickRandom(projects, featuredCount)
	if err != nil {
		s.logger.Error("failed to pick featured projects", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return picked, nil
}

// pickRandom selects n distinct elements uniformly at random, preserving
// the original relative order
func pickRandom(projects []*models.Project, n int) ([]*models.Project, error) {
	indexes := make([]int, 0, n)
	remaining := make([]int, len(projects))
	for i := range remaining {
		remaining[i] = i
	}

	for len(indexes) < n {
		r, err := rand.Int(rand.Reader, big.NewInt(int64(len(remaining))))
		if err != nil {
			return nil, err
		}
		i := int(r.Int64())
		indexes = append(indexes, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}

	sort.Ints(indexes)
	picked := make([]*models.Project, 0, n)
	for _, i := range indexes {
		picked = append(picked, projects[i])
	}
	return picked, nil
}

// GetProjectByID retrieves a single project
func (s *ProjectService) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get project", slog.String("project_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return project, nil
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if project.Technologies == nil {
		project.Technologies = []string{}
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error("failed to create project", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.cache.Delete(projectListCacheKey)
	s.logger.Info("project created", slog.String("project_id", created.ID))
	return created, nil
}

// UpdateProject applies a partial update to a project
func (s *ProjectService) UpdateProject(ctx context.Context, id string, update *models.ProjectUpdate) (*models.Project, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get project", slog.String("project_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.RepoURL != nil {
		existing.RepoURL = *update.RepoURL
	}
	if update.DemoURL != nil {
		existing.DemoURL = *update.DemoURL
	}
	if update.ImageURL != nil {
		existing.ImageURL = *update.ImageURL
	}
	if update.Technologies != nil {
		existing.Technologies = update.Technologies
	}
	if update.Featured != nil {
		existing.Featured = *update.Featured
	}
	if update.DisplayOrder != nil {
		existing.DisplayOrder = *update.DisplayOrder
	}

	updated, err := s.repo.Update(ctx, id, existing)
	if err != nil {
		s.logger.Error("failed to update project", slog.String("project_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.cache.Delete(projectListCacheKey)
	s.logger.Info("project updated", slog.String("project_id", id))
	return updated, nil
}

// DeleteProject removes a project
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete project", slog.String("project_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.cache.Delete(projectListCacheKey)
	s.logger.Info("project deleted", slog.String("project_id", id))
	return nil
}

// ImportFromGitHub pulls the user's public repositories and creates
// projects for the ones not already tracked. Forks are skipped, and the
// repo's language list becomes the project's technologies.
func (s *ProjectService) ImportFromGitHub(ctx context.Context, username string) (*ImportResult, error) {
	repos, err := s.github.ListRepos(ctx, username)
	if err != nil {
		s.logger.Error("failed to fetch github repos",
			slog.String("username", username), slog.Any("error", err))
		return nil, models.ErrBadRequest
	}

	result := &ImportResult{Imported: []*models.Project{}}

	for _, repo := range repos {
		if repo.Fork {
			result.Skipped++
			continue
		}

		exists, err := s.repo.ExistsByRepoURL(ctx, repo.HTMLURL)
		if err != nil {
			s.logger.Error("failed to check existing project", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		if exists {
			result.Skipped++
			continue
		}

		technologies, err := s.github.ListRepoLanguages(ctx, username, repo.Name)
		if err != nil {
			// Language listing is best-effort; fall back to the primary language
			s.logger.Warn("failed to fetch repo languages",
				slog.String("repo", repo.Name), slog.Any("error", err))
			technologies = []string{}
			if repo.Language != "" {
				technologies = append(technologies, repo.Language)
			}
		}

		created, err := s.repo.Create(ctx, &models.Project{
			Name:         repo.Name,
			Description:  repo.Description,
			RepoURL:      repo.HTMLURL,
			DemoURL:      repo.Homepage,
			Technologies: technologies,
		})
		if err != nil {
			s.logger.Error("failed to create imported project",
				slog.String("repo", repo.Name), slog.Any("error", err))
			return nil, models.ErrInternalServer
		}

		result.Imported = append(result.Imported, created)
	}

	s.cache.Delete(projectListCacheKey)
	s.logger.Info("github import finished",
		slog.String("username", username),
		slog.Int("imported", len(result.Imported)),
		slog.Int("skipped", result.Skipped))
	return result, nil
}
