package services

import (
	"context"
	"errors"
	"testing"

	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProjects(n int) []*models.Project {
	projects := make([]*models.Project, n)
	for i := range projects {
		projects[i] = &models.Project{ID: string(rune('a' + i)), DisplayOrder: i}
	}
	return projects
}

func TestListFeatured_FewerThanLimit_ReturnsAll(t *testing.T) {
	repo := &MockProjectRepository{
		ListFunc: func(ctx context.Context) ([]*models.Project, error) {
			return testProjects(2), nil
		},
	}
	svc := NewProjectService(repo, &MockGitHubClient{}, discardLogger())

	featured, err := svc.ListFeatured(context.Background())

	require.NoError(t, err)
	assert.Len(t, featured, 2)
}

func TestListFeatured_PicksTwoDistinct(t *testing.T) {
	repo := &MockProjectRepository{
		ListFunc: func(ctx context.Context) ([]*models.Project, error) {
			return testProjects(6), nil
		},
	}
	svc := NewProjectService(repo, &MockGitHubClient{}, discardLogger())

	seen := map[string]bool{}
	for i := 0; i < 30; i++ {
		featured, err := svc.ListFeatured(context.Background())
		require.NoError(t, err)
		require.Len(t, featured, 2)
		assert.NotEqual(t, featured[0].ID, featured[1].ID)
		seen[featured[0].ID] = true
		seen[featured[1].ID] = true
	}

	// Over 30 draws from 6 projects a single repeated pair would be a
	// broken selection
	assert.Greater(t, len(seen), 2)
}

func TestListProjects_CachesReads(t *testing.T) {
	calls := 0
	repo := &MockProjectRepository{
		ListFunc: func(ctx context.Context) ([]*models.Project, error) {
			calls++
			return testProjects(3), nil
		},
	}
	svc := NewProjectService(repo, &MockGitHubClient{}, discardLogger())

	_, err := svc.ListProjects(context.Background())
	require.NoError(t, err)
	_, err = svc.ListProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestCreateProject_DropsListCache(t *testing.T) {
	calls := 0
	repo := &MockProjectRepository{
		ListFunc: func(ctx context.Context) ([]*models.Project, error) {
			calls++
			return testProjects(3), nil
		},
		CreateFunc: func(ctx context.Context, project *models.Project) (*models.Project, error) {
			project.ID = "p-new"
			return project, nil
		},
	}
	svc := NewProjectService(repo, &MockGitHubClient{}, discardLogger())

	_, err := svc.ListProjects(context.Background())
	require.NoError(t, err)

	_, err = svc.CreateProject(context.Background(), &models.Project{Name: "new"})
	require.NoError(t, err)

	_, err = svc.ListProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestUpdateProject_PartialUpdate(t *testing.T) {
	existing := &models.Project{
		ID:           "p-1",
		Name:         "Old name",
		Technologies: []string{"Go"},
		DisplayOrder: 3,
	}

	repo := &MockProjectRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Project, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, id string, project *models.Project) (*models.Project, error) {
			return project, nil
		},
	}
	svc := NewProjectService(repo, &MockGitHubClient{}, discardLogger())

	featured := true
	updated, err := svc.UpdateProject(context.Background(), "p-1", &models.ProjectUpdate{Featured: &featured})

	require.NoError(t, err)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Old name", updated.Name)
	assert.Equal(t, 3, updated.DisplayOrder)
}

func TestImportFromGitHub_SkipsForksAndExisting(t *testing.T) {
	github := &MockGitHubClient{
		ListReposFunc: func(ctx context.Context, username string) ([]GitHubRepo, error) {
			return []GitHubRepo{
				{Name: "kept", HTMLURL: "https://github.com/u/kept", Language: "Go"},
				{Name: "forked", HTMLURL: "https://github.com/u/forked", Fork: true},
				{Name: "tracked", HTMLURL: "https://github.com/u/tracked"},
			}, nil
		},
		ListRepoLanguagesFunc: func(ctx context.Context, username, repo string) ([]string, error) {
			return []string{"Go", "Makefile"}, nil
		},
	}

	var created []*models.Project
	repo := &MockProjectRepository{
		ExistsByRepoURLFunc: func(ctx context.Context, repoURL string) (bool, error) {
			return repoURL == "https://github.com/u/tracked", nil
		},
		CreateFunc: func(ctx context.Context, project *models.Project) (*models.Project, error) {
			project.ID = "p-" + project.Name
			created = append(created, project)
			return project, nil
		},
	}

	svc := NewProjectService(repo, github, discardLogger())
	result, err := svc.ImportFromGitHub(context.Background(), "u")

	require.NoError(t, err)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Imported, 1)
	assert.Equal(t, "kept", result.Imported[0].Name)
	assert.ElementsMatch(t, []string{"Go", "Makefile"}, created[0].Technologies)
}

func TestImportFromGitHub_LanguageFetchFailure_FallsBack(t *testing.T) {
	github := &MockGitHubClient{
		ListReposFunc: func(ctx context.Context, username string) ([]GitHubRepo, error) {
			return []GitHubRepo{
				{Name: "kept", HTMLURL: "https://github.com/u/kept", Language: "Rust"},
			}, nil
		},
		ListRepoLanguagesFunc: func(ctx context.Context, username, repo string) ([]string, error) {
			return nil, errors.New("rate limited")
		},
	}
	repo := &MockProjectRepository{
		CreateFunc: func(ctx context.Context, project *models.Project) (*models.Project, error) {
			return project, nil
		},
	}

	svc := NewProjectService(repo, github, discardLogger())
	result, err := svc.ImportFromGitHub(context.Background(), "u")

	require.NoError(t, err)
	require.Len(t, result.Imported, 1)
	assert.Equal(t, []string{"Rust"}, result.Imported[0].Technologies)
}

func TestImportFromGitHub_APIFailure(t *testing.T) {
	github := &MockGitHubClient{
		ListReposFunc: func(ctx context.Context, username string) ([]GitHubRepo, error) {
			return nil, errors.New("no such user")
		},
	}
	svc := NewProjectService(&MockProjectRepository{}, github, discardLogger())

	_, err := svc.ImportFromGitHub(context.Background(), "nobody")

	assert.ErrorIs(t, err, models.ErrBadRequest)
}
