package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/giglegig/portfolio-api/internal/services"
	pkghttp "github.com/giglegig/portfolio-api/pkg/http"
	"github.com/go-chi/chi/v5"
)

// ProjectServiceInterface defines the interface for project business logic
type ProjectServiceInterface interface {
	ListProjects(ctx context.Context) ([]*models.Project, error)
	ListFeatured(ctx context.Context) ([]*models.Project, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, update *models.ProjectUpdate) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ImportFromGitHub(ctx context.Context, username string) (*services.ImportResult, error)
}

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	service ProjectServiceInterface
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(service ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	RepoURL      string   `json:"repo_url" validate:"omitempty,url"`
	DemoURL      string   `json:"demo_url" validate:"omitempty,url"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
	Technologies []string `json:"technologies"`
	Featured     bool     `json:"featured"`
	DisplayOrder int      `json:"display_order" validate:"gte=0"`
}

// UpdateProjectRequest represents the request body for a partial project update
type UpdateProjectRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	RepoURL      *string  `json:"repo_url" validate:"omitempty,url"`
	DemoURL      *string  `json:"demo_url" validate:"omitempty,url"`
	ImageURL     *string  `json:"image_url" validate:"omitempty,url"`
	Technologies []string `json:"technologies"`
	Featured     *bool    `json:"featured"`
	DisplayOrder *int     `json:"display_order" validate:"omitempty,gte=0"`
}

// ImportGitHubRequest represents the request body for a GitHub import
type ImportGitHubRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

// List returns all projects, or a random featured pair with ?featured=true
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("featured") == "true" {
		projects, err := h.service.ListFeatured(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, projects)
		return
	}

	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// Get returns a single project by id
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Project ID is required")
		return
	}

	project, err := h.service.GetProjectByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// Create creates a new project
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.CreateProject(r.Context(), &models.Project{
		Name:         req.Name,
		Description:  req.Description,
		RepoURL:      req.RepoURL,
		DemoURL:      req.DemoURL,
		ImageURL:     req.ImageURL,
		Technologies: req.Technologies,
		Featured:     req.Featured,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a project
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Project ID is required")
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateProject(r.Context(), id, &models.ProjectUpdate{
		Name:         req.Name,
		Description:  req.Description,
		RepoURL:      req.RepoURL,
		DemoURL:      req.DemoURL,
		ImageURL:     req.ImageURL,
		Technologies: req.Technologies,
		Featured:     req.Featured,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a project
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Project ID is required")
		return
	}

	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Project deleted"})
}

// ImportGitHub imports the given GitHub user's public repositories as
// projects, skipping forks and repositories already tracked
func (h *ProjectHandler) ImportGitHub(w http.ResponseWriter, r *http.Request) {
	var req ImportGitHubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ImportFromGitHub(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
