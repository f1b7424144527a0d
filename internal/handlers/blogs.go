package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/giglegig/portfolio-api/internal/auth"
	"github.com/giglegig/portfolio-api/internal/models"
	pkghttp "github.com/giglegig/portfolio-api/pkg/http"
	"github.com/go-chi/chi/v5"
)

// BlogServiceInterface defines the interface for blog business logic
type BlogServiceInterface interface {
	ListPublished(ctx context.Context, keyword string, page int) (*models.BlogPage, error)
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	CreateBlog(ctx context.Context, authorID string, blog *models.Blog) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id string, update *models.BlogUpdate) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
}

// BlogHandler handles blog HTTP requests
type BlogHandler struct {
	service BlogServiceInterface
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(service BlogServiceInterface) *BlogHandler {
	return &BlogHandler{
		service: service,
	}
}

// CreateBlogRequest represents the request body for creating a blog post
type CreateBlogRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=200"`
	Content   string   `json:"content" validate:"required"`
	Summary   string   `json:"summary" validate:"max=500"`
	ImageURL  string   `json:"image_url" validate:"omitempty,url"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// UpdateBlogRequest represents the request body for a partial blog update
type UpdateBlogRequest struct {
	Title     *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string  `json:"content" validate:"omitempty,min=1"`
	Summary   *string  `json:"summary" validate:"omitempty,max=500"`
	ImageURL  *string  `json:"image_url" validate:"omitempty,url"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

// List returns one page of published blog posts, optionally filtered by a
// keyword matching title, content, or tags
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	page := parseIntQuery(r, "page", 1)

	result, err := h.service.ListPublished(r.Context(), keyword, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get returns a single blog post by id
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Blog ID is required")
		return
	}

	blog, err := h.service.GetBlogByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// Create creates a new blog post authored by the authenticated admin
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.CreateBlog(r.Context(), user.ID, &models.Blog{
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		ImageURL:  req.ImageURL,
		Tags:      req.Tags,
		Published: req.Published,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a blog post
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Blog ID is required")
		return
	}

	var req UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateBlog(r.Context(), id, &models.BlogUpdate{
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		ImageURL:  req.ImageURL,
		Tags:      req.Tags,
		Published: req.Published,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a blog post
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Blog ID is required")
		return
	}

	if err := h.service.DeleteBlog(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Blog deleted"})
}

// parseIntQuery parses an integer query parameter, falling back to the
// default for missing or malformed values
func parseIntQuery(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
