package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/giglegig/portfolio-api/internal/models"
	pkghttp "github.com/giglegig/portfolio-api/pkg/http"
	"github.com/go-chi/chi/v5"
)

// ProfileServiceInterface defines the interface for profile business logic
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpsertProfile(ctx context.Context, update *models.ProfileUpdate) (*models.Profile, error)
	SetAvatar(ctx context.Context, avatarURL string) (*models.Profile, error)
	AddEducation(ctx context.Context, entry models.Education) (*models.Profile, error)
	DeleteEducation(ctx context.Context, id string) (*models.Profile, error)
	AddExperience(ctx context.Context, entry models.Experience) (*models.Profile, error)
	DeleteExperience(ctx context.Context, id string) (*models.Profile, error)
	AddProjectExperience(ctx context.Context, entry models.ProjectExperience) (*models.Profile, error)
	DeleteProjectExperience(ctx context.Context, id string) (*models.Profile, error)
}

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	service ProfileServiceInterface
	storage ObjectStorageInterface
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service ProfileServiceInterface, storage ObjectStorageInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		storage: storage,
	}
}

// Get returns the site owner's profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Upsert merges the request body into the stored profile, creating it on
// first use. Absent fields keep their stored values.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	saved, err := h.service.UpsertProfile(r.Context(), &update)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// UploadAvatar stores the uploaded image and writes its URL onto the profile
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	file, header, err := readImageUpload(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	url, err := h.storage.UploadImage(r.Context(), header.Filename, uploadContentType(header), file)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to store uploaded image")
		return
	}

	saved, err := h.service.SetAvatar(r.Context(), url)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// AddEducation appends an education entry to the profile
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	var entry models.Education
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if entry.Institution == "" {
		pkghttp.WriteBadRequest(w, "Institution is required")
		return
	}

	saved, err := h.service.AddEducation(r.Context(), entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

// DeleteEducation removes an education entry by id
func (h *ProfileHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Entry ID is required")
		return
	}

	saved, err := h.service.DeleteEducation(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// AddExperience appends a work experience entry to the profile
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	var entry models.Experience
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if entry.Company == "" {
		pkghttp.WriteBadRequest(w, "Company is required")
		return
	}

	saved, err := h.service.AddExperience(r.Context(), entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

// DeleteExperience removes a work experience entry by id
func (h *ProfileHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Entry ID is required")
		return
	}

	saved, err := h.service.DeleteExperience(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// AddProjectExperience appends a project entry to the profile
func (h *ProfileHandler) AddProjectExperience(w http.ResponseWriter, r *http.Request) {
	var entry models.ProjectExperience
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if entry.Name == "" {
		pkghttp.WriteBadRequest(w, "Name is required")
		return
	}

	saved, err := h.service.AddProjectExperience(r.Context(), entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

// DeleteProjectExperience removes a project entry by id
func (h *ProfileHandler) DeleteProjectExperience(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "Entry ID is required")
		return
	}

	saved, err := h.service.DeleteProjectExperience(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}
