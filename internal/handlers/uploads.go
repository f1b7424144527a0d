package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	pkghttp "github.com/giglegig/portfolio-api/pkg/http"
)

// maxUploadSize caps image uploads at 5 MB
const maxUploadSize = 5 << 20

var errUnsupportedImage = errors.New("unsupported image type")

// allowedImageExtensions lists the accepted upload file extensions
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ObjectStorageInterface defines the interface for storing uploaded images
type ObjectStorageInterface interface {
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// UploadHandler handles generic image upload HTTP requests
type UploadHandler struct {
	storage ObjectStorageInterface
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(storage ObjectStorageInterface) *UploadHandler {
	return &UploadHandler{
		storage: storage,
	}
}

// UploadResponse carries the public URL of a stored image
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage stores a multipart image upload and returns its public URL
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

// readImageUpload parses the multipart form and validates the "image" part.
// On failure it writes the error response and returns a non-nil error.
func readImageUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid multipart form or file too large")
		return nil, nil, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		pkghttp.WriteBadRequest(w, "Missing image file")
		return nil, nil, err
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		file.Close()
		pkghttp.WriteBadRequest(w, "Unsupported image type")
		return nil, nil, errUnsupportedImage
	}

	return file, header, nil
}

// uploadContentType returns the declared content type of an upload,
// defaulting to a generic binary type
func uploadContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
