package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/giglegig/portfolio-api/internal/models"
)

// blogPageSize is the fixed page size for public blog listings
const blogPageSize = 10

// BlogRepository defines the interface for blog data access
type BlogRepository interface {
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context, keyword string, publishedOnly bool, limit, offset int) ([]*models.Blog, int, error)
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	Update(ctx context.Context, id string, blog *models.Blog) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
}

// BlogService handles blog business logic
type BlogService struct {
	repo   BlogRepository
	logger *slog.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(repo BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		repo:   repo,
		logger: logger,
	}
}

// ListPublished returns one page of published blogs matching the keyword
func (s *BlogService) ListPublished(ctx context.Context, keyword string, page int) (*models.BlogPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * blogPageSize

	blogs, total, err := s.repo.List(ctx, keyword, true, blogPageSize, offset)
	if err != nil {
		s.logger.Error("failed to list blogs", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	pages := (total + blogPageSize - 1) / blogPageSize
	if pages < 1 {
		pages = 1
	}

	return &models.BlogPage{
		Blogs:      blogs,
		Page:       page,
		Pages:      pages,
		TotalBlogs: total,
	}, nil
}

// GetBlogByID retrieves a single blog post
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get blog", slog.String("blog_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return blog, nil
}

// CreateBlog creates a new blog post authored by the given user
func (s *BlogService) CreateBlog(ctx context.Context, authorID string, blog *models.Blog) (*models.Blog, error) {
	blog.AuthorID = authorID
	if blog.Tags == nil {
		blog.Tags = []string{}
	}

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		s.logger.Error("failed to create blog", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("blog created", slog.String("blog_id", created.ID))
	return created, nil
}

// UpdateBlog applies a partial update to a blog post
func (s *BlogService) UpdateBlog(ctx context.Context, id string, update *models.BlogUpdate) (*models.Blog, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get blog", slog.String("blog_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if update.Title != nil {
		existing.Title = *update.Title
	}
	if update.Content != nil {
		existing.Content = *update.Content
	}
	if update.Summary != nil {
		existing.Summary = *update.Summary
	}
	if update.ImageURL != nil {
		existing.ImageURL = *update.ImageURL
	}
	if update.Tags != nil {
		existing.Tags = update.Tags
	}
	if update.Published != nil {
		existing.Published = *update.Published
	}

	updated, err := s.repo.Update(ctx, id, existing)
	if err != nil {
		s.logger.Error("failed to update blog", slog.String("blog_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("blog updated", slog.String("blog_id", id))
	return updated, nil
}

// DeleteBlog removes a blog post
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete blog", slog.String("blog_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("blog deleted", slog.String("blog_id", id))
	return nil
}
