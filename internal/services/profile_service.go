package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const profileCacheKey = "profile"

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	Get(ctx context.Context) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	Update(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error)
}

// ProfileService handles the single-document profile with merge-style
// updates
type ProfileService struct {
	repo   ProfileRepository
	cache  *gocache.Cache
	logger *slog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		cache:  gocache.New(1*time.Minute, 5*time.Minute),
		logger: logger,
	}
}

// GetProfile returns the profile, served through a short-lived cache
func (s *ProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	if cached, found := s.cache.Get(profileCacheKey); found {
		return cached.(*models.Profile), nil
	}

	profile, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.cache.Set(profileCacheKey, profile, gocache.DefaultExpiration)
	return profile, nil
}

// UpsertProfile merges the update into the stored profile, creating the
// row on first use. Fields absent from the update keep their stored
// values; localized fields merge language by language.
func (s *ProfileService) UpsertProfile(ctx context.Context, update *models.ProfileUpdate) (*models.Profile, error) {
	existing, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to get profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	creating := errors.Is(err, models.ErrNotFound)
	if creating {
		existing = &models.Profile{}
	}

	applyProfileUpdate(existing, update)

	var saved *models.Profile
	if creating {
		saved, err = s.repo.Create(ctx, existing)
	} else {
		saved, err = s.repo.Update(ctx, existing.ID, existing)
	}
	if err != nil {
		s.logger.Error("failed to save profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.cache.Delete(profileCacheKey)
	s.logger.Info("profile saved", slog.String("profile_id", saved.ID))
	return saved, nil
}

func applyProfileUpdate(p *models.Profile, update *models.ProfileUpdate) {
	if update.FullName != nil {
		p.FullName = *update.FullName
	}
	p.Title.Merge(update.Title)
	p.Bio.Merge(update.Bio)
	p.Tagline.Merge(update.Tagline)
	if update.Avatar != nil {
		p.Avatar = *update.Avatar
	}
	if update.Location != nil {
		p.Location = *update.Location
	}
	if update.Languages != nil {
		p.Languages = update.Languages
	}
	if update.Skills != nil {
		p.Skills = *update.Skills
	}
	if update.Social != nil {
		p.Social = *update.Social
	}
}

// SetAvatar writes the uploaded avatar URL onto the profile row
func (s *ProfileService) SetAvatar(ctx context.Context, avatarURL string) (*models.Profile, error) {
	return s.UpsertProfile(ctx, &models.ProfileUpdate{Avatar: &avatarURL})
}

// mutateProfile loads the profile, applies fn, and saves it back
func (s *ProfileService) mutateProfile(ctx context.Context, fn func(*models.Profile) error) (*models.Profile, error) {
	existing, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := fn(existing); err != nil {
		return nil, err
	}

	saved, err := s.repo.Update(ctx, existing.ID, existing)
	if err != nil {
		s.logger.Error("failed to save profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.cache.Delete(profileCacheKey)
	return saved, nil
}

// AddEducation appends an education entry and assigns it an id
func (s *ProfileService) AddEducation(ctx context.Context, entry models.Education) (*models.Profile, error) {
	entry.ID = uuid.New().String()
	return s.mutateProfile(ctx, func(p *models.Profile) error {
		p.Education = append(p.Education, entry)
		return nil
	})
}

// DeleteEducation removes an education entry by id
func (s *ProfileService) DeleteEducation(ctx context.Context, id string) (*models.Profile, error) {
	return s.mutateProfile(ctx, func(p *models.Profile) error {
		for i, e := range p.Education {
			if e.ID == id {
				p.Education = append(p.Education[:i], p.Education[i+1:]...)
				return nil
			}
		}
		return models.ErrNotFound
	})
}

// AddExperience appends an experience entry and assigns it an id
func (s *ProfileService) AddExperience(ctx context.Context, entry models.Experience) (*models.Profile, error) {
	entry.ID = uuid.New().String()
	return s.mutateProfile(ctx, func(p *models.Profile) error {
		p.Experience = append(p.Experience, entry)
		return nil
	})
}

// DeleteExperience removes an experience entry by id
func (s *ProfileService) DeleteExperience(ctx context.Context, id string) (*models.Profile, error) {
	return s.mutateProfile(ctx, func(p *models.Profile) error {
		for i, e := range p.Experience {
			if e.ID == id {
				p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
				return nil
			}
		}
		return models.ErrNotFound
	})
}

// AddProjectExperience appends a project entry and assigns it an id
func (s *ProfileService) AddProjectExperience(ctx context.Context, entry models.ProjectExperience) (*models.Profile, error) {
	entry.ID = uuid.New().String()
	return s.mutateProfile(ctx, func(p *models.Profile) error {
		p.ProjectExperience = append(p.ProjectExperience, entry)
		return nil
	})
}

// DeleteProjectExperience removes a project entry by id
func (s *ProfileService) DeleteProjectExperience(ctx context.Context, id string) (*models.Profile, error) {
	return s.mutateProfile(ctx, func(p *models.Profile) error {
		for i, e := range p.ProjectExperience {
			if e.ID == id {
				p.ProjectExperience = append(p.ProjectExperience[:i], p.ProjectExperience[i+1:]...)
				return nil
			}
		}
		return models.ErrNotFound
	})
}
