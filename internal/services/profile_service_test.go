package services

import (
	"context"
	"testing"

	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func storedProfile() *models.Profile {
	return &models.Profile{
		ID:       "profile-1",
		FullName: "Ada Lovelace",
		Title:    models.Localized{En: "Engineer", It: "Ingegnere"},
		Bio:      models.Localized{En: "Old bio", It: "Vecchia bio"},
		Location: "Turin",
	}
}

func TestGetProfile_CachesReads(t *testing.T) {
	calls := 0
	repo := &MockProfileRepository{
		GetFunc: func(ctx context.Context) (*models.Profile, error) {
			calls++
			return storedProfile(), nil
		},
	}
	svc := NewProfileService(repo, discardLogger())

	_, err := svc.GetProfile(context.Background())
	require.NoError(t, err)
	_, err = svc.GetProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestUpsertProfile_MergesPerLanguage(t *testing.T) {
	repo := &MockProfileRepository{
		GetFunc: func(ctx context.Context) (*models.Profile, error) {
			return storedProfile(), nil
		},
		UpdateFunc: func(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error) {
			assert.Equal(t, "profile-1", id)
			return profile, nil
		},
	}
	svc := NewProfileService(repo, discardLogger())

	saved, err := svc.UpsertProfile(context.Background(), &models.ProfileUpdate{
		Bio: &models.Localized{En: "New bio"},
	})

	require.NoError(t, err)
	// English updated, Italian untouched, unrelated fields kept
	assert.Equal(t, "New bio", saved.Bio.En)
	assert.Equal(t, "Vecchia bio", saved.Bio.It)
	assert.Equal(t, "Ada Lovelace", saved.FullName)
	assert.Equal(t, "Turin", saved.Location)
}

func TestUpsertProfile_CreatesOnFirstUse(t *testing.T) {
	var created *models.Profile
	repo := &MockProfileRepository{
		GetFunc: func(ctx context.Context) (*models.Profile, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
			created = profile
			profile.ID = "profile-new"
			return profile, nil
		},
	}
	svc := NewProfileService(repo, discardLogger())

	saved, err := svc.UpsertProfile(context.Background(), &models.ProfileUpdate{
		FullName: strPtr("Grace Hopper"),
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Grace Hopper", saved.FullName)
}

func TestUpsertProfile_InvalidatesCache(t *testing.T) {
	calls := 0
	repo := &MockProfileRepository{
		GetFunc: func(ctx context.Context) (*models.Profile, error) {
			calls++
			return storedProfile(), nil
		},
		UpdateFunc: func(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error) {
			return profile, nil
		},
	}
	svc := NewProfileService(repo, discardLogger())

	_, err := svc.GetProfile(context.Background())
	require.NoError(t, err)

	_, err = svc.UpsertProfile(context.Background(), &models.ProfileUpdate{FullName: strPtr("X")})
	require.NoError(t, err)

	_, err = svc.GetProfile(context.Background())
	require.NoError(t, err)

	// 1 cached read + 1 load for the upsert + 1 fresh read after invalidation
	assert.Equal(t, 3, calls)
}

func TestAddEducation_AssignsID(t *testing.T) {
	repo := &MockProfileRepository{
		GetFunc: func(ctx context.Context) (*models.Profile, error) {
			return storedProfile(), nil
		},
		UpdateFunc: func(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error) {
			return profile, nil
		},
	}
	svc := NewProfileService(repo, discardLogger())

	saved, err := svc.AddEducation(context.Background(), models.Education{Institution: "PoliTo"})

	require.NoError(t, err)
	require.Len(t, saved.Education, 1)
	assert.NotEmpty(t, saved.Education[0].ID)
	assert.Equal(t, "PoliTo", saved.Education[0].Institution)
}

func TestDeleteExperience_RemovesByID(t *testing.T) {
	profile := storedProfile()
	profile.Experience = []models.Experience{
		{ID: "exp-1", Company: "Acme"},
		{ID: "exp-2", Company: "Initech"},
	}

	repo := &MockProfileRepository{
		GetFunc: func(ctx context.Context) (*models.Profile, error) {
			return profile, nil
		},
		UpdateFunc: func(ctx context.Context, id string, p *models.Profile) (*models.Profile, error) {
			return p, nil
		},
	}
	svc := NewProfileService(repo, discardLogger())

	saved, err := svc.DeleteExperience(context.Background(), "exp-1")

	require.NoError(t, err)
	require.Len(t, saved.Experience, 1)
	assert.Equal(t, "exp-2", saved.Experience[0].ID)
}

func TestDeleteEducation_MissingEntry(t *testing.T) {
	repo := &MockProfileRepository{
		GetFunc: func(ctx context.Context) (*models.Profile, error) {
			return storedProfile(), nil
		},
	}
	svc := NewProfileService(repo, discardLogger())

	_, err := svc.DeleteEducation(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetAvatar_WritesURL(t *testing.T) {
	repo := &MockProfileRepository{
		GetFunc: func(ctx context.Context) (*models.Profile, error) {
			return storedProfile(), nil
		},
		UpdateFunc: func(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error) {
			return profile, nil
		},
	}
	svc := NewProfileService(repo, discardLogger())

	saved, err := svc.SetAvatar(context.Background(), "https://cdn.example.com/a.png")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", saved.Avatar)
}
