package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilehub/internal/domain"
)

type fakeProfileRepo struct {
	profiles []domain.Profile
	nextID   int64
}

func (f *fakeProfileRepo) Init(context.Context) error { return nil }

func (f *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) (int64, error) {
	f.nextID++
	profile.ID = f.nextID
	f.profiles = append(f.profiles, *profile)
	return profile.ID, nil
}

func (f *fakeProfileRepo) List(context.Context) ([]domain.Profile, error) {
	return f.profiles, nil
}

func validProfile() *domain.Profile {
	return &domain.Profile{
		FullName: "Ada Lovelace",
		Mobile:   "+44 1234 567890",
		Email:    "ada@example.com",
		Location: "London",
		Bio:      "Analytical engine enthusiast",
	}
}

func TestProfileCreate(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(repo)

	id, err := svc.Create(context.Background(), validProfile())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.Len(t, repo.profiles, 1)
}

func TestProfileCreateMissingFieldWritesNothing(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(repo)

	profile := validProfile()
	profile.Bio = ""

	_, err := svc.Create(context.Background(), profile)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.profiles)
}

func TestProfileCreateTrimsWhitespaceOnlyFields(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(repo)

	profile := validProfile()
	profile.Location = "   "

	_, err := svc.Create(context.Background(), profile)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.profiles)
}

func TestProfileList(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(repo)

	_, err := svc.Create(context.Background(), validProfile())
	require.NoError(t, err)

	profiles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Ada Lovelace", profiles[0].FullName)
}
