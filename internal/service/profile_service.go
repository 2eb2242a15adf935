package service

import (
	"context"
	"fmt"
	"strings"

	"profilehub/internal/domain"
	"profilehub/internal/repository"
)

// ProfileService coordinates profile creation and listing.
type ProfileService interface {
	Create(ctx context.Context, profile *domain.Profile) (int64, error)
	List(ctx context.Context) ([]domain.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	profile.FullName = strings.TrimSpace(profile.FullName)
	profile.Mobile = strings.TrimSpace(profile.Mobile)
	profile.Email = strings.TrimSpace(profile.Email)
	profile.Location = strings.TrimSpace(profile.Location)
	profile.Bio = strings.TrimSpace(profile.Bio)

	if profile.FullName == "" || profile.Mobile == "" || profile.Email == "" ||
		profile.Location == "" || profile.Bio == "" {
		return 0, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}

	return s.profiles.Create(ctx, profile)
}

func (s *profileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}
