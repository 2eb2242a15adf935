package repository

import (
	"context"

	"profilehub/internal/domain"
)

// ProfileRepository defines persistence operations for Profile entities.
type ProfileRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, profile *domain.Profile) (int64, error)
	List(ctx context.Context) ([]domain.Profile, error)
}
