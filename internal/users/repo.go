package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	Upsert(ctx context.Context, user User) error
	SaveProfile(ctx context.Context, userID string, profile Profile) error
	AddSkill(ctx context.Context, userID string, skill Skill) error
	AddExperience(ctx context.Context, userID string, exp Experience) error
	GetByID(ctx context.Context, userID string) (User, error)
	// GetWithProfile returns a nil profile when the user has none.
	GetWithProfile(ctx context.Context, userID string) (User, *Profile, error)
	GetAggregate(ctx context.Context, userID string) (Aggregate, error)
}
