package repository

import (
	"context"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateMeasurements(ctx context.Context, id primitive.ObjectID, current, progress *domain.BodyMeasurements) error
	AddProgressPhoto(ctx context.Context, id primitive.ObjectID, photo domain.ProgressPhoto) error
}

// PlanRepository defines the interface for interacting with workout plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	// GetCurrentByUser returns the user's current plan, or ErrNotFound when
	// the user has none selected.
	GetCurrentByUser(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	// SetCurrent marks the given plan current and clears the flag on every
	// other plan owned by the same user.
	SetCurrent(ctx context.Context, userID, planID primitive.ObjectID) error
	UpdateProgress(ctx context.Context, planID primitive.ObjectID, percent float64) error
}

// WorkoutStateRepository persists the per-user workout state document:
// completed-workout history plus the live session, if any. One document per
// user, replaced wholesale on save.
type WorkoutStateRepository interface {
	// Load returns the stored state, or an empty state (not ErrNotFound) when
	// the user has never saved one.
	Load(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutState, error)
	Save(ctx context.Context, userID primitive.ObjectID, state *domain.WorkoutState) error
}
