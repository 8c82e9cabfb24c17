package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BodyMeasurements holds the five tracked dimensions, in centimeters.
type BodyMeasurements struct {
	Shoulders float64 `bson:"shoulders" json:"shoulders"`
	Chest     float64 `bson:"chest" json:"chest"`
	Arms      float64 `bson:"arms" json:"arms"`
	Waist     float64 `bson:"waist" json:"waist"`
	Legs      float64 `bson:"legs" json:"legs"`
}

// ProgressPhoto is metadata for a photo the user uploaded to object storage.
// The actual file lives in S3; only the key is stored here.
type ProgressPhoto struct {
	ObjectKey  string    `bson:"objectKey" json:"-"`
	FileName   string    `bson:"fileName" json:"fileName"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// User is an account in the system. Authentication is deliberately simple
// (email + password, HS256 tokens); there is no role split, every user owns
// exactly their own workouts, plan and profile.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never exposed via JSON
	Goal         FitnessGoal        `bson:"goal,omitempty" json:"goal,omitempty"`

	// Onboarding captures current measurements; progress measurements are the
	// interpolated current-to-goal shape regenerated as plan progress grows.
	CurrentMeasurements  *BodyMeasurements `bson:"currentMeasurements,omitempty" json:"currentMeasurements,omitempty"`
	ProgressMeasurements *BodyMeasurements `bson:"progressMeasurements,omitempty" json:"progressMeasurements,omitempty"`
	ProgressPhotos       []ProgressPhoto   `bson:"progressPhotos,omitempty" json:"progressPhotos,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
