package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutStateCollectionName = "workout_state"

// workoutStateDocument wraps the state with its owning user; one document per
// user, keyed by the user's ID.
type workoutStateDocument struct {
	UserID    primitive.ObjectID  `bson:"_id"`
	State     domain.WorkoutState `bson:"state"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

// mongoWorkoutStateRepository implements repository.WorkoutStateRepository
type mongoWorkoutStateRepository struct {
	collection *mongo.Collection
}

var _ repository.WorkoutStateRepository = (*mongoWorkoutStateRepository)(nil)

// NewMongoWorkoutStateRepository creates a new workout state repository.
func NewMongoWorkoutStateRepository(db *mongo.Database) repository.WorkoutStateRepository {
	return &mongoWorkoutStateRepository{
		collection: db.Collection(workoutStateCollectionName),
	}
}

// Load returns the user's stored state. A user who has never saved gets an
// empty state rather than ErrNotFound; the engine starts fresh either way.
func (r *mongoWorkoutStateRepository) Load(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutState, error) {
	var doc workoutStateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.WorkoutState{}, nil
		}
		return nil, err
	}
	return &doc.State, nil
}

// Save replaces the user's state document wholesale.
func (r *mongoWorkoutStateRepository) Save(ctx context.Context, userID primitive.ObjectID, state *domain.WorkoutState) error {
	if state == nil {
		return errors.New("state is required")
	}
	doc := workoutStateDocument{
		UserID:    userID,
		State:     *state,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": userID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
