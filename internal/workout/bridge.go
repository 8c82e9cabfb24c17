package workout

import (
	"context"
	"log"
	"math"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStore is the slice of the plan service the bridge consumes. Both
// methods operate on the one user the bridge was built for. CurrentPlan
// returns (nil, nil) when the user has no plan selected.
type PlanStore interface {
	CurrentPlan(ctx context.Context) (*domain.WorkoutPlan, error)
	UpdateProgress(ctx context.Context, planID primitive.ObjectID, percent float64) error
}

// ProfileStore is the slice of the profile service the bridge consumes.
// CurrentMeasurements returns (nil, nil) when the user never recorded any.
type ProfileStore interface {
	CurrentMeasurements(ctx context.Context) (*domain.BodyMeasurements, error)
	GenerateProgressMeasurements(ctx context.Context, current domain.BodyMeasurements, goal domain.FitnessGoal, percent float64) (*domain.BodyMeasurements, error)
}

// PlanProgressBridge pushes the effects of a completed workout into the plan
// and profile stores: plan progress percentage first, then regenerated
// progress measurements. Every step is best-effort; failures are logged and
// never surface to the engine.
type PlanProgressBridge struct {
	plans   PlanStore
	profile ProfileStore
}

// NewPlanProgressBridge wires the bridge to its two collaborators.
func NewPlanProgressBridge(plans PlanStore, profile ProfileStore) *PlanProgressBridge {
	return &PlanProgressBridge{plans: plans, profile: profile}
}

// WorkoutCompleted implements ProgressBridge.
func (b *PlanProgressBridge) WorkoutCompleted(ctx context.Context, completed domain.CompletedWorkout, history []domain.CompletedWorkout) {
	plan, err := b.plans.CurrentPlan(ctx)
	if err != nil {
		log.Printf("WARN: progress bridge: failed to look up current plan: %v", err)
		return
	}
	if plan == nil {
		return
	}
	totalPlanWorkouts := plan.WorkoutDays()
	if totalPlanWorkouts == 0 {
		return
	}

	// Count history entries belonging to the plan by name, plus one for the
	// workout that just finished. The string matching (and the extra one when
	// the new entry also matches by name) is a known weak heuristic carried
	// over from the mobile app; it can over- or undercount renamed workouts.
	done := 1
	for _, w := range history {
		if matchesPlan(plan, w.WorkoutName) {
			done++
		}
	}

	percent := math.Min(float64(done)/float64(totalPlanWorkouts)*100, 100)
	if err := b.plans.UpdateProgress(ctx, plan.ID, percent); err != nil {
		log.Printf("WARN: progress bridge: failed to update plan %s progress: %v", plan.ID.Hex(), err)
	}

	current, err := b.profile.CurrentMeasurements(ctx)
	if err != nil {
		log.Printf("WARN: progress bridge: failed to load measurements: %v", err)
		return
	}
	if current == nil || percent <= 0 {
		return
	}
	if _, err := b.profile.GenerateProgressMeasurements(ctx, *current, plan.Goal, percent); err != nil {
		log.Printf("WARN: progress bridge: failed to generate progress measurements: %v", err)
	}
}

// matchesPlan reports whether a completed workout's name refers to the plan
// itself or to one of its schedule days.
func matchesPlan(plan *domain.WorkoutPlan, workoutName string) bool {
	if workoutName == plan.Name {
		return true
	}
	for _, day := range plan.Schedule {
		if day.Name == workoutName {
			return true
		}
	}
	return false
}
