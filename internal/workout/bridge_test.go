package workout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePlanStore struct {
	plan        *domain.WorkoutPlan
	planErr     error
	progressErr error

	updatedPlan    primitive.ObjectID
	updatedPercent float64
	updateCalls    int
}

func (s *fakePlanStore) CurrentPlan(ctx context.Context) (*domain.WorkoutPlan, error) {
	return s.plan, s.planErr
}

func (s *fakePlanStore) UpdateProgress(ctx context.Context, planID primitive.ObjectID, percent float64) error {
	s.updateCalls++
	s.updatedPlan = planID
	s.updatedPercent = percent
	return s.progressErr
}

type fakeProfileStore struct {
	current        *domain.BodyMeasurements
	currentErr     error
	generateErr    error
	generatedGoal  domain.FitnessGoal
	generatedPct   float64
	generateCalls  int
	generatedInput domain.BodyMeasurements
}

func (s *fakeProfileStore) CurrentMeasurements(ctx context.Context) (*domain.BodyMeasurements, error) {
	return s.current, s.currentErr
}

func (s *fakeProfileStore) GenerateProgressMeasurements(ctx context.Context, current domain.BodyMeasurements, goal domain.FitnessGoal, percent float64) (*domain.BodyMeasurements, error) {
	s.generateCalls++
	s.generatedInput = current
	s.generatedGoal = goal
	s.generatedPct = percent
	return &current, s.generateErr
}

func testPlan() *domain.WorkoutPlan {
	return &domain.WorkoutPlan{
		ID:   primitive.NewObjectID(),
		Name: "Strength Builder",
		Goal: domain.GoalStrength,
		Schedule: []domain.ScheduleDay{
			{Name: "Day 1: Push", Exercises: []domain.Exercise{exerciseA}},
			{Name: "Day 2: Pull", Exercises: []domain.Exercise{exerciseB}},
			{Name: "Day 3: Rest", RestDay: true},
			{Name: "Day 4: Legs", Exercises: []domain.Exercise{exerciseB}},
		},
	}
}

func bridgeWorkout(name string) domain.CompletedWorkout {
	return domain.CompletedWorkout{
		ID:          "w1",
		WorkoutName: name,
		Date:        time.Now(),
	}
}

func TestBridge_NoCurrentPlanIsANoOp(t *testing.T) {
	plans := &fakePlanStore{}
	profile := &fakeProfileStore{current: &domain.BodyMeasurements{Chest: 100}}
	bridge := NewPlanProgressBridge(plans, profile)

	bridge.WorkoutCompleted(context.Background(), bridgeWorkout("Day 1: Push"), nil)

	require.Zero(t, plans.updateCalls)
	require.Zero(t, profile.generateCalls)
}

func TestBridge_ProgressCountsMatchingHistory(t *testing.T) {
	plan := testPlan()
	plans := &fakePlanStore{plan: plan}
	profile := &fakeProfileStore{}
	bridge := NewPlanProgressBridge(plans, profile)

	completed := bridgeWorkout("Day 1: Push")
	history := []domain.CompletedWorkout{
		completed,
		bridgeWorkout("Day 2: Pull"),
		bridgeWorkout("Morning Run"), // unrelated, ignored
	}

	bridge.WorkoutCompleted(context.Background(), completed, history)

	// 1 for the finishing workout plus 2 matching history entries, over the
	// plan's 3 non-rest days.
	require.Equal(t, 1, plans.updateCalls)
	require.Equal(t, plan.ID, plans.updatedPlan)
	require.InDelta(t, 100.0, plans.updatedPercent, 0.001)
}

func TestBridge_ProgressIsCappedAtOneHundred(t *testing.T) {
	plan := testPlan()
	plans := &fakePlanStore{plan: plan}
	bridge := NewPlanProgressBridge(plans, &fakeProfileStore{})

	history := []domain.CompletedWorkout{
		bridgeWorkout("Day 1: Push"),
		bridgeWorkout("Day 1: Push"),
		bridgeWorkout("Day 2: Pull"),
		bridgeWorkout("Day 4: Legs"),
		bridgeWorkout("Strength Builder"), // plan name itself also matches
	}

	bridge.WorkoutCompleted(context.Background(), bridgeWorkout("Day 1: Push"), history)

	require.InDelta(t, 100.0, plans.updatedPercent, 0.001)
}

func TestBridge_PartialProgress(t *testing.T) {
	plan := testPlan()
	plans := &fakePlanStore{plan: plan}
	bridge := NewPlanProgressBridge(plans, &fakeProfileStore{})

	bridge.WorkoutCompleted(context.Background(), bridgeWorkout("Day 1: Push"), nil)

	require.InDelta(t, 100.0/3.0, plans.updatedPercent, 0.001)
}

func TestBridge_GeneratesMeasurementsWithPlanGoal(t *testing.T) {
	plan := testPlan()
	plans := &fakePlanStore{plan: plan}
	current := domain.BodyMeasurements{Shoulders: 110, Chest: 100, Arms: 35, Waist: 85, Legs: 60}
	profile := &fakeProfileStore{current: &current}
	bridge := NewPlanProgressBridge(plans, profile)

	bridge.WorkoutCompleted(context.Background(), bridgeWorkout("Day 1: Push"), nil)

	require.Equal(t, 1, profile.generateCalls)
	require.Equal(t, domain.GoalStrength, profile.generatedGoal)
	require.Equal(t, current, profile.generatedInput)
	require.InDelta(t, 100.0/3.0, profile.generatedPct, 0.001)
}

func TestBridge_SkipsMeasurementsWhenNoneRecorded(t *testing.T) {
	plans := &fakePlanStore{plan: testPlan()}
	profile := &fakeProfileStore{}
	bridge := NewPlanProgressBridge(plans, profile)

	bridge.WorkoutCompleted(context.Background(), bridgeWorkout("Day 1: Push"), nil)

	require.Equal(t, 1, plans.updateCalls)
	require.Zero(t, profile.generateCalls)
}

func TestBridge_StoreFailuresAreSwallowed(t *testing.T) {
	plans := &fakePlanStore{plan: testPlan(), progressErr: errors.New("write failed")}
	profile := &fakeProfileStore{
		current:     &domain.BodyMeasurements{Chest: 100},
		generateErr: errors.New("generation failed"),
	}
	bridge := NewPlanProgressBridge(plans, profile)

	require.NotPanics(t, func() {
		bridge.WorkoutCompleted(context.Background(), bridgeWorkout("Day 1: Push"), nil)
	})

	// A failed progress write still attempts the measurement step.
	require.Equal(t, 1, profile.generateCalls)
}

func TestBridge_PlanLookupFailureStopsEverything(t *testing.T) {
	plans := &fakePlanStore{planErr: errors.New("db down")}
	profile := &fakeProfileStore{current: &domain.BodyMeasurements{Chest: 100}}
	bridge := NewPlanProgressBridge(plans, profile)

	bridge.WorkoutCompleted(context.Background(), bridgeWorkout("Day 1: Push"), nil)

	require.Zero(t, plans.updateCalls)
	require.Zero(t, profile.generateCalls)
}
