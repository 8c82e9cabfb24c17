package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound = errors.New("workout plan not found")
)

// PlanService manages workout plans: generation, current-plan selection and
// progress updates. "AI generation" is simulated: a fixed configurable delay
// followed by a deterministic schedule built from a small exercise catalog.
type PlanService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, name string, goal domain.FitnessGoal, daysPerWeek int) (*domain.WorkoutPlan, error)
	// GetCurrentPlan returns (nil, nil) when the user has no current plan.
	GetCurrentPlan(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	SetCurrentPlan(ctx context.Context, userID, planID primitive.ObjectID) error
	UpdateProgress(ctx context.Context, planID primitive.ObjectID, percent float64) error
}

// planService implements the PlanService interface.
type planService struct {
	planRepo        repository.PlanRepository
	generationDelay time.Duration
}

// NewPlanService creates a new instance of planService. The generation delay
// mimics a remote AI call; tests pass zero.
func NewPlanService(planRepo repository.PlanRepository, generationDelay time.Duration) PlanService {
	return &planService{
		planRepo:        planRepo,
		generationDelay: generationDelay,
	}
}

// GeneratePlan builds a weekly plan for the goal, stores it and makes it the
// user's current plan.
func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, name string, goal domain.FitnessGoal, daysPerWeek int) (*domain.WorkoutPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to generate a plan")
	}
	if daysPerWeek < 2 {
		daysPerWeek = 2
	}
	if daysPerWeek > 6 {
		daysPerWeek = 6
	}
	if name == "" {
		name = defaultPlanName(goal)
	}

	// Pretend to talk to a generation backend.
	if s.generationDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.generationDelay):
		}
	}

	plan := &domain.WorkoutPlan{
		UserID:    userID,
		Name:      name,
		Goal:      goal,
		Schedule:  buildSchedule(goal, daysPerWeek),
		IsCurrent: true,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	if err := s.planRepo.SetCurrent(ctx, userID, planID); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetCurrentPlan retrieves the user's current plan; absence is not an error.
func (s *planService) GetCurrentPlan(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetCurrentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// SetCurrentPlan switches the user's current plan.
func (s *planService) SetCurrentPlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	err := s.planRepo.SetCurrent(ctx, userID, planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// UpdateProgress stores the plan's completion percentage.
func (s *planService) UpdateProgress(ctx context.Context, planID primitive.ObjectID, percent float64) error {
	err := s.planRepo.UpdateProgress(ctx, planID, percent)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// --- Mock generation catalog ---

func defaultPlanName(goal domain.FitnessGoal) string {
	switch goal {
	case domain.GoalMuscleGain:
		return "Muscle Building Program"
	case domain.GoalWeightLoss:
		return "Fat Loss Program"
	case domain.GoalStrength:
		return "Strength Program"
	default:
		return "General Fitness Program"
	}
}

// catalog maps each goal to the day templates the generator cycles through.
var catalog = map[domain.FitnessGoal][]struct {
	name      string
	exercises []domain.Exercise
}{
	domain.GoalMuscleGain: {
		{"Upper Body Push", []domain.Exercise{
			{ID: "bench-press", Name: "Bench Press", MuscleGroup: "Chest", Sets: 4, Reps: 8, RestTime: 90},
			{ID: "overhead-press", Name: "Overhead Press", MuscleGroup: "Shoulders", Sets: 3, Reps: 10, RestTime: 90},
			{ID: "tricep-dips", Name: "Tricep Dips", MuscleGroup: "Arms", Sets: 3, Reps: 12, RestTime: 60},
		}},
		{"Upper Body Pull", []domain.Exercise{
			{ID: "pull-ups", Name: "Pull Ups", MuscleGroup: "Back", Sets: 4, Reps: 8, RestTime: 90},
			{ID: "barbell-row", Name: "Barbell Row", MuscleGroup: "Back", Sets: 3, Reps: 10, RestTime: 90},
			{ID: "bicep-curls", Name: "Bicep Curls", MuscleGroup: "Arms", Sets: 3, Reps: 12, RestTime: 60},
		}},
		{"Leg Day", []domain.Exercise{
			{ID: "squats", Name: "Squats", MuscleGroup: "Legs", Sets: 4, Reps: 8, RestTime: 120},
			{ID: "romanian-deadlift", Name: "Romanian Deadlift", MuscleGroup: "Legs", Sets: 3, Reps: 10, RestTime: 90},
			{ID: "calf-raises", Name: "Calf Raises", MuscleGroup: "Legs", Sets: 3, Reps: 15, RestTime: 60},
		}},
	},
	domain.GoalWeightLoss: {
		{"Full Body Circuit", []domain.Exercise{
			{ID: "burpees", Name: "Burpees", MuscleGroup: "Full Body", Sets: 3, Reps: 15, RestTime: 45},
			{ID: "mountain-climbers", Name: "Mountain Climbers", MuscleGroup: "Core", Sets: 3, Reps: 20, RestTime: 45},
			{ID: "jump-squats", Name: "Jump Squats", MuscleGroup: "Legs", Sets: 3, Reps: 15, RestTime: 45},
		}},
		{"HIIT Cardio", []domain.Exercise{
			{ID: "high-knees", Name: "High Knees", MuscleGroup: "Legs", Sets: 4, Reps: 30, RestTime: 30},
			{ID: "jumping-jacks", Name: "Jumping Jacks", MuscleGroup: "Full Body", Sets: 4, Reps: 25, RestTime: 30},
			{ID: "plank", Name: "Plank", MuscleGroup: "Core", Sets: 3, Reps: 1, RestTime: 60},
		}},
	},
	domain.GoalStrength: {
		{"Heavy Lower", []domain.Exercise{
			{ID: "back-squat", Name: "Back Squat", MuscleGroup: "Legs", Sets: 5, Reps: 5, RestTime: 180},
			{ID: "deadlift", Name: "Deadlift", MuscleGroup: "Back", Sets: 3, Reps: 5, RestTime: 180},
		}},
		{"Heavy Upper", []domain.Exercise{
			{ID: "bench-press", Name: "Bench Press", MuscleGroup: "Chest", Sets: 5, Reps: 5, RestTime: 180},
			{ID: "overhead-press", Name: "Overhead Press", MuscleGroup: "Shoulders", Sets: 5, Reps: 5, RestTime: 150},
		}},
	},
	domain.GoalGeneral: {
		{"Full Body A", []domain.Exercise{
			{ID: "goblet-squat", Name: "Goblet Squat", MuscleGroup: "Legs", Sets: 3, Reps: 12, RestTime: 60},
			{ID: "push-ups", Name: "Push Ups", MuscleGroup: "Chest", Sets: 3, Reps: 12, RestTime: 60},
			{ID: "dumbbell-row", Name: "Dumbbell Row", MuscleGroup: "Back", Sets: 3, Reps: 12, RestTime: 60},
		}},
		{"Full Body B", []domain.Exercise{
			{ID: "lunges", Name: "Lunges", MuscleGroup: "Legs", Sets: 3, Reps: 10, RestTime: 60},
			{ID: "shoulder-press", Name: "Shoulder Press", MuscleGroup: "Shoulders", Sets: 3, Reps: 12, RestTime: 60},
			{ID: "plank", Name: "Plank", MuscleGroup: "Core", Sets: 3, Reps: 1, RestTime: 60},
		}},
	},
}

// buildSchedule lays out a 7-day week, spreading daysPerWeek workout days
// from the goal's templates and filling the rest with rest days. The result
// is deterministic for a given (goal, daysPerWeek) pair.
func buildSchedule(goal domain.FitnessGoal, daysPerWeek int) []domain.ScheduleDay {
	templates, ok := catalog[goal]
	if !ok {
		templates = catalog[domain.GoalGeneral]
	}

	schedule := make([]domain.ScheduleDay, 0, 7)
	workoutIdx := 0
	for day := 0; day < 7; day++ {
		// Spread workout days evenly across the week.
		if workoutIdx < daysPerWeek && day*daysPerWeek >= workoutIdx*7 {
			tmpl := templates[workoutIdx%len(templates)]
			schedule = append(schedule, domain.ScheduleDay{
				Name:      fmt.Sprintf("Day %d: %s", day+1, tmpl.name),
				RestDay:   false,
				Exercises: append([]domain.Exercise(nil), tmpl.exercises...),
			})
			workoutIdx++
		} else {
			schedule = append(schedule, domain.ScheduleDay{
				Name:    fmt.Sprintf("Day %d: Rest", day+1),
				RestDay: true,
			})
		}
	}
	return schedule
}
