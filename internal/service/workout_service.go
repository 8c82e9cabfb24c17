package service

import (
	"context"
	"sync"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/config"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/repository"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/workout"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutService hands out one workout engine per user. Engines are created
// lazily on first use, loading that user's persisted state, and each gets its
// own timer driver so a live session keeps ticking between HTTP requests.
type WorkoutService interface {
	EngineFor(userID primitive.ObjectID) *workout.Engine
	Close()
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	stateRepo      repository.WorkoutStateRepository
	planService    PlanService
	profileService ProfileService
	cfg            config.WorkoutConfig

	mu      sync.Mutex
	engines map[primitive.ObjectID]*engineEntry
	ctx     context.Context
	cancel  context.CancelFunc
}

type engineEntry struct {
	engine *workout.Engine
	driver *workout.Driver
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(stateRepo repository.WorkoutStateRepository, planService PlanService, profileService ProfileService, cfg config.WorkoutConfig) WorkoutService {
	ctx, cancel := context.WithCancel(context.Background())
	return &workoutService{
		stateRepo:      stateRepo,
		planService:    planService,
		profileService: profileService,
		cfg:            cfg,
		engines:        make(map[primitive.ObjectID]*engineEntry),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// EngineFor returns the user's engine, constructing it on first use.
func (s *workoutService) EngineFor(userID primitive.ObjectID) *workout.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.engines[userID]; ok {
		return entry.engine
	}

	bridge := workout.NewPlanProgressBridge(
		&userPlanStore{plans: s.planService, userID: userID},
		&userProfileStore{profile: s.profileService, userID: userID},
	)
	engine := workout.NewEngine(
		&userStateStore{repo: s.stateRepo, userID: userID},
		bridge,
		workout.Config{
			ClearDelay:        s.cfg.ClearDelay,
			CaloriesPerMinute: s.cfg.CaloriesPerMinute,
		},
	)
	driver := workout.NewDriver(engine, s.cfg.TickInterval)
	driver.Start(s.ctx)

	s.engines[userID] = &engineEntry{engine: engine, driver: driver}
	return engine
}

// Close stops every timer driver. Engines stay readable but stop ticking.
func (s *workoutService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
	for _, entry := range s.engines {
		entry.driver.Stop()
	}
}

// --- Per-user adapters over the shared services ---

// userStateStore binds the state repository to one user.
type userStateStore struct {
	repo   repository.WorkoutStateRepository
	userID primitive.ObjectID
}

func (s *userStateStore) Load(ctx context.Context) (*domain.WorkoutState, error) {
	return s.repo.Load(ctx, s.userID)
}

func (s *userStateStore) Save(ctx context.Context, state *domain.WorkoutState) error {
	return s.repo.Save(ctx, s.userID, state)
}

// userPlanStore exposes the plan service to the progress bridge for one user.
type userPlanStore struct {
	plans  PlanService
	userID primitive.ObjectID
}

func (s *userPlanStore) CurrentPlan(ctx context.Context) (*domain.WorkoutPlan, error) {
	return s.plans.GetCurrentPlan(ctx, s.userID)
}

func (s *userPlanStore) UpdateProgress(ctx context.Context, planID primitive.ObjectID, percent float64) error {
	return s.plans.UpdateProgress(ctx, planID, percent)
}

// userProfileStore exposes the profile service to the progress bridge for one
// user.
type userProfileStore struct {
	profile ProfileService
	userID  primitive.ObjectID
}

func (s *userProfileStore) CurrentMeasurements(ctx context.Context) (*domain.BodyMeasurements, error) {
	return s.profile.GetCurrentMeasurements(ctx, s.userID)
}

func (s *userProfileStore) GenerateProgressMeasurements(ctx context.Context, current domain.BodyMeasurements, goal domain.FitnessGoal, percent float64) (*domain.BodyMeasurements, error) {
	return s.profile.GenerateProgressMeasurements(ctx, s.userID, current, goal, percent)
}
