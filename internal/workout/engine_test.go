package workout

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"

	"github.com/stretchr/testify/require"
)

// fakeClock is a hand-driven clock for deterministic engine tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// memoryStore is an in-memory StateStore capturing every save.
type memoryStore struct {
	mu    sync.Mutex
	state *domain.WorkoutState
	saves int
}

func (s *memoryStore) Load(ctx context.Context) (*domain.WorkoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return &domain.WorkoutState{}, nil
	}
	return s.state, nil
}

func (s *memoryStore) Save(ctx context.Context, state *domain.WorkoutState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.saves++
	return nil
}

func (s *memoryStore) snapshot() *domain.WorkoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// recordingBridge captures the finalization it was handed.
type recordingBridge struct {
	mu        sync.Mutex
	calls     int
	completed domain.CompletedWorkout
	history   []domain.CompletedWorkout
}

func (b *recordingBridge) WorkoutCompleted(ctx context.Context, completed domain.CompletedWorkout, history []domain.CompletedWorkout) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	b.completed = completed
	b.history = history
}

// panickingBridge blows up on every call.
type panickingBridge struct{}

func (panickingBridge) WorkoutCompleted(ctx context.Context, completed domain.CompletedWorkout, history []domain.CompletedWorkout) {
	panic("bridge exploded")
}

var (
	exerciseA = domain.Exercise{ID: "push-ups", Name: "Push Ups", MuscleGroup: "Chest", Sets: 2, Reps: 10, RestTime: 30}
	exerciseB = domain.Exercise{ID: "squats", Name: "Squats", MuscleGroup: "Legs", Sets: 1, Reps: 12, RestTime: 60}
)

func newTestEngine(t *testing.T) (*Engine, *fakeClock) {
	t.Helper()
	clock := newFakeClock(time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local))
	engine := NewEngine(nil, nil, Config{
		ClearDelay: 20 * time.Millisecond,
		Now:        clock.Now,
	})
	return engine, clock
}

func TestStartWorkout_RequiresExercises(t *testing.T) {
	engine, _ := newTestEngine(t)

	err := engine.StartWorkout("Rest Day", nil)
	require.ErrorIs(t, err, ErrNoExercises)
	require.Nil(t, engine.CurrentSession())
}

func TestStartWorkout_InitialState(t *testing.T) {
	engine, clock := newTestEngine(t)

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA, exerciseB}))

	s := engine.CurrentSession()
	require.NotNil(t, s)
	require.Equal(t, domain.SessionActive, s.State)
	require.Equal(t, "Upper Body", s.WorkoutName)
	require.Equal(t, 0, s.CurrentExerciseIndex)
	require.Equal(t, 1, s.CurrentSet)
	require.Equal(t, 2, s.TotalSets)
	require.Equal(t, 0, s.TimerSeconds)
	require.False(t, s.IsRestTimer)
	require.Empty(t, s.CompletedExercises)
	require.Equal(t, clock.Now(), s.StartTime)
	require.NotEmpty(t, s.ID)
}

func TestStartWorkout_SnapshotsExercises(t *testing.T) {
	engine, _ := newTestEngine(t)

	exercises := []domain.Exercise{exerciseA}
	require.NoError(t, engine.StartWorkout("Upper Body", exercises))

	// Mutating the caller's slice must not reach the live session.
	exercises[0].Sets = 99
	s := engine.CurrentSession()
	require.Equal(t, 2, s.Exercises[0].Sets)
}

func TestStartWorkout_RejectsSecondSession(t *testing.T) {
	engine, _ := newTestEngine(t)

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	err := engine.StartWorkout("Leg Day", []domain.Exercise{exerciseB})
	require.ErrorIs(t, err, ErrSessionInProgress)
}

func TestNextSet_EntersRestWithAdvancedCounter(t *testing.T) {
	engine, _ := newTestEngine(t)
	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA, exerciseB}))

	engine.NextSet()

	s := engine.CurrentSession()
	require.Equal(t, domain.SessionResting, s.State)
	require.Equal(t, 2, s.CurrentSet, "rest shows the set about to be attempted")
	require.Equal(t, exerciseA.RestTime, s.TimerSeconds)
	require.True(t, s.IsRestTimer)
}

func TestNextSet_ExhaustedSetsAdvanceToNextExercise(t *testing.T) {
	engine, _ := newTestEngine(t)
	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA, exerciseB}))

	engine.NextSet() // set 1 done, resting before set 2
	engine.NextSet() // set 2 is the last: completes exercise A

	s := engine.CurrentSession()
	require.Equal(t, domain.SessionActive, s.State)
	require.Equal(t, 1, s.CurrentExerciseIndex)
	require.Equal(t, 1, s.CurrentSet)
	require.Equal(t, 1, s.TotalSets)
	require.Equal(t, 0, s.TimerSeconds)
	require.False(t, s.IsRestTimer)
	require.Equal(t, []string{exerciseA.ID}, s.CompletedExercises)
}

func TestNextSet_InvariantsHoldThroughout(t *testing.T) {
	engine, _ := newTestEngine(t)

	exercises := []domain.Exercise{exerciseA, exerciseB,
		{ID: "plank", Name: "Plank", Sets: 3, Reps: 1, RestTime: 45}}
	require.NoError(t, engine.StartWorkout("Full Body", exercises))

	for i := 0; i < 50; i++ {
		s := engine.CurrentSession()
		if s == nil || s.State == domain.SessionCompleted {
			break
		}
		require.GreaterOrEqual(t, s.CurrentSet, 1)
		require.LessOrEqual(t, s.CurrentSet, s.TotalSets)
		require.GreaterOrEqual(t, s.CurrentExerciseIndex, 0)
		require.Less(t, s.CurrentExerciseIndex, len(s.Exercises))
		engine.NextSet()
	}

	require.Len(t, engine.History(), 1)
}

func TestCompleteExercise_RunsToCompletion(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local))
	store := &memoryStore{}
	engine := NewEngine(store, nil, Config{ClearDelay: time.Hour, Now: clock.Now})

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA, exerciseB}))
	clock.Advance(40 * time.Minute)

	engine.CompleteExercise()
	engine.CompleteExercise()

	s := engine.CurrentSession()
	require.NotNil(t, s, "completed session stays readable during the clear delay")
	require.Equal(t, domain.SessionCompleted, s.State)
	require.NotNil(t, s.EndTime)

	history := engine.History()
	require.Len(t, history, 1)
	record := history[0]
	require.Equal(t, s.ID, record.ID)
	require.Equal(t, 2, record.ExercisesCompleted)
	require.Equal(t, 2, record.ExercisesPlanned)
	require.Equal(t, 40, record.DurationMinutes)
	require.Equal(t, 320, record.CaloriesBurned) // 40 minutes at 8 kcal/min

	stats := engine.Stats()
	require.Equal(t, 1, stats.TotalWorkouts)
	require.Equal(t, 40, stats.TotalMinutes)
	require.Equal(t, 2, stats.TotalExercises)
}

func TestCompleteWorkout_SessionClearsAfterDelay(t *testing.T) {
	engine, _ := newTestEngine(t)
	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))

	engine.CompleteWorkout()
	require.NotNil(t, engine.CurrentSession())

	require.Eventually(t, func() bool {
		return engine.CurrentSession() == nil
	}, time.Second, 5*time.Millisecond)

	// History survives the teardown.
	require.Len(t, engine.History(), 1)
}

func TestCancelWorkout_LeavesNoTrace(t *testing.T) {
	engine, _ := newTestEngine(t)
	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	engine.NextSet()

	engine.CancelWorkout()

	require.Nil(t, engine.CurrentSession())
	require.Empty(t, engine.History())
	require.Equal(t, 0, engine.Stats().TotalWorkouts)

	// A fresh session is allowed immediately.
	require.NoError(t, engine.StartWorkout("Leg Day", []domain.Exercise{exerciseB}))
}

func TestUpdateTimer_ZeroDuringRestResumesExercise(t *testing.T) {
	engine, _ := newTestEngine(t)
	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	engine.StartRest(5)

	engine.UpdateTimer(0)

	s := engine.CurrentSession()
	require.Equal(t, domain.SessionActive, s.State)
	require.False(t, s.IsRestTimer)
	require.Equal(t, 0, s.TimerSeconds)

	// Repeating the zero tick changes nothing further.
	engine.UpdateTimer(0)
	s = engine.CurrentSession()
	require.Equal(t, domain.SessionActive, s.State)
	require.False(t, s.IsRestTimer)
}

func TestPauseResume_RestoresTimerDirection(t *testing.T) {
	engine, _ := newTestEngine(t)
	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))

	// Pause while exercising.
	engine.UpdateTimer(12)
	engine.PauseWorkout()
	s := engine.CurrentSession()
	require.Equal(t, domain.SessionIdle, s.State)
	require.Equal(t, 12, s.TimerSeconds, "pause keeps the timer value")

	engine.ResumeWorkout()
	require.Equal(t, domain.SessionActive, engine.CurrentSession().State)

	// Pause while resting.
	engine.StartRest(30)
	engine.PauseWorkout()
	require.Equal(t, domain.SessionIdle, engine.CurrentSession().State)

	engine.ResumeWorkout()
	s = engine.CurrentSession()
	require.Equal(t, domain.SessionResting, s.State)
	require.True(t, s.IsRestTimer)
	require.Equal(t, 30, s.TimerSeconds)
}

func TestOperations_NoOpWithoutSession(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.NextSet()
	engine.CompleteExercise()
	engine.StartRest(30)
	engine.CompleteWorkout()
	engine.PauseWorkout()
	engine.ResumeWorkout()
	engine.CancelWorkout()
	engine.UpdateTimer(5)

	require.Nil(t, engine.CurrentSession())
	require.Empty(t, engine.History())
}

func TestEngine_LoadsPersistedState(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local)
	store := &memoryStore{state: &domain.WorkoutState{
		CompletedWorkouts: []domain.CompletedWorkout{
			{ID: "2", WorkoutName: "Leg Day", Date: now, DurationMinutes: 30, ExercisesCompleted: 3},
			{ID: "1", WorkoutName: "Upper Body", Date: now.AddDate(0, 0, -1), DurationMinutes: 45, ExercisesCompleted: 4},
		},
	}}
	clock := newFakeClock(now)

	engine := NewEngine(store, nil, Config{Now: clock.Now})

	require.Len(t, engine.History(), 2)
	stats := engine.Stats()
	require.Equal(t, 2, stats.TotalWorkouts)
	require.Equal(t, 75, stats.TotalMinutes)
	require.Equal(t, 7, stats.TotalExercises)
	require.Equal(t, 2, stats.CurrentStreak)
}

func TestEngine_PersistedStateRoundTripsThroughJSON(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local))
	store := &memoryStore{}
	engine := NewEngine(store, nil, Config{ClearDelay: time.Hour, Now: clock.Now})

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA, exerciseB}))
	clock.Advance(25 * time.Minute)
	engine.CompleteExercise()
	engine.CompleteExercise()

	saved := store.snapshot()
	require.NotNil(t, saved)

	// Serialize and reload as a restart would.
	raw, err := json.Marshal(saved)
	require.NoError(t, err)
	var restored domain.WorkoutState
	require.NoError(t, json.Unmarshal(raw, &restored))

	reloaded := NewEngine(&memoryStore{state: &restored}, nil, Config{Now: clock.Now})
	require.Equal(t, engine.Stats(), reloaded.Stats(), "recomputed stats must match after reload")

	history := reloaded.History()
	require.Len(t, history, 1)
	require.Equal(t, engine.History()[0].ID, history[0].ID)
	require.Equal(t, engine.History()[0].DurationMinutes, history[0].DurationMinutes)
	require.Equal(t, engine.History()[0].CaloriesBurned, history[0].CaloriesBurned)
}

func TestCompleteWorkout_BridgeReceivesTerminalData(t *testing.T) {
	bridge := &recordingBridge{}
	clock := newFakeClock(time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local))
	engine := NewEngine(nil, bridge, Config{ClearDelay: time.Hour, Now: clock.Now})

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	engine.CompleteExercise()

	bridge.mu.Lock()
	defer bridge.mu.Unlock()
	require.Equal(t, 1, bridge.calls)
	require.Equal(t, "Upper Body", bridge.completed.WorkoutName)
	require.Len(t, bridge.history, 1)
}

func TestCompleteWorkout_BridgePanicDoesNotAbortCompletion(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local))
	engine := NewEngine(nil, panickingBridge{}, Config{ClearDelay: time.Hour, Now: clock.Now})

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	require.NotPanics(t, func() { engine.CompleteExercise() })

	require.Len(t, engine.History(), 1)
	require.Equal(t, domain.SessionCompleted, engine.CurrentSession().State)
}

func TestStartWorkout_SupersedesPendingClear(t *testing.T) {
	engine, _ := newTestEngine(t)
	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	engine.CompleteWorkout()

	// Start a new session before the clear delay fires; the stale timer must
	// not wipe it.
	require.NoError(t, engine.StartWorkout("Leg Day", []domain.Exercise{exerciseB}))

	time.Sleep(60 * time.Millisecond)
	s := engine.CurrentSession()
	require.NotNil(t, s)
	require.Equal(t, "Leg Day", s.WorkoutName)
	require.Equal(t, domain.SessionActive, s.State)
}
