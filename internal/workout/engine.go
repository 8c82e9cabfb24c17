package workout

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
)

// --- Error Definitions ---
var (
	ErrNoExercises       = errors.New("workout requires at least one exercise")
	ErrSessionInProgress = errors.New("a workout session is already in progress")
)

// StateStore persists the engine's durable state (history + live session).
// Implementations are already bound to one user. All calls are best-effort
// from the engine's point of view: a failing store never blocks a workout.
type StateStore interface {
	Load(ctx context.Context) (*domain.WorkoutState, error)
	Save(ctx context.Context, state *domain.WorkoutState) error
}

// ProgressBridge is notified after a workout reaches its terminal state. The
// engine calls it outside its own lock and swallows panics; bridge failures
// must never prevent or roll back a completion.
type ProgressBridge interface {
	WorkoutCompleted(ctx context.Context, completed domain.CompletedWorkout, history []domain.CompletedWorkout)
}

// Config tunes an Engine. Zero values fall back to defaults.
type Config struct {
	// ClearDelay is how long a completed session stays readable before it is
	// cleared. Defaults to 3 seconds.
	ClearDelay time.Duration
	// CaloriesPerMinute is the flat burn factor. Defaults to 8.
	CaloriesPerMinute float64
	// Now supplies the clock; defaults to time.Now. Tests inject their own.
	Now func() time.Time
}

// Engine owns the lifecycle of one live workout session plus the completed
// history derived from it. At most one session exists per engine; every
// operation and the timer tick serialize through one mutex, so no caller can
// observe a partially updated session.
//
// Operations other than StartWorkout are silent no-ops when no session is
// live; that tolerates double-taps and stale timers from the UI.
type Engine struct {
	mu      sync.Mutex
	session *domain.WorkoutSession
	history []domain.CompletedWorkout
	stats   domain.WorkoutStats

	store             StateStore
	bridge            ProgressBridge
	clearDelay        time.Duration
	caloriesPerMinute float64
	now               func() time.Time
	clearTimer        *time.Timer
}

// finalization carries terminal data out of the locked section so the bridge
// can run without holding the engine mutex.
type finalization struct {
	completed domain.CompletedWorkout
	history   []domain.CompletedWorkout
}

// NewEngine builds an engine, loading any persisted state from the store.
// Both store and bridge may be nil.
func NewEngine(store StateStore, bridge ProgressBridge, cfg Config) *Engine {
	e := &Engine{
		store:             store,
		bridge:            bridge,
		clearDelay:        cfg.ClearDelay,
		caloriesPerMinute: cfg.CaloriesPerMinute,
		now:               cfg.Now,
	}
	if e.clearDelay <= 0 {
		e.clearDelay = 3 * time.Second
	}
	if e.caloriesPerMinute <= 0 {
		e.caloriesPerMinute = 8
	}
	if e.now == nil {
		e.now = time.Now
	}

	if store != nil {
		state, err := store.Load(context.Background())
		if err != nil {
			log.Printf("WARN: Failed to load workout state, starting empty: %v", err)
		} else if state != nil {
			e.history = state.CompletedWorkouts
			e.session = state.Session
			// Stats are a pure projection; recompute instead of persisting.
			e.stats = ComputeStats(e.history, e.now())
		}
	}
	return e
}

// StartWorkout begins a new session with the given name and exercise list.
// The exercises are snapshotted; callers keep ownership of their slice.
func (e *Engine) StartWorkout(name string, exercises []domain.Exercise) error {
	if len(exercises) == 0 {
		return ErrNoExercises
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil && e.session.State != domain.SessionCompleted {
		return ErrSessionInProgress
	}
	// A completed session awaiting its clear delay is superseded immediately.
	if e.clearTimer != nil {
		e.clearTimer.Stop()
		e.clearTimer = nil
	}

	now := e.now()
	snapshot := make([]domain.Exercise, len(exercises))
	copy(snapshot, exercises)

	e.session = &domain.WorkoutSession{
		ID:                   strconv.FormatInt(now.UnixMilli(), 10),
		WorkoutName:          name,
		Exercises:            snapshot,
		CurrentExerciseIndex: 0,
		CurrentSet:           1,
		TotalSets:            snapshot[0].Sets,
		StartTime:            now,
		TimerSeconds:         0,
		IsRestTimer:          false,
		CompletedExercises:   []string{},
		State:                domain.SessionActive,
	}
	e.persistLocked()
	return nil
}

// NextSet finishes the current set. While sets remain it enters the rest
// period with the set counter already advanced, so observers always read
// CurrentSet as "the set about to be attempted". When the sets are exhausted
// it completes the exercise instead.
func (e *Engine) NextSet() {
	e.mu.Lock()
	var fin *finalization
	if s := e.session; s != nil && s.State != domain.SessionCompleted {
		if s.CurrentSet < s.TotalSets && s.CurrentExerciseIndex < len(s.Exercises) {
			rest := s.Exercises[s.CurrentExerciseIndex].RestTime
			s.State = domain.SessionResting
			s.TimerSeconds = rest
			s.IsRestTimer = true
			s.CurrentSet++
		} else {
			fin = e.completeExerciseLocked()
		}
	}
	e.mu.Unlock()
	e.fireBridge(fin)
}

// CompleteExercise records the current exercise as done and advances to the
// next one, or completes the whole workout when it was the last.
func (e *Engine) CompleteExercise() {
	e.mu.Lock()
	fin := e.completeExerciseLocked()
	e.mu.Unlock()
	e.fireBridge(fin)
}

// StartRest enters the rest countdown with the given number of seconds.
func (e *Engine) StartRest(seconds int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s := e.session; s != nil && s.State != domain.SessionCompleted {
		s.State = domain.SessionResting
		s.TimerSeconds = seconds
		s.IsRestTimer = true
	}
}

// CompleteWorkout forces the terminal transition regardless of remaining
// exercises. Normally reached through NextSet/CompleteExercise.
func (e *Engine) CompleteWorkout() {
	e.mu.Lock()
	fin := e.completeWorkoutLocked()
	e.mu.Unlock()
	e.fireBridge(fin)
}

// PauseWorkout freezes the session without touching counters or the timer
// value, so a resume continues exactly where the user left off.
func (e *Engine) PauseWorkout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s := e.session; s != nil &&
		(s.State == domain.SessionActive || s.State == domain.SessionResting) {
		s.State = domain.SessionIdle
	}
}

// ResumeWorkout leaves idle, restoring whichever timer direction was running
// before the pause.
func (e *Engine) ResumeWorkout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s := e.session; s != nil && s.State == domain.SessionIdle {
		if s.IsRestTimer {
			s.State = domain.SessionResting
		} else {
			s.State = domain.SessionActive
		}
	}
}

// CancelWorkout discards the session entirely. Nothing is recorded; the
// history is untouched.
func (e *Engine) CancelWorkout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return
	}
	if e.clearTimer != nil {
		e.clearTimer.Stop()
		e.clearTimer = nil
	}
	e.session = nil
	e.persistLocked()
}

// UpdateTimer stores the tick value supplied by the timer driver. A rest
// countdown hitting zero auto-resumes exercising; repeating the call at zero
// changes nothing further.
func (e *Engine) UpdateTimer(seconds int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.State == domain.SessionCompleted {
		return
	}
	s.TimerSeconds = seconds
	if seconds == 0 && s.IsRestTimer {
		s.IsRestTimer = false
		s.State = domain.SessionActive
	}
}

// --- Locked helpers ---

func (e *Engine) completeExerciseLocked() *finalization {
	s := e.session
	if s == nil || s.State == domain.SessionCompleted {
		return nil
	}

	// A cursor outside the exercise list means internal state went wrong;
	// end the workout gracefully instead of crashing the caller.
	if s.CurrentExerciseIndex < 0 || s.CurrentExerciseIndex >= len(s.Exercises) {
		log.Printf("WARN: exercise index %d out of range (%d exercises), forcing workout completion",
			s.CurrentExerciseIndex, len(s.Exercises))
		return e.completeWorkoutLocked()
	}

	s.CompletedExercises = append(s.CompletedExercises, s.Exercises[s.CurrentExerciseIndex].ID)

	if s.CurrentExerciseIndex+1 < len(s.Exercises) {
		s.CurrentExerciseIndex++
		next := s.Exercises[s.CurrentExerciseIndex]
		s.CurrentSet = 1
		s.TotalSets = next.Sets
		s.TimerSeconds = 0
		s.IsRestTimer = false
		s.State = domain.SessionActive
		return nil
	}
	// That was the last exercise.
	return e.completeWorkoutLocked()
}

func (e *Engine) completeWorkoutLocked() *finalization {
	s := e.session
	if s == nil || s.State == domain.SessionCompleted {
		return nil
	}

	end := e.now()
	minutes := int(math.Round(end.Sub(s.StartTime).Minutes()))
	completed := domain.CompletedWorkout{
		ID:                 s.ID,
		WorkoutName:        s.WorkoutName,
		Date:               end,
		DurationMinutes:    minutes,
		ExercisesCompleted: len(s.CompletedExercises),
		ExercisesPlanned:   len(s.Exercises),
		CaloriesBurned:     int(math.Round(float64(minutes) * e.caloriesPerMinute)),
	}

	// Newest first.
	e.history = append([]domain.CompletedWorkout{completed}, e.history...)
	e.stats = ComputeStats(e.history, end)

	endCopy := end
	s.EndTime = &endCopy
	s.State = domain.SessionCompleted

	e.persistLocked()
	e.scheduleClearLocked(s.ID)

	return &finalization{completed: completed, history: e.historyCopyLocked()}
}

// scheduleClearLocked arranges for the completed session to vanish after the
// clear delay, keeping it readable for a summary view in the meantime. The ID
// guard makes the callback a no-op if a new session started in between.
func (e *Engine) scheduleClearLocked(sessionID string) {
	if e.clearTimer != nil {
		e.clearTimer.Stop()
	}
	e.clearTimer = time.AfterFunc(e.clearDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.session != nil && e.session.ID == sessionID && e.session.State == domain.SessionCompleted {
			e.session = nil
			e.persistLocked()
		}
	})
}

func (e *Engine) persistLocked() {
	if e.store == nil {
		return
	}
	state := &domain.WorkoutState{
		CompletedWorkouts: e.historyCopyLocked(),
		Session:           e.sessionCopyLocked(),
	}
	if err := e.store.Save(context.Background(), state); err != nil {
		log.Printf("WARN: Failed to persist workout state: %v", err)
	}
}

func (e *Engine) fireBridge(fin *finalization) {
	if fin == nil || e.bridge == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: progress bridge panicked: %v", r)
		}
	}()
	e.bridge.WorkoutCompleted(context.Background(), fin.completed, fin.history)
}

func (e *Engine) historyCopyLocked() []domain.CompletedWorkout {
	return append([]domain.CompletedWorkout(nil), e.history...)
}

func (e *Engine) sessionCopyLocked() *domain.WorkoutSession {
	if e.session == nil {
		return nil
	}
	s := *e.session
	s.Exercises = append([]domain.Exercise(nil), e.session.Exercises...)
	s.CompletedExercises = append([]string(nil), e.session.CompletedExercises...)
	if e.session.EndTime != nil {
		end := *e.session.EndTime
		s.EndTime = &end
	}
	return &s
}

// --- Read accessors (snapshots) ---

// CurrentSession returns a copy of the live session, or nil when none exists.
func (e *Engine) CurrentSession() *domain.WorkoutSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionCopyLocked()
}

// History returns the completed workouts, newest first.
func (e *Engine) History() []domain.CompletedWorkout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.historyCopyLocked()
}

// Stats returns the most recently recomputed statistics.
func (e *Engine) Stats() domain.WorkoutStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// TodayWorkouts filters the history down to the current calendar day,
// local time.
func (e *Engine) TodayWorkouts() []domain.CompletedWorkout {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	y, m, d := now.Local().Date()
	var today []domain.CompletedWorkout
	for _, w := range e.history {
		wy, wm, wd := w.Date.Local().Date()
		if wy == y && wm == m && wd == d {
			today = append(today, w)
		}
	}
	return today
}

// WeeklyWorkouts counts workouts in the trailing seven days.
func (e *Engine) WeeklyWorkouts() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return weeklyCount(e.history, e.now())
}
