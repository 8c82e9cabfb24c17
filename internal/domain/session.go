package domain

import "time"

// SessionState is the lifecycle state of a live workout session.
type SessionState string

const (
	// SessionIdle means the session is paused; no timer is counting.
	SessionIdle SessionState = "idle"
	// SessionActive means a set is being performed; the timer counts up.
	SessionActive SessionState = "active"
	// SessionResting means the rest period between sets; the timer counts down.
	SessionResting SessionState = "resting"
	// SessionCompleted is terminal. The session object is retained briefly so
	// a summary view can read it, then cleared.
	SessionCompleted SessionState = "completed"
)

// WorkoutSession is the one live workout. At most one exists per engine at any
// time; it is owned and mutated exclusively by the workout engine, external
// readers only ever see copies.
type WorkoutSession struct {
	ID          string     `bson:"_id" json:"id"` // Time-derived (unix milliseconds at start)
	WorkoutName string     `bson:"workoutName" json:"workoutName"`
	Exercises   []Exercise `bson:"exercises" json:"exercises"` // Snapshot taken at start

	// Cursor state. CurrentSet is 1-based and always reads as "the set you are
	// about to do": entering a rest period advances it first, so the UI can
	// show the upcoming set number during the countdown.
	CurrentExerciseIndex int `bson:"currentExerciseIndex" json:"currentExerciseIndex"`
	CurrentSet           int `bson:"currentSet" json:"currentSet"`
	TotalSets            int `bson:"totalSets" json:"totalSets"`

	StartTime    time.Time  `bson:"startTime" json:"startTime"`
	EndTime      *time.Time `bson:"endTime,omitempty" json:"endTime,omitempty"`
	TimerSeconds int        `bson:"timerSeconds" json:"timerSeconds"`
	IsRestTimer  bool       `bson:"isRestTimer" json:"isRestTimer"`

	CompletedExercises []string     `bson:"completedExercises" json:"completedExercises"` // Exercise IDs, in completion order
	State              SessionState `bson:"state" json:"state"`
}

// CompletedWorkout is the immutable record produced when a session reaches the
// completed state. History keeps these newest-first.
type CompletedWorkout struct {
	ID                 string    `bson:"id" json:"id"` // Same as the session ID
	WorkoutName        string    `bson:"workoutName" json:"workoutName"`
	Date               time.Time `bson:"date" json:"date"`
	DurationMinutes    int       `bson:"durationMinutes" json:"durationMinutes"`
	ExercisesCompleted int       `bson:"exercisesCompleted" json:"exercisesCompleted"`
	ExercisesPlanned   int       `bson:"exercisesPlanned" json:"exercisesPlanned"`
	CaloriesBurned     int       `bson:"caloriesBurned" json:"caloriesBurned"`
}

// WorkoutState is the durable per-user record: completed-workout history
// (newest-first) plus the live session, if any. Stats are not part of it;
// they are a pure projection and get recomputed on load.
type WorkoutState struct {
	CompletedWorkouts []CompletedWorkout `bson:"completedWorkouts" json:"completedWorkouts"`
	Session           *WorkoutSession    `bson:"session,omitempty" json:"session,omitempty"`
}
