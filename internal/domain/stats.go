package domain

// WorkoutStats is derived wholesale from the completed-workout history after
// every completion. It is never patched incrementally, so it can always be
// recomputed from history with identical results.
type WorkoutStats struct {
	TotalWorkouts  int `bson:"totalWorkouts" json:"totalWorkouts"`
	TotalMinutes   int `bson:"totalMinutes" json:"totalMinutes"`
	TotalExercises int `bson:"totalExercises" json:"totalExercises"`
	CurrentStreak  int `bson:"currentStreak" json:"currentStreak"`   // Consecutive-day streak ending today
	WeeklyWorkouts int `bson:"weeklyWorkouts" json:"weeklyWorkouts"` // Workouts in the trailing 7 days
	// StrengthIncrease is a deliberately simplistic proxy: two percent per
	// completed workout, capped at 50. Not a real strength calculation.
	StrengthIncrease int `bson:"strengthIncrease" json:"strengthIncrease"`
}
