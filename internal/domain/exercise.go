package domain

// Exercise is a single prescribed exercise inside a workout or plan day.
// Exercises are supplied by the plan layer and treated as immutable while a
// session is running; the session snapshots them at start, so later edits to
// a plan never touch an in-progress workout.
type Exercise struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroup string `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Back"
	Sets        int    `bson:"sets" json:"sets"`                                   // Prescribed number of sets
	Reps        int    `bson:"reps" json:"reps"`                                   // Prescribed reps per set
	RestTime    int    `bson:"restTime" json:"restTime"`                           // Rest between sets, in seconds
}
