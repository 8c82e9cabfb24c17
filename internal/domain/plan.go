package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessGoal tags a plan (and a user profile) with the outcome it targets.
type FitnessGoal string

const (
	GoalMuscleGain FitnessGoal = "muscle_gain"
	GoalWeightLoss FitnessGoal = "weight_loss"
	GoalStrength   FitnessGoal = "strength"
	GoalGeneral    FitnessGoal = "general_fitness"
)

// ScheduleDay is one day of a plan's weekly schedule. Rest days carry no
// exercises and do not count toward plan progress.
type ScheduleDay struct {
	Name      string     `bson:"name" json:"name"` // e.g., "Day 1: Upper Body"
	RestDay   bool       `bson:"restDay" json:"restDay"`
	Exercises []Exercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
}

// WorkoutPlan is a user's training plan. Exactly one plan per user may be
// current at a time; completing workouts moves its Progress toward 100.
type WorkoutPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Goal      FitnessGoal        `bson:"goal" json:"goal"`
	Schedule  []ScheduleDay      `bson:"schedule" json:"schedule"`
	Progress  float64            `bson:"progress" json:"progress"` // 0..100
	IsCurrent bool               `bson:"isCurrent" json:"isCurrent"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutDays returns the number of non-rest days in the schedule.
func (p *WorkoutPlan) WorkoutDays() int {
	n := 0
	for _, day := range p.Schedule {
		if !day.RestDay {
			n++
		}
	}
	return n
}
