package workout

import (
	"sort"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
)

// ComputeStats derives WorkoutStats from the full completed-workout history.
// It is a pure function of (history, now) and is recomputed wholesale after
// every completion rather than patched incrementally, so persisted and
// reloaded histories always project to identical stats.
func ComputeStats(history []domain.CompletedWorkout, now time.Time) domain.WorkoutStats {
	stats := domain.WorkoutStats{
		TotalWorkouts:  len(history),
		WeeklyWorkouts: weeklyCount(history, now),
		CurrentStreak:  currentStreak(history, now),
	}
	for _, w := range history {
		stats.TotalMinutes += w.DurationMinutes
		stats.TotalExercises += w.ExercisesCompleted
	}

	// Two percent per workout, capped at 50. A deliberately naive proxy kept
	// for parity with the mobile app's display, not a training calculation.
	stats.StrengthIncrease = stats.TotalWorkouts * 2
	if stats.StrengthIncrease > 50 {
		stats.StrengthIncrease = 50
	}
	return stats
}

// weeklyCount counts history entries inside the trailing 7-day window,
// inclusive of the cutoff instant.
func weeklyCount(history []domain.CompletedWorkout, now time.Time) int {
	cutoff := now.AddDate(0, 0, -7)
	n := 0
	for _, w := range history {
		if !w.Date.Before(cutoff) {
			n++
		}
	}
	return n
}

// currentStreak walks the history newest-first and counts workouts while the
// i-th entry still lies within i calendar days of today. Several workouts on
// the same day all count, and each step may reach at most one day further
// back; the first wider hole breaks the streak.
func currentStreak(history []domain.CompletedWorkout, now time.Time) int {
	if len(history) == 0 {
		return 0
	}

	sorted := append([]domain.CompletedWorkout(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	today := startOfDay(now)
	streak := 0
	for _, w := range sorted {
		diff := daysBetween(startOfDay(w.Date), today)
		if diff <= streak {
			streak++
		} else {
			break
		}
	}
	return streak
}

// startOfDay truncates to local midnight.
func startOfDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// daysBetween returns the number of whole days between two local midnights.
func daysBetween(from, until time.Time) int {
	return int(until.Sub(from).Hours() / 24)
}
