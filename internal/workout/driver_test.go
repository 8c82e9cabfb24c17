package workout

import (
	"context"
	"testing"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestDriver_RestCountsDownAndFlipsToActive(t *testing.T) {
	engine, _ := newTestEngine(t)
	driver := NewDriver(engine, time.Hour) // real ticker never fires; test drives Tick

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	engine.StartRest(2)

	driver.Tick()
	s := engine.CurrentSession()
	require.Equal(t, domain.SessionResting, s.State)
	require.Equal(t, 1, s.TimerSeconds)

	driver.Tick()
	s = engine.CurrentSession()
	require.Equal(t, domain.SessionActive, s.State, "reaching zero ends the rest")
	require.False(t, s.IsRestTimer)
	require.Equal(t, 0, s.TimerSeconds)
}

func TestDriver_ActiveCountsUp(t *testing.T) {
	engine, _ := newTestEngine(t)
	driver := NewDriver(engine, time.Hour)

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))

	driver.Tick()
	driver.Tick()
	driver.Tick()

	require.Equal(t, 3, engine.CurrentSession().TimerSeconds)
}

func TestDriver_IdleAndAbsentSessionsAreUntouched(t *testing.T) {
	engine, _ := newTestEngine(t)
	driver := NewDriver(engine, time.Hour)

	// No session at all.
	require.NotPanics(t, driver.Tick)

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	engine.UpdateTimer(7)
	engine.PauseWorkout()

	driver.Tick()
	driver.Tick()

	s := engine.CurrentSession()
	require.Equal(t, domain.SessionIdle, s.State)
	require.Equal(t, 7, s.TimerSeconds, "paused sessions receive no ticks")
}

func TestDriver_StartAndStopAreIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)
	driver := NewDriver(engine, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	driver.Start(ctx)
	driver.Start(ctx)
	driver.Stop()
	driver.Stop()

	// Restart after a stop works.
	driver.Start(ctx)
	driver.Stop()
}

func TestDriver_TickerDrivesACountdown(t *testing.T) {
	engine, _ := newTestEngine(t)
	driver := NewDriver(engine, 2*time.Millisecond)

	require.NoError(t, engine.StartWorkout("Upper Body", []domain.Exercise{exerciseA}))
	engine.StartRest(3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	driver.Start(ctx)
	defer driver.Stop()

	require.Eventually(t, func() bool {
		s := engine.CurrentSession()
		return s != nil && s.State == domain.SessionActive && !s.IsRestTimer
	}, time.Second, time.Millisecond, "countdown should reach zero and resume the exercise")
}
