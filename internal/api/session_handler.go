package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/service"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/workout"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the workout session engine over HTTP. Every route
// resolves the caller's engine first; the engine's no-op semantics for absent
// sessions mean most control endpoints can't fail once authenticated.
type SessionHandler struct {
	workoutService service.WorkoutService
	planService    service.PlanService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(workoutService service.WorkoutService, planService service.PlanService) *SessionHandler {
	return &SessionHandler{
		workoutService: workoutService,
		planService:    planService,
	}
}

// --- Request/Response Structs ---

// StartSessionRequest starts a workout either from an explicit exercise list
// or from a named day of the user's current plan.
type StartSessionRequest struct {
	WorkoutName string            `json:"workoutName" binding:"required"`
	Exercises   []domain.Exercise `json:"exercises"`
	PlanDay     string            `json:"planDay"` // Alternative to Exercises
}

type StartRestRequest struct {
	Seconds int `json:"seconds" binding:"required,min=1"`
}

type SessionResponse struct {
	Session *domain.WorkoutSession `json:"session"`
}

type StatsResponse struct {
	Stats domain.WorkoutStats `json:"stats"`
}

type HistoryResponse struct {
	Workouts []domain.CompletedWorkout `json:"workouts"`
}

// --- Handler Methods ---

// StartSession begins a new workout session.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercises := req.Exercises
	if len(exercises) == 0 && req.PlanDay != "" {
		exercises, err = h.exercisesForPlanDay(c, req.PlanDay)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	engine := h.workoutService.EngineFor(userID)
	if err := engine.StartWorkout(req.WorkoutName, exercises); err != nil {
		switch {
		case errors.Is(err, workout.ErrNoExercises):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, workout.ErrSessionInProgress):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to start workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Session: engine.CurrentSession()})
}

// exercisesForPlanDay pulls the exercise list from the named day of the
// user's current plan. Rest days have no exercises, so starting one fails
// upstream with the engine's empty-exercises error message left intact.
func (h *SessionHandler) exercisesForPlanDay(c *gin.Context, dayName string) ([]domain.Exercise, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return nil, err
	}
	plan, err := h.planService.GetCurrentPlan(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("no current plan to start a workout from")
	}
	for _, day := range plan.Schedule {
		if day.Name == dayName {
			if day.RestDay {
				return nil, errors.New("cannot start a workout on a rest day")
			}
			return day.Exercises, nil
		}
	}
	return nil, fmt.Errorf("plan has no day named %q", dayName)
}

// GetSession returns the live session, if any.
func (h *SessionHandler) GetSession(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: engine.CurrentSession()})
}

// NextSet finishes the current set, entering rest or completing the exercise.
func (h *SessionHandler) NextSet(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	engine.NextSet()
	c.JSON(http.StatusOK, SessionResponse{Session: engine.CurrentSession()})
}

// CompleteExercise marks the current exercise done.
func (h *SessionHandler) CompleteExercise(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	engine.CompleteExercise()
	c.JSON(http.StatusOK, SessionResponse{Session: engine.CurrentSession()})
}

// StartRest enters an explicit rest countdown.
func (h *SessionHandler) StartRest(c *gin.Context) {
	var req StartRestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	engine.StartRest(req.Seconds)
	c.JSON(http.StatusOK, SessionResponse{Session: engine.CurrentSession()})
}

// CompleteWorkout forces the terminal transition.
func (h *SessionHandler) CompleteWorkout(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	engine.CompleteWorkout()
	c.JSON(http.StatusOK, SessionResponse{Session: engine.CurrentSession()})
}

// PauseSession pauses the session.
func (h *SessionHandler) PauseSession(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	engine.PauseWorkout()
	c.JSON(http.StatusOK, SessionResponse{Session: engine.CurrentSession()})
}

// ResumeSession resumes a paused session.
func (h *SessionHandler) ResumeSession(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	engine.ResumeWorkout()
	c.JSON(http.StatusOK, SessionResponse{Session: engine.CurrentSession()})
}

// CancelSession discards the session without recording anything.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	engine.CancelWorkout()
	c.Status(http.StatusNoContent)
}

// GetHistory returns completed workouts, newest first.
func (h *SessionHandler) GetHistory(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Workouts: engine.History()})
}

// GetTodayWorkouts returns workouts completed on the current calendar day.
func (h *SessionHandler) GetTodayWorkouts(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Workouts: engine.TodayWorkouts()})
}

// GetStats returns the derived workout statistics.
func (h *SessionHandler) GetStats(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, StatsResponse{Stats: engine.Stats()})
}

// engine resolves the authenticated caller's engine, aborting on bad tokens.
func (h *SessionHandler) engine(c *gin.Context) (*workout.Engine, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return nil, false
	}
	return h.workoutService.EngineFor(userID), true
}
