package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type GeneratePlanRequest struct {
	Name        string             `json:"name"`
	Goal        domain.FitnessGoal `json:"goal" binding:"required,oneof=muscle_gain weight_loss strength general_fitness"`
	DaysPerWeek int                `json:"daysPerWeek" binding:"omitempty,min=2,max=6"`
}

type SetCurrentPlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

type PlanResponse struct {
	Plan *domain.WorkoutPlan `json:"plan"`
}

// --- Handler Methods ---

// GeneratePlan creates a plan for the user's goal and makes it current.
// Generation is simulated and takes a fixed moment to respond.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID, req.Name, req.Goal, req.DaysPerWeek)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan.")
		return
	}

	c.JSON(http.StatusCreated, PlanResponse{Plan: plan})
}

// GetCurrentPlan returns the user's current plan, or a null plan if none.
func (h *PlanHandler) GetCurrentPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := h.planService.GetCurrentPlan(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load current plan.")
		return
	}

	c.JSON(http.StatusOK, PlanResponse{Plan: plan})
}

// SetCurrentPlan switches the user's current plan.
func (h *PlanHandler) SetCurrentPlan(c *gin.Context) {
	var req SetCurrentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	if err := h.planService.SetCurrentPlan(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to set current plan.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
