package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string             `json:"name" binding:"required"`
	Email    string             `json:"email" binding:"required,email"`
	Password string             `json:"password" binding:"required,min=8"`
	Goal     domain.FitnessGoal `json:"goal" binding:"omitempty,oneof=muscle_gain weight_loss strength general_fitness"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID                   string                   `json:"id"`
	Name                 string                   `json:"name"`
	Email                string                   `json:"email"`
	Goal                 domain.FitnessGoal       `json:"goal,omitempty"`
	CurrentMeasurements  *domain.BodyMeasurements `json:"currentMeasurements,omitempty"`
	ProgressMeasurements *domain.BodyMeasurements `json:"progressMeasurements,omitempty"`
	CreatedAt            time.Time                `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MapUserToResponse converts a domain.User to UserResponse DTO.
func MapUserToResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:                   u.ID.Hex(),
		Name:                 u.Name,
		Email:                u.Email,
		Goal:                 u.Goal,
		CurrentMeasurements:  u.CurrentMeasurements,
		ProgressMeasurements: u.ProgressMeasurements,
		CreatedAt:            u.CreatedAt,
	}
}

// --- Handler Methods ---

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Goal)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}
