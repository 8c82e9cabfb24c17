package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

type UpdateMeasurementsRequest struct {
	Shoulders float64 `json:"shoulders" binding:"required,gt=0"`
	Chest     float64 `json:"chest" binding:"required,gt=0"`
	Arms      float64 `json:"arms" binding:"required,gt=0"`
	Waist     float64 `json:"waist" binding:"required,gt=0"`
	Legs      float64 `json:"legs" binding:"required,gt=0"`
}

type MeasurementsResponse struct {
	Measurements *domain.BodyMeasurements `json:"measurements"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmPhotoRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
	FileName  string `json:"fileName"`
}

// --- Handler Methods ---

// GetProfile returns the caller's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetMeasurements returns the caller's current measurements (null when never
// recorded).
func (h *ProfileHandler) GetMeasurements(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	m, err := h.profileService.GetCurrentMeasurements(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load measurements.")
		}
		return
	}

	c.JSON(http.StatusOK, MeasurementsResponse{Measurements: m})
}

// UpdateMeasurements stores new current measurements.
func (h *ProfileHandler) UpdateMeasurements(c *gin.Context) {
	var req UpdateMeasurementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	m := domain.BodyMeasurements{
		Shoulders: req.Shoulders,
		Chest:     req.Chest,
		Arms:      req.Arms,
		Waist:     req.Waist,
		Legs:      req.Legs,
	}
	if err := h.profileService.UpdateMeasurements(c.Request.Context(), userID, m); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update measurements.")
		}
		return
	}

	c.JSON(http.StatusOK, MeasurementsResponse{Measurements: &m})
}

// RequestPhotoUpload returns a presigned URL for a progress photo.
func (h *ProfileHandler) RequestPhotoUpload(c *gin.Context) {
	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	resp, err := h.profileService.RequestPhotoUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImageType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL.")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmPhotoUpload records photo metadata after the client uploaded it.
func (h *ProfileHandler) ConfirmPhotoUpload(c *gin.Context) {
	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.profileService.ConfirmPhotoUpload(c.Request.Context(), userID, req.ObjectKey, req.FileName); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
