package api

import (
	"net/http"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	planService service.PlanService,
	profileService service.ProfileService,
) {
	authHandler := NewAuthHandler(authService)
	sessionHandler := NewSessionHandler(workoutService, planService)
	planHandler := NewPlanHandler(planService)
	profileHandler := NewProfileHandler(profileService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Workout Session Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/session", sessionHandler.StartSession)
			workoutGroup.GET("/session", sessionHandler.GetSession)
			workoutGroup.DELETE("/session", sessionHandler.CancelSession)
			workoutGroup.POST("/session/next-set", sessionHandler.NextSet)
			workoutGroup.POST("/session/complete-exercise", sessionHandler.CompleteExercise)
			workoutGroup.POST("/session/rest", sessionHandler.StartRest)
			workoutGroup.POST("/session/complete", sessionHandler.CompleteWorkout)
			workoutGroup.POST("/session/pause", sessionHandler.PauseSession)
			workoutGroup.POST("/session/resume", sessionHandler.ResumeSession)

			workoutGroup.GET("/history", sessionHandler.GetHistory)
			workoutGroup.GET("/history/today", sessionHandler.GetTodayWorkouts)
			workoutGroup.GET("/stats", sessionHandler.GetStats)
		}

		// --- Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.GET("/current", planHandler.GetCurrentPlan)
			planGroup.PUT("/current", planHandler.SetCurrentPlan)
		}

		// --- Profile Routes ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.GET("/measurements", profileHandler.GetMeasurements)
			profileGroup.PUT("/measurements", profileHandler.UpdateMeasurements)
			profileGroup.POST("/photos/upload-url", profileHandler.RequestPhotoUpload)
			profileGroup.POST("/photos/confirm", profileHandler.ConfirmPhotoUpload)
		}
	}
}
