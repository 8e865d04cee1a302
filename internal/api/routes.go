package api

import (
	"net/http"

	"gymsphere/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles every service the HTTP layer depends on.
type Services struct {
	Auth         service.AuthService
	User         service.UserService
	Plan         service.PlanService
	CheckIn      service.CheckInService
	Streak       service.StreakService
	Notification service.NotificationService
	Shop         service.ShopService
	Exercise     service.ExerciseService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svcs Services) {
	authHandler := NewAuthHandler(svcs.Auth)
	userHandler := NewUserHandler(svcs.User)
	planHandler := NewPlanHandler(svcs.Plan)
	checkInHandler := NewCheckInHandler(svcs.CheckIn, svcs.Streak)
	notificationHandler := NewNotificationHandler(svcs.Notification)
	shopHandler := NewShopHandler(svcs.Shop, svcs.User)
	exerciseHandler := NewExerciseHandler(svcs.Exercise)

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
		// --- Profile & Progress ---
		protected.GET("/me", userHandler.GetProfile)
		protected.PUT("/me", userHandler.UpdateProfile)
		protected.POST("/progress", userHandler.LogProgress)
		protected.GET("/progress", userHandler.ListProgress)

		// --- Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.GET("/today", planHandler.GetToday)
			planGroup.GET("/calendar", planHandler.GetCalendar)
			planGroup.GET("/:planId/equipment", planHandler.GetEquipment)
		}

		// --- Check-ins & Streaks ---
		protected.POST("/entries/:entryId/checkin", checkInHandler.RecordCheckIn)
		protected.GET("/streaks", checkInHandler.GetStreaks)

		// --- Notifications ---
		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.List)
			notificationGroup.POST("/:id/read", notificationHandler.MarkRead)
			notificationGroup.POST("/read-all", notificationHandler.MarkAllRead)
		}

		// --- Shop ---
		protected.GET("/shop/recommendations", shopHandler.Recommend)

		// --- Exercise catalog & demo media ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.GET("/:id", exerciseHandler.Get)
			exerciseGroup.GET("/:id/media", exerciseHandler.GetDemoMedia)
			exerciseGroup.POST("/media-upload", exerciseHandler.RequestMediaUpload)
		}
	}
}
