package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymsphere/fitness-app/internal/api"
	"gymsphere/fitness-app/internal/config"
	"gymsphere/fitness-app/internal/repository/mongo"
	"gymsphere/fitness-app/internal/service"
	"gymsphere/fitness-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting GymSphere Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureEntryIndexes(ctx, appDB.Collection("daily_entries"))
		mongo.EnsureCheckInIndexes(ctx, appDB.Collection("checkins"))
		mongo.EnsureNotificationIndexes(ctx, appDB.Collection("notifications"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	entryRepo := mongo.NewMongoEntryRepository(appDB)
	checkInRepo := mongo.NewMongoCheckInRepository(appDB)
	notificationRepo := mongo.NewMongoNotificationRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	productRepo := mongo.NewMongoProductRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	clock := service.NewRealClock()
	randSource := service.NewRandomSource()
	selector := service.NewContentSelector(exerciseRepo, randSource)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, progressRepo, clock)
	planService := service.NewPlanService(planRepo, entryRepo, userRepo, selector, clock)
	checkInService := service.NewCheckInService(entryRepo, checkInRepo, clock)
	streakService := service.NewStreakService(planRepo, entryRepo, userRepo, clock)
	notificationService := service.NewNotificationService(notificationRepo, planRepo, entryRepo, streakService, randSource)
	shopService := service.NewShopService(productRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, api.Services{
		Auth:         authService,
		User:         userService,
		Plan:         planService,
		CheckIn:      checkInService,
		Streak:       streakService,
		Notification: notificationService,
		Shop:         shopService,
		Exercise:     exerciseService,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
