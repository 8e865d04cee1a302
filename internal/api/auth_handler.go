package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/service"

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
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse excludes sensitive info like password hash.
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Age            int       `json:"age,omitempty"`
	HeightCm       float64   `json:"heightCm,omitempty"`
	WeightKg       float64   `json:"weightKg,omitempty"`
	TargetWeightKg *float64  `json:"targetWeightKg,omitempty"`
	Goal           string    `json:"goal,omitempty"`
	FitnessLevel   string    `json:"fitnessLevel,omitempty"`
	ActivityLevel  string    `json:"activityLevel,omitempty"`
	FreqPerWeek    int       `json:"freqPerWeek,omitempty"`
	EstimateDays   int       `json:"estimateDays,omitempty"`
	WorkoutStreak  int       `json:"workoutStreak"`
	DietStreak     int       `json:"dietStreak"`
	CreatedAt      time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrHashingFailed) {
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

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
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
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

// MapUserToResponse converts a domain User to a UserResponse DTO.
// Crucially excludes PasswordHash.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}

	return UserResponse{
		ID:             user.ID.Hex(),
		Name:           user.Name,
		Email:          user.Email,
		Age:            user.Age,
		HeightCm:       user.HeightCm,
		WeightKg:       user.WeightKg,
		TargetWeightKg: user.TargetWeightKg,
		Goal:           user.Goal,
		FitnessLevel:   user.FitnessLevel,
		ActivityLevel:  user.ActivityLevel,
		FreqPerWeek:    user.FreqPerWeek,
		EstimateDays:   user.EstimateDays,
		WorkoutStreak:  user.WorkoutStreak,
		DietStreak:     user.DietStreak,
		CreatedAt:      user.CreatedAt,
	}
}
