package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds plan service dependencies.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type GeneratePlanRequest struct {
	Goal         string `json:"goal"`         // Overrides profile goal when set
	FitnessLevel string `json:"fitnessLevel"` // Overrides profile level when set
	StartDate    string `json:"startDate"`    // "YYYY-MM-DD", defaults to today
}

type PlanResponse struct {
	ID               string    `json:"id"`
	Goal             string    `json:"goal"`
	PlanType         string    `json:"planType"`
	Preference       string    `json:"preference,omitempty"`
	StartDate        string    `json:"startDate"`
	EndDate          string    `json:"endDate"`
	FrequencyPerWeek int       `json:"frequencyPerWeek"`
	FitnessLevel     string    `json:"fitnessLevel"`
	CreatedAt        time.Time `json:"createdAt"`
}

type DailyEntryResponse struct {
	ID                  string               `json:"id"`
	PlanID              string               `json:"planId"`
	Date                string               `json:"date"`
	IsExerciseDay       bool                 `json:"isExerciseDay"`
	Exercises           []domain.RoutineItem `json:"exercises"`
	Diet                domain.DietPayload   `json:"diet"`
	IsExerciseCompleted bool                 `json:"isExerciseCompleted"`
	ExerciseCompletedAt *time.Time           `json:"exerciseCompletedAt,omitempty"`
	IsDietCompleted     bool                 `json:"isDietCompleted"`
	DietCompletedAt     *time.Time           `json:"dietCompletedAt,omitempty"`
}

// --- Handler Methods ---

// GeneratePlan creates a fresh 30-day plan for the authenticated user.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	// An empty body is allowed; every field falls back to the profile.
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), ownerID, req.Goal, req.FitnessLevel, req.StartDate)
	if err != nil {
		if errors.Is(err, service.ErrOwnerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// GetToday returns today's entry on the active plan.
func (h *PlanHandler) GetToday(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	entry, err := h.planService.GetTodayEntry(c.Request.Context(), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActivePlan), errors.Is(err, service.ErrNoEntryForDate):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load today's entry")
		}
		return
	}

	c.JSON(http.StatusOK, MapEntryToResponse(entry))
}

// GetCalendar returns the per-day status of the active plan.
func (h *PlanHandler) GetCalendar(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	days, err := h.planService.GetCalendar(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load calendar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetEquipment lists the equipment needed by one of the owner's plans.
func (h *PlanHandler) GetEquipment(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid plan ID format: %v", err))
		return
	}

	equipment, err := h.planService.GetPlanEquipment(c.Request.Context(), ownerID, planID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan equipment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"equipment": equipment})
}

// --- Mappers ---

func MapPlanToResponse(plan *domain.Plan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:               plan.ID.Hex(),
		Goal:             plan.Goal,
		PlanType:         plan.PlanType,
		Preference:       plan.Preference,
		StartDate:        plan.StartDate.Format("2006-01-02"),
		EndDate:          plan.EndDate.Format("2006-01-02"),
		FrequencyPerWeek: plan.FrequencyPerWeek,
		FitnessLevel:     plan.FitnessLevel,
		CreatedAt:        plan.CreatedAt,
	}
}

func MapEntryToResponse(entry *domain.DailyEntry) DailyEntryResponse {
	if entry == nil {
		return DailyEntryResponse{}
	}
	return DailyEntryResponse{
		ID:                  entry.ID.Hex(),
		PlanID:              entry.PlanID.Hex(),
		Date:                entry.Date.Format("2006-01-02"),
		IsExerciseDay:       entry.IsExerciseDay,
		Exercises:           entry.Exercises,
		Diet:                entry.Diet,
		IsExerciseCompleted: entry.IsExerciseCompleted,
		ExerciseCompletedAt: entry.ExerciseCompletedAt,
		IsDietCompleted:     entry.IsDietCompleted,
		DietCompletedAt:     entry.DietCompletedAt,
	}
}
