package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckInHandler holds check-in and streak service dependencies.
type CheckInHandler struct {
	checkInService service.CheckInService
	streakService  service.StreakService
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(checkInService service.CheckInService, streakService service.StreakService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService, streakService: streakService}
}

type CheckInRequest struct {
	Kind string `json:"kind" binding:"required,oneof=exercise diet"`
	Note string `json:"note"`
}

type CheckInResponse struct {
	Entry   DailyEntryResponse `json:"entry"`
	Streaks service.Streaks    `json:"streaks"`
}

// RecordCheckIn marks today's exercise or diet as done and returns the
// refreshed entry plus the recomputed streaks.
func (h *CheckInHandler) RecordCheckIn(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	entryID, err := primitive.ObjectIDFromHex(c.Param("entryId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid entry ID format: %v", err))
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.checkInService.RecordCheckIn(c.Request.Context(), ownerID, entryID, domain.CheckInKind(req.Kind), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEntryNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidCheckInKind), errors.Is(err, service.ErrRestDayCheckIn):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record check-in")
		}
		return
	}

	streaks, err := h.streakService.ComputeStreaks(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to recompute streaks")
		return
	}

	c.JSON(http.StatusOK, CheckInResponse{
		Entry:   MapEntryToResponse(entry),
		Streaks: streaks,
	})
}

// GetStreaks returns the owner's current streak counters.
func (h *CheckInHandler) GetStreaks(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	streaks, err := h.streakService.ComputeStreaks(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute streaks")
		return
	}

	c.JSON(http.StatusOK, streaks)
}
