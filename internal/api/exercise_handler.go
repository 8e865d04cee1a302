package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gymsphere/fitness-app/internal/repository"
	"gymsphere/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type MediaUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// List returns catalog exercises, optionally filtered by ?tag=,
// ?exclude= (comma-separated) and ?bodyweight=true.
func (h *ExerciseHandler) List(c *gin.Context) {
	filter := repository.ContentFilter{
		Tag:            c.Query("tag"),
		BodyweightOnly: c.Query("bodyweight") == "true",
	}
	if exclude := c.Query("exclude"); exclude != "" {
		filter.ExcludeTags = strings.Split(exclude, ",")
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load exercises")
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

// Get returns one catalog exercise by id.
func (h *ExerciseHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid exercise ID format: %v", err))
		return
	}

	ex, err := h.exerciseService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load exercise")
		return
	}

	c.JSON(http.StatusOK, ex)
}

// GetDemoMedia returns a short-lived download URL for the exercise's
// demonstration clip.
func (h *ExerciseHandler) GetDemoMedia(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid exercise ID format: %v", err))
		return
	}

	url, err := h.exerciseService.DemoMediaURL(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrNoDemoMedia):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate media URL")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// RequestMediaUpload issues a presigned PUT slot for a new demo clip.
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ticket, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrBadContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}
