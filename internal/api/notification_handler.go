package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler holds the notification service dependency.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type NotificationResponse struct {
	ID        string                  `json:"id"`
	Kind      domain.NotificationKind `json:"kind"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Payload   map[string]interface{}  `json:"payload,omitempty"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt time.Time               `json:"createdAt"`
}

// List evaluates the trigger engine for the current wall clock, then
// returns the owner's feed. Trigger evaluation failing does not block
// the feed.
func (h *NotificationHandler) List(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if _, err := h.notificationService.EvaluateTriggers(c.Request.Context(), ownerID, time.Now().UTC()); err != nil {
		log.Printf("ERROR: notification trigger evaluation for %s: %v", ownerID.Hex(), err)
	}

	notifications, err := h.notificationService.List(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load notifications")
		return
	}

	resp := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, MapNotificationToResponse(&notifications[i]))
	}
	c.JSON(http.StatusOK, gin.H{"notifications": resp})
}

// MarkRead marks a single notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid notification ID format: %v", err))
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), ownerID, id); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to mark notification read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MarkAllRead marks the owner's whole feed as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), ownerID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to mark notifications read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func MapNotificationToResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.Hex(),
		Kind:      n.Kind,
		Title:     n.Title,
		Message:   n.Message,
		Payload:   n.Payload,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
