package participant

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avolkov18/event-management-backend/internal/event"
	"github.com/avolkov18/event-management-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// Join Event - POST /events/:id/join
func (h *Handler) JoinEvent(c *gin.Context) {
	actorID, eventID, ok := actorAndEventID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.Join(eventID, actorID, ip); err != nil {
		writeMembershipError(c, err, "failed to join event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "you have joined the event"})
}

// ===========================
// Leave Event - POST /events/:id/leave
func (h *Handler) LeaveEvent(c *gin.Context) {
	actorID, eventID, ok := actorAndEventID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.Leave(eventID, actorID, ip); err != nil {
		writeMembershipError(c, err, "failed to leave event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "you have left the event"})
}

// ===========================
// List Participants - GET /events/:id/participants
func (h *Handler) ListParticipants(c *gin.Context) {
	actorID, eventID, ok := actorAndEventID(c)
	if !ok {
		return
	}

	infos, err := h.Service.ListParticipants(eventID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event does not exist"})
		case errors.Is(err, event.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not the owner of this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list participants"})
		}
		return
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Username)
	}

	c.JSON(http.StatusOK, gin.H{"participants": names})
}

func actorAndEventID(c *gin.Context) (actorID, eventID uint, ok bool) {
	actorID, ok = middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return 0, 0, false
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, 0, false
	}

	return actorID, uint(id), true
}

func writeMembershipError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, event.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event does not exist"})
	case errors.Is(err, ErrIsOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you are the owner of this event"})
	case errors.Is(err, ErrAlreadyJoined), errors.Is(err, ErrNotJoined):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
