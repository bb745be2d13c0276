package event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avolkov18/event-management-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	e, err := h.Service.CreateEvent(&req, actorID, ip)
	if err != nil {
		switch {
		case errors.Is(err, ErrDescriptionTooShort),
			errors.Is(err, ErrLocationTooShort),
			errors.Is(err, ErrInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "event added", "event": e})
}

// ===========================
// Get Event - GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	e, err := h.Service.GetEventByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// List Events - GET /events?order=&offset=
func (h *Handler) ListEvents(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	order := c.Query("order")

	// Missing or malformed offsets fall back to 0.
	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset <= 0 {
		offset = 0
	}

	items, err := h.Service.ListEvents(actorID, order, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingOrder), errors.Is(err, ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": items})
}

// ===========================
// Update Event - PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "required field is empty"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.UpdateEvent(id, &req, actorID, ip); err != nil {
		writeOwnershipError(c, err, "failed to update event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event updated"})
}

// ===========================
// Delete Event - DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.DeleteEvent(id, actorID, ip); err != nil {
		writeOwnershipError(c, err, "failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// ===========================
// Event Stats - GET /events/stats
func (h *Handler) GetStats(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	stats, err := h.Service.GetStats(actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// eventIDParam parses the :id path segment; a missing or non-positive id is
// rejected before any lookup happens.
func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

// writeOwnershipError maps the shared not-found/not-owner pair; existence is
// checked first in the service, so 404 wins over 403.
func writeOwnershipError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event does not exist"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not the owner of this event"})
	case errors.Is(err, ErrDescriptionTooShort), errors.Is(err, ErrLocationTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
