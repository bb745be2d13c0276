package reports

import (
	"errors"
	"fmt"
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

// ExportParticipants - GET /events/:id/participants/export?format=csv|xlsx|pdf
func (h *Handler) ExportParticipants(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	data, filename, contentType, err := h.Service.ExportParticipants(uint(id), actorID, format)
	if err != nil {
		writeExportError(c, err)
		return
	}

	writeFile(c, data, filename, contentType)
}

// ExportOwnEvents - GET /events/export?format=csv|xlsx|pdf
func (h *Handler) ExportOwnEvents(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	data, filename, contentType, err := h.Service.ExportOwnEvents(actorID, format)
	if err != nil {
		writeExportError(c, err)
		return
	}

	writeFile(c, data, filename, contentType)
}

func writeExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, event.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event does not exist"})
	case errors.Is(err, event.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not the owner of this event"})
	case errors.Is(err, ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export"})
	}
}

func writeFile(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(data)))
	c.Data(http.StatusOK, contentType, data)
}
