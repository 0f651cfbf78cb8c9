package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/service"
)

type MeetingHandler struct {
	meetings *service.MeetingService
}

func NewMeetingHandler(meetings *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings}
}

// CreateMeeting handles POST /projects/:id/meetings.
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        string `json:"date"`
		Time        string `json:"time"`
		Location    string `json:"location"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Title == "" || req.Date == "" || req.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, date and time are required"})
		return
	}

	m, err := h.meetings.CreateMeeting(c.Request.Context(), c.Param("id"), c.GetString("user_id"),
		req.Title, req.Description, req.Date, req.Time, req.Location)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create meeting"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meeting": m})
}

// ListMeetings handles GET /projects/:id/meetings.
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	meetings, err := h.meetings.ListMeetings(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meetings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

// StreamMeetings handles GET /projects/:id/meetings/stream (SSE).
func (h *MeetingHandler) StreamMeetings(c *gin.Context) {
	ch, cancel, err := h.meetings.WatchMeetings(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}
	streamSnapshots(c, ch, cancel)
}

// DeleteMeeting handles DELETE /meetings/:id.
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	if err := h.meetings.DeleteMeeting(c.Request.Context(), c.Param("id"), c.GetString("user_id")); err != nil {
		if errors.Is(err, service.ErrMeetingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meeting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
