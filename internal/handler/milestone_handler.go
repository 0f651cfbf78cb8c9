package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/service"
)

type MilestoneHandler struct {
	milestones *service.MilestoneService
}

func NewMilestoneHandler(milestones *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones}
}

// CreateMilestone handles POST /projects/:id/milestones.
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"dueDate"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Title == "" || req.DueDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and dueDate are required"})
		return
	}

	m, err := h.milestones.CreateMilestone(c.Request.Context(), c.Param("id"), c.GetString("user_id"),
		req.Title, req.Description, req.DueDate)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create milestone"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"milestone": m})
}

// ListMilestones handles GET /projects/:id/milestones.
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	milestones, err := h.milestones.ListMilestones(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch milestones"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// StreamMilestones handles GET /projects/:id/milestones/stream (SSE).
func (h *MilestoneHandler) StreamMilestones(c *gin.Context) {
	ch, cancel, err := h.milestones.WatchMilestones(c.Request.Context(), c.Param("id"))
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

// ToggleMilestone handles POST /milestones/:id/toggle.
func (h *MilestoneHandler) ToggleMilestone(c *gin.Context) {
	if err := h.milestones.ToggleMilestone(c.Request.Context(), c.Param("id"), c.GetString("user_id")); err != nil {
		if errors.Is(err, service.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "milestone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle milestone"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteMilestone handles DELETE /milestones/:id.
func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	if err := h.milestones.DeleteMilestone(c.Request.Context(), c.Param("id"), c.GetString("user_id")); err != nil {
		if errors.Is(err, service.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "milestone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete milestone"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
