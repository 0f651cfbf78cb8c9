package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"projecthub/internal/repository"
	"projecthub/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
	tasks    *service.TaskService
	activity *repository.ActivityRepository
	logger   *zap.Logger
}

func NewProjectHandler(projects *service.ProjectService, tasks *service.TaskService, activity *repository.ActivityRepository, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		tasks:    tasks,
		activity: activity,
		logger:   logger,
	}
}

// CreateProject handles POST /projects.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Course      string `json:"course"`
		DueDate     string `json:"dueDate"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == "" || req.Course == "" || req.DueDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, course and dueDate are required"})
		return
	}

	userID := c.GetString("user_id")

	p, err := h.projects.CreateProject(c.Request.Context(), userID, req.Name, req.Course, req.DueDate, req.Description)
	if err != nil {
		h.logger.Error("CreateProject: failed to create project",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	h.logger.Info("CreateProject: success",
		zap.String("project_id", p.ID.Hex()),
		zap.String("user_id", userID),
	)
	c.JSON(http.StatusCreated, gin.H{
		"project":     p,
		"invite_link": "/invite/" + p.InviteCode,
	})
}

// ListProjects handles GET /projects. ?recent=N returns the dashboard
// view: most recent due dates first, capped at N.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID := c.GetString("user_id")

	if recentRaw := c.Query("recent"); recentRaw != "" {
		limit, err := strconv.Atoi(recentRaw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recent"})
			return
		}
		projects, err := h.projects.RecentProjectsForMember(c.Request.Context(), userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects})
		return
	}

	projects, err := h.projects.ListProjectsForMember(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject handles GET /projects/:id.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

// Members handles GET /projects/:id/members.
func (h *ProjectHandler) Members(c *gin.Context) {
	members, err := h.projects.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// Progress handles GET /projects/:id/progress.
func (h *ProjectHandler) Progress(c *gin.Context) {
	tasks, err := h.tasks.ListProjectTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": service.ComputeProgress(tasks)})
}

// StreamProgress handles GET /projects/:id/progress/stream. The aggregate
// is recomputed on every task snapshot pushed by the subscription.
func (h *ProjectHandler) StreamProgress(c *gin.Context) {
	ch, cancel, err := h.tasks.WatchProjectTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case tasks, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("progress", service.ComputeProgress(tasks))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Activity handles GET /projects/:id/activity?limit=N.
func (h *ProjectHandler) Activity(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	var limit int64
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	feed, err := h.activity.ListByProject(c.Request.Context(), oid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch activity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": feed})
}
