package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projecthub/internal/service"
)

type TaskHandler struct {
	tasks  *service.TaskService
	logger *zap.Logger
}

func NewTaskHandler(tasks *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// CreateTask handles POST /projects/:id/tasks. The assignee dropdown the
// form renders only offers project members; nothing here re-checks that.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID := c.Param("id")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		DueDate     string `json:"dueDate"`
		Priority    string `json:"priority"`
		AssignedTo  string `json:"assignedTo"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == "" || req.DueDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and dueDate are required"})
		return
	}

	userID := c.GetString("user_id")
	h.logger.Info("CreateTask request received",
		zap.String("project_id", projectID),
		zap.String("user_id", userID),
		zap.String("client_ip", c.ClientIP()),
	)

	task, err := h.tasks.CreateTask(c.Request.Context(), projectID, userID,
		req.Name, req.Description, req.DueDate, req.Priority, req.AssignedTo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoAssignee):
			c.JSON(http.StatusBadRequest, gin.H{"error": "assignee required"})
		case errors.Is(err, service.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		default:
			h.logger.Error("CreateTask: failed to create task",
				zap.String("project_id", projectID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		}
		return
	}

	h.logger.Info("CreateTask: success",
		zap.String("task_id", task.ID.Hex()),
		zap.String("project_id", projectID),
	)
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// ListProjectTasks handles GET /projects/:id/tasks with optional
// status/priority/assignedTo filters applied over the snapshot.
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	projectID := c.Param("id")

	tasks, err := h.tasks.ListProjectTasks(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("ListProjectTasks: failed to fetch tasks",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}

	tasks = service.FilterTasks(tasks, c.Query("status"), c.Query("priority"), c.Query("assignedTo"))

	h.logger.Info("ListProjectTasks: success",
		zap.String("project_id", projectID),
		zap.Int("task_count", len(tasks)),
	)
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// StreamProjectTasks handles GET /projects/:id/tasks/stream (SSE).
func (h *TaskHandler) StreamProjectTasks(c *gin.Context) {
	ch, cancel, err := h.tasks.WatchProjectTasks(c.Request.Context(), c.Param("id"))
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

// ListMyTasks handles GET /tasks: everything assigned to the caller.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID := c.GetString("user_id")

	tasks, err := h.tasks.ListAssigneeTasks(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ListMyTasks: failed to fetch tasks",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}

	tasks = service.FilterTasks(tasks, c.Query("status"), c.Query("priority"), "")

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// StreamMyTasks handles GET /tasks/stream (SSE).
func (h *TaskHandler) StreamMyTasks(c *gin.Context) {
	ch, cancel, err := h.tasks.WatchAssigneeTasks(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}
	streamSnapshots(c, ch, cancel)
}

// UpdateStatus handles POST /tasks/:id/status. With an explicit status in
// the body it overwrites; with an empty body it advances the fixed cycle.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	// an empty body means "advance the cycle"
	_ = c.ShouldBindJSON(&req)

	if req.Status == "" {
		next, err := h.tasks.CycleStatus(c.Request.Context(), taskID)
		if err != nil {
			if errors.Is(err, service.ErrTaskNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
				return
			}
			h.logger.Error("UpdateStatus: failed to cycle status",
				zap.String("task_id", taskID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": next})
		return
	}

	if err := h.tasks.UpdateStatus(c.Request.Context(), taskID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		default:
			h.logger.Error("UpdateStatus: failed to update status",
				zap.String("task_id", taskID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// DeleteTask handles DELETE /tasks/:id. The client confirms before
// calling; the delete itself is unconditional.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	userID := c.GetString("user_id")

	if err := h.tasks.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.logger.Error("DeleteTask: failed to delete task",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	h.logger.Info("DeleteTask: success", zap.String("task_id", taskID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
