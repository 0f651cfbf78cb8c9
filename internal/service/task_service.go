package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"projecthub/internal/events"
	"projecthub/internal/model"
	"projecthub/pkg/metrics"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNoAssignee      = errors.New("task assignee is required")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type TaskService struct {
	tasks     TaskStore
	projects  ProjectStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewTaskService(tasks TaskStore, projects ProjectStore, publisher EventPublisher, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:     tasks,
		projects:  projects,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateTask creates a task in the project assigned to a single member.
// The project-exists check and the insert are sequential unguarded steps;
// a concurrent project delete between them is not handled. The assignee
// set is constrained to project members only by the member dropdown that
// feeds assignedTo; no membership check happens here.
func (s *TaskService) CreateTask(ctx context.Context, projectID, creatorID, name, description, dueDate, priority, assignedTo string) (*model.Task, error) {
	if assignedTo == "" {
		return nil, ErrNoAssignee
	}
	if !model.ValidTaskPriority(priority) {
		return nil, ErrInvalidPriority
	}

	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if _, err := s.projects.FindByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	t := &model.Task{
		Name:        name,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      model.TaskStatusAssigned,
		ProjectID:   oid,
		AssignedTo:  assignedTo,
		CreatedBy:   creatorID,
		CreatedAt:   time.Now(),
	}

	if err := s.tasks.Insert(ctx, t); err != nil {
		return nil, err
	}

	metrics.IncrementTaskCreated(priority)
	publishActivity(s.publisher, s.logger, events.RoutingKeyTaskCreated,
		projectID, creatorID, "task_created", t.Name)

	return t, nil
}

// ListProjectTasks returns the project's tasks, newest first.
func (s *TaskService) ListProjectTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	return s.tasks.ListByProject(ctx, oid)
}

// ListAssigneeTasks returns the user's assigned tasks, newest first. This
// is a separate aggregation path from the per-project list: the two views
// filter on different fields and only the status cycle below moves a task
// out of "assigned".
func (s *TaskService) ListAssigneeTasks(ctx context.Context, userID string) ([]model.Task, error) {
	return s.tasks.ListByAssignee(ctx, userID)
}

// WatchProjectTasks subscribes to the project's task list.
func (s *TaskService) WatchProjectTasks(ctx context.Context, projectID string) (<-chan []model.Task, func(), error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, nil, ErrProjectNotFound
	}
	return s.tasks.WatchByProject(ctx, oid)
}

// WatchAssigneeTasks subscribes to the user's assigned-task list.
func (s *TaskService) WatchAssigneeTasks(ctx context.Context, userID string) (<-chan []model.Task, func(), error) {
	return s.tasks.WatchByAssignee(ctx, userID)
}

// UpdateStatus overwrites the task status unconditionally. Two concurrent
// updates race; the store's last write wins and neither caller errors.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID, status string) error {
	if !model.ValidTaskStatus(status) {
		return ErrInvalidStatus
	}

	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return ErrTaskNotFound
	}

	t, err := s.tasks.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := s.tasks.UpdateStatus(ctx, oid, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return err
	}

	publishActivity(s.publisher, s.logger, events.RoutingKeyTaskStatusChanged,
		t.ProjectID.Hex(), t.AssignedTo, "task_status_changed", t.Name+" → "+status)
	return nil
}

// CycleStatus advances the task along the fixed status cycle and returns
// the status written. The read and the overwrite are not guarded against
// a concurrent update.
func (s *TaskService) CycleStatus(ctx context.Context, taskID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return "", ErrTaskNotFound
	}

	t, err := s.tasks.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrTaskNotFound
		}
		return "", err
	}

	next := model.NextStatus(t.Status)
	if err := s.tasks.UpdateStatus(ctx, oid, next); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrTaskNotFound
		}
		return "", err
	}

	publishActivity(s.publisher, s.logger, events.RoutingKeyTaskStatusChanged,
		t.ProjectID.Hex(), t.AssignedTo, "task_status_changed", t.Name+" → "+next)
	return next, nil
}

// DeleteTask hard-deletes the task. Confirmation is the caller's concern.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, actorID string) error {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return ErrTaskNotFound
	}

	t, err := s.tasks.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := s.tasks.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return err
	}

	publishActivity(s.publisher, s.logger, events.RoutingKeyTaskDeleted,
		t.ProjectID.Hex(), actorID, "task_deleted", t.Name)
	return nil
}

// FilterTasks applies the task-list filters in memory over a snapshot.
// Empty filter values match everything.
func FilterTasks(tasks []model.Task, status, priority, assignedTo string) []model.Task {
	filtered := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if status != "" && t.Status != status {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		if assignedTo != "" && t.AssignedTo != assignedTo {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}
