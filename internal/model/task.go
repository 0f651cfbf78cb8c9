package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TaskStatusAssigned   = "assigned"
	TaskStatusNotStarted = "not_started"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	DueDate     string             `bson:"dueDate" json:"dueDate"` // YYYY-MM-DD
	Priority    string             `bson:"priority" json:"priority"`
	Status      string             `bson:"status" json:"status"`
	ProjectID   primitive.ObjectID `bson:"projectId" json:"projectId"`
	AssignedTo  string             `bson:"assignedTo" json:"assignedTo"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// NextStatus returns the status the cycle button advances to:
// not_started → in_progress → completed → not_started. Any other value
// (including the initial "assigned") advances to not_started.
func NextStatus(current string) string {
	switch current {
	case TaskStatusNotStarted:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusCompleted
	case TaskStatusCompleted:
		return TaskStatusNotStarted
	default:
		return TaskStatusNotStarted
	}
}

// ValidTaskStatus reports whether s is one of the enumerated task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusAssigned, TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is one of the enumerated priorities.
func ValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}
