package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"projecthub/internal/model"
	"projecthub/pkg/metrics"
)

type TaskRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func NewTaskRepository(db *mongo.Database, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		col:    db.Collection("tasks"),
		logger: logger,
	}
}

func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Inserting task",
		zap.String("project_id", t.ProjectID.Hex()),
		zap.String("assigned_to", t.AssignedTo),
		zap.String("name", t.Name),
	)

	start := time.Now()
	res, err := r.col.InsertOne(ctx, t)
	metrics.RecordDBOperationDuration("insert", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to insert task", zap.Error(err))
		return err
	}
	t.ID = res.InsertedID.(primitive.ObjectID)

	r.logger.Info("Task inserted successfully",
		zap.String("id", t.ID.Hex()),
		zap.String("project_id", t.ProjectID.Hex()),
	)
	return nil
}

// FindByID returns the task, or mongo.ErrNoDocuments.
func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Task, error) {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("find_one", "tasks", time.Since(start)) }()

	var t model.Task
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProject returns the project's tasks, newest first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Task, error) {
	return r.list(ctx, bson.M{"projectId": projectID})
}

// ListByAssignee returns the user's assigned tasks, newest first.
func (r *TaskRepository) ListByAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	return r.list(ctx, bson.M{"assignedTo": userID})
}

func (r *TaskRepository) list(ctx context.Context, filter bson.M) ([]model.Task, error) {
	start := time.Now()
	cursor, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	metrics.RecordDBOperationDuration("find", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []model.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// WatchByProject delivers the full task list of the project on every
// change until the returned cancel func runs.
func (r *TaskRepository) WatchByProject(ctx context.Context, projectID primitive.ObjectID) (<-chan []model.Task, func(), error) {
	return watchSnapshots(ctx, r.col, r.logger, func(ctx context.Context) ([]model.Task, error) {
		return r.ListByProject(ctx, projectID)
	})
}

// WatchByAssignee is the assignee-filtered counterpart of WatchByProject.
func (r *TaskRepository) WatchByAssignee(ctx context.Context, userID string) (<-chan []model.Task, func(), error) {
	return watchSnapshots(ctx, r.col, r.logger, func(ctx context.Context) ([]model.Task, error) {
		return r.ListByAssignee(ctx, userID)
	})
}

// UpdateStatus overwrites the task status unconditionally. Concurrent
// updates race and the store's last write wins.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	start := time.Now()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	metrics.RecordDBOperationDuration("update_one", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to update task status",
			zap.String("task_id", id.Hex()),
			zap.String("status", status),
			zap.Error(err),
		)
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the task document.
func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	metrics.RecordDBOperationDuration("delete_one", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to delete task",
			zap.String("task_id", id.Hex()),
			zap.Error(err),
		)
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
