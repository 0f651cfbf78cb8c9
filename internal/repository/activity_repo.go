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

type ActivityRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func NewActivityRepository(db *mongo.Database, logger *zap.Logger) *ActivityRepository {
	return &ActivityRepository{
		col:    db.Collection("activity"),
		logger: logger,
	}
}

func (r *ActivityRepository) Insert(ctx context.Context, a *model.Activity) error {
	start := time.Now()
	res, err := r.col.InsertOne(ctx, a)
	metrics.RecordDBOperationDuration("insert", "activity", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to insert activity", zap.Error(err))
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// ListByProject returns the project's activity feed, newest first,
// capped at limit (50 when limit <= 0).
func (r *ActivityRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID, limit int64) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 50
	}

	start := time.Now()
	cursor, err := r.col.Find(ctx, bson.M{"projectId": projectID},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit),
	)
	metrics.RecordDBOperationDuration("find", "activity", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to list activity", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var feed []model.Activity
	if err := cursor.All(ctx, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}
