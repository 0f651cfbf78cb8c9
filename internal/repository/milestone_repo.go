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

type MilestoneRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func NewMilestoneRepository(db *mongo.Database, logger *zap.Logger) *MilestoneRepository {
	return &MilestoneRepository{
		col:    db.Collection("milestones"),
		logger: logger,
	}
}

func (r *MilestoneRepository) Insert(ctx context.Context, m *model.Milestone) error {
	start := time.Now()
	res, err := r.col.InsertOne(ctx, m)
	metrics.RecordDBOperationDuration("insert", "milestones", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to insert milestone", zap.Error(err))
		return err
	}
	m.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns the milestone, or mongo.ErrNoDocuments.
func (r *MilestoneRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Milestone, error) {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("find_one", "milestones", time.Since(start)) }()

	var m model.Milestone
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByProject returns the project's milestones, newest first.
func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Milestone, error) {
	start := time.Now()
	cursor, err := r.col.Find(ctx, bson.M{"projectId": projectID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	metrics.RecordDBOperationDuration("find", "milestones", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to list milestones", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var milestones []model.Milestone
	if err := cursor.All(ctx, &milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}

// WatchByProject delivers the full milestone list of the project on every
// change until the returned cancel func runs.
func (r *MilestoneRepository) WatchByProject(ctx context.Context, projectID primitive.ObjectID) (<-chan []model.Milestone, func(), error) {
	return watchSnapshots(ctx, r.col, r.logger, func(ctx context.Context) ([]model.Milestone, error) {
		return r.ListByProject(ctx, projectID)
	})
}

// Delete removes the milestone document.
func (r *MilestoneRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	metrics.RecordDBOperationDuration("delete_one", "milestones", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to delete milestone",
			zap.String("milestone_id", id.Hex()),
			zap.Error(err),
		)
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
