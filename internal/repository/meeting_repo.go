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

type MeetingRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func NewMeetingRepository(db *mongo.Database, logger *zap.Logger) *MeetingRepository {
	return &MeetingRepository{
		col:    db.Collection("meetings"),
		logger: logger,
	}
}

func (r *MeetingRepository) Insert(ctx context.Context, m *model.Meeting) error {
	start := time.Now()
	res, err := r.col.InsertOne(ctx, m)
	metrics.RecordDBOperationDuration("insert", "meetings", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to insert meeting", zap.Error(err))
		return err
	}
	m.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns the meeting, or mongo.ErrNoDocuments.
func (r *MeetingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Meeting, error) {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("find_one", "meetings", time.Since(start)) }()

	var m model.Meeting
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByProject returns the project's meetings, newest first.
func (r *MeetingRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Meeting, error) {
	start := time.Now()
	cursor, err := r.col.Find(ctx, bson.M{"projectId": projectID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	metrics.RecordDBOperationDuration("find", "meetings", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to list meetings", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var meetings []model.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// WatchByProject delivers the full meeting list of the project on every
// change until the returned cancel func runs.
func (r *MeetingRepository) WatchByProject(ctx context.Context, projectID primitive.ObjectID) (<-chan []model.Meeting, func(), error) {
	return watchSnapshots(ctx, r.col, r.logger, func(ctx context.Context) ([]model.Meeting, error) {
		return r.ListByProject(ctx, projectID)
	})
}

// Delete removes the meeting document.
func (r *MeetingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	metrics.RecordDBOperationDuration("delete_one", "meetings", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to delete meeting",
			zap.String("meeting_id", id.Hex()),
			zap.Error(err),
		)
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
