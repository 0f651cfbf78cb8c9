package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"projecthub/internal/model"
	"projecthub/pkg/metrics"
)

type ProjectRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func NewProjectRepository(db *mongo.Database, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		col:    db.Collection("projects"),
		logger: logger,
	}
}

func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) error {
	r.logger.Debug("Inserting project",
		zap.String("created_by", p.CreatedBy),
		zap.String("name", p.Name),
	)

	start := time.Now()
	res, err := r.col.InsertOne(ctx, p)
	metrics.RecordDBOperationDuration("insert", "projects", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)

	r.logger.Info("Project inserted successfully",
		zap.String("id", p.ID.Hex()),
		zap.String("created_by", p.CreatedBy),
	)
	return nil
}

// FindByID returns the project, or mongo.ErrNoDocuments.
func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error) {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("find_one", "projects", time.Since(start)) }()

	var p model.Project
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByInviteCode returns the first project carrying the code, or
// mongo.ErrNoDocuments. Codes are generated collision-free, so first-match
// is the lookup policy.
func (r *ProjectRepository) FindByInviteCode(ctx context.Context, code string) (*model.Project, error) {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("find_one", "projects", time.Since(start)) }()

	var p model.Project
	if err := r.col.FindOne(ctx, bson.M{"inviteCode": code}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByMember returns every project whose member set contains userID.
// Callers sort and limit.
func (r *ProjectRepository) ListByMember(ctx context.Context, userID string) ([]model.Project, error) {
	start := time.Now()
	cursor, err := r.col.Find(ctx, bson.M{"members": userID})
	metrics.RecordDBOperationDuration("find", "projects", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to list projects for member",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []model.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// AddMember adds userID to the project's member set with $addToSet, so a
// duplicate add is a no-op and concurrent joins commute.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID primitive.ObjectID, userID string) error {
	r.logger.Debug("Adding member to project",
		zap.String("project_id", projectID.Hex()),
		zap.String("user_id", userID),
	)

	start := time.Now()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$addToSet": bson.M{"members": userID}},
	)
	metrics.RecordDBOperationDuration("update_one", "projects", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to add member",
			zap.String("project_id", projectID.Hex()),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	r.logger.Info("Member added to project",
		zap.String("project_id", projectID.Hex()),
		zap.String("user_id", userID),
	)
	return nil
}
