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
)

var ErrMilestoneNotFound = errors.New("milestone not found")

type MilestoneService struct {
	milestones MilestoneStore
	publisher  EventPublisher
	logger     *zap.Logger
}

func NewMilestoneService(milestones MilestoneStore, publisher EventPublisher, logger *zap.Logger) *MilestoneService {
	return &MilestoneService{
		milestones: milestones,
		publisher:  publisher,
		logger:     logger,
	}
}

// CreateMilestone creates a milestone in the project, not yet completed.
func (s *MilestoneService) CreateMilestone(ctx context.Context, projectID, actorID, title, description, dueDate string) (*model.Milestone, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	m := &model.Milestone{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		ProjectID:   oid,
		CreatedAt:   time.Now(),
	}

	if err := s.milestones.Insert(ctx, m); err != nil {
		return nil, err
	}

	publishActivity(s.publisher, s.logger, events.RoutingKeyMilestoneCreated,
		projectID, actorID, "milestone_created", m.Title)
	return m, nil
}

// ListMilestones returns the project's milestones, newest first.
func (s *MilestoneService) ListMilestones(ctx context.Context, projectID string) ([]model.Milestone, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	return s.milestones.ListByProject(ctx, oid)
}

// WatchMilestones subscribes to the project's milestone list.
func (s *MilestoneService) WatchMilestones(ctx context.Context, projectID string) (<-chan []model.Milestone, func(), error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, nil, ErrProjectNotFound
	}
	return s.milestones.WatchByProject(ctx, oid)
}

// ToggleMilestone is wired to the completion checkbox but deletes the
// milestone instead of flipping its flag. The shipped product behaves
// this way; kept as observed rather than silently unified with a proper
// update. TODO: confirm with product whether toggle should flip
// `completed` in place, then replace the delete.
func (s *MilestoneService) ToggleMilestone(ctx context.Context, milestoneID, actorID string) error {
	return s.DeleteMilestone(ctx, milestoneID, actorID)
}

// DeleteMilestone removes the milestone.
func (s *MilestoneService) DeleteMilestone(ctx context.Context, milestoneID, actorID string) error {
	oid, err := primitive.ObjectIDFromHex(milestoneID)
	if err != nil {
		return ErrMilestoneNotFound
	}

	m, err := s.milestones.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMilestoneNotFound
		}
		return err
	}

	if err := s.milestones.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMilestoneNotFound
		}
		return err
	}

	publishActivity(s.publisher, s.logger, events.RoutingKeyMilestoneDeleted,
		m.ProjectID.Hex(), actorID, "milestone_deleted", m.Title)
	return nil
}
