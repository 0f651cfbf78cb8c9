package mqhandler

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"projecthub/internal/events"
	"projecthub/internal/model"
	"projecthub/internal/repository"
	"projecthub/pkg/util"
)

type ActivityHandler struct {
	repo    *repository.ActivityRepository
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewActivityHandler(repo *repository.ActivityRepository, deduper *util.Deduper, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		repo:    repo,
		deduper: deduper,
		logger:  logger,
	}
}

// HandleDomainEvent -- 写入 activity feed
func (h *ActivityHandler) HandleDomainEvent(ctx context.Context, raw json.RawMessage) error {
	var p events.ActivityPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal activity payload", zap.Error(err))
		return err
	}

	if !h.deduper.AcquireOnce(ctx, "activity", p.EventID) {
		h.logger.Debug("Duplicate event skipped",
			zap.String("event_id", p.EventID),
			zap.String("kind", p.Kind),
		)
		return nil
	}

	projectID, err := primitive.ObjectIDFromHex(p.ProjectID)
	if err != nil {
		// Malformed project id means a bad payload; requeueing won't help.
		h.logger.Error("Invalid project id in activity payload",
			zap.String("project_id", p.ProjectID),
			zap.String("event_id", p.EventID),
		)
		return nil
	}

	h.logger.Info("Recording activity",
		zap.String("project_id", p.ProjectID),
		zap.String("kind", p.Kind),
	)

	a := &model.Activity{
		ProjectID: projectID,
		ActorID:   p.ActorID,
		Kind:      p.Kind,
		Subject:   p.Subject,
		CreatedAt: p.OccurredAt,
	}

	if err := h.repo.Insert(ctx, a); err != nil {
		h.logger.Error("Failed to insert activity",
			zap.String("project_id", p.ProjectID),
			zap.String("kind", p.Kind),
			zap.Error(err),
		)
		return err
	}

	return nil
}
