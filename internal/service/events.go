package service

import (
	"time"

	"go.uber.org/zap"

	"projecthub/internal/events"
	"projecthub/pkg/util"
)

// publishActivity emits a domain event for the activity worker. The broker
// is optional and never on the request's critical path: a nil publisher is
// skipped and publish failures are logged and dropped.
func publishActivity(pub EventPublisher, logger *zap.Logger, routingKey, projectID, actorID, kind, subject string) {
	if pub == nil {
		return
	}

	eventID, err := util.RandomToken(16)
	if err != nil {
		logger.Warn("Failed to generate event id", zap.Error(err))
		return
	}

	payload := events.ActivityPayload{
		EventID:    eventID,
		ProjectID:  projectID,
		ActorID:    actorID,
		Kind:       kind,
		Subject:    subject,
		OccurredAt: time.Now(),
	}

	if err := pub.Publish(routingKey, payload); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.String("project_id", projectID),
			zap.Error(err),
		)
	}
}
