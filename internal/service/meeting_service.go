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

var ErrMeetingNotFound = errors.New("meeting not found")

type MeetingService struct {
	meetings  MeetingStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewMeetingService(meetings MeetingStore, publisher EventPublisher, logger *zap.Logger) *MeetingService {
	return &MeetingService{
		meetings:  meetings,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateMeeting schedules a meeting in the project.
func (s *MeetingService) CreateMeeting(ctx context.Context, projectID, actorID, title, description, date, timeOfDay, location string) (*model.Meeting, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	m := &model.Meeting{
		Title:       title,
		Description: description,
		Date:        date,
		Time:        timeOfDay,
		Location:    location,
		ProjectID:   oid,
		CreatedAt:   time.Now(),
	}

	if err := s.meetings.Insert(ctx, m); err != nil {
		return nil, err
	}

	publishActivity(s.publisher, s.logger, events.RoutingKeyMeetingCreated,
		projectID, actorID, "meeting_created", m.Title)
	return m, nil
}

// ListMeetings returns the project's meetings, newest first.
func (s *MeetingService) ListMeetings(ctx context.Context, projectID string) ([]model.Meeting, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	return s.meetings.ListByProject(ctx, oid)
}

// WatchMeetings subscribes to the project's meeting list.
func (s *MeetingService) WatchMeetings(ctx context.Context, projectID string) (<-chan []model.Meeting, func(), error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, nil, ErrProjectNotFound
	}
	return s.meetings.WatchByProject(ctx, oid)
}

// DeleteMeeting removes the meeting. Confirmation is the caller's concern.
func (s *MeetingService) DeleteMeeting(ctx context.Context, meetingID, actorID string) error {
	oid, err := primitive.ObjectIDFromHex(meetingID)
	if err != nil {
		return ErrMeetingNotFound
	}

	m, err := s.meetings.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMeetingNotFound
		}
		return err
	}

	if err := s.meetings.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMeetingNotFound
		}
		return err
	}

	publishActivity(s.publisher, s.logger, events.RoutingKeyMeetingDeleted,
		m.ProjectID.Hex(), actorID, "meeting_deleted", m.Title)
	return nil
}
