package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/model"
)

// Store interfaces consumed by the services. The mongo repositories in
// internal/repository implement them; tests substitute fakes.

type UserStore interface {
	Insert(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, username, university, phoneNumber string) error
}

type ProjectStore interface {
	Insert(ctx context.Context, p *model.Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error)
	FindByInviteCode(ctx context.Context, code string) (*model.Project, error)
	ListByMember(ctx context.Context, userID string) ([]model.Project, error)
	AddMember(ctx context.Context, projectID primitive.ObjectID, userID string) error
}

type TaskStore interface {
	Insert(ctx context.Context, t *model.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Task, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]model.Task, error)
	WatchByProject(ctx context.Context, projectID primitive.ObjectID) (<-chan []model.Task, func(), error)
	WatchByAssignee(ctx context.Context, userID string) (<-chan []model.Task, func(), error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MilestoneStore interface {
	Insert(ctx context.Context, m *model.Milestone) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Milestone, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Milestone, error)
	WatchByProject(ctx context.Context, projectID primitive.ObjectID) (<-chan []model.Milestone, func(), error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MeetingStore interface {
	Insert(ctx context.Context, m *model.Meeting) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Meeting, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Meeting, error)
	WatchByProject(ctx context.Context, projectID primitive.ObjectID) (<-chan []model.Meeting, func(), error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PendingInviteStore keeps the invite code a signed-out visitor accepted,
// keyed by an anonymous session token, until auth completes.
type PendingInviteStore interface {
	Save(ctx context.Context, token, code string) error
	Consume(ctx context.Context, token string) (string, error)
}

// EventPublisher is the MQ publisher surface used by the services.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
