package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"projecthub/internal/events"
	"projecthub/internal/model"
	"projecthub/pkg/metrics"
	"projecthub/pkg/util"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectService struct {
	projects  ProjectStore
	users     UserStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewProjectService(projects ProjectStore, users UserStore, publisher EventPublisher, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projects:  projects,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateProject creates a project owned by creatorID. The creator is the
// first (and so always a) member, status starts "active" and the project
// gets a fresh invite code. A failed store write is returned as-is; there
// is no retry.
func (s *ProjectService) CreateProject(ctx context.Context, creatorID, name, course, dueDate, description string) (*model.Project, error) {
	inviteCode, err := util.NewInviteCode()
	if err != nil {
		return nil, err
	}

	p := &model.Project{
		Name:        name,
		Course:      course,
		DueDate:     dueDate,
		Description: description,
		CreatedBy:   creatorID,
		Members:     []string{creatorID},
		Status:      model.ProjectStatusActive,
		InviteCode:  inviteCode,
		CreatedAt:   time.Now(),
	}

	if err := s.projects.Insert(ctx, p); err != nil {
		return nil, err
	}

	metrics.IncrementProjectCreated()
	publishActivity(s.publisher, s.logger, events.RoutingKeyProjectCreated,
		p.ID.Hex(), creatorID, "project_created", p.Name)

	return p, nil
}

// GetProject looks a project up by its hex id.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	p, err := s.projects.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetProjectByInviteCode resolves an invite code to its project.
func (s *ProjectService) GetProjectByInviteCode(ctx context.Context, code string) (*model.Project, error) {
	p, err := s.projects.FindByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListProjectsForMember returns every project the user belongs to.
func (s *ProjectService) ListProjectsForMember(ctx context.Context, userID string) ([]model.Project, error) {
	return s.projects.ListByMember(ctx, userID)
}

// RecentProjectsForMember is the dashboard view: the user's projects with
// the most recent due dates first, capped at limit. Due dates are
// YYYY-MM-DD strings, so lexicographic order is date order.
func (s *ProjectService) RecentProjectsForMember(ctx context.Context, userID string, limit int) ([]model.Project, error) {
	projects, err := s.projects.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].DueDate > projects[j].DueDate
	})
	if limit > 0 && len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

// Members resolves the project's member ids to user records.
func (s *ProjectService) Members(ctx context.Context, projectID string) ([]model.Member, error) {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindByIDs(ctx, p.Members)
	if err != nil {
		return nil, err
	}

	members := make([]model.Member, 0, len(users))
	for i := range users {
		members = append(members, users[i].AsMember())
	}
	return members, nil
}

// AddMember adds the user to the project's member set. The underlying
// set-union write makes a duplicate add a no-op.
func (s *ProjectService) AddMember(ctx context.Context, projectID primitive.ObjectID, userID string) error {
	if err := s.projects.AddMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}
