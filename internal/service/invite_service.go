package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"projecthub/internal/events"
	"projecthub/internal/model"
	"projecthub/pkg/metrics"
	"projecthub/pkg/util"
)

// JoinState is the invite workflow's state over an invite code.
type JoinState string

const (
	JoinStateInvalid       JoinState = "invalid"
	JoinStateAlreadyMember JoinState = "already_member"
	JoinStateOffering      JoinState = "offering"
	JoinStateJoined        JoinState = "joined"
	JoinStateDeferred      JoinState = "deferred"
	JoinStateFailed        JoinState = "join_failed"
)

// InviteResolution is the outcome of resolving or acting on an invite code.
type InviteResolution struct {
	State   JoinState      `json:"state"`
	Project *model.Project `json:"project,omitempty"`
}

type InviteService struct {
	projects  *ProjectService
	pending   PendingInviteStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewInviteService(projects *ProjectService, pending PendingInviteStore, publisher EventPublisher, logger *zap.Logger) *InviteService {
	return &InviteService{
		projects:  projects,
		pending:   pending,
		publisher: publisher,
		logger:    logger,
	}
}

// Resolve looks the code up and classifies the session against the
// project's member set. currentUserID is empty for signed-out visitors.
func (s *InviteService) Resolve(ctx context.Context, code, currentUserID string) (*InviteResolution, error) {
	p, err := s.projects.GetProjectByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return &InviteResolution{State: JoinStateInvalid}, nil
		}
		return nil, err
	}

	if currentUserID != "" && p.HasMember(currentUserID) {
		return &InviteResolution{State: JoinStateAlreadyMember, Project: p}, nil
	}
	return &InviteResolution{State: JoinStateOffering, Project: p}, nil
}

// Join adds the authenticated user to the project behind the code. An
// AddMember failure surfaces as JoinStateFailed together with the error;
// there is no automatic retry.
func (s *InviteService) Join(ctx context.Context, code, userID string) (*InviteResolution, error) {
	res, err := s.Resolve(ctx, code, userID)
	if err != nil {
		return nil, err
	}
	if res.State != JoinStateOffering {
		return res, nil
	}

	if err := s.projects.AddMember(ctx, res.Project.ID, userID); err != nil {
		s.logger.Error("Failed to join project",
			zap.String("project_id", res.Project.ID.Hex()),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return &InviteResolution{State: JoinStateFailed, Project: res.Project}, err
	}

	metrics.IncrementProjectJoin("direct")
	publishActivity(s.publisher, s.logger, events.RoutingKeyProjectMemberJoined,
		res.Project.ID.Hex(), userID, "member_joined", res.Project.Name)

	return &InviteResolution{State: JoinStateJoined, Project: res.Project}, nil
}

// DeferJoin stashes the code for a signed-out visitor and hands back the
// session token the client must present once signup or login completes.
func (s *InviteService) DeferJoin(ctx context.Context, code string) (string, error) {
	token, err := util.NewSessionToken()
	if err != nil {
		return "", err
	}

	if err := s.pending.Save(ctx, token, code); err != nil {
		return "", err
	}

	metrics.IncrementProjectJoin("deferred")
	return token, nil
}

// ResumePending consumes a deferred invite after auth completes and joins
// the user to the project, bypassing the offering screen. The code is
// read-and-cleared, so a second resume with the same token is a no-op.
// Failures are logged and swallowed: a broken invite never blocks a
// signup that already succeeded.
func (s *InviteService) ResumePending(ctx context.Context, sessionToken, userID string) (projectID string) {
	if sessionToken == "" || s.pending == nil {
		return ""
	}

	code, err := s.pending.Consume(ctx, sessionToken)
	if err != nil {
		s.logger.Error("Failed to consume pending invite", zap.Error(err))
		return ""
	}
	if code == "" {
		return ""
	}

	p, err := s.projects.GetProjectByInviteCode(ctx, code)
	if err != nil {
		s.logger.Warn("Pending invite no longer resolves",
			zap.String("code", code),
			zap.Error(err),
		)
		return ""
	}

	if err := s.projects.AddMember(ctx, p.ID, userID); err != nil {
		s.logger.Error("Failed to join project from pending invite",
			zap.String("project_id", p.ID.Hex()),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return ""
	}

	metrics.IncrementProjectJoin("direct")
	publishActivity(s.publisher, s.logger, events.RoutingKeyProjectMemberJoined,
		p.ID.Hex(), userID, "member_joined", p.Name)

	return p.ID.Hex()
}
