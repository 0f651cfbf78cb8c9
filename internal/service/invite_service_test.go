package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"projecthub/internal/model"
)

func newInviteFixture(t *testing.T) (*InviteService, *ProjectService, *MockProjectStore, *MockPendingInviteStore, *MockPublisher, *model.Project) {
	t.Helper()

	projects := NewMockProjectStore()
	users := NewMockUserStore()
	pending := NewMockPendingInviteStore()
	pub := &MockPublisher{}

	projectSvc := NewProjectService(projects, users, pub, zap.NewNop())
	inviteSvc := NewInviteService(projectSvc, pending, pub, zap.NewNop())

	p, err := projectSvc.CreateProject(context.Background(), "owner", "Compilers", "", "", "")
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}

	return inviteSvc, projectSvc, projects, pending, pub, p
}

func TestInviteService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Given an unknown code Then state is invalid", func(t *testing.T) {
		svc, _, _, _, _, _ := newInviteFixture(t)

		res, err := svc.Resolve(ctx, "no-such-code", "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if res.State != JoinStateInvalid {
			t.Errorf("expected invalid, got %q", res.State)
		}
	})

	t.Run("Given a member's own code Then state is already_member", func(t *testing.T) {
		svc, _, _, _, _, p := newInviteFixture(t)

		res, err := svc.Resolve(ctx, p.InviteCode, "owner")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if res.State != JoinStateAlreadyMember {
			t.Errorf("expected already_member, got %q", res.State)
		}
		if res.Project == nil || res.Project.ID != p.ID {
			t.Errorf("expected resolved project in response")
		}
	})

	t.Run("Given a non-member or anonymous session Then state is offering", func(t *testing.T) {
		svc, _, _, _, _, p := newInviteFixture(t)

		for _, userID := range []string{"stranger", ""} {
			res, err := svc.Resolve(ctx, p.InviteCode, userID)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", userID, err)
			}
			if res.State != JoinStateOffering {
				t.Errorf("Resolve(%q): expected offering, got %q", userID, res.State)
			}
		}
	})
}

func TestInviteService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("Given an authenticated non-member When joined Then membership and event", func(t *testing.T) {
		svc, _, projects, _, pub, p := newInviteFixture(t)

		res, err := svc.Join(ctx, p.InviteCode, "u2")
		if err != nil {
			t.Fatalf("Join failed: %v", err)
		}
		if res.State != JoinStateJoined {
			t.Errorf("expected joined, got %q", res.State)
		}

		got, _ := projects.FindByID(ctx, p.ID)
		if !got.HasMember("u2") {
			t.Errorf("u2 missing from members: %v", got.Members)
		}

		keys := pub.RoutingKeys()
		if len(keys) == 0 || keys[len(keys)-1] != "project.member_joined" {
			t.Errorf("expected project.member_joined event, got %v", keys)
		}
	})

	t.Run("Given an existing member When joined again Then already_member and no write", func(t *testing.T) {
		svc, _, projects, _, _, p := newInviteFixture(t)

		res, err := svc.Join(ctx, p.InviteCode, "owner")
		if err != nil {
			t.Fatalf("Join failed: %v", err)
		}
		if res.State != JoinStateAlreadyMember {
			t.Errorf("expected already_member, got %q", res.State)
		}

		got, _ := projects.FindByID(ctx, p.ID)
		if len(got.Members) != 1 {
			t.Errorf("expected member set unchanged, got %v", got.Members)
		}
	})

	t.Run("Given a failing member write When joined Then join_failed with the error", func(t *testing.T) {
		svc, _, projects, _, _, p := newInviteFixture(t)
		projects.AddMemberFunc = func(ctx context.Context, projectID primitive.ObjectID, userID string) error {
			return ErrMockStore
		}

		res, err := svc.Join(ctx, p.InviteCode, "u2")
		if !errors.Is(err, ErrMockStore) {
			t.Fatalf("expected mock store error, got %v", err)
		}
		if res.State != JoinStateFailed {
			t.Errorf("expected join_failed, got %q", res.State)
		}
	})
}

func TestInviteService_DeferredJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("Given a deferred code When auth completes Then the user joins exactly once", func(t *testing.T) {
		svc, _, projects, pending, _, p := newInviteFixture(t)

		token, err := svc.DeferJoin(ctx, p.InviteCode)
		if err != nil {
			t.Fatalf("DeferJoin failed: %v", err)
		}
		if token == "" {
			t.Fatal("expected a session token")
		}
		if pending.Pending[token] != p.InviteCode {
			t.Errorf("expected code stashed under token")
		}

		joined := svc.ResumePending(ctx, token, "u2")
		if joined != p.ID.Hex() {
			t.Errorf("expected joined project %s, got %q", p.ID.Hex(), joined)
		}
		got, _ := projects.FindByID(ctx, p.ID)
		if !got.HasMember("u2") {
			t.Errorf("u2 missing from members: %v", got.Members)
		}

		// Consume is read-and-clear: replaying the token is a no-op.
		if again := svc.ResumePending(ctx, token, "u3"); again != "" {
			t.Errorf("expected empty result on replay, got %q", again)
		}
		got, _ = projects.FindByID(ctx, p.ID)
		if got.HasMember("u3") {
			t.Errorf("replay must not join u3: %v", got.Members)
		}
	})

	t.Run("Given a stale code that no longer resolves Then resume is swallowed", func(t *testing.T) {
		svc, _, _, pending, _, _ := newInviteFixture(t)
		pending.Pending["tok"] = "gone-code"

		if joined := svc.ResumePending(ctx, "tok", "u2"); joined != "" {
			t.Errorf("expected empty result, got %q", joined)
		}
	})

	t.Run("Given no session token Then resume does nothing", func(t *testing.T) {
		svc, _, _, _, _, _ := newInviteFixture(t)

		if joined := svc.ResumePending(ctx, "", "u2"); joined != "" {
			t.Errorf("expected empty result, got %q", joined)
		}
	})
}
