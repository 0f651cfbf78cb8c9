package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"projecthub/internal/model"
	"projecthub/pkg/util"
)

func newProjectFixture() (*ProjectService, *MockProjectStore, *MockUserStore, *MockPublisher) {
	projects := NewMockProjectStore()
	users := NewMockUserStore()
	pub := &MockPublisher{}
	return NewProjectService(projects, users, pub, zap.NewNop()), projects, users, pub
}

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("Given a creator When created Then creator is a member and an invite code exists", func(t *testing.T) {
		svc, _, _, pub := newProjectFixture()

		p, err := svc.CreateProject(ctx, "u1", "Compilers", "CS4100", "2026-12-01", "term project")
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}

		if !p.HasMember("u1") {
			t.Errorf("creator missing from members: %v", p.Members)
		}
		if len(p.Members) != 1 {
			t.Errorf("expected exactly one member, got %v", p.Members)
		}
		if p.Status != model.ProjectStatusActive {
			t.Errorf("expected active status, got %q", p.Status)
		}
		if len(p.InviteCode) != util.InviteCodeLength {
			t.Errorf("expected %d-char invite code, got %q", util.InviteCodeLength, p.InviteCode)
		}
		if keys := pub.RoutingKeys(); len(keys) != 1 || keys[0] != "project.created" {
			t.Errorf("expected project.created event, got %v", keys)
		}
	})

	t.Run("Given a store failure When created Then the error surfaces", func(t *testing.T) {
		svc, projects, _, _ := newProjectFixture()
		projects.InsertFunc = func(ctx context.Context, p *model.Project) error {
			return ErrMockStore
		}

		if _, err := svc.CreateProject(ctx, "u1", "Compilers", "", "", ""); !errors.Is(err, ErrMockStore) {
			t.Fatalf("expected mock store error, got %v", err)
		}
	})
}

func TestProjectService_InviteCodeLookup(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newProjectFixture()

	p, err := svc.CreateProject(ctx, "u1", "Compilers", "", "", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	got, err := svc.GetProjectByInviteCode(ctx, p.InviteCode)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("expected project %s, got %s", p.ID.Hex(), got.ID.Hex())
	}

	if _, err := svc.GetProjectByInviteCode(ctx, "no-such-code"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_AddMember(t *testing.T) {
	ctx := context.Background()
	svc, projects, _, _ := newProjectFixture()

	p, _ := svc.CreateProject(ctx, "u1", "Compilers", "", "", "")

	if err := svc.AddMember(ctx, p.ID, "u2"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	// The member write is a set union, so adding again changes nothing.
	if err := svc.AddMember(ctx, p.ID, "u2"); err != nil {
		t.Fatalf("duplicate AddMember failed: %v", err)
	}

	got, _ := projects.FindByID(ctx, p.ID)
	if len(got.Members) != 2 {
		t.Errorf("expected 2 members after duplicate add, got %v", got.Members)
	}
}

func TestProjectService_RecentProjectsForMember(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newProjectFixture()

	dates := []string{"2026-01-15", "2026-06-30", "2026-03-01"}
	for _, d := range dates {
		if _, err := svc.CreateProject(ctx, "u1", "p-"+d, "", d, ""); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
	}

	recent, err := svc.RecentProjectsForMember(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("RecentProjectsForMember failed: %v", err)
	}

	if len(recent) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(recent))
	}
	if recent[0].DueDate != "2026-06-30" || recent[1].DueDate != "2026-03-01" {
		t.Errorf("expected latest due dates first, got %s then %s", recent[0].DueDate, recent[1].DueDate)
	}
}

func TestProjectService_Members(t *testing.T) {
	ctx := context.Background()
	svc, _, users, _ := newProjectFixture()

	u := &model.User{Email: "ada@example.edu", FirstName: "Ada", LastName: "Lovelace"}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	p, _ := svc.CreateProject(ctx, u.ID.Hex(), "Compilers", "", "", "")

	members, err := svc.Members(ctx, p.ID.Hex())
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].FirstName != "Ada" || members[0].ID != u.ID.Hex() {
		t.Errorf("unexpected member view: %+v", members[0])
	}
}
