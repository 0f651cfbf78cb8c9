package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestMilestoneService_Toggle(t *testing.T) {
	ctx := context.Background()
	milestones := NewMockMilestoneStore()
	pub := &MockPublisher{}
	svc := NewMilestoneService(milestones, pub, zap.NewNop())

	projectID := "64b0000000000000000000aa"
	m, err := svc.CreateMilestone(ctx, projectID, "u1", "First draft", "", "2026-11-01")
	if err != nil {
		t.Fatalf("CreateMilestone failed: %v", err)
	}
	if m.Completed {
		t.Error("expected milestone to start incomplete")
	}

	// Toggling removes the milestone outright rather than marking it
	// complete. The completion checkbox has always behaved this way.
	if err := svc.ToggleMilestone(ctx, m.ID.Hex(), "u1"); err != nil {
		t.Fatalf("ToggleMilestone failed: %v", err)
	}
	if len(milestones.Milestones) != 0 {
		t.Errorf("expected milestone removed, %d remain", len(milestones.Milestones))
	}

	keys := pub.RoutingKeys()
	if len(keys) != 2 || keys[1] != "milestone.deleted" {
		t.Errorf("expected milestone.deleted event, got %v", keys)
	}

	if err := svc.ToggleMilestone(ctx, m.ID.Hex(), "u1"); !errors.Is(err, ErrMilestoneNotFound) {
		t.Fatalf("expected ErrMilestoneNotFound on second toggle, got %v", err)
	}
}

func TestMilestoneService_List(t *testing.T) {
	ctx := context.Background()
	milestones := NewMockMilestoneStore()
	svc := NewMilestoneService(milestones, &MockPublisher{}, zap.NewNop())

	projectID := "64b0000000000000000000aa"
	for _, title := range []string{"First draft", "Final report"} {
		if _, err := svc.CreateMilestone(ctx, projectID, "u1", title, "", "2026-11-01"); err != nil {
			t.Fatalf("CreateMilestone failed: %v", err)
		}
	}

	got, err := svc.ListMilestones(ctx, projectID)
	if err != nil {
		t.Fatalf("ListMilestones failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 milestones, got %d", len(got))
	}

	other, err := svc.ListMilestones(ctx, "64b0000000000000000000bb")
	if err != nil {
		t.Fatalf("ListMilestones failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no milestones for other project, got %d", len(other))
	}

	if _, err := svc.ListMilestones(ctx, "not-a-hex-id"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound for malformed id, got %v", err)
	}
}
