package service

import (
	"testing"

	"projecthub/internal/model"
)

func TestComputeProgress(t *testing.T) {
	t.Run("Given no tasks When computed Then everything is zero", func(t *testing.T) {
		p := ComputeProgress(nil)

		if p.Total != 0 || p.Percentage != 0 {
			t.Errorf("expected zero progress, got %+v", p)
		}
	})

	t.Run("Given mixed statuses When computed Then buckets count per status", func(t *testing.T) {
		tasks := []model.Task{
			{Status: model.TaskStatusNotStarted},
			{Status: model.TaskStatusNotStarted},
			{Status: model.TaskStatusInProgress},
			{Status: model.TaskStatusCompleted},
		}

		p := ComputeProgress(tasks)

		if p.Total != 4 {
			t.Errorf("expected total 4, got %d", p.Total)
		}
		if p.NotStarted != 2 {
			t.Errorf("expected 2 not started, got %d", p.NotStarted)
		}
		if p.InProgress != 1 {
			t.Errorf("expected 1 in progress, got %d", p.InProgress)
		}
		if p.Completed != 1 {
			t.Errorf("expected 1 completed, got %d", p.Completed)
		}
		if p.Percentage != 25 {
			t.Errorf("expected 25%%, got %d%%", p.Percentage)
		}
	})

	t.Run("Given freshly assigned tasks When computed Then they land in the completed bucket", func(t *testing.T) {
		// The shipped reducer only knows not_started and in_progress;
		// everything else, including "assigned", counts as completed.
		tasks := []model.Task{
			{Status: model.TaskStatusAssigned},
			{Status: model.TaskStatusNotStarted},
		}

		p := ComputeProgress(tasks)

		if p.Completed != 1 {
			t.Errorf("expected assigned task in completed bucket, got %d completed", p.Completed)
		}
		if p.Percentage != 50 {
			t.Errorf("expected 50%%, got %d%%", p.Percentage)
		}
	})

	t.Run("Given a non-terminating fraction When computed Then percentage rounds to nearest", func(t *testing.T) {
		tasks := []model.Task{
			{Status: model.TaskStatusCompleted},
			{Status: model.TaskStatusNotStarted},
			{Status: model.TaskStatusNotStarted},
		}

		p := ComputeProgress(tasks)

		// 100/3 rounds to 33
		if p.Percentage != 33 {
			t.Errorf("expected 33%%, got %d%%", p.Percentage)
		}

		tasks = append(tasks, model.Task{Status: model.TaskStatusCompleted},
			model.Task{Status: model.TaskStatusCompleted})

		// 300/5 = 60
		if got := ComputeProgress(tasks).Percentage; got != 60 {
			t.Errorf("expected 60%%, got %d%%", got)
		}
	})
}
