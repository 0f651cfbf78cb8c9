package model

import "testing"

func TestNextStatus(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{TaskStatusNotStarted, TaskStatusInProgress},
		{TaskStatusInProgress, TaskStatusCompleted},
		{TaskStatusCompleted, TaskStatusNotStarted},
		{TaskStatusAssigned, TaskStatusNotStarted},
		{"", TaskStatusNotStarted},
		{"garbage", TaskStatusNotStarted},
	}

	for _, c := range cases {
		if got := NextStatus(c.current); got != c.want {
			t.Errorf("NextStatus(%q) = %q, want %q", c.current, got, c.want)
		}
	}
}

func TestValidTaskStatus(t *testing.T) {
	for _, s := range []string{TaskStatusAssigned, TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted} {
		if !ValidTaskStatus(s) {
			t.Errorf("expected %q valid", s)
		}
	}
	for _, s := range []string{"", "done", "NOT_STARTED"} {
		if ValidTaskStatus(s) {
			t.Errorf("expected %q invalid", s)
		}
	}
}

func TestValidTaskPriority(t *testing.T) {
	for _, p := range []string{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh} {
		if !ValidTaskPriority(p) {
			t.Errorf("expected %q valid", p)
		}
	}
	if ValidTaskPriority("urgent") {
		t.Error("expected urgent invalid")
	}
}
