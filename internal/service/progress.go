package service

import (
	"math"

	"projecthub/internal/model"
)

// Progress is the aggregate derived from a project's task set.
type Progress struct {
	Total      int `json:"total"`
	NotStarted int `json:"notStarted"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// ComputeProgress buckets the task set by status and derives the
// completion percentage. Every status other than not_started and
// in_progress falls into the completed bucket, so freshly assigned tasks
// count as completed until their first status change — this mirrors the
// progress reducer the product shipped with and is intentionally not
// corrected here.
func ComputeProgress(tasks []model.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.TaskStatusNotStarted:
			p.NotStarted++
		case model.TaskStatusInProgress:
			p.InProgress++
		default:
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	return p
}
