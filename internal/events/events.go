package events

import "time"

const (
	RoutingKeyProjectCreated      = "project.created"
	RoutingKeyProjectMemberJoined = "project.member_joined"
	RoutingKeyTaskCreated         = "task.created"
	RoutingKeyTaskStatusChanged   = "task.status_changed"
	RoutingKeyTaskDeleted         = "task.deleted"
	RoutingKeyMilestoneCreated    = "milestone.created"
	RoutingKeyMilestoneDeleted    = "milestone.deleted"
	RoutingKeyMeetingCreated      = "meeting.created"
	RoutingKeyMeetingDeleted      = "meeting.deleted"
)

// ActivityPayload 项目活动事件的 payload
type ActivityPayload struct {
	EventID    string    `json:"event_id"`
	ProjectID  string    `json:"project_id"`
	ActorID    string    `json:"actor_id"`
	Kind       string    `json:"kind"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
}
