package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is one row of a project's activity feed, written by the worker
// from domain events.
type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"projectId" json:"projectId"`
	ActorID   string             `bson:"actorId" json:"actorId"`
	Kind      string             `bson:"kind" json:"kind"`
	Subject   string             `bson:"subject" json:"subject"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
