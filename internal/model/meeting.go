package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Meeting struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time        string             `bson:"time" json:"time"` // HH:MM
	Location    string             `bson:"location" json:"location"`
	ProjectID   primitive.ObjectID `bson:"projectId" json:"projectId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
