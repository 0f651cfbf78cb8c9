package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Milestone struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DueDate     string             `bson:"dueDate" json:"dueDate"` // YYYY-MM-DD
	Completed   bool               `bson:"completed" json:"completed"`
	ProjectID   primitive.ObjectID `bson:"projectId" json:"projectId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
