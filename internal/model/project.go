package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ProjectStatusActive = "active"

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Course      string             `bson:"course" json:"course"`
	DueDate     string             `bson:"dueDate" json:"dueDate"` // YYYY-MM-DD
	Description string             `bson:"description" json:"description"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	Members     []string           `bson:"members" json:"members"`
	Status      string             `bson:"status" json:"status"`
	InviteCode  string             `bson:"inviteCode" json:"inviteCode"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasMember reports whether the given user id is in the member set.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}
