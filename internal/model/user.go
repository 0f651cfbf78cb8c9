package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email           string             `bson:"email" json:"email"`
	PasswordHash    string             `bson:"passwordHash" json:"-"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	Username        string             `bson:"username,omitempty" json:"username,omitempty"`
	University      string             `bson:"university,omitempty" json:"university,omitempty"`
	PhoneNumber     string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	ProfileComplete bool               `bson:"profileComplete" json:"profileComplete"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Member is the slim user view rendered in member lists and
// assignee dropdowns.
type Member struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (u *User) AsMember() Member {
	return Member{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
