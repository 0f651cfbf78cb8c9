package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"projecthub/internal/model"
	"projecthub/pkg/metrics"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Insert creates a new user and fills in the generated id.
func (r *UserRepository) Insert(ctx context.Context, u *model.User) error {
	start := time.Now()
	res, err := r.col.InsertOne(ctx, u)
	metrics.RecordDBOperationDuration("insert", "users", time.Since(start))
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns the user, or mongo.ErrNoDocuments.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("find_one", "users", time.Since(start)) }()

	var u model.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail returns the user with the given email, or mongo.ErrNoDocuments.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("find_one", "users", time.Since(start)) }()

	var u model.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIDs resolves the given hex ids to users. Unknown or malformed ids
// are skipped, matching how member lists tolerate dangling references.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []model.User{}, nil
	}

	start := time.Now()
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	metrics.RecordDBOperationDuration("find", "users", time.Since(start))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UsernameExists reports whether any user already holds the username.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("count", "users", time.Since(start)) }()

	n, err := r.col.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateProfile merges the onboarding fields into the user document and
// marks the profile complete.
func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, username, university, phoneNumber string) error {
	start := time.Now()
	defer func() { metrics.RecordDBOperationDuration("update_one", "users", time.Since(start)) }()

	update := bson.M{"$set": bson.M{
		"username":        username,
		"university":      university,
		"phoneNumber":     phoneNumber,
		"profileComplete": true,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
