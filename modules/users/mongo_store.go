package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

// MongoStore is the production Store backed by MongoDB. Unique indexes on
// email and userId enforce the conflicts MemoryStore checks by iteration.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a user store and ensures its unique indexes.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection(usersCollection)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_id"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create user indexes: %w", err)
	}

	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Create(ctx context.Context, user *User) error {
	now := time.Now()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return classifyDuplicate(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// classifyDuplicate maps a duplicate key error to the violated index so
// callers can tell a duplicate member from a colliding generated login id.
func classifyDuplicate(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "uniq_user_id"):
		return ErrLoginIDTaken
	case strings.Contains(msg, "uniq_email"):
		return ErrEmailTaken
	default:
		return ErrEmailTaken
	}
}

func (s *MongoStore) ByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) ByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (s *MongoStore) ByLoginID(ctx context.Context, loginID string) (*User, error) {
	return s.findOne(ctx, bson.M{"userId": loginID})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) Update(ctx context.Context, user *User) error {
	user.Email = strings.ToLower(user.Email)
	user.UpdatedAt = time.Now()

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"enrolledChits": user.EnrolledPlans,
		"profilePic":    user.ProfilePic,
		"updatedAt":     user.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return classifyDuplicate(err)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) RecordLogin(ctx context.Context, id string, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"lastLogin": at,
		"isActive":  true,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return out, nil
}

func (s *MongoStore) ByEnrolledPlan(ctx context.Context, planID string) ([]User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"enrolledChits": planID})
	if err != nil {
		return nil, fmt.Errorf("find enrolled users: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode enrolled users: %w", err)
	}
	return out, nil
}
