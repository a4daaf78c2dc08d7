package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const plansCollection = "chitplans"

// MongoStore is the production Store backed by MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a plan store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(plansCollection)}
}

func (s *MongoStore) Create(ctx context.Context, plan *Plan) error {
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, plan); err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (s *MongoStore) ByID(ctx context.Context, id string) (*Plan, error) {
	var plan Plan
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&plan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return &plan, nil
}

func (s *MongoStore) Update(ctx context.Context, plan *Plan) error {
	plan.UpdatedAt = time.Now()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": plan.ID}, plan)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Plan, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []Plan
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode plans: %w", err)
	}
	return out, nil
}
