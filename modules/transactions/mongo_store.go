package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const transactionsCollection = "transactions"

// MongoStore is the production Store backed by MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a transaction store and ensures its query indexes.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection(transactionsCollection)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create transaction indexes: %w", err)
	}

	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Create(ctx context.Context, tx *Transaction) error {
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *MongoStore) ByID(ctx context.Context, id string) (*Transaction, error) {
	var tx Transaction
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&tx); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return &tx, nil
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Transaction, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoStore) ForUser(ctx context.Context, userID string) ([]Transaction, error) {
	return s.find(ctx, bson.M{"user": userID})
}

func (s *MongoStore) ForUserWithStatus(ctx context.Context, userID string, status Status) ([]Transaction, error) {
	return s.find(ctx, bson.M{"user": userID, "status": status})
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]Transaction, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []Transaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return out, nil
}
