package brochure

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Store persists brochure metadata. Latest returns the most recently
// uploaded brochure or ErrNoBrochure.
type Store interface {
	Save(ctx context.Context, b *Brochure) error
	Latest(ctx context.Context) (*Brochure, error)
}

const brochuresCollection = "brochures"

// MongoStore is the production Store backed by MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a brochure store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(brochuresCollection)}
}

func (s *MongoStore) Save(ctx context.Context, b *Brochure) error {
	b.UploadedAt = time.Now()
	if _, err := s.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert brochure: %w", err)
	}
	return nil
}

func (s *MongoStore) Latest(ctx context.Context) (*Brochure, error) {
	var b Brochure
	opts := options.FindOne().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})
	if err := s.coll.FindOne(ctx, bson.M{}, opts).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoBrochure
		}
		return nil, fmt.Errorf("find latest brochure: %w", err)
	}
	return &b, nil
}

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu        sync.RWMutex
	brochures []Brochure
}

// NewMemoryStore creates an empty in-memory brochure store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(ctx context.Context, b *Brochure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.UploadedAt = time.Now()
	s.brochures = append(s.brochures, *b)
	return nil
}

func (s *MemoryStore) Latest(ctx context.Context) (*Brochure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.brochures) == 0 {
		return nil, ErrNoBrochure
	}

	sorted := make([]Brochure, len(s.brochures))
	copy(sorted, s.brochures)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UploadedAt.After(sorted[j].UploadedAt)
	})
	latest := sorted[0]
	return &latest, nil
}
