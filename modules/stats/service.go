package stats

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	usersCollection        = "users"
	plansCollection        = "chitplans"
	transactionsCollection = "transactions"

	activeWindow       = 7 * 24 * time.Hour
	recentActivitySize = 10
)

// Service computes the admin dashboard aggregates straight from the
// database. It only reads; the owning modules keep writing through their
// stores.
type Service struct {
	db *mongo.Database
}

// NewService creates a stats service over db.
func NewService(db *mongo.Database) *Service {
	return &Service{db: db}
}

// Overview assembles the dashboard snapshot in one pass.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var (
		out Overview
		err error
	)

	users := s.db.Collection(usersCollection)
	plans := s.db.Collection(plansCollection)
	txs := s.db.Collection(transactionsCollection)

	if out.TotalUsers, err = users.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	activeSince := time.Now().Add(-activeWindow)
	if out.ActiveUsers, err = users.CountDocuments(ctx, bson.M{"lastLogin": bson.M{"$gte": activeSince}}); err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}

	if out.TotalPlans, err = plans.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("count plans: %w", err)
	}

	if out.TotalTransactions, err = txs.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}
	if out.PendingTransactions, err = txs.CountDocuments(ctx, bson.M{"status": "Pending"}); err != nil {
		return nil, fmt.Errorf("count pending transactions: %w", err)
	}

	txBuckets, err := s.aggregate(ctx, txs, monthlyTransactionsPipeline())
	if err != nil {
		return nil, fmt.Errorf("monthly transactions: %w", err)
	}
	out.MonthlyTransactions = make([]MonthlyAmount, 0, len(txBuckets))
	for _, b := range txBuckets {
		out.MonthlyTransactions = append(out.MonthlyTransactions, MonthlyAmount{
			Year:  b.ID.Year,
			Month: b.ID.Month,
			Total: b.Value,
		})
	}

	userBuckets, err := s.aggregate(ctx, users, monthlyUsersPipeline())
	if err != nil {
		return nil, fmt.Errorf("monthly users: %w", err)
	}
	out.MonthlyUsers = make([]MonthlyCount, 0, len(userBuckets))
	for _, b := range userBuckets {
		out.MonthlyUsers = append(out.MonthlyUsers, MonthlyCount{
			Year:  b.ID.Year,
			Month: b.ID.Month,
			Count: int64(b.Value),
		})
	}

	cursor, err := txs.Aggregate(ctx, recentActivityPipeline(recentActivitySize))
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	out.RecentActivity = make([]RecentActivity, 0, recentActivitySize)
	if err := cursor.All(ctx, &out.RecentActivity); err != nil {
		return nil, fmt.Errorf("decode recent activity: %w", err)
	}

	return &out, nil
}

func (s *Service) aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]monthlyBucket, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var buckets []monthlyBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
