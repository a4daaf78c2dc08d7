package stats

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// monthlyGroupPipeline buckets documents by year and month of dateField,
// accumulating acc (e.g. {$sum: "$amount"} or {$sum: 1}) into "value".
func monthlyGroupPipeline(dateField string, acc bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "year", Value: bson.D{{Key: "$year", Value: "$" + dateField}}},
				{Key: "month", Value: bson.D{{Key: "$month", Value: "$" + dateField}}},
			}},
			{Key: "value", Value: acc},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: 1},
			{Key: "_id.month", Value: 1},
		}}},
	}
}

func monthlyTransactionsPipeline() mongo.Pipeline {
	return monthlyGroupPipeline("date", bson.D{{Key: "$sum", Value: "$amount"}})
}

func monthlyUsersPipeline() mongo.Pipeline {
	return monthlyGroupPipeline("createdAt", bson.D{{Key: "$sum", Value: 1}})
}

// recentActivityPipeline returns the latest transactions joined with the
// member's name.
func recentActivityPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "member"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "amount", Value: 1},
			{Key: "status", Value: 1},
			{Key: "date", Value: 1},
			{Key: "userName", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$arrayElemAt", Value: bson.A{"$member.name", 0}}},
				"User",
			}}}},
		}}},
	}
}

// monthlyBucket is the decode target for monthlyGroupPipeline output.
type monthlyBucket struct {
	ID struct {
		Year  int `bson:"year"`
		Month int `bson:"month"`
	} `bson:"_id"`
	Value float64 `bson:"value"`
}
