package plans

import "time"

// Plan is a chit scheme members subscribe to. Image holds the storage path
// of the plan's promotional picture; the public URL is derived on render.
type Plan struct {
	ID                  string    `bson:"_id" json:"id"`
	Name                string    `bson:"planName" json:"planName"`
	MonthlySubscription float64   `bson:"monthlySubscription" json:"monthlySubscription"`
	MinBidding          float64   `bson:"minBidding" json:"minBidding"`
	MaxBidding          float64   `bson:"maxBidding" json:"maxBidding"`
	DurationMonths      int       `bson:"duration" json:"duration"`
	TotalAmount         float64   `bson:"totalAmount" json:"totalAmount"`
	Image               string    `bson:"image" json:"image"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}
