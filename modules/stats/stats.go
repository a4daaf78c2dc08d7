package stats

import "time"

// Overview is the admin dashboard's aggregate snapshot.
type Overview struct {
	TotalUsers          int64            `json:"totalUsers"`
	ActiveUsers         int64            `json:"activeUsers"`
	TotalPlans          int64            `json:"totalChits"`
	TotalTransactions   int64            `json:"totalTransactions"`
	PendingTransactions int64            `json:"pendingTransactions"`
	MonthlyTransactions []MonthlyAmount  `json:"monthlyTransactions"`
	MonthlyUsers        []MonthlyCount   `json:"monthlyUsers"`
	RecentActivity      []RecentActivity `json:"recentActivity"`
}

// MonthlyAmount is one month's transaction volume.
type MonthlyAmount struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// MonthlyCount is one month's new-member count.
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// RecentActivity is one of the latest transactions, with the member's name
// resolved for display.
type RecentActivity struct {
	UserName string    `bson:"userName" json:"userName"`
	Amount   float64   `bson:"amount" json:"amount"`
	Status   string    `bson:"status" json:"status"`
	Date     time.Time `bson:"date" json:"date"`
}
