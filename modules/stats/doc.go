// Package stats computes the admin dashboard aggregates: member and plan
// totals, pending transaction counts, monthly rollups, and the latest
// activity feed. Everything is read straight from MongoDB with aggregation
// pipelines.
package stats
