// Package mongo provides MongoDB connection management for the chit-fund
// backend: environment-driven configuration, retry on connect for transient
// Atlas failures, pooled defaults, and a health check function for probes.
package mongo
