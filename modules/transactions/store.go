package transactions

import (
	"context"
)

// Store persists transactions. UpdateStatus writes only the status and
// updatedAt fields; callers serialize per-id access, so no compare-and-swap
// is needed at this layer.
type Store interface {
	Create(ctx context.Context, tx *Transaction) error
	ByID(ctx context.Context, id string) (*Transaction, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Transaction, error)
	ForUser(ctx context.Context, userID string) ([]Transaction, error)
	ForUserWithStatus(ctx context.Context, userID string, status Status) ([]Transaction, error)
}
