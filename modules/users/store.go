package users

import (
	"context"
	"time"
)

// Store persists user accounts. Email and LoginID are unique; Create
// returns ErrEmailTaken or ErrLoginIDTaken on conflict so callers can
// distinguish a duplicate member from a colliding generated identifier.
type Store interface {
	Create(ctx context.Context, user *User) error
	ByID(ctx context.Context, id string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	ByLoginID(ctx context.Context, loginID string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]User, error)
	ByEnrolledPlan(ctx context.Context, planID string) ([]User, error)
}
