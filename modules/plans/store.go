package plans

import "context"

// Store persists chit plans.
type Store interface {
	Create(ctx context.Context, plan *Plan) error
	ByID(ctx context.Context, id string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Plan, error)
}
