package auctions

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/pkg/logger"
)

// RoomPrefix namespaces auction rooms so a raw plan id can never collide
// with an auction id.
const RoomPrefix = "auction:"

// Room returns the live room name for an auction.
func Room(auctionID string) string {
	return RoomPrefix + auctionID
}

var ErrBidTooLow = errors.New("bid does not beat the current highest")

// Bid is a member's offer in a running auction.
type Bid struct {
	AuctionID string    `json:"auctionId"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	PlacedAt  time.Time `json:"placedAt"`
}

// Event is the payload fanned out to auction room subscribers.
type Event struct {
	Type string `json:"type"`
	Bid  Bid    `json:"bid"`
}

// Publisher pushes live bid events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, room string, payload any) error
	PublishGlobal(ctx context.Context, payload any) error
}

// Service tracks the highest bid per auction in memory and fans new bids
// out to the auction's room and the global room. Auction state is not
// persisted; a restart simply starts the books empty.
type Service struct {
	publisher Publisher
	log       *slog.Logger

	mu      sync.Mutex
	highest map[string]Bid
}

// Option configures the Service.
type Option func(*Service)

// WithServiceLogger sets the logger.
func WithServiceLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates an auction service publishing through p.
func NewService(p Publisher, opts ...Option) *Service {
	s := &Service{
		publisher: p,
		log:       slog.Default(),
		highest:   make(map[string]Bid),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceBid records the bid if it beats the auction's current highest and
// broadcasts it. Broadcast failures are logged, never surfaced.
func (s *Service) PlaceBid(ctx context.Context, auctionID, userID string, amount float64) (Bid, error) {
	errs := core.NewValidationError()
	if auctionID == "" {
		errs.Add("auctionId", "auction id is required")
	}
	if userID == "" {
		errs.Add("userId", "user id is required")
	}
	if amount <= 0 {
		errs.Add("amount", "amount must be positive")
	}
	if !errs.IsEmpty() {
		return Bid{}, errs
	}

	bid := Bid{
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		PlacedAt:  time.Now(),
	}

	s.mu.Lock()
	if current, ok := s.highest[auctionID]; ok && amount <= current.Amount {
		s.mu.Unlock()
		return Bid{}, ErrBidTooLow
	}
	s.highest[auctionID] = bid
	s.mu.Unlock()

	event := Event{Type: "auction:bid", Bid: bid}
	if err := s.publisher.Publish(ctx, Room(auctionID), event); err != nil {
		s.log.WarnContext(ctx, "publish bid",
			logger.AuctionID(auctionID), logger.Room(Room(auctionID)), logger.Error(err))
	}
	if err := s.publisher.PublishGlobal(ctx, event); err != nil {
		s.log.WarnContext(ctx, "publish global bid",
			logger.AuctionID(auctionID), logger.Error(err))
	}

	return bid, nil
}

// HighestBid returns the auction's current highest bid, if any.
func (s *Service) HighestBid(auctionID string) (Bid, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bid, ok := s.highest[auctionID]
	return bid, ok
}
