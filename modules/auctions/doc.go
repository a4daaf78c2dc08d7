// Package auctions runs the live bidding in a chit plan's auction round.
// Bids are kept in memory per auction and every accepted bid is pushed
// to the auction's room and the global room.
package auctions
