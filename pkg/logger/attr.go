package logger

import (
	"log/slog"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the member identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// PlanID records the chit plan identifier under the key "plan_id".
// If id is nil, it returns an empty Attr.
func PlanID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("plan_id", id)
}

// TransactionID records the payment record identifier under the key "transaction_id".
// If id is nil, it returns an empty Attr.
func TransactionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("transaction_id", id)
}

// AuctionID records the auction identifier under the key "auction_id".
// If id is nil, it returns an empty Attr.
func AuctionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("auction_id", id)
}

// Channel records a notification channel name under the key "channel".
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// Room records a broadcast room name under the key "room".
func Room(name string) slog.Attr {
	return slog.String("room", name)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
