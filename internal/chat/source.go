package chat

import (
	"context"
	"errors"
	"time"
)

// RawMessage is one chat message as returned by the platform, before any
// parsing. Messages may arrive in any order; ordering belongs to the core.
type RawMessage struct {
	Author string    `json:"author"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// MessageSource fetches channel history for a half-open time window.
type MessageSource interface {
	FetchMessages(ctx context.Context, channelID string, after, before time.Time) ([]RawMessage, error)
}

// ReportSink delivers a rendered report to a destination (channel or DM).
type ReportSink interface {
	SendReport(ctx context.Context, destination, text string) error
}

// ErrUnavailable marks a boundary failure the caller may retry. The core
// performs no implicit retry itself.
var ErrUnavailable = errors.New("chat: platform unavailable")
