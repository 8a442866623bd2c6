package notify

import "context"

// ReportMessage represents a report notification payload.
type ReportMessage struct {
	Channel     string  `json:"channel"`
	WindowStart string  `json:"window_start"`
	WindowEnd   string  `json:"window_end"`
	TotalVolume float64 `json:"total_volume"`
	EventCount  int     `json:"event_count"`
	TripCount   int     `json:"trip_count"`
	NetTotal    float64 `json:"net_total,omitempty"`
	ReportText  string  `json:"report_text,omitempty"`
}

// Notifier sends report notifications.
type Notifier interface {
	Notify(ctx context.Context, msg ReportMessage) error
}
