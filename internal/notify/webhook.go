package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// WebhookNotifier sends report notifications via webhook.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

type webhookPayload struct {
	MsgType string      `json:"msgtype"`
	Text    webhookText `json:"text"`
}

type webhookText struct {
	Content string `json:"content"`
}

// NewWebhookNotifier constructs a notifier.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify posts the report summary to the webhook.
func (n *WebhookNotifier) Notify(ctx context.Context, msg ReportMessage) error {
	if n == nil || n.url == "" {
		return errors.New("webhook notifier: empty url")
	}
	payload := webhookPayload{
		MsgType: "text",
		Text:    webhookText{Content: formatReportMessage(msg)},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.New("webhook notifier: non-2xx")
	}
	return nil
}

func formatReportMessage(msg ReportMessage) string {
	var b strings.Builder
	b.WriteString("[Fuel Report]\n")
	if msg.Channel != "" {
		fmt.Fprintf(&b, "Channel: %s\n", msg.Channel)
	}
	if msg.WindowStart != "" {
		fmt.Fprintf(&b, "Window: %s .. %s\n", msg.WindowStart, msg.WindowEnd)
	}
	fmt.Fprintf(&b, "Deliveries: %d\n", msg.EventCount)
	fmt.Fprintf(&b, "Trips: %d\n", msg.TripCount)
	fmt.Fprintf(&b, "Total Taken: %.0fL\n", msg.TotalVolume)
	if msg.NetTotal != 0 {
		fmt.Fprintf(&b, "Net Total: %.2f\n", msg.NetTotal)
	}
	return strings.TrimSpace(b.String())
}
