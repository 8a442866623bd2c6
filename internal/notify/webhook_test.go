package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testMessage() ReportMessage {
	return ReportMessage{
		Channel:     "fuel-log",
		WindowStart: "2025-04-19T00:00:00Z",
		WindowEnd:   "2025-04-20T00:00:00Z",
		TotalVolume: 150,
		EventCount:  3,
		TripCount:   2,
		NetTotal:    4000000,
	}
}

func TestWebhookNotifier_PostsPayload(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	if err := notifier.Notify(context.Background(), testMessage()); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if got.MsgType != "text" {
		t.Fatalf("msgtype %q", got.MsgType)
	}
	content := got.Text.Content
	for _, want := range []string{"fuel-log", "Deliveries: 3", "Trips: 2", "Total Taken: 150L", "Net Total: 4000000.00"} {
		if !strings.Contains(content, want) {
			t.Fatalf("content missing %q:\n%s", want, content)
		}
	}
}

func TestWebhookNotifier_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	if err := notifier.Notify(context.Background(), testMessage()); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestWebhookNotifier_EmptyURL(t *testing.T) {
	notifier := NewWebhookNotifier("")
	if err := notifier.Notify(context.Background(), testMessage()); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestFormatReportMessage_OmitsZeroNet(t *testing.T) {
	msg := testMessage()
	msg.NetTotal = 0
	content := formatReportMessage(msg)
	if strings.Contains(content, "Net Total") {
		t.Fatalf("zero net must be omitted:\n%s", content)
	}
}
