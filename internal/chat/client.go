package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const historyPageSize = 100

// Client is a minimal REST client for the chat platform. It implements
// MessageSource and ReportSink.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient constructs a chat client.
func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("chat: empty base url")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type historyPage struct {
	Messages []RawMessage `json:"messages"`
	HasNext  bool         `json:"has_next"`
}

// FetchMessages returns channel history within (after, before), paging until
// the platform reports no further results. Order is whatever the platform
// returns; callers sort.
func (c *Client) FetchMessages(ctx context.Context, channelID string, after, before time.Time) ([]RawMessage, error) {
	if channelID == "" {
		return nil, errors.New("chat: empty channel id")
	}

	var messages []RawMessage
	for page := 0; ; page++ {
		query := url.Values{}
		query.Set("after", after.UTC().Format(time.RFC3339))
		query.Set("before", before.UTC().Format(time.RFC3339))
		query.Set("page", fmt.Sprint(page))
		query.Set("page_size", fmt.Sprint(historyPageSize))

		var resp historyPage
		path := "/api/channels/" + url.PathEscape(channelID) + "/messages?" + query.Encode()
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		messages = append(messages, resp.Messages...)
		if !resp.HasNext {
			break
		}
	}
	return messages, nil
}

// SendReport posts a text report to a channel destination.
func (c *Client) SendReport(ctx context.Context, destination, text string) error {
	if destination == "" {
		return errors.New("chat: empty destination")
	}
	body := map[string]any{"text": text}
	path := "/api/channels/" + url.PathEscape(destination) + "/messages"
	return c.doJSON(ctx, http.MethodPost, path, body, nil)
}

// SendDM delivers a text report directly to a user.
func (c *Client) SendDM(ctx context.Context, userID, text string) error {
	if userID == "" {
		return errors.New("chat: empty user id")
	}
	body := map[string]any{"text": text}
	path := "/api/users/" + url.PathEscape(userID) + "/dm"
	return c.doJSON(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: http %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("chat: http %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
