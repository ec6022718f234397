// Package sdk provides a typed Go client for the dashboard HTTP API.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps calls to the dashboard API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the dashboard API at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Status returns the bot's operational status
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var out Status
	if err := c.doJSON(ctx, http.MethodGet, "/api/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Settings returns the settings singleton
func (c *Client) Settings(ctx context.Context) (*BotSettings, error) {
	var out BotSettings
	if err := c.doJSON(ctx, http.MethodGet, "/api/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings merges a partial update into the settings singleton
func (c *Client) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) (*BotSettings, error) {
	var out BotSettings
	if err := c.doJSON(ctx, http.MethodPost, "/api/settings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reactions returns all reaction rules
func (c *Client) Reactions(ctx context.Context) ([]Reaction, error) {
	var out []Reaction
	if err := c.doJSON(ctx, http.MethodGet, "/api/reactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reaction returns a single reaction rule by id
func (c *Client) Reaction(ctx context.Context, id int) (*Reaction, error) {
	path := fmt.Sprintf("/api/reactions/%d", id)

	var out Reaction
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReaction creates a new reaction rule
func (c *Client) CreateReaction(ctx context.Context, req *CreateReactionRequest) (*Reaction, error) {
	var out Reaction
	if err := c.doJSON(ctx, http.MethodPost, "/api/reactions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReaction merges a partial update into an existing reaction rule
func (c *Client) UpdateReaction(ctx context.Context, id int, req *UpdateReactionRequest) (*Reaction, error) {
	path := fmt.Sprintf("/api/reactions/%d", id)

	var out Reaction
	if err := c.doJSON(ctx, http.MethodPut, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReaction removes a reaction rule by id
func (c *Client) DeleteReaction(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/reactions/%d", id)

	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Events returns the most recent events, newest first
func (c *Client) Events(ctx context.Context, limit int) ([]Event, error) {
	path := "/api/events"
	if limit > 0 {
		path = fmt.Sprintf("/api/events?limit=%d", limit)
	}

	var out []Event
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// doJSON is a helper to perform JSON requests to the dashboard API
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, read body and return error
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("dashboard '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
