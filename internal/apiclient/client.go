// Package apiclient is the HTTP client for the chat proxy endpoint.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maxgpt/maxgpt/internal/session"
)

type chatRequest struct {
	Message  string            `json:"message"`
	Messages []session.Message `json:"messages"`
}

type chatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Complete posts one message with its prior context to /api/chat. Every
// failure class (network, timeout, non-200) comes back as a plain error;
// callers do not distinguish them.
func (c *Client) Complete(ctx context.Context, message string, prior []session.Message) (string, error) {
	if prior == nil {
		prior = []session.Message{}
	}
	b, err := json.Marshal(chatRequest{Message: message, Messages: prior})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var decoded chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("chat request failed: status %d", resp.StatusCode)
		}
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != "" {
			return "", fmt.Errorf("chat request failed: %s", decoded.Error)
		}
		return "", fmt.Errorf("chat request failed: status %d", resp.StatusCode)
	}
	return decoded.Response, nil
}
