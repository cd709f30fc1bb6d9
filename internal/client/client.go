// Package client builds well-formed chat requests for the gateway and
// manages the persisted device identity. It is the Go counterpart of the
// browser-side request builder.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/espresso-labs/espresso-gateway/internal/chat"
)

// APIError is a failed gateway response. Credits metadata is carried
// separately from the message so a UI can render a credits-exhausted state
// distinctly from a generic failure.
type APIError struct {
	Message          string
	StatusCode       int
	CreditsRemaining *int
	CreditsTotal     *int
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	baseURL string
	http    *http.Client
	device  DeviceStore
}

func New(baseURL string, device DeviceStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		device:  device,
	}
}

// SendMessage posts a chat turn. history should already be in chronological
// order; the gateway keeps only the most recent turns.
func (c *Client) SendMessage(ctx context.Context, message, podcastSlug string, history []chat.Message, sessionID string) (*chat.Response, error) {
	req := chat.Request{
		Message:             message,
		PodcastSlug:         podcastSlug,
		ConversationHistory: history,
		SessionID:           sessionID,
		DeviceID:            GetOrCreateDeviceID(c.device),
	}
	return c.post(ctx, req, "Failed to send message")
}

// SubmitQuiz frames a completed quiz as a synthetic chat message with the
// quizMode payload attached.
func (c *Client) SubmitQuiz(ctx context.Context, podcastSlug, path string, tags map[string]float64, topTags []string) (*chat.Response, error) {
	req := chat.Request{
		Message:     fmt.Sprintf("Quiz completed: %s path", path),
		PodcastSlug: podcastSlug,
		DeviceID:    GetOrCreateDeviceID(c.device),
		QuizMode: &chat.QuizMode{
			Path:    path,
			Tags:    tags,
			TopTags: topTags,
		},
	}
	return c.post(ctx, req, "Failed to submit quiz")
}

func (c *Client) post(ctx context.Context, req chat.Request, fallback string) (*chat.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb struct {
			Error            string `json:"error"`
			CreditsRemaining *int   `json:"credits_remaining"`
			CreditsTotal     *int   `json:"credits_total"`
		}
		_ = json.Unmarshal(raw, &eb)

		msg := eb.Error
		if msg == "" {
			msg = fallback
		}
		return nil, &APIError{
			Message:          msg,
			StatusCode:       resp.StatusCode,
			CreditsRemaining: eb.CreditsRemaining,
			CreditsTotal:     eb.CreditsTotal,
		}
	}

	var out chat.Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
