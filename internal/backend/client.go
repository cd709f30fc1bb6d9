// Package backend holds the HTTPS client for the hosted chat function. The
// gateway forwards validated requests here and relays the function's status
// and body back to the caller.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxResponseBytes = 1 << 20

// ErrUpstreamTimeout marks a forward that hit the outbound deadline. The
// handler maps it to a retryable 504 instead of hanging the caller.
var ErrUpstreamTimeout = errors.New("backend: upstream timed out")

type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		// No client-level timeout: the per-call context carries the
		// deadline so an aborted inbound request cancels the forward.
		http: &http.Client{},
	}
}

// Forward posts the request to the chat function with the service credential
// attached as both a bearer token and an apikey header. It returns the
// upstream status and raw body; transport failures return an error.
func (c *Client) Forward(ctx context.Context, req any, userKey, deviceID string) (int, []byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/functions/v1/ai_chat", c.baseURL)
	httpReq, err := http.NewRequestWithContext(cctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("x-user-key", userKey)
	httpReq.Header.Set("x-device-id", deviceID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}

// DecodeOrEmpty unmarshals a response body into a generic map. A malformed
// or empty body yields an empty map rather than an error: the real HTTP
// status still decides the success/failure branch, the map is only used to
// extract optional error and credits fields.
func DecodeOrEmpty(body []byte) map[string]any {
	out := map[string]any{}
	if len(body) == 0 {
		return out
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return map[string]any{}
	}
	return out
}
