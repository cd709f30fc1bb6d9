package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espresso-labs/espresso-gateway/internal/chat"
)

func TestForward_SetsCredentialAndKeyHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","role":"assistant","content":"hi"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key", 5*time.Second)
	status, body, err := c.Forward(context.Background(), chat.Request{
		Message:     "hello",
		PodcastSlug: "lennys-podcast",
	}, "abc123", "device-1")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":"1","role":"assistant","content":"hi"}`, string(body))

	assert.Equal(t, "Bearer service-key", got.Get("Authorization"))
	assert.Equal(t, "service-key", got.Get("apikey"))
	assert.Equal(t, "abc123", got.Get("x-user-key"))
	assert.Equal(t, "device-1", got.Get("x-device-id"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestForward_RelaysUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"out of credits","credits_remaining":0,"credits_total":10}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 5*time.Second)
	status, body, err := c.Forward(context.Background(), chat.Request{Message: "m", PodcastSlug: "s"}, "uk", "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusPaymentRequired, status)

	data := DecodeOrEmpty(body)
	assert.Equal(t, "out of credits", data["error"])
	assert.Equal(t, float64(0), data["credits_remaining"])
	assert.Equal(t, float64(10), data["credits_total"])
}

func TestForward_TimeoutMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 50*time.Millisecond)
	_, _, err := c.Forward(context.Background(), chat.Request{Message: "m", PodcastSlug: "s"}, "uk", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamTimeout)
}

func TestForward_TransportError(t *testing.T) {
	// server closed before the call: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	_, _, err := c.Forward(context.Background(), chat.Request{Message: "m", PodcastSlug: "s"}, "uk", "")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstreamTimeout)
}

func TestForward_CanceledInboundContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := NewClient(srv.URL, "k", 5*time.Second)
	_, _, err := c.Forward(ctx, chat.Request{Message: "m", PodcastSlug: "s"}, "uk", "")

	require.Error(t, err)
	// an aborted caller is not an upstream timeout
	assert.NotErrorIs(t, err, ErrUpstreamTimeout)
}

func TestDecodeOrEmpty(t *testing.T) {
	assert.Empty(t, DecodeOrEmpty(nil))
	assert.Empty(t, DecodeOrEmpty([]byte("not json at all")))
	assert.Empty(t, DecodeOrEmpty([]byte("")))

	data := DecodeOrEmpty([]byte(`{"error":"nope"}`))
	assert.Equal(t, "nope", data["error"])
}
