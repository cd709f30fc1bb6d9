package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espresso-labs/espresso-gateway/internal/backend"
	"github.com/espresso-labs/espresso-gateway/internal/config"
	"github.com/espresso-labs/espresso-gateway/internal/httpapi"
	"github.com/espresso-labs/espresso-gateway/internal/moderator"
)

type failingProvider struct{}

func (failingProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("provider unavailable")
}

func clarifyRouter(reply string, fail bool) *gin.Engine {
	cfg := config.Config{SupabaseURL: "http://localhost:1", SupabaseServiceKey: "k"}
	be := backend.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, time.Second)

	var mod *moderator.Moderator
	if fail {
		mod = moderator.New(failingProvider{}, time.Second)
	} else {
		mod = moderator.New(&stubProvider{reply: reply}, time.Second)
	}
	return httpapi.NewRouter(cfg, be, mod, nil)
}

func postClarify(r *gin.Engine, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/clarify", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClarify_QueryRequired(t *testing.T) {
	r := clarifyRouter(`["Q?"]`, false)

	w := postClarify(r, `{"query":"  "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Query is required"}`, w.Body.String())
}

func TestClarify_ReturnsQuestionsAndEchoesThemes(t *testing.T) {
	r := clarifyRouter(`{"questions":["A?","B?","C?","D?"]}`, false)

	w := postClarify(r, `{
		"query":"how do I price?",
		"active_themes":[{"theme_id":"pricing","score":0.4},{"theme_id":"sales","score":0.38}],
		"ambiguity_reason":"scores too close"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		NeedsClarification     bool                    `json:"needs_clarification"`
		ClarificationQuestions []string                `json:"clarification_questions"`
		ActiveThemes           []moderator.ActiveTheme `json:"active_themes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.NeedsClarification)
	assert.Equal(t, []string{"A?", "B?", "C?"}, resp.ClarificationQuestions)
	require.Len(t, resp.ActiveThemes, 2)
	assert.Equal(t, "pricing", resp.ActiveThemes[0].ThemeID)
}

func TestClarify_ProviderFailureStillResponds(t *testing.T) {
	r := clarifyRouter("", true)

	w := postClarify(r, `{"query":"how do I grow?"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ClarificationQuestions []string `json:"clarification_questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.ClarificationQuestions, 2)
}
