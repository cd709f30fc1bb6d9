package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/espresso-labs/espresso-gateway/internal/backend"
	"github.com/espresso-labs/espresso-gateway/internal/chat"
	"github.com/espresso-labs/espresso-gateway/internal/common"
	"github.com/espresso-labs/espresso-gateway/internal/userkey"
)

const maxDeviceIDLen = 64

// Chat is the edge proxy for POST /api/chat. Per request it moves through
// received, validated, configured, forwarded, translated, responded,
// short-circuiting to an error response at the first failed gate. Nothing
// is persisted; lifetime is the request/response cycle.
func (h *Handler) Chat(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	quizMode := req.QuizMode != nil
	req.Message = strings.TrimSpace(req.Message)
	req.PodcastSlug = strings.TrimSpace(req.PodcastSlug)

	// fail fast, in contract order
	if err := chat.ValidateMessageRequired(req.Message, quizMode); err != nil {
		common.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := chat.ValidateSlug(req.PodcastSlug); err != nil {
		common.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := chat.ValidateMessageLength(req.Message, quizMode); err != nil {
		common.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Cfg.ValidateBackend(); err != nil {
		log.WithError(err).Error("chat: backend configuration missing")
		common.Error(c, http.StatusInternalServerError, "Server configuration missing")
		return
	}

	key := userkey.FromHeaders(c.Request.Header)

	deviceID := strings.TrimSpace(req.DeviceID)
	if len(deviceID) > maxDeviceIDLen {
		deviceID = deviceID[:maxDeviceIDLen]
	}

	if h.Limiter != nil {
		allowed, err := h.Limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// fail open: the backend holds the authoritative limiter
			log.WithError(err).Warn("chat: throttle check failed")
		} else if !allowed {
			common.Error(c, http.StatusTooManyRequests, "Too many requests. Please slow down.")
			return
		}
	}

	outbound := chat.Request{
		Message:             req.Message,
		PodcastSlug:         req.PodcastSlug,
		ConversationHistory: chat.SanitizeHistory(req.ConversationHistory),
		SessionID:           strings.TrimSpace(req.SessionID),
		QuizMode:            req.QuizMode,
	}

	status, body, err := h.Backend.Forward(c.Request.Context(), outbound, key, deviceID)
	if err != nil {
		if errors.Is(err, backend.ErrUpstreamTimeout) {
			log.WithError(err).Warn("chat: edge function timed out")
			common.Error(c, http.StatusGatewayTimeout, "Chat service timed out. Please try again.")
			return
		}
		log.WithError(err).Error("chat: edge function call failed")
		common.Error(c, http.StatusBadGateway, "Unable to reach the chat service. Please try again.")
		return
	}

	if status < 200 || status >= 300 {
		data := backend.DecodeOrEmpty(body)
		msg, _ := data["error"].(string)
		if msg == "" {
			msg = "Request failed"
		}
		log.WithFields(log.Fields{"status": status, "error": msg}).Warn("chat: edge function returned an error")

		resp := gin.H{"error": msg}
		if v, ok := data["credits_remaining"]; ok {
			resp["credits_remaining"] = v
		}
		if v, ok := data["credits_total"]; ok {
			resp["credits_total"] = v
		}
		c.JSON(status, resp)
		return
	}

	// success body passes through unchanged
	if !json.Valid(body) {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
