package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/espresso-labs/espresso-gateway/internal/common"
	"github.com/espresso-labs/espresso-gateway/internal/moderator"
)

type clarifyReq struct {
	Query           string                  `json:"query"`
	ActiveThemes    []moderator.ActiveTheme `json:"active_themes"`
	AmbiguityReason string                  `json:"ambiguity_reason"`
	UserContext     string                  `json:"user_context"`
}

// Clarify turns an ambiguous-match report into 2-3 clarifying questions.
// The generator itself never fails, so the only error here is a bad input.
func (h *Handler) Clarify(c *gin.Context) {
	var req clarifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		common.Error(c, http.StatusBadRequest, "Query is required")
		return
	}

	reason := req.AmbiguityReason
	if reason == "" {
		reason = "Query is ambiguous"
	}

	questions := h.Moderator.GenerateClarificationQuestions(
		c.Request.Context(), req.Query, req.ActiveThemes, reason, req.UserContext)

	c.JSON(http.StatusOK, gin.H{
		"needs_clarification":     true,
		"clarification_questions": questions,
		"active_themes":           req.ActiveThemes,
	})
}
