// Package moderator generates clarifying questions when a query is
// ambiguous against the matched themes. It degrades instead of failing:
// the chat flow must never block on this step.
package moderator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/espresso-labs/espresso-gateway/internal/ai"
)

const maxQuestions = 3

var fallbackQuestions = []string{
	"Could you provide more context about what you're looking for?",
	"What specific aspect would you like to explore?",
}

const genericQuestion = "Could you clarify what you'd like to know?"

// ActiveTheme is a candidate theme with its relevance score, as reported by
// the upstream matching step.
type ActiveTheme struct {
	ThemeID string  `json:"theme_id"`
	Score   float64 `json:"score"`
}

type Moderator struct {
	provider ai.Provider
	timeout  time.Duration
}

func New(provider ai.Provider, timeout time.Duration) *Moderator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Moderator{provider: provider, timeout: timeout}
}

// GenerateClarificationQuestions returns at most 3 short questions. It never
// returns an error: a failed model call yields the canned fallback pair, an
// unparsable reply is split into lines, and a parsable-but-empty reply
// yields a single generic question.
func (m *Moderator) GenerateClarificationQuestions(ctx context.Context, userQuery string, activeThemes []ActiveTheme, ambiguityReason, userContext string) []string {
	prompt := buildPrompt(userQuery, activeThemes, ambiguityReason, userContext)

	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	content, err := m.provider.Complete(cctx, prompt)
	if err != nil {
		log.WithError(err).Warn("clarification generation failed, using fallback questions")
		return append([]string(nil), fallbackQuestions...)
	}
	if strings.TrimSpace(content) == "" {
		return []string{genericQuestion}
	}

	questions, parsed := parseQuestions(content)
	if !parsed {
		return splitLines(content)
	}
	if len(questions) == 0 {
		return []string{genericQuestion}
	}
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}

func buildPrompt(userQuery string, activeThemes []ActiveTheme, ambiguityReason, userContext string) string {
	labels := make([]string, 0, len(activeThemes))
	for _, t := range activeThemes {
		labels = append(labels, t.ThemeID)
	}

	var b strings.Builder
	b.WriteString("You are the moderator of a podcast knowledge assistant.\n\n")
	fmt.Fprintf(&b, "A user asked: %q\n\n", userQuery)
	fmt.Fprintf(&b, "The query is ambiguous because: %s\n\n", ambiguityReason)
	fmt.Fprintf(&b, "The system matched these themes: %s", strings.Join(labels, ", "))
	if userContext != "" {
		fmt.Fprintf(&b, "\n\nUser context: %s", userContext)
	}
	b.WriteString("\n\nGenerate 2-3 sharp, specific clarifying questions that will help narrow down " +
		"what the user really wants to know. Make them concise and actionable.\n\n" +
		`Format as a JSON array of strings, e.g. ["Question 1?", "Question 2?", "Question 3?"]`)
	return b.String()
}

// parseQuestions accepts either a bare JSON array or an object with a
// "questions" array. The second return value reports whether the content
// was valid JSON at all.
func parseQuestions(content string) ([]string, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, false
	}

	var raw []any
	switch v := parsed.(type) {
	case []any:
		raw = v
	case map[string]any:
		if qs, ok := v["questions"].([]any); ok {
			raw = qs
		}
	}

	out := make([]string, 0, len(raw))
	for _, q := range raw {
		if s, ok := q.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out, true
}

func splitLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxQuestions {
			break
		}
	}
	if len(out) == 0 {
		return []string{genericQuestion}
	}
	return out
}
