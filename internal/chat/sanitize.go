package chat

import (
	"errors"
	"strings"
)

const (
	// MaxMessageLen is the hard cap on a user message after trimming.
	MaxMessageLen = 500

	maxHistoryTurns   = 10
	maxTurnContentLen = 1000
)

// Validation errors carry the exact strings the API returns to callers.
var (
	ErrMessageRequired = errors.New("Message is required")
	ErrMessageTooLong  = errors.New("Message too long")
	ErrSlugRequired    = errors.New("podcastSlug is required")
)

// The message gates run against trimmed input and in contract order:
// required, then slug, then length. Quiz submissions carry a server-framed
// message, so the user-text gates do not apply to them.

func ValidateMessageRequired(message string, quizMode bool) error {
	if quizMode {
		return nil
	}
	if message == "" {
		return ErrMessageRequired
	}
	return nil
}

func ValidateMessageLength(message string, quizMode bool) error {
	if quizMode {
		return nil
	}
	if len(message) > MaxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}

// ValidateSlug checks a trimmed podcast slug. Required in every mode.
func ValidateSlug(slug string) error {
	if slug == "" {
		return ErrSlugRequired
	}
	return nil
}

// SanitizeHistory drops turns that are not well-formed user/assistant
// messages, caps each turn's content, and keeps only the most recent turns.
// Order is preserved (oldest first).
func SanitizeHistory(in []Message) []Message {
	out := make([]Message, 0, len(in))
	for _, m := range in {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		content := m.Content
		if len(content) > maxTurnContentLen {
			content = content[:maxTurnContentLen]
		}
		out = append(out, Message{Role: m.Role, Content: content})
	}
	if len(out) > maxHistoryTurns {
		out = out[len(out)-maxHistoryTurns:]
	}
	return out
}
