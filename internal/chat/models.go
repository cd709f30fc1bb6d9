package chat

// Wire types for the chat contract between the client, the gateway and the
// backend chat function. Field names follow the backend's JSON exactly.

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QuizMode is attached when a request carries a completed lightning quiz
// instead of a typed user message.
type QuizMode struct {
	Path    string             `json:"path"`
	Tags    map[string]float64 `json:"tags"`
	TopTags []string           `json:"topTags"`
}

type Request struct {
	Message             string    `json:"message"`
	PodcastSlug         string    `json:"podcastSlug"`
	ConversationHistory []Message `json:"conversationHistory,omitempty"`
	SessionID           string    `json:"sessionId,omitempty"`
	DeviceID            string    `json:"deviceId,omitempty"`
	QuizMode            *QuizMode `json:"quizMode,omitempty"`
}

type Reference struct {
	GuestName    string  `json:"guest_name"`
	EpisodeTitle string  `json:"episode_title"`
	Quote        string  `json:"quote,omitempty"`
	Timestamp    string  `json:"timestamp,omitempty"`
	EpisodeURL   string  `json:"episode_url,omitempty"`
	TimeSeconds  float64 `json:"time_seconds,omitempty"`
}

type ClarificationQuestion struct {
	Text       string `json:"text"`
	QuickReply string `json:"quickReply,omitempty"`
}

// Response is the assistant turn returned by the backend. Credits are
// pointers so a zero balance survives the round trip.
type Response struct {
	ID                     string                  `json:"id"`
	Role                   string                  `json:"role"`
	Content                string                  `json:"content"`
	References             []Reference             `json:"references,omitempty"`
	NeedsClarification     bool                    `json:"needs_clarification,omitempty"`
	ClarificationQuestions []ClarificationQuestion `json:"clarification_questions,omitempty"`
	CreditsRemaining       *int                    `json:"credits_remaining,omitempty"`
	CreditsTotal           *int                    `json:"credits_total,omitempty"`
	SessionID              string                  `json:"session_id,omitempty"`
}
