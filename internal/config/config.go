package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port int

	// Backend chat function (Supabase edge function)
	SupabaseURL        string
	SupabaseServiceKey string

	// Generative provider (clarification questions)
	AIProvider   string
	OpenAIAPIKey string
	OpenAIModel  string

	// Optional advisory throttle
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	ChatRatePerMinute int

	BackendTimeout time.Duration
	ModelTimeout   time.Duration
}

func Load() Config {
	port := 8080
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			port = n
		}
	}

	// Service credential fallback chain matches the deployed environments:
	// service role key first, then the legacy name, then the anon key.
	serviceKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if serviceKey == "" {
		serviceKey = os.Getenv("SUPABASE_KEY")
	}
	if serviceKey == "" {
		serviceKey = os.Getenv("SUPABASE_ANON_KEY")
	}

	aiProvider := os.Getenv("AI_PROVIDER")
	if aiProvider == "" {
		aiProvider = "openai"
	}

	openAIModel := os.Getenv("OPENAI_MODEL")
	if openAIModel == "" {
		openAIModel = "gpt-4o-mini"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	ratePerMinute := 20
	if v := os.Getenv("CHAT_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ratePerMinute = n
		}
	}

	backendTimeout := 30 * time.Second
	if v := os.Getenv("BACKEND_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			backendTimeout = time.Duration(n) * time.Second
		}
	}

	modelTimeout := 20 * time.Second
	if v := os.Getenv("MODEL_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			modelTimeout = time.Duration(n) * time.Second
		}
	}

	return Config{
		Port: port,

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: serviceKey,

		AIProvider:   aiProvider,
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  openAIModel,

		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		ChatRatePerMinute: ratePerMinute,

		BackendTimeout: backendTimeout,
		ModelTimeout:   modelTimeout,
	}
}

// ValidateBackend reports whether the backend chat function can be called.
// Both the base URL and the service credential must be set; the chat route
// fails closed with a 500 when either is missing.
func (c Config) ValidateBackend() error {
	if c.SupabaseURL == "" {
		return errors.New("SUPABASE_URL is not set")
	}
	if c.SupabaseServiceKey == "" {
		return errors.New("no supabase service key is set")
	}
	return nil
}
