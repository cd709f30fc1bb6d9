package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/espresso-labs/espresso-gateway/internal/ai"
	"github.com/espresso-labs/espresso-gateway/internal/backend"
	"github.com/espresso-labs/espresso-gateway/internal/config"
	"github.com/espresso-labs/espresso-gateway/internal/httpapi"
	"github.com/espresso-labs/espresso-gateway/internal/moderator"
	"github.com/espresso-labs/espresso-gateway/internal/store/redisstore"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	if err := cfg.ValidateBackend(); err != nil {
		// Start anyway: /api/chat fails closed with a 500 until configured.
		log.WithError(err).Warn("backend configuration incomplete")
	}

	be := backend.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.BackendTimeout)

	reg := ai.NewRegistry()
	reg.Register("openai", func(ctx context.Context, model string) (ai.Provider, error) {
		if model == "" {
			model = cfg.OpenAIModel
		}
		return ai.NewOpenAIProvider(cfg.OpenAIAPIKey, model), nil
	})

	provider, err := reg.Get(context.Background(), cfg.AIProvider, cfg.OpenAIModel)
	if err != nil {
		log.WithError(err).Fatal("ai provider setup failed")
	}
	mod := moderator.New(provider, cfg.ModelTimeout)

	var limiter *redisstore.Store
	if cfg.RedisAddr != "" {
		limiter = redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ChatRatePerMinute)
		defer limiter.Close()
		log.WithField("addr", cfg.RedisAddr).Info("advisory throttle enabled")
	}

	r := httpapi.NewRouter(cfg, be, mod, limiter)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}
