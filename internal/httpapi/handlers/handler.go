package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/espresso-labs/espresso-gateway/internal/backend"
	"github.com/espresso-labs/espresso-gateway/internal/config"
	"github.com/espresso-labs/espresso-gateway/internal/moderator"
	"github.com/espresso-labs/espresso-gateway/internal/store/redisstore"
)

type Handler struct {
	Cfg       config.Config
	Backend   *backend.Client
	Moderator *moderator.Moderator
	Limiter   *redisstore.Store // nil when the throttle is disabled
}

func NewHandler(cfg config.Config, be *backend.Client, mod *moderator.Moderator, limiter *redisstore.Store) *Handler {
	return &Handler{Cfg: cfg, Backend: be, Moderator: mod, Limiter: limiter}
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
