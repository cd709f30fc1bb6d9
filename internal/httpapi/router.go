package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/espresso-labs/espresso-gateway/internal/backend"
	"github.com/espresso-labs/espresso-gateway/internal/common"
	"github.com/espresso-labs/espresso-gateway/internal/config"
	"github.com/espresso-labs/espresso-gateway/internal/httpapi/handlers"
	"github.com/espresso-labs/espresso-gateway/internal/httpapi/middleware"
	"github.com/espresso-labs/espresso-gateway/internal/moderator"
	"github.com/espresso-labs/espresso-gateway/internal/store/redisstore"
)

func NewRouter(cfg config.Config, be *backend.Client, mod *moderator.Moderator, limiter *redisstore.Store) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		common.Error(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Error(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	h := handlers.NewHandler(cfg, be, mod, limiter)

	r.GET("/ping", h.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/chat", h.Chat)
	api.POST("/clarify", h.Clarify)

	return r
}
