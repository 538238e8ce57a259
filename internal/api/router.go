package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/dbpool"
	"github.com/simgraphai/simgraph/internal/middleware"
	"github.com/simgraphai/simgraph/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log              *logrus.Logger
	Pool             *dbpool.Pool
	Hub              *ws.Hub
	Traversal        TraversalProvider
	Admin            AdminProvider
	Search           SearchProvider
	Images           ImageProvider
	CORSOrigins      []string
	Version          string
	DefaultThreshold float64
	NeighborLimit    int
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB; all write endpoints are body-less
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all route handlers.
func registerRoutes(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, log, deps.Version)
	graph := NewGraphHandler(deps.Traversal, log, deps.DefaultThreshold, deps.NeighborLimit)
	admin := NewAdminHandler(deps.Admin, log)
	search := NewSearchHandler(deps.Search, log)
	stats := NewStatsHandler(deps.Admin, log)
	images := NewImageHandler(deps.Images, deps.Admin, log)

	// Graph traversal and image files live at the root; this is the wire
	// contract the viewer depends on.
	r.GET("/neighbors", graph.Neighbors)
	r.GET("/extended-neighbors", graph.ExtendedNeighbors)
	r.GET("/static/:filename", images.Static)

	api := r.Group("/api/v1")

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	api.GET("/images", images.List)
	api.GET("/images/sync", images.Sync)

	api.GET("/search", search.ByDescription)
	api.GET("/stats", stats.GetStats)

	api.POST("/admin/reset", admin.Reset)
	api.POST("/admin/fix", admin.Fix)

	// WebSocket endpoint for graph change notifications.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r, deps)

	return r
}
