package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dougdotcon/footsizer-backend/internal/config"
	"github.com/dougdotcon/footsizer-backend/internal/storage"
)

// Server wires the HTTP transport to the measurement pipeline and its
// storage collaborator.
type Server struct {
	cfg   *config.Config
	store *storage.Store
	log   *slog.Logger
}

// New creates a Server. The store may be shared; the pipeline needs no
// shared state at all.
func New(cfg *config.Config, store *storage.Store, log *slog.Logger) *Server {
	return &Server{cfg: cfg, store: store, log: log}
}

// Router builds the Gin engine with routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(corsMiddleware(s.cfg.CORSOrigins))
	r.Use(bodyLimit(s.cfg.MaxImageBytes))

	r.GET("/healthz", Health)
	r.POST("/upload_image", s.UploadImage)

	return r
}

// Run starts the HTTP server on the configured address and blocks.
func (s *Server) Run() error {
	s.log.Info("starting server", "addr", s.cfg.Addr)
	return s.Router().Run(s.cfg.Addr)
}

// corsMiddleware builds the CORS policy. A single "*" origin allows all
// origins, matching the permissive development default; production
// deployments should list explicit origins instead.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// bodyLimit caps request body size so oversized uploads fail fast instead
// of being buffered in full.
func bodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// requestLogger emits one structured log line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"remote_addr", c.ClientIP(),
		)
	}
}

// Health handles the /healthz liveness endpoint. Responses are never
// cached.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
