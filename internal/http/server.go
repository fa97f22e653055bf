// README: API gateway; registers HTTP routes and wraps the engine with CORS.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"wanderplan/internal/http/handlers"
	"wanderplan/internal/http/middleware"
	"wanderplan/internal/logging"
	"wanderplan/internal/metrics"
)

type ServerDeps struct {
	Planner         handlers.Planner
	Usage           handlers.UsageReader
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
	CORSOrigins     []string
	GenerateTimeout time.Duration
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if len(deps.CORSOrigins) == 0 {
		deps.CORSOrigins = []string{"*"}
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(s.deps.Logger), middleware.Logging(s.deps.Logger))

	itineraryHandler := handlers.NewItineraryHandler(s.deps.Planner, s.deps.GenerateTimeout)
	r.POST("/api/generate-itinerary", itineraryHandler.Generate)

	usageHandler := handlers.NewUsageHandler(s.deps.Usage)
	r.GET("/api/usage", usageHandler.Daily)

	if s.deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(r)
}
