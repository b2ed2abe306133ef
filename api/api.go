package api

import (
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/pipeline"
)

// Server is the API server for querying the health corpus.
type Server struct {
	config Config
	orch   *pipeline.Orchestrator
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server. The orchestrator is injected to allow
// sharing with other components (e.g., the MCP server).
func NewServer(config Config, orch *pipeline.Orchestrator, mcpHandler http.Handler, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		orch:   orch,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/query", s.handleQuery)
	app.Get("/dashboard", s.handleDashboard)
	app.Post("/reload", s.handleReload)

	if mcpHandler != nil {
		app.All("/mcp", adaptor.HTTPHandler(mcpHandler))
	}

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}
