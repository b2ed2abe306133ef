// Package mcp provides an MCP (Model Context Protocol) server exposing the
// health query pipeline as tools.
package mcp

import (
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/pipeline"
	"github.com/papercomputeco/vitals/pkg/utils"
)

type Config struct {
	// Orchestrator runs queries against the current corpus snapshot
	Orchestrator *pipeline.Orchestrator

	// Noop for empty MCP server
	Noop bool

	// Logger is the configured zap logger
	Logger *zap.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the query and dashboard tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vitals",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if c.Noop {
		// return the empty MCP server with no tools configured
		// if the noop flag is set (i.e., MCP capabilities are disabled)
		s.mcpServer = mcpServer
		return s, nil
	}

	if c.Orchestrator == nil {
		return nil, errors.New("orchestrator is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        queryToolName,
		Description: queryDescription,
	}, s.handleQuery)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        dashboardToolName,
		Description: dashboardDescription,
	}, s.handleDashboard)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
