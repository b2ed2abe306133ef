package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/health"
)

// QueryRequest is the body for POST /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// DashboardResponse is the body for GET /dashboard.
type DashboardResponse struct {
	Days       int                                    `json:"days"`
	Categories map[health.Category][]health.DailyStat `json:"categories"`
}

// ReloadResponse is the body for POST /reload.
type ReloadResponse struct {
	Samples      int       `json:"samples"`
	SkippedLines int       `json:"skipped_lines"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleQuery runs one query through the full pipeline.
func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "query is required"})
	}

	result := s.orch.Process(c.Context(), req.Query, time.Now())
	return c.JSON(result)
}

// handleDashboard returns per-category daily stats for the trailing window.
func (s *Server) handleDashboard(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 || days > 365 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "days must be between 1 and 365"})
	}

	return c.JSON(DashboardResponse{
		Days:       days,
		Categories: s.orch.Dashboard(days, time.Now()),
	})
}

// handleReload forces a corpus reload from disk.
func (s *Server) handleReload(c *fiber.Ctx) error {
	state, err := s.orch.Reload()
	if err != nil {
		s.logger.Error("corpus reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "reload failed"})
	}

	return c.JSON(ReloadResponse{
		Samples:      len(state.Samples),
		SkippedLines: state.SkippedLines,
		LoadedAt:     state.LoadedAt,
	})
}
