package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/health"
)

var (
	dashboardToolName    = "health_dashboard"
	dashboardDescription = "Return raw per-category daily statistics (avg/min/max/count) for the trailing N days, without any model summarization."
)

// DashboardInput represents the input arguments for the dashboard tool.
type DashboardInput struct {
	Days int `json:"days,omitempty" jsonschema:"number of trailing days to include (default: 7)"`
}

// DashboardOutput represents the output of the dashboard tool.
type DashboardOutput struct {
	Days       int                                    `json:"days"`
	Categories map[health.Category][]health.DailyStat `json:"categories"`
}

// handleDashboard returns daily stats for the trailing window.
func (s *Server) handleDashboard(ctx context.Context, req *mcp.CallToolRequest, input DashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	logger := s.config.Logger

	days := input.Days
	if days <= 0 {
		days = 7
	}

	logger.Debug("MCP dashboard request",
		zap.Int("days", days),
	)

	output := DashboardOutput{
		Days:       days,
		Categories: s.config.Orchestrator.Dashboard(days, time.Now()),
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal dashboard output", zap.Error(err))
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, DashboardOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
