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
	queryToolName    = "query_health_data"
	queryDescription = "Answer a free-text question about the user's health metrics (heart rate, blood pressure, HRV, activity). Returns per-category summaries of the relevant data, or an empty result when the question needs no health data."
)

// QueryInput represents the input arguments for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the free-text health question to answer"`
}

// QueryOutput represents the output of the query tool.
type QueryOutput struct {
	Query               string            `json:"query"`
	Context             string            `json:"context"`
	Categories          []health.Category `json:"categories"`
	DegradedCategories  []health.Category `json:"degraded_categories,omitempty"`
	TruncatedCategories []health.Category `json:"truncated_categories,omitempty"`
}

// handleQuery processes a health query request.
func (s *Server) handleQuery(ctx context.Context, req *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
	logger := s.config.Logger

	logger.Debug("MCP query request",
		zap.String("query", input.Query),
	)

	result := s.config.Orchestrator.Process(ctx, input.Query, time.Now())

	output := QueryOutput{
		Query:               input.Query,
		Context:             result.ContextText,
		Categories:          result.Categories,
		DegradedCategories:  result.DegradedCategories,
		TruncatedCategories: result.TruncatedCategories,
	}

	// Serialize the structured output as JSON for the text field
	// Per MCP spec: tools returning structured content should also return
	// serialized JSON in a TextContent block for backwards compatibility
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal query output", zap.Error(err))
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, QueryOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
