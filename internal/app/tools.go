package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/models"
)

// registerTools wires the MCP tool definitions to their handlers.
func (a *App) registerTools() {
	a.MCPServer.AddTool(createGetVersionTool(), handleGetVersion())
	a.MCPServer.AddTool(createAnalyzeTickerTool(), a.handleAnalyzeTicker())
	a.MCPServer.AddTool(createGetVerdictTool(), a.handleGetVerdict())
	a.MCPServer.AddTool(createListVerdictsTool(), a.handleListVerdicts())
}

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Council server version and status. Use this to verify connectivity."),
	)
}

// createAnalyzeTickerTool returns the analyze_ticker tool definition
func createAnalyzeTickerTool() mcp.Tool {
	return mcp.NewTool("analyze_ticker",
		mcp.WithDescription("Run the full analyst debate for a stock ticker and return a weighted BUY/SELL/HOLD verdict. Technical and fundamental analysts argue the bull case, a risk auditor attacks it with validated news evidence, and the surviving confidences are weighted by the user profile."),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker to analyze (e.g., 'TSLA', 'KO')"),
		),
		mcp.WithString("style",
			mcp.Description("Investing style: trader or investor (default: trader)"),
		),
		mcp.WithString("risk_tolerance",
			mcp.Description("Risk tolerance: aggressive, moderate, or conservative (default: moderate)"),
		),
	)
}

// createGetVerdictTool returns the get_verdict tool definition
func createGetVerdictTool() mcp.Tool {
	return mcp.NewTool("get_verdict",
		mcp.WithDescription("Retrieve a previously completed analysis case by its ID, including both analyst records, the risk audit, and the final verdict."),
		mcp.WithString("case_id",
			mcp.Required(),
			mcp.Description("ID of the case to retrieve"),
		),
	)
}

// createListVerdictsTool returns the list_verdicts tool definition
func createListVerdictsTool() mcp.Tool {
	return mcp.NewTool("list_verdicts",
		mcp.WithDescription("List completed analysis cases, newest first, optionally filtered by ticker."),
		mcp.WithString("ticker",
			mcp.Description("Only return cases for this ticker"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 10)"),
		),
	)
}

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Council MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleAnalyzeTicker implements the analyze_ticker tool
func (a *App) handleAnalyzeTicker() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}

		profile := models.Profile{
			Style:         models.Style(request.GetString("style", string(models.StyleTrader))),
			RiskTolerance: models.RiskTolerance(request.GetString("risk_tolerance", string(models.RiskModerate))),
		}

		c, err := a.AnalyzeAndStore(ctx, ticker, profile)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: analysis failed: %v", err)), nil
		}

		return jsonResult(c)
	}
}

// handleGetVerdict implements the get_verdict tool
func (a *App) handleGetVerdict() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		caseID, err := request.RequireString("case_id")
		if err != nil || caseID == "" {
			return errorResult("Error: case_id parameter is required"), nil
		}

		c, err := a.Storage.VerdictStore().GetCase(ctx, caseID)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		return jsonResult(c)
	}
}

// handleListVerdicts implements the list_verdicts tool
func (a *App) handleListVerdicts() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := request.GetString("ticker", "")
		limit := request.GetInt("limit", 10)

		cases, err := a.Storage.VerdictStore().ListCases(ctx, ticker, limit)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		return jsonResult(cases)
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Error: failed to encode result: %v", err)), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
