// scrapeboard-mcp bridges the Scrapeboard HTTP API to the Model Context
// Protocol over stdio, so MCP-capable clients can drive the panel's fetchers
// directly.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/scrapeboard/models"
)

func main() {
	apiURL := os.Getenv("SCRAPEBOARD_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8888"
	}

	s := server.NewMCPServer(
		"scrapeboard",
		models.Version,
		server.WithToolCapabilities(false),
	)

	scrapeTool := mcp.NewTool("scrape_page",
		mcp.WithDescription("Scrape a web page through the Scrapeboard control panel and return the extracted data."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to scrape"),
		),
		mcp.WithString("fetcher",
			mcp.Description("Fetch strategy: 'basic' (default, plain HTTP), 'stealthy' (anti-bot browser), or 'playwright' (full rendering)"),
			mcp.Enum("basic", "stealthy", "playwright"),
		),
		mcp.WithString("extract_type",
			mcp.Description("What to extract: 'full' (default, page overview), 'text', 'links', 'images', 'css', 'markdown', or 'article'"),
			mcp.Enum("full", "text", "links", "images", "css", "markdown", "article"),
		),
		mcp.WithString("selectors",
			mcp.Description("CSS selector group, used with extract_type 'css'"),
		),
	)
	s.AddTool(scrapeTool, handleScrapePage(apiURL))

	batchTool := mcp.NewTool("batch_scrape",
		mcp.WithDescription("Scrape up to 10 URLs sequentially through the Scrapeboard control panel."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("List of URLs to scrape (at most 10 are processed)"),
		),
		mcp.WithString("fetcher",
			mcp.Description("Fetch strategy applied to every URL"),
			mcp.Enum("basic", "stealthy", "playwright"),
		),
		mcp.WithString("extract_type",
			mcp.Description("Extraction mode applied to every URL"),
			mcp.Enum("full", "text", "links", "images", "markdown", "article"),
		),
	)
	s.AddTool(batchTool, handleBatchScrape(apiURL))

	presetsTool := mcp.NewTool("list_presets",
		mcp.WithDescription("List the panel's preset scrape configurations (name, URL, selectors, extraction mode)."),
	)
	s.AddTool(presetsTool, handleListPresets(apiURL))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapePage(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := models.ScrapeRequest{
			URL:         url,
			Fetcher:     request.GetString("fetcher", ""),
			ExtractType: request.GetString("extract_type", ""),
			Selectors:   request.GetString("selectors", ""),
		}

		respBody, err := apiPost(ctx, client, apiURL, "/api/scrape", reqBody)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var result models.ScrapeResult
		if err := json.Unmarshal(respBody, &result); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !result.Success {
			errMsg := "scrape failed"
			if result.Error != nil {
				errMsg = *result.Error
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		data, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render data: %v", err)), nil
		}

		header := fmt.Sprintf("URL: %s\nFetcher: %s\nTiming: %.2fms\n\n", result.URL, result.Fetcher, result.TimingMs)
		return mcp.NewToolResultText(header + string(data)), nil
	}
}

func handleBatchScrape(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 600 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		urls, err := request.RequireStringSlice("urls")
		if err != nil {
			return mcp.NewToolResultError("urls is required and must be an array of strings"), nil
		}

		reqBody := models.BatchRequest{
			URLs:        urls,
			Fetcher:     request.GetString("fetcher", ""),
			ExtractType: request.GetString("extract_type", ""),
		}

		respBody, err := apiPost(ctx, client, apiURL, "/api/batch-scrape", reqBody)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var batch models.BatchResponse
		if err := json.Unmarshal(respBody, &batch); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse batch response: %v", err)), nil
		}

		var sb strings.Builder
		ok := 0
		for _, r := range batch.Results {
			if r.Success {
				ok++
				fmt.Fprintf(&sb, "[ok] %s (%.2fms)\n", r.URL, r.TimingMs)
			} else {
				errMsg := ""
				if r.Error != nil {
					errMsg = *r.Error
				}
				fmt.Fprintf(&sb, "[fail] %s: %s\n", r.URL, errMsg)
			}
		}
		fmt.Fprintf(&sb, "\n%d/%d succeeded\n", ok, len(batch.Results))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleListPresets(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 15 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/api/presets", nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}

		resp, err := client.Do(req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var presets models.PresetsResponse
		if err := json.Unmarshal(respBody, &presets); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse presets: %v", err)), nil
		}

		var sb strings.Builder
		for _, p := range presets.Presets {
			fmt.Fprintf(&sb, "%s: %s\n  url: %s\n  selectors: %s\n  extract_type: %s\n\n",
				p.Name, p.Description, p.URL, p.Selectors, p.ExtractType)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// apiPost sends a POST request to the panel API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
