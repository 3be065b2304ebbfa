package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Client talks to the career-agent backend. Both operations issue exactly one
// attempt; the caller decides whether a failure is surfaced or retried.
type Client interface {
	SendMessage(ctx context.Context, question string) (*ChatResponse, error)
	Analyze(ctx context.Context, jobText string) (*AnalysisResult, error)
}

// New creates an agent client based on the configured mode.
// Supported modes: "http" (default if a base URL is set), "mock".
func New(mode, baseURL string, timeout time.Duration) Client {
	mode = strings.ToLower(mode)

	// Auto-detect mode if not specified
	if mode == "" {
		if baseURL != "" {
			mode = "http"
		} else {
			mode = "mock"
		}
	}

	switch mode {
	case "http":
		if baseURL == "" {
			slog.Warn("AGENT_MODE=http but AGENT_BASE_URL not set, falling back to mock")
			return NewMockClient()
		}
		return NewHTTPClient(baseURL, timeout)
	default:
		slog.Info("using mock agent client (set AGENT_BASE_URL for the real backend)")
		return NewMockClient()
	}
}

type ChatResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source,omitempty"`
}

type Gap struct {
	MissingSkill string `json:"missing_skill"`
	Mitigation   string `json:"mitigation"`
}

type AnalysisResult struct {
	MatchPercentage int      `json:"match_percentage"`
	Strengths       []string `json:"strengths"`
	Gaps            []Gap    `json:"gaps"`
	Recommendation  string   `json:"recommendation"`
}
