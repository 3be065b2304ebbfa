package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// HTTPClient implements Client against the real agent backend.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the agent backend reachable at baseURL.
// A timeout of zero falls back to the default.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatRequest struct {
	Question string `json:"question"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeErrorBody struct {
	Detail string `json:"detail"`
}

// SendMessage posts a question to the conversational endpoint. Any failure
// collapses into a *ConnectionError.
func (c *HTTPClient) SendMessage(ctx context.Context, question string) (*ChatResponse, error) {
	resp, err := c.post(ctx, "/chat", chatRequest{Question: question})
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &ConnectionError{Status: resp.StatusCode}
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("decode failed: %w", err)}
	}
	return &out, nil
}

// Analyze posts a job description to the analysis endpoint. Non-2xx responses
// are parsed, best-effort, for a backend-provided detail message; a body that
// fails to parse degrades to the generic status-coded error.
func (c *HTTPClient) Analyze(ctx context.Context, jobText string) (*AnalysisResult, error) {
	resp, err := c.post(ctx, "/analyze", analyzeRequest{Text: jobText})
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var errBody analyzeErrorBody
		if err := json.Unmarshal(body, &errBody); err == nil && errBody.Detail != "" {
			return nil, &AnalysisError{Status: resp.StatusCode, Detail: errBody.Detail}
		}
		return nil, &AnalysisError{Status: resp.StatusCode}
	}

	var out AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &AnalysisError{Err: fmt.Errorf("decode failed: %w", err)}
	}
	return &out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
