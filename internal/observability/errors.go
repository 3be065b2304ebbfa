package observability

import (
	"context"
	"errors"

	"github.com/jesusmora-dev/portfolio-agent/internal/agent"
)

const (
	ErrorConnection = "connection"
	ErrorAnalysis   = "analysis"
	ErrorValidation = "validation"
	ErrorTimeout    = "timeout"
	ErrorUnknown    = "unknown"
)

// ClassifyAgentError maps an agent-client failure to an error kind for the
// stats counters.
func ClassifyAgentError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	var connErr *agent.ConnectionError
	if errors.As(err, &connErr) {
		return ErrorConnection
	}
	var analysisErr *agent.AnalysisError
	if errors.As(err, &analysisErr) {
		return ErrorAnalysis
	}
	return ErrorUnknown
}
