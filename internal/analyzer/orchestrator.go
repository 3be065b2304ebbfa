package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jesusmora-dev/portfolio-agent/internal/agent"
	"github.com/jesusmora-dev/portfolio-agent/internal/classifier"
	"github.com/jesusmora-dev/portfolio-agent/internal/observability"
)

var (
	// ErrBusy signals an analyze request while a previous one is still running.
	ErrBusy = errors.New("an analysis is already in flight for this session")
	// ErrStale signals a completion that was superseded by a Reset and discarded.
	ErrStale = errors.New("analysis superseded before completion")
)

// ValidationError is a synchronous rejection of the analyzer input. Always
// recoverable; Message is shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Orchestrator gates analyzer input through the local validation rules and,
// only when they pass, runs a backend analysis. It holds the latest result
// until it is replaced or cleared.
//
// An in-flight call cannot be aborted; it runs to completion. A generation
// counter makes sure a completion that lost a race with Reset or a newer
// call does not overwrite state that no longer wants it.
type Orchestrator struct {
	client agent.Client

	mu         sync.Mutex
	busy       bool
	generation uint64
	result     *agent.AnalysisResult
}

func New(client agent.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// Analyze validates text and, if valid, runs the backend analysis. Invalid
// input returns a *ValidationError without ever setting the busy flag or
// touching the network.
func (o *Orchestrator) Analyze(ctx context.Context, text string) (*agent.AnalysisResult, error) {
	if v := classifier.ValidateAnalyzerInput(text); !v.IsValid {
		observability.IncError(observability.ErrorValidation, "analyzer")
		return nil, &ValidationError{Message: v.ErrorMessage}
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	o.busy = true
	o.generation++
	gen := o.generation
	o.result = nil
	o.mu.Unlock()

	observability.IncAnalysisRun()
	observability.IncAgentCall("analyzer")
	result, err := o.client.Analyze(ctx, text)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.generation != gen {
		// A Reset raced this call; drop the stale outcome.
		slog.Debug("discarding stale analysis result")
		return nil, ErrStale
	}
	o.busy = false

	if err != nil {
		observability.IncError(observability.ClassifyAgentError(err), "analyzer")
		slog.Warn("agent analyze call failed", "error", err)
		return nil, err
	}

	o.result = result
	return result, nil
}

// Result returns the latest stored analysis, or nil when none is held.
func (o *Orchestrator) Result() *agent.AnalysisResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Reset clears the held result and invalidates any in-flight call.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generation++
	o.result = nil
	o.busy = false
}
