package agent

import "fmt"

// ConnectionError is the uniform failure for the chat endpoint: any non-2xx
// status or transport-level failure collapses into it. No structured error
// body is parsed on this path.
type ConnectionError struct {
	Status int
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("agent connection failed: %v", e.Err)
	}
	return fmt.Sprintf("agent connection failed with status %d", e.Status)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// AnalysisError is a failure on the analyze endpoint. Detail carries the
// backend-provided message when the error body could be parsed.
type AnalysisError struct {
	Status int
	Detail string
	Err    error
}

func (e *AnalysisError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return fmt.Sprintf("analysis request failed: %v", e.Err)
	}
	return fmt.Sprintf("analysis failed with status %d", e.Status)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}
