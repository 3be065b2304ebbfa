package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	ChatTurns         uint64            `json:"chat_turns"`
	CannedReplies     uint64            `json:"canned_replies"`
	AgentCalls        uint64            `json:"agent_calls"`
	AnalysesRun       uint64            `json:"analyses_run"`
	ErrorsTotal       uint64            `json:"errors_total"`
	CannedByKind      map[string]uint64 `json:"canned_by_kind,omitempty"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	chatTurns     uint64
	cannedReplies uint64
	agentCalls    uint64
	analysesRun   uint64
	errorsTotal   uint64

	statsMu           sync.Mutex
	cannedByKind      = map[string]uint64{}
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncChatTurn() {
	atomic.AddUint64(&chatTurns, 1)
}

func IncAgentCall(_ string) {
	atomic.AddUint64(&agentCalls, 1)
}

func IncAnalysisRun() {
	atomic.AddUint64(&analysesRun, 1)
}

func IncCannedReply(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	atomic.AddUint64(&cannedReplies, 1)
	statsMu.Lock()
	cannedByKind[kind]++
	statsMu.Unlock()
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	cannedCopy := copyMap(cannedByKind)
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	return StatsSnapshot{
		ChatTurns:         atomic.LoadUint64(&chatTurns),
		CannedReplies:     atomic.LoadUint64(&cannedReplies),
		AgentCalls:        atomic.LoadUint64(&agentCalls),
		AnalysesRun:       atomic.LoadUint64(&analysesRun),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		CannedByKind:      cannedCopy,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
