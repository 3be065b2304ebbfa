package agent

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// MockClient returns canned responses for local development without a
// running backend.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) SendMessage(ctx context.Context, question string) (*ChatResponse, error) {
	// Simulate backend latency
	time.Sleep(300 * time.Millisecond)

	return &ChatResponse{
		Answer: fmt.Sprintf("Respuesta simulada a: %q. Configura AGENT_BASE_URL para hablar con el agente real.", question),
		Source: "mock",
	}, nil
}

func (m *MockClient) Analyze(ctx context.Context, jobText string) (*AnalysisResult, error) {
	time.Sleep(300 * time.Millisecond)

	score := 70 + rand.Intn(30)
	return &AnalysisResult{
		MatchPercentage: score,
		Strengths:       []string{"Go", "Backend", "Cloud"},
		Gaps: []Gap{
			{MissingSkill: "Kubernetes avanzado", Mitigation: "Experiencia equivalente con despliegues Docker"},
		},
		Recommendation: fmt.Sprintf("Compatibilidad simulada del %d%%.", score),
	}, nil
}
