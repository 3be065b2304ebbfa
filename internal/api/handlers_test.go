package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jesusmora-dev/portfolio-agent/internal/agent"
	"github.com/jesusmora-dev/portfolio-agent/internal/classifier"
	"github.com/jesusmora-dev/portfolio-agent/internal/conversation"
)

type stubAgent struct {
	answer     *agent.ChatResponse
	chatErr    error
	analysis   *agent.AnalysisResult
	analyzeErr error
	chatCalls  int
}

func (s *stubAgent) SendMessage(ctx context.Context, question string) (*agent.ChatResponse, error) {
	s.chatCalls++
	return s.answer, s.chatErr
}

func (s *stubAgent) Analyze(ctx context.Context, jobText string) (*agent.AnalysisResult, error) {
	return s.analysis, s.analyzeErr
}

func newTestServer(backend agent.Client) *Server {
	return NewServer(backend, conversation.NewMemoryPersister(), time.Millisecond, "")
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpointHappyPath(t *testing.T) {
	backend := &stubAgent{answer: &agent.ChatResponse{Answer: "Trabaja con Go y React.", Source: "RAG-CV"}}
	srv := newTestServer(backend)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/chat", `{"message": "¿Qué stack usa?"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie set on first request")
	}

	var resp struct {
		Reply MessageView `json:"reply"`
		Busy  bool        `json:"busy"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Reply.Role != "assistant" || resp.Reply.Content != "Trabaja con Go y React." {
		t.Errorf("reply = %+v", resp.Reply)
	}
	if resp.Busy {
		t.Error("busy = true after completed turn")
	}

	// History over the same session sees both sides of the exchange.
	rec = doJSON(t, srv.Router(), http.MethodGet, "/api/chat/history", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	var hist struct {
		Messages []MessageView `json:"messages"`
	}
	json.Unmarshal(rec.Body.Bytes(), &hist)
	if len(hist.Messages) != 2 {
		t.Fatalf("history has %d messages, want 2", len(hist.Messages))
	}
	if hist.Messages[0].Role != "user" || hist.Messages[0].Content != "¿Qué stack usa?" {
		t.Errorf("first history message = %+v", hist.Messages[0])
	}
	if hist.Messages[1].Role != "assistant" {
		t.Errorf("second history message = %+v", hist.Messages[1])
	}
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	srv := newTestServer(&stubAgent{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/chat", `{"message": "   "}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChatEndpointOfferShortCircuit(t *testing.T) {
	backend := &stubAgent{answer: &agent.ChatResponse{Answer: "no"}}
	srv := newTestServer(backend)

	offer := `Vacante de ingeniería. Requisitos: cinco años con Go, Kubernetes y SQL. ` +
		`Ofrecemos salario competitivo, teletrabajo total, seguro médico y un plan de ` +
		`carrera con formación continua y presupuesto anual para conferencias.`

	body, _ := json.Marshal(map[string]string{"message": offer})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/chat", string(body), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	if backend.chatCalls != 0 {
		t.Errorf("backend chat called %d times, want 0", backend.chatCalls)
	}

	var resp struct {
		Reply MessageView `json:"reply"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp.Reply.Content, "[OFFER_DETECTED]") {
		t.Errorf("raw content %q missing marker", resp.Reply.Content)
	}
	if strings.Contains(resp.Reply.Display, "[OFFER_DETECTED]") {
		t.Errorf("display content %q still carries marker", resp.Reply.Display)
	}
	if resp.Reply.Action != "analyzer" {
		t.Errorf("action = %q, want analyzer", resp.Reply.Action)
	}
}

func TestChatEndpointBackendFailure(t *testing.T) {
	backend := &stubAgent{chatErr: &agent.ConnectionError{Status: 500}}
	srv := newTestServer(backend)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/chat", `{"message": "hola"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: connection failures become system messages", rec.Code)
	}

	var resp struct {
		Reply MessageView `json:"reply"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Reply.Role != "system" {
		t.Errorf("reply role = %q, want system", resp.Reply.Role)
	}
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	srv := newTestServer(&stubAgent{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/analyze", `{"text": ""}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != classifier.MsgEmptyInput {
		t.Errorf("error = %q, want %q", resp["error"], classifier.MsgEmptyInput)
	}
}

func TestAnalyzeEndpointHappyPath(t *testing.T) {
	backend := &stubAgent{analysis: &agent.AnalysisResult{
		MatchPercentage: 90,
		Strengths:       []string{"React"},
		Gaps:            []agent.Gap{},
		Recommendation:  "Perfil ideal",
	}}
	srv := newTestServer(backend)

	text := strings.Repeat("Buscamos desarrollador backend con experiencia en Go y un stack moderno. ", 4)
	body, _ := json.Marshal(map[string]string{"text": text})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/analyze", string(body), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var result map[string]any
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result["match_percentage"] != float64(90) {
		t.Errorf("match_percentage = %v, want 90", result["match_percentage"])
	}
	if result["recommendation"] != "Perfil ideal" {
		t.Errorf("recommendation = %v", result["recommendation"])
	}
}

func TestAnalyzeEndpointBackendDetail(t *testing.T) {
	backend := &stubAgent{analyzeErr: &agent.AnalysisError{Status: 500, Detail: "Error interno"}}
	srv := newTestServer(backend)

	text := strings.Repeat("Buscamos desarrollador backend con experiencia en Go y un stack moderno. ", 4)
	body, _ := json.Marshal(map[string]string{"text": text})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/analyze", string(body), nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "Error interno" {
		t.Errorf("error = %q, want the backend detail verbatim", resp["error"])
	}
}

func TestExperienceEndpoint(t *testing.T) {
	srv := newTestServer(&stubAgent{})

	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/experience", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Items) == 0 {
		t.Fatal("no experience items returned")
	}
	if resp.Items[0]["role"] == "" {
		t.Error("experience item missing role")
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubAgent{})

	rec := doJSON(t, srv.Router(), http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
