package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jesusmora-dev/portfolio-agent/internal/agent"
	"github.com/jesusmora-dev/portfolio-agent/internal/analyzer"
	"github.com/jesusmora-dev/portfolio-agent/internal/chat"
	"github.com/jesusmora-dev/portfolio-agent/internal/conversation"
	"github.com/jesusmora-dev/portfolio-agent/internal/observability"
	"github.com/jesusmora-dev/portfolio-agent/internal/profile"
)

type ChatRequest struct {
	Message string `json:"message"`
}

// MessageView is a conversation message prepared for rendering: Display has
// the marker tokens stripped and Action carries the affordance they request.
type MessageView struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Display string `json:"display_content"`
	Action  string `json:"action,omitempty"`
}

func viewOf(m conversation.Message) MessageView {
	return MessageView{
		Role:    string(m.Role),
		Content: m.Content,
		Display: chat.StripMarkers(m.Content),
		Action:  string(chat.DetectAction(m.Content)),
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess := sessionFrom(r)
	reply, err := s.chat.Submit(r.Context(), sess.store, req.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	case errors.Is(err, chat.ErrBusy):
		respondError(w, http.StatusConflict, "A message is already being processed")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Chat failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reply": viewOf(reply),
		"busy":  sess.store.Busy(),
	})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	messages := sess.store.Messages()
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, viewOf(m))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages": views,
		"busy":     sess.store.Busy(),
	})
}

func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.store.Clear(r.Context())
	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess := sessionFrom(r)
	result, err := sess.analyzer.Analyze(r.Context(), req.Text)
	if err != nil {
		var vErr *analyzer.ValidationError
		if errors.As(err, &vErr) {
			respondError(w, http.StatusUnprocessableEntity, vErr.Message)
			return
		}
		if errors.Is(err, analyzer.ErrBusy) || errors.Is(err, analyzer.ErrStale) {
			respondError(w, http.StatusConflict, "An analysis is already being processed")
			return
		}
		var aErr *agent.AnalysisError
		if errors.As(err, &aErr) {
			respondError(w, http.StatusBadGateway, aErr.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "Analysis failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleResetAnalyzer(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.analyzer.Reset()
	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func (s *Server) handleExperience(w http.ResponseWriter, r *http.Request) {
	items, err := profile.Experience()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load experience: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}
