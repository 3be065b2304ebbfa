package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/jesusmora-dev/portfolio-agent/internal/agent"
	"github.com/jesusmora-dev/portfolio-agent/internal/analyzer"
	"github.com/jesusmora-dev/portfolio-agent/internal/conversation"
)

const sessionCookieName = "portfolio_session"

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// session bundles the per-browser-session state: the conversation log and
// the analyzer's result holder. Chat and analyzer own disjoint state, so the
// only cross-request discipline is each one's own busy flag.
type session struct {
	id       string
	store    *conversation.Store
	analyzer *analyzer.Orchestrator
}

type sessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*session
	persister conversation.Persister
	client    agent.Client
}

func newSessionRegistry(client agent.Client, persister conversation.Persister) *sessionRegistry {
	return &sessionRegistry{
		sessions:  make(map[string]*session),
		persister: persister,
		client:    client,
	}
}

// get returns the session for id, creating it on first sight. A new store
// loads whatever history the persister still has for the id, so a page
// reload within the session keeps its conversation.
func (r *sessionRegistry) get(ctx context.Context, id string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[id]; ok {
		return sess, nil
	}

	store, err := conversation.NewStore(ctx, id, r.persister)
	if err != nil {
		return nil, err
	}
	sess := &session{
		id:       id,
		store:    store,
		analyzer: analyzer.New(r.client),
	}
	r.sessions[id] = sess
	return sess, nil
}

// withSession makes sure the request carries a session cookie, minting one
// for first-time visitors, and resolves the session into the context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			id = cookie.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess, err := s.sessions.get(r.Context(), id)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load session: "+err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func sessionFrom(r *http.Request) *session {
	sess, _ := r.Context().Value(sessionKey).(*session)
	return sess
}
