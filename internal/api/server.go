package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jesusmora-dev/portfolio-agent/internal/agent"
	"github.com/jesusmora-dev/portfolio-agent/internal/chat"
	"github.com/jesusmora-dev/portfolio-agent/internal/conversation"
)

type Server struct {
	router   *chi.Mux
	sessions *sessionRegistry
	chat     *chat.Orchestrator
	webDir   string
}

func NewServer(client agent.Client, persister conversation.Persister, cannedDelay time.Duration, webDir string) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		sessions: newSessionRegistry(client, persister),
		chat:     chat.NewOrchestrator(client, cannedDelay),
		webDir:   webDir,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	s.router.Get("/health", s.handleHealth)

	// The front-end only ever addresses this same-origin prefix; the agent
	// backend itself is never reached from the browser.
	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.withSession)
		r.Post("/chat", s.handleChat)
		r.Get("/chat/history", s.handleChatHistory)
		r.Delete("/chat/history", s.handleClearChat)
		r.Post("/analyze", s.handleAnalyze)
		r.Delete("/analyze", s.handleResetAnalyzer)
		r.Get("/experience", s.handleExperience)
		r.Get("/stats", s.handleStats)
	})

	if s.webDir != "" {
		FileServer(s.router, "/", http.Dir(s.webDir))
	}
}

func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
