package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	appDispatch "github.com/agent-hub/agent-hub/internal/application/dispatch"
	appIntent "github.com/agent-hub/agent-hub/internal/application/intent"
	appRegistry "github.com/agent-hub/agent-hub/internal/application/registry"
	appSync "github.com/agent-hub/agent-hub/internal/application/sync"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	registrySvc *appRegistry.Service
	intentSvc   *appIntent.Service
	dispatchSvc *appDispatch.Service
	syncSvc     *appSync.Service
	logger      zerolog.Logger
}

func NewServer(
	registrySvc *appRegistry.Service,
	intentSvc *appIntent.Service,
	dispatchSvc *appDispatch.Service,
	syncSvc *appSync.Service,
	logger zerolog.Logger,
) *Server {
	return &Server{
		registrySvc: registrySvc,
		intentSvc:   intentSvc,
		dispatchSvc: dispatchSvc,
		syncSvc:     syncSvc,
		logger:      logger.With().Str("component", "http").Logger(),
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.root)
	r.Get("/health", s.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/manager/agents", func(r chi.Router) {
			r.Post("/", s.registerAgent)
			r.Get("/", s.listAgents)
			r.Post("/sync", s.syncAgents)
			r.Get("/{agentId}", s.getAgent)
			r.Put("/{agentId}", s.updateAgent)
			r.Delete("/{agentId}", s.unregisterAgent)
			r.Post("/{agentId}/heartbeat", s.heartbeat)
		})

		r.Route("/scheduler", func(r chi.Router) {
			r.Post("/process_query", s.processQuery)
		})

		r.Route("/worker", func(r chi.Router) {
			r.Post("/execute/{agentId}", s.executeTask)
		})
	})

	return r
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Agent Hub is running",
		"endpoints": map[string]string{
			"manager":   "/api/v1/manager/agents",
			"scheduler": "/api/v1/scheduler/process_query",
			"worker":    "/api/v1/worker/execute/{agent_id}",
			"health":    "/health",
		},
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
