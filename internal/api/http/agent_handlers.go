package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	appRegistry "github.com/agent-hub/agent-hub/internal/application/registry"
	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

type agentRegisterRequest struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	AgentType    string   `json:"agent_type"`
	Capabilities []string `json:"capabilities,omitempty"`
	Source       string   `json:"source,omitempty"`
}

type heartbeatRequest struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func (s *Server) registerAgent(w http.ResponseWriter, r *http.Request) {
	var req agentRegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	typ, err := agent.ParseType(req.AgentType)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	in := appRegistry.RegisterInput{
		Name:         req.Name,
		Description:  req.Description,
		Type:         typ,
		Capabilities: req.Capabilities,
		Source:       agent.Source(req.Source),
	}
	a, err := s.registrySvc.Register(in, req.ID)
	if err != nil {
		if errors.Is(err, agent.ErrDuplicateID) {
			respondError(w, http.StatusBadRequest, "DUPLICATE_ID", err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	var filter agent.Filter
	if v := r.URL.Query().Get("agent_type"); v != "" {
		typ, err := agent.ParseType(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
			return
		}
		filter.Type = typ
	}
	if v := r.URL.Query().Get("status"); v != "" {
		st, err := agent.ParseStatus(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
			return
		}
		filter.Status = st
	}
	agents := s.registrySvc.List(filter)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"agents": agents,
		"total":  len(agents),
	})
}

func (s *Server) getAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agentId")
	a, err := s.registrySvc.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "agent not found")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) updateAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agentId")
	var upd agent.Update
	if err := decodeBody(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if upd.Status != nil {
		if _, err := agent.ParseStatus(string(*upd.Status)); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
			return
		}
	}
	a, err := s.registrySvc.Update(id, upd)
	if err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "agent not found")
			return
		}
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) unregisterAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agentId")
	if !s.registrySvc.Unregister(id) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "agent not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "agent unregistered"})
}

func (s *Server) heartbeat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agentId")
	var req heartbeatRequest
	_ = decodeBody(r, &req)
	ts := time.Now().UTC()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	if !s.registrySvc.Heartbeat(id, ts) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "agent not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "heartbeat recorded"})
}

func (s *Server) syncAgents(w http.ResponseWriter, r *http.Request) {
	overwrite := r.URL.Query().Get("overwrite") == "true"
	stats, err := s.syncSvc.Sync(r.Context(), overwrite)
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
