package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appDispatch "github.com/agent-hub/agent-hub/internal/application/dispatch"
	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

type processQueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type executeRequest struct {
	TaskID    string                 `json:"task_id,omitempty"`
	InputData map[string]interface{} `json:"input_data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func (s *Server) processQuery(w http.ResponseWriter, r *http.Request) {
	var req processQueryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if req.Query == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "query is required")
		return
	}
	result := s.intentSvc.ProcessQuery(r.Context(), req.Query, req.SessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) executeTask(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentId")
	var req executeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if req.TaskID == "" {
		req.TaskID = uuid.NewString()
	}
	resp, err := s.dispatchSvc.Dispatch(r.Context(), agentID, appDispatch.Request{
		TaskID:    req.TaskID,
		InputData: req.InputData,
		Metadata:  req.Metadata,
	})
	if err != nil {
		switch {
		case errors.Is(err, agent.ErrNotFound):
			respondError(w, http.StatusNotFound, "NOT_FOUND", "agent not found")
		case errors.Is(err, agent.ErrInactive):
			respondError(w, http.StatusBadRequest, "AGENT_INACTIVE", "agent is not active")
		default:
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
