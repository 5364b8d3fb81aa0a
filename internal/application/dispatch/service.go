package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
	"github.com/agent-hub/agent-hub/internal/domain/execution"
)

// Request is one task execution request.
type Request struct {
	TaskID    string                 `json:"task_id"`
	InputData map[string]interface{} `json:"input_data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Response is the uniform execution envelope. ExecutionTime is seconds.
type Response struct {
	TaskID        string                 `json:"task_id"`
	AgentID       string                 `json:"agent_id"`
	OutputData    map[string]interface{} `json:"output_data"`
	ExecutionTime float64                `json:"execution_time"`
	Status        string                 `json:"status"`
}

// Execution statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Handler executes a task for a local agent.
type Handler interface {
	Execute(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error)
}

// ExternalExecutor runs a task against a remote agent endpoint.
type ExternalExecutor interface {
	Execute(ctx context.Context, a *agent.Agent, req Request) (map[string]interface{}, error)
}

// Service dispatches tasks to local handlers or external agents.
// Handlers are keyed by deterministic agent id; unmatched local agents
// fall through to the fallback handler.
type Service struct {
	repo     agent.Repository
	handlers map[string]Handler
	fallback Handler
	external ExternalExecutor
	trail    execution.Repository
	logger   zerolog.Logger
}

func NewService(repo agent.Repository, handlers map[string]Handler, fallback Handler, external ExternalExecutor, trail execution.Repository, logger zerolog.Logger) *Service {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Service{
		repo:     repo,
		handlers: handlers,
		fallback: fallback,
		external: external,
		trail:    trail,
		logger:   logger.With().Str("service", "dispatch").Logger(),
	}
}

// Dispatch routes the task to the agent's execution path. Unknown agents
// fail with agent.ErrNotFound and non-active agents with
// agent.ErrInactive before any handler runs. Handler-level failures are
// folded into an error response, never returned as an error.
func (s *Service) Dispatch(ctx context.Context, agentID string, req Request) (*Response, error) {
	a, ok := s.repo.Get(agentID)
	if !ok {
		return nil, agent.ErrNotFound
	}
	if a.Status != agent.StatusActive {
		return nil, agent.ErrInactive
	}

	start := time.Now()
	var (
		out map[string]interface{}
		err error
	)
	if a.Source == agent.SourceExternal {
		out, err = s.external.Execute(ctx, a, req)
	} else {
		h := s.handlers[a.ID]
		if h == nil {
			h = s.fallback
		}
		out, err = h.Execute(ctx, req.InputData)
	}
	elapsed := time.Since(start)

	resp := &Response{
		TaskID:        req.TaskID,
		AgentID:       a.ID,
		ExecutionTime: elapsed.Seconds(),
	}
	if err != nil {
		resp.Status = StatusError
		resp.OutputData = map[string]interface{}{"error": err.Error()}
		s.logger.Warn().Err(err).Str("agent_id", a.ID).Str("agent", a.Name).Msg("task execution failed")
	} else {
		resp.Status = StatusSuccess
		resp.OutputData = out
		s.logger.Info().Str("agent_id", a.ID).Str("agent", a.Name).Dur("elapsed", elapsed).Msg("task executed")
	}

	s.record(ctx, a, resp, elapsed)
	return resp, nil
}

// record appends the outcome to the execution trail, best effort.
func (s *Service) record(ctx context.Context, a *agent.Agent, resp *Response, elapsed time.Duration) {
	if s.trail == nil {
		return
	}
	rec := &execution.Record{
		ID:        uuid.New(),
		TaskID:    resp.TaskID,
		AgentID:   a.ID,
		AgentName: a.Name,
		Status:    resp.Status,
		ElapsedMs: elapsed.Milliseconds(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.trail.Create(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Msg("execution trail write failed")
	}
}
