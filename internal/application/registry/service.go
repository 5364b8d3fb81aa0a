package registry

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

// Service handles agent registry operations.
type Service struct {
	repo   agent.Repository
	logger zerolog.Logger
}

func NewService(repo agent.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "registry").Logger(),
	}
}

// RegisterInput carries the registration fields for a new agent.
type RegisterInput struct {
	Name         string
	Description  string
	Type         agent.Type
	Capabilities []string
	Source       agent.Source
}

// Register stores a new agent. With an explicit id, a collision fails
// with agent.ErrDuplicateID. Without one, the deterministic id for the
// name is used; if that id is taken by another agent a random id is
// assigned instead.
func (s *Service) Register(in RegisterInput, explicitID string) (*agent.Agent, error) {
	a := &agent.Agent{
		Name:         in.Name,
		Description:  in.Description,
		Type:         in.Type,
		Capabilities: in.Capabilities,
		Status:       agent.StatusActive,
		Source:       in.Source,
		CreatedAt:    time.Now().UTC(),
	}
	if a.Source == "" {
		a.Source = agent.SourceLocal
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if explicitID != "" {
		a.ID = explicitID
		if err := s.repo.Insert(a); err != nil {
			return nil, err
		}
	} else {
		a.ID = agent.Identity(a.Name)
		if err := s.repo.Insert(a); err != nil {
			if !errors.Is(err, agent.ErrDuplicateID) {
				return nil, err
			}
			// Deterministic id is occupied; fall back to a random one.
			a.ID = uuid.NewString()
			if err := s.repo.Insert(a); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info().Str("agent_id", a.ID).Str("name", a.Name).Msg("agent registered")
	return a, nil
}

// RegisterBuiltin registers a built-in agent under its deterministic id
// unless an agent with the same name is already present. Returns true
// when a new registration happened.
func (s *Service) RegisterBuiltin(in RegisterInput) (*agent.Agent, bool, error) {
	for _, existing := range s.repo.List(agent.Filter{}) {
		if existing.Name == in.Name {
			return existing, false, nil
		}
	}
	a, err := s.Register(in, agent.Identity(in.Name))
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (s *Service) Get(id string) (*agent.Agent, error) {
	a, ok := s.repo.Get(id)
	if !ok {
		return nil, agent.ErrNotFound
	}
	return a, nil
}

func (s *Service) List(filter agent.Filter) []*agent.Agent {
	return s.repo.List(filter)
}

// Update applies the non-nil fields of upd. Returns agent.ErrNotFound
// when the id is unknown.
func (s *Service) Update(id string, upd agent.Update) (*agent.Agent, error) {
	a, ok := s.repo.Apply(id, func(a *agent.Agent) {
		if upd.Name != nil {
			a.Name = *upd.Name
		}
		if upd.Description != nil {
			a.Description = *upd.Description
		}
		if upd.Capabilities != nil {
			a.Capabilities = *upd.Capabilities
		}
		if upd.Status != nil {
			a.Status = *upd.Status
		}
	})
	if !ok {
		return nil, agent.ErrNotFound
	}
	return a, nil
}

func (s *Service) Unregister(id string) bool {
	removed := s.repo.Delete(id)
	if removed {
		s.logger.Info().Str("agent_id", id).Msg("agent unregistered")
	}
	return removed
}

// Heartbeat records the liveness timestamp. The timestamp is stored as
// given; no monotonicity is enforced and nothing transitions status from
// it.
func (s *Service) Heartbeat(id string, ts time.Time) bool {
	_, ok := s.repo.Apply(id, func(a *agent.Agent) {
		t := ts
		a.LastHeartbeat = &t
	})
	return ok
}

// AvailableWorkers returns agents that are workers and currently active.
func (s *Service) AvailableWorkers() []*agent.Agent {
	return s.repo.List(agent.Filter{Type: agent.TypeWorker, Status: agent.StatusActive})
}
