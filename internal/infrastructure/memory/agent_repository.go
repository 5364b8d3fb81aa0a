// Package memory provides the in-memory agent repository. The registry is
// process-local and does not survive restarts.
package memory

import (
	"sync"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

// AgentRepository implements agent.Repository over a mutex-guarded map.
// Insertion order is preserved for List.
type AgentRepository struct {
	mu     sync.RWMutex
	agents map[string]*agent.Agent
	order  []string
}

func NewAgentRepository() *AgentRepository {
	return &AgentRepository{
		agents: make(map[string]*agent.Agent),
	}
}

func (r *AgentRepository) Insert(a *agent.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.agents[a.ID]; exists {
		return agent.ErrDuplicateID
	}
	cp := *a
	r.agents[a.ID] = &cp
	r.order = append(r.order, a.ID)
	return nil
}

func (r *AgentRepository) Get(id string) (*agent.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[id]
	if !ok {
		return nil, false
	}
	cp := *a
	return &cp, true
}

func (r *AgentRepository) List(filter agent.Filter) []*agent.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*agent.Agent, 0, len(r.order))
	for _, id := range r.order {
		a, ok := r.agents[id]
		if !ok {
			continue
		}
		if filter.Matches(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}

func (r *AgentRepository) Apply(id string, mutate func(*agent.Agent)) (*agent.Agent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agents[id]
	if !ok {
		return nil, false
	}
	mutate(a)
	cp := *a
	return &cp, true
}

func (r *AgentRepository) Replace(a *agent.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.agents[a.ID]; !exists {
		r.order = append(r.order, a.ID)
	}
	cp := *a
	r.agents[a.ID] = &cp
}

func (r *AgentRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[id]; !ok {
		return false
	}
	delete(r.agents, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}
