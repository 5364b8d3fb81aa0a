package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_oracle.go -package=mocks . Oracle

// Candidate is one agent reference proposed by the classification
// oracle. Either field may be empty or point at nothing that exists.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Oracle classifies free-text queries against the known agents.
type Oracle interface {
	// ParseIntent proposes candidate agents for the query. The overview
	// describes the currently registered agents and their capabilities.
	ParseIntent(ctx context.Context, query, overview string) ([]Candidate, error)

	// Guidance produces a clarifying prompt for queries that resolved to
	// no agents.
	Guidance(ctx context.Context, query string) (string, error)
}

// TargetAgent is a resolved, active agent returned to the caller.
type TargetAgent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Result is the outcome of processing one user query.
type Result struct {
	TaskID       string        `json:"task_id"`
	SessionID    string        `json:"session_id"`
	TargetAgents []TargetAgent `json:"target_agents"`
	Response     string        `json:"response"`
}

// DefaultGuidance is returned when guidance generation fails.
const DefaultGuidance = "Please tell me which domain you need help with, for example math, poetry, or biology."

const matchedResponse = "Matching agents found for your request."

// Service routes free-text queries to registered agents.
type Service struct {
	repo     agent.Repository
	oracle   Oracle
	sessions *SessionStore
	logger   zerolog.Logger
}

func NewService(repo agent.Repository, oracle Oracle, sessions *SessionStore, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		oracle:   oracle,
		sessions: sessions,
		logger:   logger.With().Str("service", "intent").Logger(),
	}
}

// Resolve asks the oracle for candidates and validates them against the
// registry. Oracle failures and unresolvable candidates are dropped, not
// escalated; an empty result means no match.
func (s *Service) Resolve(ctx context.Context, query string) []TargetAgent {
	overview := agentOverview(s.repo.List(agent.Filter{}))
	candidates, err := s.oracle.ParseIntent(ctx, query, overview)
	if err != nil {
		s.logger.Warn().Err(err).Msg("intent classification failed")
		return nil
	}

	validated := make([]TargetAgent, 0, len(candidates))
	for _, c := range candidates {
		a := s.resolveCandidate(c)
		if a == nil || a.Status != agent.StatusActive {
			continue
		}
		validated = append(validated, TargetAgent{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Source:      string(a.Source),
		})
	}
	return validated
}

// resolveCandidate resolves by id first, then by exact name match.
func (s *Service) resolveCandidate(c Candidate) *agent.Agent {
	if c.ID != "" {
		if a, ok := s.repo.Get(c.ID); ok {
			return a
		}
	}
	if c.Name != "" {
		for _, a := range s.repo.List(agent.Filter{}) {
			if a.Name == c.Name {
				return a
			}
		}
	}
	return nil
}

// ProcessQuery resolves a user query within a conversation session. The
// first query of a session never returns agents; it answers with a
// clarifying prompt instead.
func (s *Service) ProcessQuery(ctx context.Context, query, sessionID string) *Result {
	taskID := uuid.NewString()
	if sessionID == "" {
		sessionID = taskID
	}

	count := s.sessions.Append(sessionID, Message{Role: "user", Content: query})
	firstQuery := count == 1

	targets := s.Resolve(ctx, query)
	s.logger.Info().Str("session_id", sessionID).Int("resolved", len(targets)).Bool("first_query", firstQuery).Msg("query processed")

	if firstQuery || len(targets) == 0 {
		guidance := s.guidance(ctx, query)
		s.sessions.Append(sessionID, Message{Role: "system", Content: guidance})
		return &Result{
			TaskID:       taskID,
			SessionID:    sessionID,
			TargetAgents: []TargetAgent{},
			Response:     guidance,
		}
	}

	s.sessions.Append(sessionID, Message{Role: "system", Content: matchedResponse})
	return &Result{
		TaskID:       taskID,
		SessionID:    sessionID,
		TargetAgents: targets,
		Response:     matchedResponse,
	}
}

func (s *Service) guidance(ctx context.Context, query string) string {
	text, err := s.oracle.Guidance(ctx, query)
	if err != nil || text == "" {
		if err != nil {
			s.logger.Warn().Err(err).Msg("guidance generation failed, using default")
		}
		return DefaultGuidance
	}
	return text
}

func agentOverview(agents []*agent.Agent) string {
	var b strings.Builder
	for _, a := range agents {
		fmt.Fprintf(&b, "- %s (id %s): %s [%s]\n", a.Name, a.ID, a.Description, strings.Join(a.Capabilities, ", "))
	}
	return b.String()
}
