// Package sync pulls agent descriptors from a remote directory and
// merges them into the local registry.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

// Stats aggregates one sync run. Total counts records received from the
// directory regardless of per-record outcome.
type Stats struct {
	Total        int           `json:"total"`
	Registered   int           `json:"registered"`
	Skipped      int           `json:"skipped"`
	Errors       int           `json:"errors"`
	ErrorDetails []ErrorDetail `json:"error_details"`
}

// ErrorDetail records one failed record.
type ErrorDetail struct {
	AgentName string `json:"agent_name"`
	Error     string `json:"error"`
}

// Wrapper keys probed when the directory response is a single object
// instead of a list.
var wrapperKeys = []string{"agents", "data", "items", "results"}

// Service synchronizes external agents into the registry.
type Service struct {
	repo         agent.Repository
	client       *http.Client
	directoryURL string
	filter       string
	logger       zerolog.Logger
}

func NewService(repo agent.Repository, client *http.Client, directoryURL, filter string, logger zerolog.Logger) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		repo:         repo,
		client:       client,
		directoryURL: directoryURL,
		filter:       filter,
		logger:       logger.With().Str("service", "sync").Logger(),
	}
}

// Sync fetches the remote directory and registers each record. A fetch
// failure aborts the whole run; per-record failures are isolated and
// reported in the stats.
func (s *Service) Sync(ctx context.Context, overwrite bool) (*Stats, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Total: len(records), ErrorDetails: []ErrorDetail{}}
	for i, raw := range records {
		s.syncRecord(i, raw, overwrite, stats)
	}

	s.logger.Info().
		Int("total", stats.Total).
		Int("registered", stats.Registered).
		Int("skipped", stats.Skipped).
		Int("errors", stats.Errors).
		Msg("external agent sync finished")
	return stats, nil
}

func (s *Service) syncRecord(i int, raw interface{}, overwrite bool, stats *Stats) {
	record, ok := raw.(map[string]interface{})
	if !ok {
		stats.Errors++
		stats.ErrorDetails = append(stats.ErrorDetails, ErrorDetail{
			AgentName: fmt.Sprintf("invalid_data_%d", i),
			Error:     fmt.Sprintf("record is not an object: %T", raw),
		})
		return
	}

	name := recordName(record, i)

	match, err := evaluateFilter(s.filter, record)
	if err != nil {
		stats.Errors++
		stats.ErrorDetails = append(stats.ErrorDetails, ErrorDetail{AgentName: name, Error: fmt.Sprintf("filter: %v", err)})
		return
	}
	if !match {
		stats.Skipped++
		return
	}

	draft, err := s.mapRecord(record)
	if err != nil {
		stats.Errors++
		stats.ErrorDetails = append(stats.ErrorDetails, ErrorDetail{AgentName: name, Error: err.Error()})
		return
	}

	if _, exists := s.repo.Get(draft.ID); exists && !overwrite {
		s.logger.Debug().Str("name", draft.Name).Msg("agent already registered, skipping")
		stats.Skipped++
		return
	}
	s.repo.Replace(draft)
	stats.Registered++
}

// fetch retrieves the raw record list from the directory endpoint,
// coercing single-object payloads into a list.
func (s *Service) fetch(ctx context.Context) ([]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.directoryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch agent directory: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read directory response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("agent directory returned status %d", resp.StatusCode)
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}

	switch v := payload.(type) {
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		for _, key := range wrapperKeys {
			if list, ok := v[key].([]interface{}); ok {
				s.logger.Debug().Str("key", key).Msg("extracted agent list from wrapper field")
				return list, nil
			}
		}
		// No wrapper field; treat the object as a single record.
		return []interface{}{v}, nil
	default:
		return nil, fmt.Errorf("directory payload is not a list: %T", payload)
	}
}

// mapRecord builds an external agent draft from one directory record.
func (s *Service) mapRecord(record map[string]interface{}) (*agent.Agent, error) {
	name, _ := record["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("record has no name")
	}

	description, _ := record["description"].(string)

	typ := agent.TypeWorker
	if rawType, ok := record["agent_type"].(string); ok && rawType != "" {
		parsed, err := agent.ParseType(rawType)
		if err != nil {
			s.logger.Warn().Str("agent_type", rawType).Str("name", name).Msg("unknown agent type, defaulting to worker")
		} else {
			typ = parsed
		}
	}

	capabilities := []string{}
	if rawCaps, ok := record["capabilities"].([]interface{}); ok {
		for _, c := range rawCaps {
			if str, ok := c.(string); ok {
				capabilities = append(capabilities, str)
			}
		}
	}

	return &agent.Agent{
		ID:           agent.Identity(name),
		Name:         name,
		Description:  description,
		Type:         typ,
		Capabilities: capabilities,
		Status:       agent.StatusActive,
		Source:       agent.SourceExternal,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func recordName(record map[string]interface{}, i int) string {
	if name, ok := record["name"].(string); ok && name != "" {
		return name
	}
	return fmt.Sprintf("unnamed_agent_%d", i)
}
