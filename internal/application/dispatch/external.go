package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

// Fields probed, in order, when extracting the question from input data.
var questionFields = []string{"query", "question", "content", "text"}

// ExternalProcessor executes tasks by POSTing to remote agent endpoints.
// Endpoints are resolved by agent name; unmapped names use the default
// endpoint.
type ExternalProcessor struct {
	client          *http.Client
	endpoints       map[string]string
	defaultEndpoint string
	logger          zerolog.Logger
}

func NewExternalProcessor(client *http.Client, endpoints map[string]string, defaultEndpoint string, logger zerolog.Logger) *ExternalProcessor {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoints == nil {
		endpoints = make(map[string]string)
	}
	return &ExternalProcessor{
		client:          client,
		endpoints:       endpoints,
		defaultEndpoint: defaultEndpoint,
		logger:          logger.With().Str("component", "external_processor").Logger(),
	}
}

// DefaultEndpoints builds the static name→URL mapping for the known
// remote math agents under the given API base.
func DefaultEndpoints(apiBase string) map[string]string {
	return map[string]string{
		"sqrt_agent":            apiBase + "/math/sqrt",
		"parallelogram_agent":   apiBase + "/math/parallelogram",
		"linear_function_agent": apiBase + "/math/linear_function",
		"data_analysis_agent":   apiBase + "/math/data_analysis",
		"pythagorean_agent":     apiBase + "/math/pythagorean",
	}
}

func (p *ExternalProcessor) Execute(ctx context.Context, a *agent.Agent, req Request) (map[string]interface{}, error) {
	endpoint := p.endpoint(a.Name)
	payload, err := json.Marshal(map[string]string{
		"user_question": ExtractQuestion(req.InputData),
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	p.logger.Debug().Str("agent", a.Name).Str("endpoint", endpoint).Msg("calling external agent")
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call external agent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read external response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("external agent returned status %d", resp.StatusCode)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode external response: %w", err)
	}
	return out, nil
}

func (p *ExternalProcessor) endpoint(agentName string) string {
	if url, ok := p.endpoints[agentName]; ok {
		return url
	}
	return p.defaultEndpoint
}

// ExtractQuestion pulls the question text out of the input data using a
// fixed field preference order, stringifying the whole input when no
// known field is present.
func ExtractQuestion(input map[string]interface{}) string {
	for _, field := range questionFields {
		if v, ok := input[field]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("%v", input)
}
