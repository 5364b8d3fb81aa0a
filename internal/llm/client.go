// Package llm wraps an OpenAI-compatible chat completion endpoint. The
// service talks to whatever model the configuration points at; only the
// base URL, API key, and model name vary.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"

	"github.com/agent-hub/agent-hub/internal/application/intent"
	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

// Options tune a single chat completion call.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// Client is a thin wrapper over the chat completion API.
type Client struct {
	api    *openai.Client
	model  string
	logger zerolog.Logger
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration, logger zerolog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.With().Str("component", "llm").Logger(),
	}
}

// Chat sends a system+user message pair and returns the completion text.
func (c *Client) Chat(ctx context.Context, system, user string, opts Options) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

const intentSystem = "You are an agent dispatch system that selects the most suitable agents for a user query."

const intentPromptFormat = `You are an agent dispatch system. Decide which of the available agents
should handle the user query below.

User query: %q

Available agents:
%s

Reply with a JSON object in exactly this shape and nothing else:
{
  "agents": [
    {"id": "agent-id", "name": "agent name"}
  ]
}

If no agent fits the query, reply with an empty agents list.`

// ParseIntent implements intent.Oracle. The model's answer is parsed as
// JSON; names without usable ids get the deterministic id for the name so
// downstream resolution can try both.
func (c *Client) ParseIntent(ctx context.Context, query, overview string) ([]intent.Candidate, error) {
	prompt := fmt.Sprintf(intentPromptFormat, query, overview)
	content, err := c.Chat(ctx, intentSystem, prompt, Options{Temperature: 0.1, MaxTokens: 500})
	if err != nil {
		return nil, err
	}
	candidates, err := parseCandidates(content)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Int("candidates", len(candidates)).Msg("intent parsed")
	return candidates, nil
}

const guidanceSystem = "You are a helpful assistant that writes short clarifying questions."

const guidancePromptFormat = `A user sent the query below to an assistant hub. Generate a short
clarifying reply that lists two or three likely topics (for example math,
poetry, or biology) and asks the user to confirm which one they mean.

User query: %q`

// Guidance implements intent.Oracle.
func (c *Client) Guidance(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(guidancePromptFormat, query)
	return c.Chat(ctx, guidanceSystem, prompt, Options{Temperature: 0.3, MaxTokens: 300})
}

type intentReply struct {
	Agents []intent.Candidate `json:"agents"`
}

func parseCandidates(content string) ([]intent.Candidate, error) {
	var reply intentReply
	if err := json.Unmarshal([]byte(stripFences(content)), &reply); err != nil {
		return nil, fmt.Errorf("parse intent reply: %w", err)
	}
	for i := range reply.Agents {
		if reply.Agents[i].ID == "" && reply.Agents[i].Name != "" {
			reply.Agents[i].ID = agent.Identity(reply.Agents[i].Name)
		}
	}
	return reply.Agents, nil
}

// stripFences removes a surrounding markdown code fence, which some
// models add despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
