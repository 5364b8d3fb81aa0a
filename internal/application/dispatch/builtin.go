package dispatch

import (
	"context"
	"fmt"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
	"github.com/agent-hub/agent-hub/internal/llm"
	"github.com/agent-hub/agent-hub/internal/prompt"
)

// Completer is the LLM surface the built-in handlers need.
type Completer interface {
	Chat(ctx context.Context, system, user string, opts llm.Options) (string, error)
}

// BuiltinSpec describes one built-in agent and its prompt wiring.
type BuiltinSpec struct {
	Name           string
	Description    string
	Capabilities   []string
	System         string
	PromptFile     string
	FallbackPrompt string
}

// Builtins returns the agents registered automatically at startup.
func Builtins() []BuiltinSpec {
	return []BuiltinSpec{
		{
			Name:           "Math Helper",
			Description:    "Answers middle-school math questions, covering algebra and geometry.",
			Capabilities:   []string{"algebra", "geometry", "problem_solving", "math_tutoring"},
			System:         "You are a patient math teacher who explains middle-school math step by step.",
			PromptFile:     "math_agent_prompt.txt",
			FallbackPrompt: "Solve the following math problem and show the steps:\n\n{query}",
		},
		{
			Name:           "Poetry Helper",
			Description:    "Handles classical poetry questions: appreciation, composition, and recitation.",
			Capabilities:   []string{"poetry_appreciation", "poetry_creation", "poetry_analysis", "poetry_tutoring"},
			System:         "You are a literature tutor specialized in classical poetry.",
			PromptFile:     "poetry_agent_prompt.txt",
			FallbackPrompt: "Answer the following question about classical poetry:\n\n{query}",
		},
		{
			Name:           "Biology Helper",
			Description:    "Answers biology questions, covering cell biology, genetics, and ecology.",
			Capabilities:   []string{"cell_biology", "genetics", "ecology", "biochemistry", "physiology"},
			System:         "You are a biology teacher who gives clear, accurate explanations.",
			PromptFile:     "biology_agent_prompt.txt",
			FallbackPrompt: "Answer the following biology question:\n\n{query}",
		},
	}
}

// BuiltinHandlers builds the handler table for the built-in agents,
// keyed by deterministic agent id.
func BuiltinHandlers(completer Completer, prompts *prompt.Store) map[string]Handler {
	handlers := make(map[string]Handler, len(Builtins()))
	for _, spec := range Builtins() {
		handlers[agent.Identity(spec.Name)] = &promptHandler{
			completer: completer,
			prompts:   prompts,
			spec:      spec,
		}
	}
	return handlers
}

// promptHandler answers with a single LLM call using the agent's prompt
// template.
type promptHandler struct {
	completer Completer
	prompts   *prompt.Store
	spec      BuiltinSpec
}

func (h *promptHandler) Execute(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error) {
	query := ExtractQuestion(input)
	template := h.prompts.Load(h.spec.PromptFile, h.spec.FallbackPrompt)
	rendered := prompt.Render(template, map[string]string{
		"query":      query,
		"question":   query,
		"agent_name": h.spec.Name,
	})

	answer, err := h.completer.Chat(ctx, h.spec.System, rendered, llm.Options{Temperature: 0.3, MaxTokens: 1500})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.spec.Name, err)
	}
	return map[string]interface{}{
		"agent":  h.spec.Name,
		"query":  query,
		"answer": answer,
	}, nil
}

// EchoHandler is the fallback for local agents without a dedicated
// handler. It echoes the input back.
type EchoHandler struct{}

func (EchoHandler) Execute(_ context.Context, input map[string]interface{}) (map[string]interface{}, error) {
	return map[string]interface{}{
		"result": "echo",
		"input":  input,
	}, nil
}
