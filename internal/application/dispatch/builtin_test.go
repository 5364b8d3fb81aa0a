package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
	"github.com/agent-hub/agent-hub/internal/llm"
	"github.com/agent-hub/agent-hub/internal/prompt"
)

type stubCompleter struct {
	lastSystem string
	lastUser   string
	reply      string
	err        error
}

func (s *stubCompleter) Chat(_ context.Context, system, user string, _ llm.Options) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	return s.reply, s.err
}

func TestBuiltinHandlersKeyedByIdentity(t *testing.T) {
	handlers := BuiltinHandlers(&stubCompleter{}, prompt.NewStore(t.TempDir()))
	require.Len(t, handlers, 3)
	for _, spec := range Builtins() {
		assert.Contains(t, handlers, agent.Identity(spec.Name))
	}
}

func TestPromptHandlerUsesFallbackTemplate(t *testing.T) {
	completer := &stubCompleter{reply: "the answer is 4"}
	handlers := BuiltinHandlers(completer, prompt.NewStore(t.TempDir()))
	h := handlers[agent.Identity("Math Helper")]

	out, err := h.Execute(context.Background(), map[string]interface{}{"query": "2+2"})
	require.NoError(t, err)
	assert.Equal(t, "Math Helper", out["agent"])
	assert.Equal(t, "2+2", out["query"])
	assert.Equal(t, "the answer is 4", out["answer"])
	assert.True(t, strings.Contains(completer.lastUser, "2+2"))
}

func TestPromptHandlerPropagatesError(t *testing.T) {
	completer := &stubCompleter{err: errors.New("timeout")}
	handlers := BuiltinHandlers(completer, prompt.NewStore(t.TempDir()))
	h := handlers[agent.Identity("Biology Helper")]

	_, err := h.Execute(context.Background(), map[string]interface{}{"query": "what is a cell"})
	assert.Error(t, err)
}
