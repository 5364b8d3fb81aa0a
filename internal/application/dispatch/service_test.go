package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
	"github.com/agent-hub/agent-hub/internal/domain/execution"
	"github.com/agent-hub/agent-hub/internal/infrastructure/memory"
)

type stubHandler struct {
	calls  int
	output map[string]interface{}
	err    error
}

func (h *stubHandler) Execute(_ context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	h.calls++
	return h.output, h.err
}

type stubExternal struct {
	calls  int
	output map[string]interface{}
	err    error
}

func (e *stubExternal) Execute(_ context.Context, _ *agent.Agent, _ Request) (map[string]interface{}, error) {
	e.calls++
	return e.output, e.err
}

type captureTrail struct {
	records []*execution.Record
}

func (c *captureTrail) Create(_ context.Context, rec *execution.Record) error {
	c.records = append(c.records, rec)
	return nil
}

func (c *captureTrail) ListByAgent(_ context.Context, _ string, _ int) ([]*execution.Record, error) {
	return c.records, nil
}

func seed(t *testing.T, repo agent.Repository, name string, status agent.Status, source agent.Source) *agent.Agent {
	t.Helper()
	a := &agent.Agent{
		ID:     agent.Identity(name),
		Name:   name,
		Type:   agent.TypeWorker,
		Status: status,
		Source: source,
	}
	require.NoError(t, repo.Insert(a))
	return a
}

func TestDispatchUnknownAgent(t *testing.T) {
	svc := NewService(memory.NewAgentRepository(), nil, EchoHandler{}, &stubExternal{}, nil, zerolog.Nop())
	_, err := svc.Dispatch(context.Background(), "missing", Request{TaskID: "t1"})
	assert.ErrorIs(t, err, agent.ErrNotFound)
}

func TestDispatchInactiveAgentNeverRunsHandler(t *testing.T) {
	repo := memory.NewAgentRepository()
	a := seed(t, repo, "Math Helper", agent.StatusInactive, agent.SourceLocal)

	h := &stubHandler{output: map[string]interface{}{"answer": "4"}}
	svc := NewService(repo, map[string]Handler{a.ID: h}, EchoHandler{}, &stubExternal{}, nil, zerolog.Nop())

	_, err := svc.Dispatch(context.Background(), a.ID, Request{TaskID: "t1"})
	assert.ErrorIs(t, err, agent.ErrInactive)
	assert.Zero(t, h.calls)
}

func TestDispatchLocalHandlerSuccess(t *testing.T) {
	repo := memory.NewAgentRepository()
	a := seed(t, repo, "Math Helper", agent.StatusActive, agent.SourceLocal)

	h := &stubHandler{output: map[string]interface{}{"answer": "4"}}
	trail := &captureTrail{}
	svc := NewService(repo, map[string]Handler{a.ID: h}, EchoHandler{}, &stubExternal{}, trail, zerolog.Nop())

	resp, err := svc.Dispatch(context.Background(), a.ID, Request{
		TaskID:    "t1",
		InputData: map[string]interface{}{"query": "2+2"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "t1", resp.TaskID)
	assert.Equal(t, a.ID, resp.AgentID)
	assert.Equal(t, map[string]interface{}{"answer": "4"}, resp.OutputData)
	assert.GreaterOrEqual(t, resp.ExecutionTime, 0.0)
	assert.Equal(t, 1, h.calls)

	require.Len(t, trail.records, 1)
	assert.Equal(t, StatusSuccess, trail.records[0].Status)
	assert.Equal(t, a.ID, trail.records[0].AgentID)
}

func TestDispatchLocalHandlerErrorFolded(t *testing.T) {
	repo := memory.NewAgentRepository()
	a := seed(t, repo, "Math Helper", agent.StatusActive, agent.SourceLocal)

	h := &stubHandler{err: errors.New("model unavailable")}
	trail := &captureTrail{}
	svc := NewService(repo, map[string]Handler{a.ID: h}, EchoHandler{}, &stubExternal{}, trail, zerolog.Nop())

	resp, err := svc.Dispatch(context.Background(), a.ID, Request{TaskID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, map[string]interface{}{"error": "model unavailable"}, resp.OutputData)

	require.Len(t, trail.records, 1)
	assert.Equal(t, StatusError, trail.records[0].Status)
}

func TestDispatchUnmatchedLocalFallsBackToEcho(t *testing.T) {
	repo := memory.NewAgentRepository()
	a := seed(t, repo, "Custom Agent", agent.StatusActive, agent.SourceLocal)

	svc := NewService(repo, nil, EchoHandler{}, &stubExternal{}, nil, zerolog.Nop())
	resp, err := svc.Dispatch(context.Background(), a.ID, Request{
		TaskID:    "t1",
		InputData: map[string]interface{}{"query": "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "echo", resp.OutputData["result"])
}

func TestDispatchExternalPath(t *testing.T) {
	repo := memory.NewAgentRepository()
	a := seed(t, repo, "sqrt_agent", agent.StatusActive, agent.SourceExternal)

	ext := &stubExternal{output: map[string]interface{}{"answer": "3"}}
	h := &stubHandler{}
	svc := NewService(repo, map[string]Handler{a.ID: h}, EchoHandler{}, ext, nil, zerolog.Nop())

	resp, err := svc.Dispatch(context.Background(), a.ID, Request{TaskID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, 1, ext.calls)
	assert.Zero(t, h.calls)
}

func TestDispatchExternalErrorFolded(t *testing.T) {
	repo := memory.NewAgentRepository()
	a := seed(t, repo, "sqrt_agent", agent.StatusActive, agent.SourceExternal)

	ext := &stubExternal{err: errors.New("connection refused")}
	svc := NewService(repo, nil, EchoHandler{}, ext, nil, zerolog.Nop())

	resp, err := svc.Dispatch(context.Background(), a.ID, Request{TaskID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "connection refused", resp.OutputData["error"])
}
