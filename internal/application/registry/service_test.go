package registry

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
	"github.com/agent-hub/agent-hub/internal/infrastructure/memory"
)

func newService() *Service {
	return NewService(memory.NewAgentRepository(), zerolog.Nop())
}

func TestRegisterDeterministicID(t *testing.T) {
	svc := newService()
	a, err := svc.Register(RegisterInput{Name: "Math Helper", Type: agent.TypeWorker}, "")
	require.NoError(t, err)
	assert.Equal(t, agent.Identity("Math Helper"), a.ID)
	assert.Equal(t, agent.StatusActive, a.Status)
	assert.Equal(t, agent.SourceLocal, a.Source)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestRegisterSameNameFallsBackToRandomID(t *testing.T) {
	svc := newService()
	first, err := svc.Register(RegisterInput{Name: "Math Helper", Type: agent.TypeWorker}, "")
	require.NoError(t, err)

	second, err := svc.Register(RegisterInput{Name: "Math Helper", Type: agent.TypeWorker}, "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	// The first registration is untouched.
	got, err := svc.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestRegisterExplicitIDCollision(t *testing.T) {
	svc := newService()
	_, err := svc.Register(RegisterInput{Name: "one", Type: agent.TypeWorker}, "fixed")
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Name: "two", Type: agent.TypeWorker}, "fixed")
	assert.ErrorIs(t, err, agent.ErrDuplicateID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService()
	_, err := svc.Register(RegisterInput{Type: agent.TypeWorker}, "")
	assert.Error(t, err)
}

func TestListFilters(t *testing.T) {
	svc := newService()
	_, err := svc.Register(RegisterInput{Name: "w1", Type: agent.TypeWorker}, "")
	require.NoError(t, err)
	_, err = svc.Register(RegisterInput{Name: "s1", Type: agent.TypeScheduler}, "")
	require.NoError(t, err)
	inactive, err := svc.Register(RegisterInput{Name: "w2", Type: agent.TypeWorker}, "")
	require.NoError(t, err)
	st := agent.StatusInactive
	_, err = svc.Update(inactive.ID, agent.Update{Status: &st})
	require.NoError(t, err)

	assert.Len(t, svc.List(agent.Filter{}), 3)
	assert.Len(t, svc.List(agent.Filter{Type: agent.TypeWorker}), 2)
	assert.Len(t, svc.List(agent.Filter{Type: agent.TypeWorker, Status: agent.StatusActive}), 1)

	workers := svc.AvailableWorkers()
	require.Len(t, workers, 1)
	assert.Equal(t, "w1", workers[0].Name)
}

func TestUpdatePartial(t *testing.T) {
	svc := newService()
	a, err := svc.Register(RegisterInput{Name: "w1", Description: "orig", Type: agent.TypeWorker, Capabilities: []string{"x"}}, "")
	require.NoError(t, err)

	desc := "updated"
	got, err := svc.Update(a.ID, agent.Update{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Description)
	assert.Equal(t, "w1", got.Name)
	assert.Equal(t, []string{"x"}, got.Capabilities)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newService()
	_, err := svc.Update("missing", agent.Update{})
	assert.ErrorIs(t, err, agent.ErrNotFound)
}

func TestUnregisterThenGet(t *testing.T) {
	svc := newService()
	a, err := svc.Register(RegisterInput{Name: "Math Helper", Type: agent.TypeWorker}, "")
	require.NoError(t, err)

	assert.Len(t, svc.List(agent.Filter{Status: agent.StatusActive}), 1)
	assert.True(t, svc.Unregister(a.ID))
	assert.False(t, svc.Unregister(a.ID))

	_, err = svc.Get(a.ID)
	assert.ErrorIs(t, err, agent.ErrNotFound)
	_, err = svc.Update(a.ID, agent.Update{})
	assert.ErrorIs(t, err, agent.ErrNotFound)
}

func TestHeartbeat(t *testing.T) {
	svc := newService()
	a, err := svc.Register(RegisterInput{Name: "w1", Type: agent.TypeWorker}, "")
	require.NoError(t, err)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.True(t, svc.Heartbeat(a.ID, ts))

	got, err := svc.Get(a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastHeartbeat)
	assert.Equal(t, ts, *got.LastHeartbeat)

	// Earlier timestamps overwrite; there is no ordering invariant.
	earlier := ts.Add(-time.Hour)
	require.True(t, svc.Heartbeat(a.ID, earlier))
	got, err = svc.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, earlier, *got.LastHeartbeat)

	assert.False(t, svc.Heartbeat("missing", ts))
}

func TestRegisterBuiltinSkipsExistingName(t *testing.T) {
	svc := newService()
	in := RegisterInput{Name: "Math Helper", Type: agent.TypeWorker}
	a, created, err := svc.RegisterBuiltin(in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, agent.Identity("Math Helper"), a.ID)

	again, created, err := svc.RegisterBuiltin(in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ID, again.ID)
}
