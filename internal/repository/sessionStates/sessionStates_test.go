package sessionStates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

func TestGetStateByID_CreatesEmptySession(t *testing.T) {
	states := NewSessionStates()
	ctx := context.Background()

	state := states.GetStateByID(ctx, 100)
	require.NotNil(t, state)
	assert.Empty(t, state.Step)

	// The same pointer comes back on repeat lookups.
	assert.Same(t, state, states.GetStateByID(ctx, 100))
}

func TestSetState_ReplacesExistingSession(t *testing.T) {
	states := NewSessionStates()
	ctx := context.Background()

	old := states.GetStateByID(ctx, 7)
	old.Step = "theme"

	fresh := &domain.SessionState{Step: "language"}
	require.NoError(t, states.SetState(ctx, 7, fresh))

	assert.Same(t, fresh, states.GetStateByID(ctx, 7))
}

func TestResetUserState(t *testing.T) {
	states := NewSessionStates()
	ctx := context.Background()

	states.GetStateByID(ctx, 1).Step = "topic"
	states.ResetUserState(ctx, 1)

	assert.Empty(t, states.GetStateByID(ctx, 1).Step)
}

func TestGetCurrentStatesID(t *testing.T) {
	states := NewSessionStates()
	ctx := context.Background()

	states.GetStateByID(ctx, 10)
	states.GetStateByID(ctx, 20)
	states.ResetUserState(ctx, 10)

	assert.ElementsMatch(t, []int64{20}, states.GetCurrentStatesID(ctx))
}

func TestGetCorrelationID_StablePerSession(t *testing.T) {
	states := NewSessionStates()
	ctx := context.Background()

	first := states.GetCorrelationID(ctx, 5)
	require.NotEmpty(t, first)
	assert.Equal(t, first, states.GetCorrelationID(ctx, 5))
	assert.NotEqual(t, first, states.GetCorrelationID(ctx, 6))

	// A reset starts a new correlation chain.
	states.ResetUserState(ctx, 5)
	assert.NotEqual(t, first, states.GetCorrelationID(ctx, 5))
}
