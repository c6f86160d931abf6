package yafsm_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yafsm"
)

type AwaitingCity struct {
	yafsm.BaseState[AwaitingCity]

	Attempts int    `msgpack:"attempts"`
	Hint     string `msgpack:"hint"`
}

type AwaitingName struct {
	yafsm.BaseState[AwaitingName]
}

func newScope(t *testing.T) *yafsm.Scope {
	t.Helper()

	cache := yacache.NewCache(yacache.NewMemoryContainer())
	t.Cleanup(func() { _ = cache.Close() })

	return yafsm.NewStorage(cache, 0).Scope(yafsm.ChatUserKey(-100500, 42))
}

func TestBaseState_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AwaitingCity", AwaitingCity{}.StateName())
	assert.Equal(t, "EmptyState", yafsm.EmptyState{}.StateName())
}

func TestScope_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := newScope(t)

	assert.Equal(t, "-100500:42", scope.Key())

	name, _, err := scope.GetState(ctx)
	require.Nil(t, err)
	assert.Equal(t, "EmptyState", name)

	require.Nil(t, scope.SetState(ctx, AwaitingCity{Attempts: 2, Hint: "Berlin?"}))

	name, snapshot, err := scope.GetState(ctx)
	require.Nil(t, err)
	assert.Equal(t, "AwaitingCity", name)

	state, err := yafsm.Data[AwaitingCity](snapshot)
	require.Nil(t, err)

	assert.Equal(t, 2, state.Attempts)
	assert.Equal(t, "Berlin?", state.Hint)

	require.Nil(t, scope.Reset(ctx))

	name, _, err = scope.GetState(ctx)
	require.Nil(t, err)
	assert.Equal(t, "EmptyState", name)
}

func TestData_StateMismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := newScope(t)

	require.Nil(t, scope.SetState(ctx, AwaitingName{}))

	_, snapshot, err := scope.GetState(ctx)
	require.Nil(t, err)

	_, err = yafsm.Data[AwaitingCity](snapshot)
	require.NotNil(t, err)

	assert.ErrorIs(t, err, yafsm.ErrStateMismatch)
	assert.Equal(t, http.StatusConflict, err.Code())
}
