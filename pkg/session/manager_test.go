package session_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olstudio/olstudio/pkg/adapters/memory"
	"github.com/olstudio/olstudio/pkg/domain"
	"github.com/olstudio/olstudio/pkg/session"
)

func newDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	ds, err := domain.FromRecords([]string{"x", "y"}, []map[string]domain.Value{
		{"x": domain.NewNumber(1), "y": domain.NewNumber(2)},
		{"x": domain.NewNumber(3), "y": domain.NewNumber(4)},
	})
	require.NoError(t, err)
	return ds
}

func TestManager_CreateAndGet(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	id, err := m.Create(ctx, newDataset(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "session_"), "token %q", id)

	got, err := m.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 2, got.Raw.NumRows())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestManager_CreateRejectsNilDataset(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	_, err := m.Create(context.Background(), nil)
	assert.Error(t, err)
}

func TestManager_TokensAreUnique(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id, err := m.Create(ctx, newDataset(t))
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate token %q", id)
		seen[id] = struct{}{}
	}
}

func TestManager_WorkingDataset(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	id, err := m.Create(ctx, newDataset(t))
	require.NoError(t, err)

	// Before cleaning there is no working dataset.
	_, err = m.WorkingDataset(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, m.SetWorkingDataset(ctx, id, newDataset(t)))
	working, err := m.WorkingDataset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, working.NumRows())

	// Re-cleaning replaces.
	replacement, err := domain.FromRecords([]string{"x", "y"}, []map[string]domain.Value{
		{"x": domain.NewNumber(9), "y": domain.NewNumber(9)},
	})
	require.NoError(t, err)
	require.NoError(t, m.SetWorkingDataset(ctx, id, replacement))
	working, err = m.WorkingDataset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, working.NumRows())
}

func TestManager_AppendModel(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	id, err := m.Create(ctx, newDataset(t))
	require.NoError(t, err)

	require.NoError(t, m.AppendModel(ctx, id, &domain.RegressionModel{Name: "base"}))
	require.NoError(t, m.AppendModel(ctx, id, &domain.RegressionModel{Name: "extended"}))

	err = m.AppendModel(ctx, id, &domain.RegressionModel{Name: "base"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	models, err := m.Models(ctx, id)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "base", models[0].Name)
	assert.Equal(t, "extended", models[1].Name)
}

func TestManager_EndIsIdempotent(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	id, err := m.Create(ctx, newDataset(t))
	require.NoError(t, err)

	require.NoError(t, m.End(ctx, id))

	_, err = m.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = m.RawDataset(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Ending twice stays a no-op.
	assert.NoError(t, m.End(ctx, id))
	// So does ending a session that never existed.
	assert.NoError(t, m.End(ctx, "session_never_was"))
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	id1, err := m.Create(ctx, newDataset(t))
	require.NoError(t, err)
	id2, err := m.Create(ctx, newDataset(t))
	require.NoError(t, err)

	require.NoError(t, m.AppendModel(ctx, id1, &domain.RegressionModel{Name: "only-in-1"}))

	models, err := m.Models(ctx, id2)
	require.NoError(t, err)
	assert.Empty(t, models)

	require.NoError(t, m.End(ctx, id1))
	_, err = m.Get(ctx, id2)
	assert.NoError(t, err, "ending one session must not touch another")
}

func TestManager_ConcurrentAppends(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	id, err := m.Create(ctx, newDataset(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			assert.NoError(t, m.AppendModel(ctx, id, &domain.RegressionModel{Name: name}))
		}(name)
	}
	wg.Wait()

	models, err := m.Models(ctx, id)
	require.NoError(t, err)
	assert.Len(t, models, len(names), "read-modify-write appends must not lose updates")
}

func TestManager_List(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	id, err := m.Create(ctx, newDataset(t))
	require.NoError(t, err)

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, id)
}
