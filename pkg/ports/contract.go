package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olstudio/olstudio/pkg/domain"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newDataset := func(t *testing.T) *domain.Dataset {
		t.Helper()
		ds, err := domain.FromRecords([]string{"x", "y"}, []map[string]domain.Value{
			{"x": domain.NewNumber(1), "y": domain.NewNumber(2)},
			{"x": domain.NewNumber(3), "y": domain.Missing()},
		})
		require.NoError(t, err)
		return ds
	}

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID, newDataset(t))

		err := store.Save(ctx, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, 2, loaded.Raw.NumRows())
		assert.Nil(t, loaded.Working)
	})

	t.Run("Load Isolation", func(t *testing.T) {
		session := domain.NewSession(sessionID, newDataset(t))
		require.NoError(t, store.Save(ctx, session))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)

		// Mutating the loaded copy must not leak into stored state.
		loaded.Working = loaded.Raw
		require.NoError(t, loaded.Raw.AppendRow(map[string]domain.Value{"x": domain.NewNumber(9)}))

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Nil(t, again.Working)
		assert.Equal(t, 2, again.Raw.NumRows())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(sessionID, newDataset(t))))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		// Deleting again must stay a no-op.
		assert.NoError(t, store.Delete(ctx, sessionID))
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, domain.NewSession(id1, newDataset(t)))
		_ = store.Save(ctx, domain.NewSession(id2, newDataset(t)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
