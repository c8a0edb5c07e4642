package ports

import (
	"context"

	"github.com/olstudio/olstudio/pkg/domain"
)

// SessionStore defines the interface for keeping session state between
// pipeline calls. Implementations must isolate stored state from callers;
// a loaded session must not alias memory the store keeps.
type SessionStore interface {
	// Save persists the session under its ID, replacing any prior state.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves the session for the given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting an unknown ID is a no-op,
	// so callers can always clean up safely.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}
