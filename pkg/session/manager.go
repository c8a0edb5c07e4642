package session

import (
	"context"
	"fmt"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"github.com/olstudio/olstudio/internal/logging"
	"github.com/olstudio/olstudio/pkg/domain"
	"github.com/olstudio/olstudio/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session Manager backed by the given store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	return fn(ctx)
}

// Create registers a new session owning the raw dataset and returns its
// opaque token. The raw dataset is set exactly once and never mutated.
func (m *Manager) Create(ctx context.Context, raw *domain.Dataset) (string, error) {
	if raw == nil {
		return "", &domain.ValidationError{Reason: "nil dataset"}
	}
	id := fmt.Sprintf("session_%x", [16]byte(uuid.New()))

	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Save(ctx, domain.NewSession(id, raw))
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	m.logger.Debug("session created", "session_id", id, "rows", raw.NumRows(), "columns", raw.NumColumns())
	return id, nil
}

// Get retrieves a session snapshot.
func (m *Manager) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, sessionID)
		return err
	})
	return session, err
}

// RawDataset returns the session's raw dataset.
func (m *Manager) RawDataset(ctx context.Context, sessionID string) (*domain.Dataset, error) {
	session, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Raw, nil
}

// WorkingDataset returns the cleaned dataset for the session. It fails with
// domain.ErrSessionNotFound when the session is absent, ended, or has not
// been cleaned yet.
func (m *Manager) WorkingDataset(ctx context.Context, sessionID string) (*domain.Dataset, error) {
	session, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Working == nil {
		return nil, domain.ErrSessionNotFound
	}
	return session.Working, nil
}

// SetWorkingDataset replaces the session's working dataset. Re-cleaning
// replaces, never appends.
func (m *Manager) SetWorkingDataset(ctx context.Context, sessionID string, ds *domain.Dataset) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		session, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		session.Working = ds
		return m.store.Save(ctx, session)
	})
}

// AppendModel adds a fitted model to the session's list. Model names are
// unique within a session; a duplicate is rejected before any mutation.
func (m *Manager) AppendModel(ctx context.Context, sessionID string, model *domain.RegressionModel) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		session, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		for _, prior := range session.Models {
			if prior.Name == model.Name {
				return &domain.ValidationError{Reason: fmt.Sprintf("model name %q already used in this session", model.Name)}
			}
		}
		session.Models = append(session.Models, model)
		return m.store.Save(ctx, session)
	})
}

// Models returns the accumulated fitted models in fit order. The returned
// models are copies; past results stay immutable.
func (m *Manager) Models(ctx context.Context, sessionID string) ([]*domain.RegressionModel, error) {
	session, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Models, nil
}

// End discards all state for the session. Ending an unknown or already
// ended session is a no-op, so callers can always clean up safely.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
	if err != nil {
		return err
	}
	m.logger.Debug("session ended", "session_id", sessionID)
	return nil
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}
