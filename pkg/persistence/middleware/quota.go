package middleware

import (
	"context"
	"errors"

	"github.com/olstudio/olstudio/pkg/domain"
	"github.com/olstudio/olstudio/pkg/ports"
)

// ErrSessionLimit is returned when creating a session would exceed the
// configured quota. Existing sessions keep working; only new ones are
// rejected until some end.
var ErrSessionLimit = errors.New("session limit reached")

type quotaMiddleware struct {
	next ports.SessionStore
	max  int
}

// NewQuotaMiddleware creates a middleware that caps the number of live
// sessions. Saves of already-stored sessions always pass; only net-new
// sessions count against the limit.
func NewQuotaMiddleware(max int) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &quotaMiddleware{next: next, max: max}
	}
}

func (m *quotaMiddleware) Save(ctx context.Context, session *domain.Session) error {
	if _, err := m.next.Load(ctx, session.ID); errors.Is(err, domain.ErrSessionNotFound) {
		ids, err := m.next.List(ctx)
		if err != nil {
			return err
		}
		if len(ids) >= m.max {
			return ErrSessionLimit
		}
	}
	return m.next.Save(ctx, session)
}

func (m *quotaMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *quotaMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *quotaMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
