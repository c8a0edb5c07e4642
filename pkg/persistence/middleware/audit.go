package middleware

import (
	"context"

	"log/slog"

	"github.com/olstudio/olstudio/pkg/domain"
	"github.com/olstudio/olstudio/pkg/ports"
)

type auditMiddleware struct {
	next   ports.SessionStore
	logger *slog.Logger
}

// NewAuditMiddleware creates a middleware that logs every store operation
// at debug level, including the session's dataset and model footprint.
func NewAuditMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &auditMiddleware{next: next, logger: logger}
	}
}

func (m *auditMiddleware) Save(ctx context.Context, session *domain.Session) error {
	attrs := []any{"session_id", session.ID, "models", len(session.Models)}
	if session.Raw != nil {
		attrs = append(attrs, "raw_rows", session.Raw.NumRows())
	}
	if session.Working != nil {
		attrs = append(attrs, "working_rows", session.Working.NumRows())
	}
	m.logger.Debug("store save", attrs...)
	return m.next.Save(ctx, session)
}

func (m *auditMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := m.next.Load(ctx, sessionID)
	if err != nil {
		m.logger.Debug("store load failed", "session_id", sessionID, "error", err)
		return nil, err
	}
	return session, nil
}

func (m *auditMiddleware) Delete(ctx context.Context, sessionID string) error {
	m.logger.Debug("store delete", "session_id", sessionID)
	return m.next.Delete(ctx, sessionID)
}

func (m *auditMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
