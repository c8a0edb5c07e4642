package olstudio

import (
	"context"

	"log/slog"

	"github.com/olstudio/olstudio/internal/logging"
	"github.com/olstudio/olstudio/pkg/adapters/memory"
	"github.com/olstudio/olstudio/pkg/cleaning"
	"github.com/olstudio/olstudio/pkg/describe"
	"github.com/olstudio/olstudio/pkg/domain"
	"github.com/olstudio/olstudio/pkg/persistence/middleware"
	"github.com/olstudio/olstudio/pkg/plot"
	"github.com/olstudio/olstudio/pkg/ports"
	"github.com/olstudio/olstudio/pkg/regress"
	"github.com/olstudio/olstudio/pkg/session"
	"github.com/olstudio/olstudio/pkg/validate"
)

// previewRows is how many leading rows Upload and Clean return for display.
const previewRows = 5

// Studio is the high-level entry point of the pipeline. It wires the
// session manager to the stateless engines and mediates every operation by
// session token.
type Studio struct {
	sessions *session.Manager
	logger   *slog.Logger

	store                ports.SessionStore
	categoricalThreshold float64
	conditionLimit       float64
	sessionLimit         int
}

// Option configures the Studio.
type Option func(*Studio)

// WithStore overrides the session store (in-memory by default).
func WithStore(store ports.SessionStore) Option {
	return func(s *Studio) {
		s.store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Studio) {
		s.logger = logger
	}
}

// WithCategoricalThreshold overrides the validator's categorical
// cardinality ratio.
func WithCategoricalThreshold(ratio float64) Option {
	return func(s *Studio) {
		s.categoricalThreshold = ratio
	}
}

// WithConditionNumberLimit overrides the multicollinearity warning
// threshold of the regression engine.
func WithConditionNumberLimit(limit float64) Option {
	return func(s *Studio) {
		s.conditionLimit = limit
	}
}

// WithSessionLimit caps the number of live sessions. Zero means unlimited.
// Upload fails with middleware.ErrSessionLimit once the cap is reached.
func WithSessionLimit(n int) Option {
	return func(s *Studio) {
		s.sessionLimit = n
	}
}

// New creates a Studio with an in-memory session store.
func New(opts ...Option) *Studio {
	s := &Studio{
		logger:               logging.NewNop(),
		categoricalThreshold: validate.DefaultCategoricalThreshold,
		conditionLimit:       regress.DefaultConditionNumberLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}
	mws := []middleware.Middleware{middleware.NewAuditMiddleware(s.logger)}
	if s.sessionLimit > 0 {
		mws = append(mws, middleware.NewQuotaMiddleware(s.sessionLimit))
	}
	s.store = middleware.Chain(s.store, mws...)
	s.sessions = session.NewManager(s.store, session.WithLogger(s.logger))
	return s
}

// UploadResult is what the caller gets back for a fresh session: the token,
// the raw dataset's shape, its validation report, and a short preview.
type UploadResult struct {
	SessionID string                   `json:"session_token"`
	Columns   []string                 `json:"columns"`
	RowCount  int                      `json:"row_count"`
	Report    *domain.ValidationReport `json:"validation_results"`
	Preview   *domain.Dataset          `json:"preview"`
}

// Upload creates a session owning the dataset and validates it immediately.
func (s *Studio) Upload(ctx context.Context, ds *domain.Dataset) (*UploadResult, error) {
	id, err := s.sessions.Create(ctx, ds)
	if err != nil {
		return nil, err
	}
	s.logger.Info("dataset uploaded", "session_id", id, "rows", ds.NumRows(), "columns", ds.NumColumns())
	return &UploadResult{
		SessionID: id,
		Columns:   ds.Columns(),
		RowCount:  ds.NumRows(),
		Report:    validate.Scan(ds, validate.WithCategoricalThreshold(s.categoricalThreshold)),
		Preview:   ds.Head(previewRows),
	}, nil
}

// Validate recomputes the validation report for the session's raw dataset.
func (s *Studio) Validate(ctx context.Context, sessionID string) (*domain.ValidationReport, error) {
	raw, err := s.sessions.RawDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return validate.Scan(raw, validate.WithCategoricalThreshold(s.categoricalThreshold)), nil
}

// Clean applies the cleaning decisions to the raw dataset and installs the
// result as the session's working dataset, replacing any prior one. On
// error no session state changes.
func (s *Studio) Clean(ctx context.Context, sessionID string, decisions domain.Decisions) (*domain.Dataset, error) {
	raw, err := s.sessions.RawDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cleaned, err := cleaning.Apply(raw, decisions)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SetWorkingDataset(ctx, sessionID, cleaned); err != nil {
		return nil, err
	}
	s.logger.Info("dataset cleaned", "session_id", sessionID,
		"rows", cleaned.NumRows(), "columns", cleaned.NumColumns(), "decisions", len(decisions))
	return cleaned, nil
}

// Describe computes descriptive statistics for the requested variables of
// the working dataset.
func (s *Studio) Describe(ctx context.Context, sessionID string, variables []string) (map[string]domain.DescriptiveStats, error) {
	working, err := s.sessions.WorkingDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return describe.Compute(working, variables)
}

// PlotData generates distribution-plot data for the requested variables of
// the working dataset.
func (s *Studio) PlotData(ctx context.Context, sessionID string, variables []string) ([]domain.Distribution, error) {
	working, err := s.sessions.WorkingDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return plot.Build(working, variables)
}

// Fit runs an OLS regression against the working dataset and appends the
// model to the session's list. A failed fit leaves the session untouched.
func (s *Studio) Fit(ctx context.Context, sessionID, dependent string, independents []string, name string) (*domain.RegressionModel, error) {
	working, err := s.sessions.WorkingDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	model, err := regress.Fit(working, dependent, independents, name,
		regress.WithConditionNumberLimit(s.conditionLimit))
	if err != nil {
		return nil, err
	}
	if err := s.sessions.AppendModel(ctx, sessionID, model); err != nil {
		return nil, err
	}
	s.logger.Info("model fitted", "session_id", sessionID, "model", name,
		"r_squared", model.RSquared, "warnings", len(model.Warnings))
	return model, nil
}

// Models returns the session's fitted models in fit order.
func (s *Studio) Models(ctx context.Context, sessionID string) ([]*domain.RegressionModel, error) {
	return s.sessions.Models(ctx, sessionID)
}

// EndSession discards all state for the session. Idempotent.
func (s *Studio) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.End(ctx, sessionID)
}

// Sessions exposes the session manager for callers that need lifecycle
// introspection (e.g. listing live sessions).
func (s *Studio) Sessions() *session.Manager {
	return s.sessions
}
