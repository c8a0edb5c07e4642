package domain

import "time"

// Session binds one raw dataset, at most one working dataset and the
// accumulated fitted models to an opaque token. Sessions are exclusively
// owned by the session manager; no other component retains a reference
// across calls.
type Session struct {
	ID        string
	CreatedAt time.Time
	// Raw is set once on upload and never mutated.
	Raw *Dataset
	// Working is produced by cleaning; re-cleaning replaces it.
	Working *Dataset
	// Models accumulate per fit, in fit order.
	Models []*RegressionModel
}

// NewSession creates a session owning the given raw dataset.
func NewSession(id string, raw *Dataset) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Raw:       raw,
	}
}

// Clone returns a deep copy so stores can isolate their state from callers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := &Session{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Raw:       s.Raw.Clone(),
		Working:   s.Working.Clone(),
	}
	for _, m := range s.Models {
		cp.Models = append(cp.Models, m.Clone())
	}
	return cp
}
