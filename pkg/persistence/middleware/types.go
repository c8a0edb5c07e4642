// Package middleware provides composable wrappers around a session store,
// adding behavior (audit logging, session quotas) without touching the
// store implementations themselves.
package middleware

import "github.com/olstudio/olstudio/pkg/ports"

// Middleware allows wrapping a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies middlewares to a store, first in the slice outermost.
func Chain(store ports.SessionStore, mws ...Middleware) ports.SessionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
