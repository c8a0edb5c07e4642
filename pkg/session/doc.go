// Package session owns the lifecycle of analysis sessions: creation on
// upload, working-dataset replacement after cleaning, model accumulation
// per fit, and idempotent teardown. Access to a single session is
// serialized through a reference-counted lock map, so independent sessions
// run fully in parallel while same-session calls never interleave.
package session
