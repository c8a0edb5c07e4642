// Package ports defines the interfaces between the pipeline core and its
// adapters. The core depends on these contracts only, never on concrete
// storage, keeping the session state swappable and testable.
package ports
