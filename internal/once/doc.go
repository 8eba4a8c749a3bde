// Package once provides a process-wide, set-at-most-once container. It backs
// the global executor accessor in the root package and lives under `internal`
// because callers should rely on the facade rather than on the cell itself.
package once
