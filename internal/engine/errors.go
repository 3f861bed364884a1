package engine

import "fmt"

// ConfigError is a spec §7 kind-3 error: an entity refers to an id
// not in its store, or a config table is missing a key. A hard
// programmer/data error — the engine refuses to advance the turn.
type ConfigError struct {
	Cause error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config/data error: %v", e.Cause) }
func (e *ConfigError) Unwrap() error { return e.Cause }

// InvariantViolation is a spec §7 kind-4 error: an index mismatch, a
// ship in two fleets, a colony with negative souls. The engine
// refuses to advance and the caller must discard any partial state
// (spec: "release builds return the turn as failed and leave state
// untouched").
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Detail }
