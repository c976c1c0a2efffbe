// Package flags provides feature flag support for controlled feature rollout.
// Flags are read-only after initialization and provide safe defaults for unknown flags.
package flags

import (
	"maps"

	"github.com/zjrosen/missive/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagResolveCache controls whether resolved index styles are cached
	// between redraws. When disabled every redraw resolves against the
	// rule engine directly.
	FlagResolveCache = "resolve-cache"

	// FlagMouseZones controls whether the playground registers mouse
	// targets for the region sidebar.
	FlagMouseZones = "mouse-zones"
)

// Registry holds feature flag state loaded from configuration.
// Flags are read-only after initialization.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map.
// If flags is nil, an empty registry is created (all flags at their defaults).
func New(flags map[string]bool) *Registry {
	if flags == nil {
		flags = make(map[string]bool)
	}
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Returns false for unknown flags (safe default).
// Returns false when called on nil registry (nil-safe).
func (r *Registry) Enabled(name string) bool {
	return r.EnabledOr(name, false)
}

// EnabledOr returns the named flag's value, or def when the flag was never
// configured. Nil-safe like Enabled.
func (r *Registry) EnabledOr(name string, def bool) bool {
	if r == nil || r.flags == nil {
		return def
	}
	value, exists := r.flags[name]
	if !exists {
		return def
	}
	return value
}

// All returns a copy of all flags (for debugging/logging).
// Returns an empty map if the registry is nil.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}
