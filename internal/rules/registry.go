package rules

import "github.com/zjrosen/missive/internal/palette"

// Registry owns the rule list for every pattern-bearing region. The
// containers are created once, empty, and survive clearing.
type Registry struct {
	sets map[Region]*RuleSet
}

// NewRegistry creates a registry with an empty RuleSet per
// pattern-bearing region.
func NewRegistry() *Registry {
	sets := make(map[Region]*RuleSet, len(patternRegions))
	for _, region := range patternRegions {
		sets[region] = &RuleSet{}
	}
	return &Registry{sets: sets}
}

// ListFor returns the region's rule list.
func (r *Registry) ListFor(region Region) (*RuleSet, error) {
	rs, ok := r.sets[region]
	if !ok {
		return nil, &UnknownRegionError{Region: region}
	}
	return rs, nil
}

// ClearAll empties every rule list, releasing held styles. The lists
// remain valid for further inserts.
func (r *Registry) ClearAll(alloc *palette.Allocator) {
	for _, rs := range r.sets {
		rs.Clear(alloc)
	}
}
