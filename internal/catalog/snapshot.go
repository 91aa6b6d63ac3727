package catalog

import (
	"maps"
	"slices"
)

// Snapshot is the set of paths in a catalog. Order is irrelevant.
type Snapshot map[string]struct{}

// NewSnapshot builds a snapshot from items.
func NewSnapshot(items []Item) Snapshot {
	snap := make(Snapshot, len(items))
	for _, item := range items {
		snap[item.Path] = struct{}{}
	}
	return snap
}

// Take lists folder and returns its snapshot.
func Take(folder string) (Snapshot, error) {
	items, err := List(folder, OrderName)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(items), nil
}

// Equal reports whether both snapshots contain the same paths.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for path := range s {
		if _, ok := other[path]; !ok {
			return false
		}
	}
	return true
}

// Paths returns the snapshot's paths in sorted order.
func (s Snapshot) Paths() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}
