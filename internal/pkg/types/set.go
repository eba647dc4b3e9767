package types

import (
	"cmp"
	"maps"
	"slices"
)

// Set is a hash set backed by map[T]struct{}.
type Set[T comparable] map[T]struct{}

// Add inserts values into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// ToSortedSlice returns the set's elements in ascending order.
func ToSortedSlice[T cmp.Ordered](s Set[T]) []T {
	return slices.Sorted(maps.Keys(s))
}
