package iteratable

import (
	"github.com/emirpasic/gods/utils"
)

// Set is an insertion-ordered set of comparable items.
type Set struct {
	items  []interface{}
	member map[interface{}]struct{}
	cursor int // position of the next item to visit
}

// NewSet creates an empty set with an initial capacity.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items:  make([]interface{}, 0, capacity),
		member: make(map[interface{}]struct{}, capacity),
	}
}

// Size returns the number of items in the set.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty is true for a set without items.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Contains checks for membership of an item.
func (s *Set) Contains(item interface{}) bool {
	if s == nil {
		return false
	}
	_, ok := s.member[item]
	return ok
}

// Add appends items not already contained in s. It returns s.
func (s *Set) Add(items ...interface{}) *Set {
	for _, item := range items {
		if _, ok := s.member[item]; ok {
			continue
		}
		s.member[item] = struct{}{}
		s.items = append(s.items, item)
	}
	return s
}

// Values returns a copy of the items of s, in insertion order.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	vals := make([]interface{}, len(s.items))
	copy(vals, s.items)
	return vals
}

// Difference removes all items of other from s. It returns s.
func (s *Set) Difference(other *Set) *Set {
	if other == nil || other.Empty() {
		return s
	}
	return s.Subset(func(item interface{}) bool {
		return !other.Contains(item)
	})
}

// Subset keeps only items for which predicate is true. It returns s.
func (s *Set) Subset(predicate func(interface{}) bool) *Set {
	kept := s.items[:0]
	cursor := s.cursor
	for i, item := range s.items {
		if predicate(item) {
			kept = append(kept, item)
		} else {
			delete(s.member, item)
			if i < s.cursor {
				cursor--
			}
		}
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	s.cursor = cursor
	return s
}

// Sort re-orders the items of s with a comparator. It returns s.
// Sorting resets any iteration in progress.
func (s *Set) Sort(comparator utils.Comparator) *Set {
	utils.Sort(s.items, comparator)
	s.cursor = 0
	return s
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts an iteration over s. Every item will be visited exactly
// once, including items added while iterating.
func (s *Set) IterateOnce() {
	s.cursor = 0
}

// Next advances the iteration. It returns false if no unvisited item is left.
func (s *Set) Next() bool {
	if s.cursor >= len(s.items) {
		return false
	}
	s.cursor++
	return true
}

// Item returns the current item of an iteration.
func (s *Set) Item() interface{} {
	if s.cursor == 0 || s.cursor > len(s.items) {
		return nil
	}
	return s.items[s.cursor-1]
}
