package iteratable

import "fmt"

// KeyFn derives the identity of a set element. Elements with equal keys are
// considered the same element.
type KeyFn func(interface{}) string

func defaultKey(v interface{}) string {
	return fmt.Sprintf("%v", v)
}

// Set is an insertion-ordered set. The zero value is not usable; create sets
// with NewSet or NewKeyedSet.
type Set struct {
	key    KeyFn
	index  map[string]int // element key ➞ position in items
	items  []interface{}
	cursor int // iteration position, 0 means: before first element
}

// NewSet creates a set with the default (stringify) element identity.
// The size parameter is a capacity hint; 0 is fine.
func NewSet(size int) *Set {
	return NewKeyedSet(size, nil)
}

// NewKeyedSet creates a set which identifies elements by a client-provided
// key function.
func NewKeyedSet(size int, key KeyFn) *Set {
	if key == nil {
		key = defaultKey
	}
	if size <= 0 {
		size = 4
	}
	return &Set{
		key:   key,
		index: make(map[string]int, size),
		items: make([]interface{}, 0, size),
	}
}

// Add inserts an element, if not already present. Elements added during an
// iteration will be visited by that iteration.
func (s *Set) Add(v interface{}) {
	k := s.key(v)
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, v)
}

// Contains tells if an element is present.
func (s *Set) Contains(v interface{}) bool {
	_, ok := s.index[s.key(v)]
	return ok
}

// Size returns the number of elements.
func (s *Set) Size() int {
	return len(s.items)
}

// Empty tells if the set has no elements.
func (s *Set) Empty() bool {
	return len(s.items) == 0
}

// Values returns the elements in insertion order. The returned slice is the
// set's backing store; clients must not modify it.
func (s *Set) Values() []interface{} {
	return s.items
}

// Each calls f for every element, in insertion order.
func (s *Set) Each(f func(interface{})) {
	for _, v := range s.items {
		f(v)
	}
}

// Copy returns an independent copy of the set.
func (s *Set) Copy() *Set {
	c := NewKeyedSet(len(s.items), s.key)
	for _, v := range s.items {
		c.Add(v)
	}
	return c
}

// Union adds all elements of other to the receiver and returns the receiver.
func (s *Set) Union(other *Set) *Set {
	if other == nil {
		return s
	}
	for _, v := range other.items {
		s.Add(v)
	}
	return s
}

// Difference removes all elements present in other and returns the receiver.
func (s *Set) Difference(other *Set) *Set {
	if other == nil {
		return s
	}
	return s.Subset(func(v interface{}) bool {
		return !other.Contains(v)
	})
}

// Subset removes all elements not matching the predicate and returns the
// receiver.
func (s *Set) Subset(pred func(interface{}) bool) *Set {
	kept := s.items[:0]
	for _, v := range s.items {
		if pred(v) {
			kept = append(kept, v)
		}
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	s.index = make(map[string]int, len(kept))
	for i, v := range kept {
		s.index[s.key(v)] = i
	}
	return s
}

// Equals compares two sets for equal element keys, regardless of order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.items) != len(other.items) {
		return false
	}
	for k := range s.index {
		if _, ok := other.index[k]; !ok {
			return false
		}
	}
	return true
}

// IterateOnce resets the set's iteration to the first element. Iterations
// are not nestable: a set carries a single cursor.
func (s *Set) IterateOnce() {
	s.cursor = 0
}

// Next advances the iteration, returning false when no elements are left.
// Elements appended during the iteration are visited, which makes a loop
// over a growing set behave as a work queue.
func (s *Set) Next() bool {
	if s.cursor >= len(s.items) {
		return false
	}
	s.cursor++
	return true
}

// Item returns the element at the current iteration position.
func (s *Set) Item() interface{} {
	return s.items[s.cursor-1]
}

func (s *Set) String() string {
	return fmt.Sprintf("set[%d]%v", len(s.items), s.items)
}
