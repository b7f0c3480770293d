package iteratable

import "testing"

func TestSetBasics(t *testing.T) {
	s := NewSet(0)
	s.Add("a")
	s.Add("b")
	s.Add("a")
	if s.Size() != 2 {
		t.Errorf("expected size 2, got %d", s.Size())
	}
	if !s.Contains("b") || s.Contains("c") {
		t.Errorf("membership broken")
	}
	vals := s.Values()
	if vals[0] != "a" || vals[1] != "b" {
		t.Errorf("insertion order not preserved: %v", vals)
	}
}

func TestSetOperations(t *testing.T) {
	s := NewSet(0)
	s.Add(1)
	s.Add(2)
	s.Add(3)
	other := NewSet(0)
	other.Add(3)
	other.Add(4)
	c := s.Copy()
	c.Difference(other)
	if c.Size() != 2 || c.Contains(3) {
		t.Errorf("difference broken: %v", c)
	}
	if s.Size() != 3 {
		t.Errorf("Copy is not independent: %v", s)
	}
	s.Union(other)
	if s.Size() != 4 {
		t.Errorf("union broken: %v", s)
	}
	s.Subset(func(v interface{}) bool { return v.(int)%2 == 0 })
	if s.Size() != 2 || s.Contains(1) || s.Contains(3) {
		t.Errorf("subset broken: %v", s)
	}
}

func TestSetEquals(t *testing.T) {
	a := NewSet(0)
	b := NewSet(0)
	a.Add("x")
	a.Add("y")
	b.Add("y")
	b.Add("x")
	if !a.Equals(b) {
		t.Errorf("sets with equal elements in different order must be equal")
	}
	b.Add("z")
	if a.Equals(b) {
		t.Errorf("sets of different size must not be equal")
	}
}

// Iteration has to visit elements appended while iterating; closure
// computations use the set as a work queue.
func TestSetWorkQueue(t *testing.T) {
	s := NewSet(0)
	s.Add(0)
	visited := 0
	s.IterateOnce()
	for s.Next() {
		n := s.Item().(int)
		visited++
		if n < 5 {
			s.Add(n + 1)
		}
	}
	if visited != 6 {
		t.Errorf("expected 6 visits, got %d", visited)
	}
	if s.Size() != 6 {
		t.Errorf("expected 6 elements, got %d", s.Size())
	}
}

func TestKeyedSet(t *testing.T) {
	type pair struct{ a, b int }
	s := NewKeyedSet(0, func(v interface{}) string {
		if v.(pair).a%2 == 0 {
			return "even"
		}
		return "odd"
	})
	s.Add(pair{2, 1})
	s.Add(pair{4, 9}) // same key as {2,1}
	s.Add(pair{3, 3})
	if s.Size() != 2 {
		t.Errorf("keyed identity not honored: %v", s)
	}
}
