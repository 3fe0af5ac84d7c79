package uia

import "testing"

// TestRegistry_IdsAreUniqueAndReleased verifies lookups across add and remove.
func TestRegistry_IdsAreUniqueAndReleased(t *testing.T) {
	r := newRegistry()
	a := r.add("a")
	b := r.add("b")
	if a == 0 || b == 0 || a == b {
		t.Fatalf("expected distinct non-zero ids, got %d and %d", a, b)
	}
	if r.get(a) != "a" || r.get(b) != "b" {
		t.Fatalf("unexpected lookups: %v %v", r.get(a), r.get(b))
	}
	r.remove(a)
	if r.get(a) != nil {
		t.Fatalf("expected removed id to resolve to nil")
	}
	if r.get(0) != nil {
		t.Fatalf("expected zero id to resolve to nil")
	}
}

// TestRegistry_RepeatedUseDoesNotGrow verifies many enumerations leave no entries behind.
func TestRegistry_RepeatedUseDoesNotGrow(t *testing.T) {
	r := newRegistry()
	for i := 0; i < 5000; i++ {
		id := r.add(i)
		r.remove(id)
	}
	if n := r.len(); n != 0 {
		t.Fatalf("expected empty registry, got %d entries", n)
	}
}
