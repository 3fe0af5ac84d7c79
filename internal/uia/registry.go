// Package uia exposes the accessibility view of a window.
package uia

import "sync"

// registry hands out ids for values passed through a C callback's lParam.
// Ids start at 1 so zero never resolves.
type registry struct {
	mu    sync.Mutex
	next  uintptr
	items map[uintptr]any
}

func newRegistry() *registry {
	return &registry{items: map[uintptr]any{}}
}

func (r *registry) add(v any) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.items[r.next] = v
	return r.next
}

func (r *registry) get(id uintptr) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

func (r *registry) remove(id uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
