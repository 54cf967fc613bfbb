package registry

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/dirx/pkg/errors"
)

// Registry stores items of one kind by id, in insertion order.
type Registry[T any] struct {
	mu    sync.RWMutex
	kind  string
	key   func(T) string
	clone func(T) T
	order []string
	items map[string]T
}

// New creates a Registry. key extracts an item's id; clone copies an item so
// callers never share slices with the stored value.
func New[T any](kind string, key func(T) string, clone func(T) T) *Registry[T] {
	return &Registry[T]{
		kind:  kind,
		key:   key,
		clone: clone,
		items: make(map[string]T),
	}
}

// Add inserts a new item at the end.
func (r *Registry[T]) Add(item T) error {
	id := r.key(item)
	if id == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s id cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s '%s' already exists", r.kind, id)
	}

	r.items[id] = r.clone(item)
	r.order = append(r.order, id)
	return nil
}

// Put replaces an existing item, keeping its position.
func (r *Registry[T]) Put(item T) error {
	id := r.key(item)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return r.notFound(id)
	}
	r.items[id] = r.clone(item)
	return nil
}

// Get returns a copy of the item.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		var zero T
		return zero, false
	}
	return r.clone(item), true
}

// Update applies fn to a copy of the item and stores the result.
func (r *Registry[T]) Update(id string, fn func(*T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return r.notFound(id)
	}
	item = r.clone(item)
	if err := fn(&item); err != nil {
		return err
	}
	if r.key(item) != id {
		return errors.Newf(errors.ErrInvalidInput, "%s id cannot change", r.kind)
	}
	r.items[id] = item
	return nil
}

// UpdateAll applies fn to every item in order.
func (r *Registry[T]) UpdateAll(fn func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		item := r.clone(r.items[id])
		fn(&item)
		r.items[id] = item
	}
}

// Remove deletes an item.
func (r *Registry[T]) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return r.notFound(id)
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns copies of all items in insertion order.
func (r *Registry[T]) List() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.clone(r.items[id]))
	}
	return out
}

// Has checks if an item is registered
func (r *Registry[T]) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[id]
	return exists
}

// Count returns the number of registered items
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Clear removes all items
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]T)
	r.order = nil
}

func (r *Registry[T]) notFound(id string) error {
	return errors.Newf(errors.ErrNotFound, "%s '%s' not found", r.kind, id)
}

// MustAdd adds an item and panics on failure. Used for built-in seed data,
// where a failure is a programming error.
func MustAdd[T any](r *Registry[T], item T) {
	if err := r.Add(item); err != nil {
		panic(fmt.Sprintf("failed to add %s: %v", r.kind, err))
	}
}
