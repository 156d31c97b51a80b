// Package cache keeps local copies of server collections.
//
// A Collection mirrors the last known server state per entity id: successful
// mutations replace or append by id, deletions remove by id. Entries are never
// reordered and partial updates are never merged.
package cache

import "sync"

type Collection[K comparable, T any] struct {
	mu    sync.RWMutex
	idOf  func(T) K
	items []T
	index map[K]int
}

func NewCollection[K comparable, T any](idOf func(T) K) *Collection[K, T] {
	return &Collection[K, T]{
		idOf:  idOf,
		index: make(map[K]int),
	}
}

// Replace discards the cache and stores all in server order.
func (c *Collection[K, T]) Replace(all []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]T, 0, len(all))
	c.index = make(map[K]int, len(all))
	for _, item := range all {
		c.put(item)
	}
}

// Upsert replaces the entry with the same id in place, or appends item.
func (c *Collection[K, T]) Upsert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(item)
}

func (c *Collection[K, T]) put(item T) {
	id := c.idOf(item)
	if i, ok := c.index[id]; ok {
		c.items[i] = item
		return
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, item)
}

// Remove deletes the entry with id. Removing a missing id is a no-op.
func (c *Collection[K, T]) Remove(id K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.idOf(c.items[j])] = j
	}
}

func (c *Collection[K, T]) Get(id K) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Update applies fn to the entry with id under the write lock. fn must not
// change the id. It reports whether the entry existed.
func (c *Collection[K, T]) Update(id K, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return false
	}
	fn(&c.items[i])
	return true
}

// List returns a copy of the entries in cache order.
func (c *Collection[K, T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[K, T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
