package cache

import "sync"

// Table is a keyed store of the latest known value per resource identity.
//
// It is written by a single sequential consumer of the watch stream and read
// concurrently by lookups. Values are replaced wholesale under the write
// lock, so a reader sees either the pre-update or the post-update value for
// a key, never a mix. Snapshot iteration order is the insertion order of
// each key's first upsert, which keeps cross-resource lookup precedence
// stable across updates to existing keys.
type Table[K comparable, V any] struct {
	mu    sync.RWMutex
	order []K
	items map[K]V
}

// NewTable creates an empty Table.
func NewTable[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{items: make(map[K]V)}
}

// Upsert stores value under key, replacing any previous value.
func (t *Table[K, V]) Upsert(key K, value V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.items[key]; !ok {
		t.order = append(t.order, key)
	}

	t.items[key] = value
}

// Delete removes key from the table. Deleting an absent key is a no-op.
func (t *Table[K, V]) Delete(key K) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.items[key]; !ok {
		return
	}

	delete(t.items, key)

	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)

			break
		}
	}
}

// Get returns the value stored under key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	value, ok := t.items[key]

	return value, ok
}

// Len returns the number of stored values.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.items)
}

// Snapshot returns the stored values in iteration order. The returned slice
// is a copy; it is not affected by later mutations.
func (t *Table[K, V]) Snapshot() []V {
	t.mu.RLock()
	defer t.mu.RUnlock()

	values := make([]V, 0, len(t.order))
	for _, key := range t.order {
		values = append(values, t.items[key])
	}

	return values
}
