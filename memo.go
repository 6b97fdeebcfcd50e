package metacopy

import "sync"

// memo is a create-once table. Lookup and creation run under a single
// mutex, so each key's value is created exactly once and concurrent
// callers for the same key wait for the first creation to finish.
// Creation errors are returned without being stored.
type memo[K comparable, V any] struct {
	mu     sync.Mutex
	values map[K]V
}

func newMemo[K comparable, V any]() *memo[K, V] {
	return &memo[K, V]{values: make(map[K]V)}
}

func (m *memo[K, V]) getOrCreate(key K, create func() (V, error)) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value, ok := m.values[key]; ok {
		return value, nil
	}
	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	m.values[key] = value
	return value, nil
}

// drain removes and returns every stored value.
func (m *memo[K, V]) drain() []V {
	m.mu.Lock()
	defer m.mu.Unlock()

	values := make([]V, 0, len(m.values))
	for _, value := range m.values {
		values = append(values, value)
	}
	m.values = make(map[K]V)
	return values
}
