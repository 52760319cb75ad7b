package gareporter

import "sync"

// MemoryStore is a KeyValueStore that keeps values in memory. Values do not outlive the
// process, so a reporter using it gets a new client ID on every run.
type MemoryStore struct {
	values map[string]string
	lock   sync.RWMutex
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.lock.Lock()
	m.values[key] = value
	m.lock.Unlock()
	return nil
}

// Clear removes every stored value.
func (m *MemoryStore) Clear() {
	m.lock.Lock()
	m.values = make(map[string]string)
	m.lock.Unlock()
}
