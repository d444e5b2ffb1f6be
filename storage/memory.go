// Package storage provides implementations of the cart.Storage key-value
// contract: an in-process map standing in for browser local storage, and a
// Redis-backed variant for server-held sessions.
package storage

import "sync"

// Memory is an in-process key-value store. It is the localStorage analogue
// used by CLI sessions and tests.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]string
	writeErr error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// FailWrites makes every subsequent Set return err, simulating a full or
// unavailable store. Pass nil to restore normal behavior.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}
