package docstore

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store used by tests and local development. It
// stores JSON bytes so callers never share mutable maps with the store.
type Memory struct {
	mu    sync.RWMutex
	colls map[string]map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{colls: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	b, ok := m.colls[collection][id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeJSON(b)
}

func (m *Memory) Find(_ context.Context, collection string, filter Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Document
	for _, b := range m.colls[collection] {
		doc, err := decodeJSON(b)
		if err != nil {
			return nil, err
		}
		if Match(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *Memory) Put(_ context.Context, collection, id string, doc Document) error {
	b, err := json.Marshal(withID(doc, id))
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.colls[collection]
	if !ok {
		c = make(map[string][]byte)
		m.colls[collection] = c
	}
	c[id] = b
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.colls[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.colls[collection], id)
	return nil
}

func (m *Memory) Close() error { return nil }
