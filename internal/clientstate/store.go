package clientstate

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

// ErrNotFound is returned when a key has no value for the client.
var ErrNotFound = errors.New("clientstate: key not found")

// Store is the key–value backend for per-device state. Keys are
// namespaced per clientID; values are opaque strings (JSON, integers as
// strings, or plain text).
type Store interface {
	Get(ctx context.Context, clientID, key string) (string, error)
	Set(ctx context.Context, clientID, key, value string) error
	Increment(ctx context.Context, clientID, key string) (int64, error)
}

// memoryStore is the in-process fallback used when Redis is not
// configured. Single instance only; state does not survive restarts,
// which matches the "local storage on this device" semantics of the
// original pages closely enough for development.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore builds an in-process Store.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(ctx context.Context, clientID, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[clientID+"\x00"+key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memoryStore) Set(ctx context.Context, clientID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[clientID+"\x00"+key] = value
	return nil
}

func (m *memoryStore) Increment(ctx context.Context, clientID, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := clientID + "\x00" + key
	n, _ := strconv.ParseInt(m.data[k], 10, 64)
	n++
	m.data[k] = strconv.FormatInt(n, 10)
	return n, nil
}
