// Package memory implements store.KV as an in-process map.
//
// This is the ephemeral storage scope: anything written here lives
// exactly as long as the process. The app uses it for non-remembered
// login sessions (the "log me in just this once" path), and the tests
// use it anywhere a real database would only slow things down.
package memory

import (
	"context"
	"sync"
)

// KV is a mutex-guarded map. HTTP handlers run concurrently, so even
// though each logical operation is a single read-modify-write, the map
// itself needs guarding.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *KV {
	return &KV{data: make(map[string][]byte)}
}

func (kv *KV) Get(_ context.Context, key string) ([]byte, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	payload, ok := kv.data[key]
	if !ok {
		return nil, nil
	}
	// Copy out so callers can't mutate the stored slice.
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (kv *KV) Set(_ context.Context, key string, payload []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	kv.data[key] = stored
	return nil
}

// SetMany is trivially atomic here: the lock is held for the whole batch.
func (kv *KV) SetMany(_ context.Context, pairs map[string][]byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	for key, payload := range pairs {
		stored := make([]byte, len(payload))
		copy(stored, payload)
		kv.data[key] = stored
	}
	return nil
}

func (kv *KV) Clear(_ context.Context) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.data = make(map[string][]byte)
	return nil
}
