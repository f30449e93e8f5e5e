package memory

import (
	"context"
	"sync"

	"github.com/mwantia/argtree/history"
	"github.com/tidwall/btree"
)

// DefaultLimit bounds the store a dispatcher creates when no history is configured.
const DefaultLimit = 1000

// MemoryStore keeps entries in a b-tree ordered by entry key.
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	entries *btree.Map[string, history.Entry]
}

// NewMemoryStore keeps at most limit entries and drops the oldest on overflow.
// A limit of zero or less keeps everything.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		limit:   limit,
		entries: btree.NewMap[string, history.Entry](0),
	}
}

func (*MemoryStore) Name() string {
	return "memory"
}

func (ms *MemoryStore) Append(_ context.Context, entry history.Entry) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries.Set(entry.Key(), entry)
	for ms.limit > 0 && ms.entries.Len() > ms.limit {
		ms.entries.PopMin()
	}
	return nil
}

func (ms *MemoryStore) List(_ context.Context, limit int) ([]history.Entry, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return history.Tail(ms.entries.Values(), limit), nil
}

func (ms *MemoryStore) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries.Clear()
	return nil
}
