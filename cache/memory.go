package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cloudservices/kbot/types"
)

// Memory is an in-process TTL cache. Safe for concurrent use within one
// server; separate workers never share it.
type Memory struct {
	mu      sync.Mutex
	docs    []types.Document
	ttl     time.Duration
	expires time.Time
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now}
}

func (m *Memory) Get(ctx context.Context) ([]types.Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs == nil || m.now().After(m.expires) {
		m.docs = nil
		return nil, false
	}
	docs := make([]types.Document, len(m.docs))
	copy(docs, m.docs)
	return docs, true
}

func (m *Memory) Set(ctx context.Context, docs []types.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = make([]types.Document, len(docs))
	copy(m.docs, docs)
	m.expires = m.now().Add(m.ttl)
}

func (m *Memory) Invalidate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = nil
}
