// Package cache holds the injectable knowledge-document cache. The original
// deployment kept documents in process-global state that was cleared after a
// single use; here the cache is an explicit dependency with a real TTL so
// reuse across requests actually happens, and "no cache" is just the
// passthrough backend.
package cache

import (
	"context"

	"github.com/cloudservices/kbot/types"
)

// Documents caches the decoded knowledge documents between requests.
type Documents interface {
	Get(ctx context.Context) ([]types.Document, bool)
	Set(ctx context.Context, docs []types.Document)
	Invalidate(ctx context.Context)
}

// None is the passthrough backend: every request fetches fresh.
type None struct{}

func NewNone() None { return None{} }

func (None) Get(ctx context.Context) ([]types.Document, bool) { return nil, false }
func (None) Set(ctx context.Context, docs []types.Document)   {}
func (None) Invalidate(ctx context.Context)                   {}
