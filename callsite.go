package permacache

import (
	"context"

	c "github.com/unkn0wn-root/permacache/codec"
	st "github.com/unkn0wn-root/permacache/storage"
)

// GetOrCompute is the per-call-site variant: it memoizes a single call
// against an explicit key without any serialization or in-flight
// deduplication. Concurrent identical calls may all compute and all persist;
// each Set fully replaces the entry, so the outcome is last-writer-wins.
//
// Use Memoizer when every call to a function should be cached; use
// GetOrCompute when individual call sites opt in with their own key
// (typically from KeyDeriver.Derive) and storage handle.
func GetOrCompute[V any](ctx context.Context, backend st.Backend, cd c.Codec[V], key string, compute func() (V, error)) (V, error) {
	return getOrCompute[V](ctx, backend, cd, NopHooks{}, key, compute)
}

// FlushAll removes every entry under the global prefix, across all
// namespaces and functions sharing the backend. An empty prefix selects
// DefaultPrefix. Like Backend.Flush it aborts on the first failure.
func FlushAll(ctx context.Context, backend st.Backend, prefix string) error {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return backend.Flush(ctx, prefix)
}
