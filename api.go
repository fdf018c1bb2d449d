package permacache

import (
	"context"

	c "github.com/unkn0wn-root/permacache/codec"
	st "github.com/unkn0wn-root/permacache/storage"
)

// Memoizer is the whole-function memoization API. One Memoizer wraps one
// logical function; all calls through it are serialized behind a single
// mutex held for the full get-compute-persist sequence, so concurrent
// callers in one process never race on the same key.
// V is the function's result type. Serialization is handled by a pluggable Codec[V].
type Memoizer[V any] interface {
	Enabled() bool
	Close(context.Context) error

	// Do returns the cached result for args, or runs compute, persists the
	// result and returns it. A persistence failure is fatal to the call.
	Do(ctx context.Context, compute func() (V, error), args ...any) (V, error)

	// Key derives the storage key Do would use for args.
	Key(args ...any) (string, error)

	// Flush deletes every stored entry under this memoizer's
	// prefix_namespace, including entries written by other functions
	// sharing the namespace.
	Flush(ctx context.Context) error
}

// Options tune a Memoizer. Only Function, Storage and Codec are required.
type Options[V any] struct {
	// Required
	Function string // name of the memoized function; part of every key
	Storage  st.Backend
	Codec    c.Codec[V]

	Namespace string // caller-chosen grouping; "" => "DEF"
	Prefix    string // global key prefix shared by flush; "" => "pc"
	Logger    Logger // if nil, NopLogger is used
	Hooks     Hooks  // if nil, NopHooks is used
	Disabled  bool   // default false; disabled => always compute, never touch storage

	// CloseStorage makes Close also close the backend. Leave false when the
	// handle is shared with other memoizers (the usual setup).
	CloseStorage bool
}

func New[V any](opts Options[V]) (Memoizer[V], error) {
	return newMemoizer[V](opts)
}
