package permacache

import (
	"context"
	"fmt"
	"sync"

	c "github.com/unkn0wn-root/permacache/codec"
	st "github.com/unkn0wn-root/permacache/storage"
)

type memoizer[V any] struct {
	ns      string
	fn      string
	storage st.Backend
	codec   c.Codec[V]
	log     Logger
	hooks   Hooks
	keys    *KeyDeriver
	enabled bool
	closeSt bool

	// serializes the whole get-compute-persist sequence for this function.
	// The backend's own locks cover single operations only; this mutex is
	// what keeps concurrent in-process callers from computing twice.
	mu sync.Mutex
}

func newMemoizer[V any](opts Options[V]) (*memoizer[V], error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("permacache: storage is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("permacache: codec is required")
	}
	if opts.Function == "" {
		return nil, fmt.Errorf("permacache: function name is required")
	}

	kd, err := NewKeyDeriver(coalesce(opts.Prefix, DefaultPrefix))
	if err != nil {
		return nil, err
	}

	m := &memoizer[V]{
		ns:      coalesce(opts.Namespace, DefaultNamespace),
		fn:      opts.Function,
		storage: opts.Storage,
		codec:   opts.Codec,
		keys:    kd,
		enabled: !opts.Disabled,
		closeSt: opts.CloseStorage,
	}
	m.log = coalesce[Logger](opts.Logger, NopLogger{})
	m.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return m, nil
}

func (m *memoizer[V]) Enabled() bool { return m.enabled }

// Close releases the backend only when this memoizer owns it.
func (m *memoizer[V]) Close(ctx context.Context) error {
	if m.closeSt && m.storage != nil {
		return m.storage.Close(ctx)
	}
	return nil
}

func (m *memoizer[V]) Do(ctx context.Context, compute func() (V, error), args ...any) (V, error) {
	var zero V
	if !m.enabled {
		return compute()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key, err := m.keys.Derive(m.ns, m.fn, args...)
	if err != nil {
		return zero, err
	}
	v, err := getOrCompute[V](ctx, m.storage, m.codec, m.hooks, key, compute)
	if err != nil {
		return zero, err
	}
	m.log.Debug("memoized call served", Fields{"fn": m.fn, "key": key})
	return v, nil
}

func (m *memoizer[V]) Key(args ...any) (string, error) {
	return m.keys.Derive(m.ns, m.fn, args...)
}

// Flush removes every entry under prefix_namespace. It is non-transactional:
// the first deletion failure aborts and later matches stay undeleted.
func (m *memoizer[V]) Flush(ctx context.Context) error {
	filter := m.keys.Prefix() + "_" + m.ns
	err := m.storage.Flush(ctx, filter)
	m.hooks.Flushed(filter, err)
	if err != nil {
		return err
	}
	m.log.Debug("flushed namespace", Fields{"ns": m.ns, "filter": filter})
	return nil
}

// getOrCompute is the shared orchestration core: consult storage, compute on
// miss, persist, return. Callers decide the serialization discipline.
func getOrCompute[V any](ctx context.Context, backend st.Backend, cd c.Codec[V], hooks Hooks, key string, compute func() (V, error)) (V, error) {
	var zero V

	raw, ok, err := backend.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if ok {
		v, err := cd.Decode(raw)
		if err != nil {
			// corruption, not a miss; recomputing here would mask it
			hooks.CorruptEntry(key, err)
			return zero, &DecodeError{Key: key, Err: err}
		}
		hooks.Hit(key)
		return v, nil
	}

	hooks.Miss(key)
	v, err := compute()
	if err != nil {
		return zero, err
	}
	raw, err = cd.Encode(v)
	if err != nil {
		return zero, &EncodeError{Key: key, Err: err}
	}
	if len(raw) == 0 {
		return zero, ErrEmptyEncoding
	}
	if err := backend.Set(ctx, key, raw); err != nil {
		hooks.PersistFailed(key, err)
		return zero, &PersistError{Key: key, Err: err}
	}
	hooks.Persisted(key)
	return v, nil
}
