// Package storage defines the durable backend abstraction used by permacache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no headers,
// no length prefixes, no re-encoding). Entries are addressed by the full key
// string and are shared between processes, so every implementation must
// tolerate concurrent multi-process access to the same physical store.
//
// The empty byte sequence is the physical "absent" sentinel (a missing or
// zero-length file, an absent redis key). Backends translate it into the
// tagged miss return (ok=false) so callers never conflate a zero-length
// value with absence; permacache refuses to store zero-length encodings for
// the same reason.
package storage

import "context"

// Backend is a durable byte store with prefix-scoped deletion.
type Backend interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) when the
	// key has no entry. Only I/O or connection faults are errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes or fully replaces the entry for key. Two writers racing on
	// the same key end last-writer-wins, never a torn entry.
	Set(ctx context.Context, key string, value []byte) error

	// Flush deletes every entry whose key matches ^{filter}_. It is
	// non-transactional: the first scan or deletion failure aborts it and
	// entries after the failure are left undeleted.
	Flush(ctx context.Context, filter string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
