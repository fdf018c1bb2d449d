package permacache

import (
	"errors"
	"fmt"
)

// ErrEmptyEncoding is returned when a codec produces zero bytes for a value.
// The empty byte sequence is the physical "absent" sentinel in every backend,
// so storing it would make the value indistinguishable from a miss.
var ErrEmptyEncoding = errors.New("permacache: refusing to store zero-length encoding (collides with the absent sentinel)")

// DecodeError reports a stored entry that could not be decoded. It is always
// fatal: a corrupt entry is never treated as a miss and recomputed.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("permacache: decode cached entry %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a computed value the codec could not represent.
type EncodeError struct {
	Key string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("permacache: encode result for %q: %v", e.Key, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// PersistError reports a backend write failure after a successful
// computation. The call fails as a whole; no partial success is returned.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("permacache: persist %q after compute: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
