package codec

// Bytes is an identity codec for []byte values. Encode/Decode return the
// input unchanged. Note that a zero-length result cannot be memoized: the
// empty byte sequence is reserved as the storage absent sentinel, and the
// memoizer rejects it at persist time.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String is a trivial codec for Go string values. Encode converts to []byte,
// and Decode converts back to string. By convention this assumes UTF-8 and
// performs no validation. The empty string hits the same sentinel caveat as
// Bytes.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
