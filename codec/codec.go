// Package codec defines the serialization boundary between computed values
// and the bytes a storage backend persists. Round-trip fidelity is required
// for correctness: Decode(Encode(v)) must equal v, because a decoded entry
// is handed back in place of recomputing.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
