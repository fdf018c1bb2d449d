package permacache

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
)

const (
	// DefaultPrefix is prepended to every key. Flush matches on it, so all
	// backends and consumers sharing a store must agree on the prefix.
	DefaultPrefix = "pc"

	// DefaultNamespace is used when Options.Namespace is empty.
	DefaultNamespace = "DEF"
)

// KeyDeriver builds deterministic cache keys of the form
//
//	{prefix}_{namespace}_{function}_{digest}
//
// digest is the decimal form of a 64-bit xxhash over the argument sequence,
// fed strictly in call order. Each argument is first encoded with
// deterministic CBOR (RFC 8949 core), which is self-delimiting, so argument
// boundaries are unambiguous and swapping two arguments changes the digest.
// Zero arguments hash the empty sequence.
//
// The hash is non-cryptographic and collision-tolerant: a collision silently
// serves a wrong cached value. That is an accepted risk, not defended against.
type KeyDeriver struct {
	prefix string
	enc    cbor.EncMode
}

// NewKeyDeriver constructs a KeyDeriver. An empty prefix selects DefaultPrefix.
func NewKeyDeriver(prefix string) (*KeyDeriver, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return &KeyDeriver{prefix: prefix, enc: em}, nil
}

// Prefix returns the global prefix this deriver stamps on every key.
func (d *KeyDeriver) Prefix() string { return d.prefix }

// Derive returns the key for one call of function under namespace with the
// given ordered argument values. Arguments must be encodable (no funcs,
// channels or cyclic values); an unencodable argument fails the call.
func (d *KeyDeriver) Derive(namespace, function string, args ...any) (string, error) {
	h := xxhash.New()
	for i, a := range args {
		b, err := d.enc.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("permacache: encode argument %d for hashing: %w", i, err)
		}
		_, _ = h.Write(b) // xxhash.Write never fails
	}
	return d.prefix + "_" + namespace + "_" + function + "_" +
		strconv.FormatUint(h.Sum64(), 10), nil
}
