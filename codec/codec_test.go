package codec

import (
	"bytes"
	"strings"
	"testing"
)

type payload struct {
	ID    string         `json:"id" msgpack:"id"`
	Count int            `json:"count" msgpack:"count"`
	Tags  map[string]int `json:"tags" msgpack:"tags"`
}

func TestLimitGuardsDecode(t *testing.T) {
	inner := JSON[payload]{}
	lc := Limit[payload]{Inner: inner, MaxDecode: 8}

	big, err := inner.Encode(payload{ID: "way-over-eight-bytes"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := lc.Decode(big); err == nil || !strings.Contains(err.Error(), "payload too large") {
		t.Fatalf("expected size error, got %v", err)
	}

	// Encode is forwarded untouched
	out, err := lc.Encode(payload{ID: "x"})
	if err != nil || !bytes.Equal(out, mustEncode[payload](t, inner, payload{ID: "x"})) {
		t.Fatalf("Limit.Encode diverged from inner: %v", err)
	}

	// MaxDecode <= 0 disables the guard
	open := Limit[payload]{Inner: inner}
	if _, err := open.Decode(big); err != nil {
		t.Fatalf("unlimited Decode: %v", err)
	}
}

func mustEncode[V any](t *testing.T, c Codec[V], v V) []byte {
	t.Helper()
	b, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return b
}

// Deterministic CBOR must be byte-stable across encodes: the key deriver
// hashes these bytes.
func TestCBORDeterministicIsByteStable(t *testing.T) {
	c := MustCBOR[payload](true)
	v := payload{ID: "a", Count: 3, Tags: map[string]int{"x": 1, "y": 2, "z": 3}}

	first := mustEncode[payload](t, c, v)
	for i := 0; i < 8; i++ {
		if next := mustEncode[payload](t, c, v); !bytes.Equal(first, next) {
			t.Fatalf("deterministic encode varied on attempt %d", i)
		}
	}

	got, err := c.Decode(first)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.ID != v.ID || got.Count != v.Count || len(got.Tags) != len(v.Tags) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, v)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	c := Msgpack[payload]{}
	v := payload{ID: "m", Count: -1, Tags: map[string]int{"k": 9}}
	got, err := c.Decode(mustEncode[payload](t, c, v))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.ID != v.ID || got.Count != v.Count || got.Tags["k"] != 9 {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, v)
	}
}
