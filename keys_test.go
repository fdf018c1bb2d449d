package permacache

import (
	"strconv"
	"strings"
	"testing"
)

func mustDerive(t *testing.T, d *KeyDeriver, ns, fn string, args ...any) string {
	t.Helper()
	k, err := d.Derive(ns, fn, args...)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	return k
}

func TestDeriveDeterministic(t *testing.T) {
	d1, err := NewKeyDeriver("")
	if err != nil {
		t.Fatalf("NewKeyDeriver: %v", err)
	}
	d2, err := NewKeyDeriver("")
	if err != nil {
		t.Fatalf("NewKeyDeriver: %v", err)
	}

	a := mustDerive(t, d1, "DEF", "addTwo", uint64(2))
	b := mustDerive(t, d2, "DEF", "addTwo", uint64(2))
	if a != b {
		t.Fatalf("same inputs derived different keys: %q vs %q", a, b)
	}
}

func TestDeriveKeyFormat(t *testing.T) {
	d, _ := NewKeyDeriver("")
	k := mustDerive(t, d, "DEF", "addTwo", 2)

	const want = "pc_DEF_addTwo_"
	if !strings.HasPrefix(k, want) {
		t.Fatalf("key %q does not start with %q", k, want)
	}
	if _, err := strconv.ParseUint(strings.TrimPrefix(k, want), 10, 64); err != nil {
		t.Fatalf("digest is not a decimal u64 in %q: %v", k, err)
	}
}

func TestDeriveDistinguishesValues(t *testing.T) {
	d, _ := NewKeyDeriver("")
	if mustDerive(t, d, "DEF", "f", 1) == mustDerive(t, d, "DEF", "f", 2) {
		t.Fatalf("distinct argument values derived equal keys")
	}
	if mustDerive(t, d, "DEF", "f", "a") == mustDerive(t, d, "DEF", "f", "b") {
		t.Fatalf("distinct string arguments derived equal keys")
	}
}

// swapping the arguments must change the key
func TestDeriveOrderSensitive(t *testing.T) {
	d, _ := NewKeyDeriver("")
	ab := mustDerive(t, d, "DEF", "f", 6, 2)
	ba := mustDerive(t, d, "DEF", "f", 2, 6)
	if ab == ba {
		t.Fatalf("argument order did not change the key: %q", ab)
	}
}

func TestDeriveZeroArgs(t *testing.T) {
	d, _ := NewKeyDeriver("")
	a := mustDerive(t, d, "DEF", "now")
	b := mustDerive(t, d, "DEF", "now")
	if a != b {
		t.Fatalf("zero-arg key not stable: %q vs %q", a, b)
	}
	if a == mustDerive(t, d, "DEF", "now", 1) {
		t.Fatalf("zero-arg key equals one-arg key")
	}
}

func TestDeriveScopesNamespaceAndFunction(t *testing.T) {
	d, _ := NewKeyDeriver("")
	if mustDerive(t, d, "A", "f", 1) == mustDerive(t, d, "B", "f", 1) {
		t.Fatalf("namespaces do not scope keys")
	}
	if mustDerive(t, d, "A", "f", 1) == mustDerive(t, d, "A", "g", 1) {
		t.Fatalf("function names do not scope keys")
	}
}

func TestDeriveRejectsUnencodableArg(t *testing.T) {
	d, _ := NewKeyDeriver("")
	if _, err := d.Derive("DEF", "f", func() {}); err == nil {
		t.Fatalf("expected error for func argument")
	}
}
