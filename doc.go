// Package permacache implements persistent memoization of function calls.
// Results are cached by function identity plus argument values in a durable,
// pluggable backend (plain files, files with an in-memory read index, or
// Redis) and survive process restarts. Backends may be shared between
// processes; file entries are advisory-locked per operation.
//
// Components:
//   - storage.Backend: durable byte store with prefix-scoped flush.
//   - codec.Codec[V]: (de)serializes V <-> []byte.
//   - KeyDeriver: deterministic key from namespace, function name and the
//     ordered argument sequence.
//   - Memoizer[V]: whole-function get-or-compute, serialized behind one
//     mutex per memoizer.
//   - GetOrCompute: per-call-site get-or-compute without serialization.
//
// Keys:
//
//	{prefix}_{namespace}_{function}_{digest}  e.g. pc_DEF_addTwo_184251...
//
// digest is a 64-bit order-dependent hash of the argument values; swapping
// two arguments changes the key. Flush removes every entry under a key
// prefix and is the only way cached results are discarded (no eviction).
//
// Memoization pattern:
//
//	m, _ := permacache.New[uint64](permacache.Options[uint64]{
//	    Function: "addTwo",
//	    Storage:  files, // storage/file, storage/filemem or storage/redis
//	    Codec:    codec.JSON[uint64]{},
//	})
//	v, err := m.Do(ctx, func() (uint64, error) { return n + 2, nil }, n)
//
// A decode failure on an existing entry is fatal, never reinterpreted as a
// miss: recomputing over a corrupt entry would mask data corruption.
package permacache
