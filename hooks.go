package permacache

// Hooks are lightweight callbacks for high-signal memoization events.
// Implementations MUST be cheap and non-blocking; the memoizer calls them
// on hot paths. Errors reported here are also returned to the caller --
// hooks observe, they never replace error propagation.
type Hooks interface {
	// A stored result was served without running compute.
	Hit(key string)

	// No stored result; compute is about to run.
	Miss(key string)

	// A computed result was written to the backend.
	Persisted(key string)

	// The backend write after a successful compute failed.
	PersistFailed(key string, err error)

	// A stored entry failed to decode (corruption; fatal to the call).
	CorruptEntry(key string, err error)

	// A prefix-scoped flush completed (err nil) or aborted on first failure.
	Flushed(filter string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string)                  {}
func (NopHooks) Miss(string)                 {}
func (NopHooks) Persisted(string)            {}
func (NopHooks) PersistFailed(string, error) {}
func (NopHooks) CorruptEntry(string, error)  {}
func (NopHooks) Flushed(string, error)       {}
