// Package asynchook decorates a permacache.Hooks with a bounded queue and a
// worker pool so that slow hook consumers (metrics, logging) never stall the
// memoization hot path. Events are dropped when the queue is full.
//
// usage:
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	m, _ := permacache.New[Result](permacache.Options[Result]{
//	    Function: "lookup",
//	    Storage:  backend,
//	    Codec:    codec.JSON[Result]{},
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/permacache"
)

type Hooks struct {
	inner permacache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ permacache.Hooks = (*Hooks)(nil)

func New(inner permacache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(k string)       { h.try(func() { h.inner.Hit(k) }) }
func (h *Hooks) Miss(k string)      { h.try(func() { h.inner.Miss(k) }) }
func (h *Hooks) Persisted(k string) { h.try(func() { h.inner.Persisted(k) }) }
func (h *Hooks) PersistFailed(k string, err error) {
	h.try(func() { h.inner.PersistFailed(k, err) })
}
func (h *Hooks) CorruptEntry(k string, err error) {
	h.try(func() { h.inner.CorruptEntry(k, err) })
}
func (h *Hooks) Flushed(filter string, err error) {
	h.try(func() { h.inner.Flushed(filter, err) })
}
