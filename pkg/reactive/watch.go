package reactive

import "sync/atomic"

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	immediate bool
}

// Immediate makes the watcher fire once with the current value at
// registration time, in addition to every later change.
func Immediate() WatchOption {
	return func(c *watchConfig) {
		c.immediate = true
	}
}

// Watch subscribes fn to src for the lifetime of scope. The returned function
// stops the watcher early; disposing the scope stops it as well. Once stopped,
// fn is never called again, even for a notification already being delivered.
func Watch[T any](scope *Scope, src ReadOnly[T], fn func(T), opts ...WatchOption) Unsubscribe {
	var cfg watchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var active atomic.Bool
	active.Store(true)

	unsub := src.Subscribe(func(v T) {
		if active.Load() {
			fn(v)
		}
	})

	stop := func() {
		if active.Swap(false) {
			unsub()
		}
	}

	if scope != nil {
		scope.OnCleanup(stop)
	}

	if cfg.immediate && active.Load() {
		fn(src.Get())
	}
	return stop
}
