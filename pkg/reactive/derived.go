package reactive

import "sync"

// Derived is a read-only cell whose value is computed from a source cell.
// It recomputes whenever the source changes and notifies its own subscribers
// only when the computed value changes.
type Derived[T any] struct {
	cell  *Signal[T]
	unsub Unsubscribe
	once  sync.Once
}

// Map derives a cell from src by applying fn to each source value.
func Map[S, T any](src ReadOnly[S], fn func(S) T) *Derived[T] {
	var zero T
	d := &Derived[T]{cell: NewSignal(zero)}

	// Subscribe before the first computation so a write racing with
	// construction is not lost.
	d.unsub = src.Subscribe(func(S) {
		d.cell.Set(fn(src.Get()))
	})
	d.cell.Set(fn(src.Get()))
	return d
}

// Get returns the current derived value.
func (d *Derived[T]) Get() T {
	return d.cell.Get()
}

// Subscribe registers fn to be called after the derived value changes.
func (d *Derived[T]) Subscribe(fn func(T)) Unsubscribe {
	return d.cell.Subscribe(fn)
}

// Dispose detaches the cell from its source. The last value stays readable
// but will not change again.
func (d *Derived[T]) Dispose() {
	d.once.Do(func() {
		d.unsub()
	})
}
