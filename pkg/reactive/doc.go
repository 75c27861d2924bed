// Package reactive provides the observable cells the app store is built on.
//
// Unlike a dependency-tracking runtime, every subscription here is explicit:
// a consumer calls Subscribe (or Watch) and receives an Unsubscribe function.
//
// # Core Types
//
// Signal[T] is a mutable value container:
//
//	collapsed := reactive.NewSignal(false)
//	collapsed.Get()       // Read
//	collapsed.Set(true)   // Write (notifies subscribers if the value changed)
//	unsub := collapsed.Subscribe(func(v bool) { ... })
//	defer unsub()
//
// Derived[T] is a read-only value computed from another cell:
//
//	mobile := reactive.Map(width, func(w int) bool { return w < 640 })
//
// Scope groups subscriptions so they are released together:
//
//	scope := reactive.NewScope(nil)
//	reactive.Watch(scope, mobile, onMobile, reactive.Immediate())
//	scope.Dispose() // onMobile will not run again
//
// # Thread Safety
//
// All types are safe for concurrent use. Subscribers are called synchronously
// on the goroutine that performed the write, outside of any internal lock, so
// a subscriber may itself write to other cells.
package reactive
