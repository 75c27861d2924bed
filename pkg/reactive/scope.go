package reactive

import "sync"

// Scope owns a group of subscriptions and cleanup functions that are released
// together. Scopes form a tree: disposing a scope disposes its children first.
type Scope struct {
	id uint64

	parent *Scope

	mu       sync.Mutex
	children []*Scope
	cleanups []func()
	disposed bool
}

// NewScope creates a scope. If parent is non-nil the new scope is disposed
// along with it. Creating a child of a disposed parent yields a disposed scope.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil && !parent.addChild(s) {
		s.disposed = true
	}
	return s
}

// ID returns the unique identifier for this scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// IsDisposed reports whether Dispose has run.
func (s *Scope) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// OnCleanup registers fn to run when the scope is disposed.
// If the scope is already disposed, fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Dispose releases the scope: child scopes first, then this scope's cleanups
// in reverse registration order. Only the first call has any effect.
func (s *Scope) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	children := s.children
	cleanups := s.cleanups
	s.children = nil
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}
}

func (s *Scope) addChild(child *Scope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return false
	}
	s.children = append(s.children, child)
	return true
}

func (s *Scope) removeChild(child *Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}
