package reactive

import (
	"sync"
	"testing"
)

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(1)
	if s.Get() != 1 {
		t.Errorf("Get() = %d, want 1", s.Get())
	}

	s.Set(5)
	if s.Get() != 5 {
		t.Errorf("Get() = %d, want 5", s.Get())
	}

	s.Update(func(n int) int { return n * 2 })
	if s.Get() != 10 {
		t.Errorf("Get() after Update = %d, want 10", s.Get())
	}
}

func TestSignalNotifiesOnlyOnChange(t *testing.T) {
	s := NewSignal("a")

	var got []string
	s.Subscribe(func(v string) { got = append(got, v) })

	s.Set("a")
	s.Set("b")
	s.Set("b")
	s.Update(func(v string) string { return v })
	s.Set("c")

	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("notifications = %v, want [b c]", got)
	}
}

func TestSignalSubscriptionOrder(t *testing.T) {
	s := NewSignal(0)

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		s.Subscribe(func(int) { order = append(order, i) })
	}

	s.Set(1)
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", order)
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	s := NewSignal(0)

	calls := 0
	unsub := s.Subscribe(func(int) { calls++ })
	if s.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", s.Subscribers())
	}

	s.Set(1)
	unsub()
	unsub()
	s.Set(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", s.Subscribers())
	}
}

func TestSignalUnsubscribeDuringNotify(t *testing.T) {
	s := NewSignal(0)

	var unsub Unsubscribe
	first := 0
	second := 0
	unsub = s.Subscribe(func(int) {
		first++
		unsub()
	})
	s.Subscribe(func(int) { second++ })

	s.Set(1)
	s.Set(2)

	if first != 1 {
		t.Errorf("first = %d, want 1", first)
	}
	if second != 2 {
		t.Errorf("second = %d, want 2", second)
	}
}

func TestSignalWriteFromSubscriber(t *testing.T) {
	src := NewSignal(0)
	mirror := NewSignal(0)

	src.Subscribe(func(v int) { mirror.Set(v * 10) })
	src.Set(3)

	if mirror.Get() != 30 {
		t.Errorf("mirror = %d, want 30", mirror.Get())
	}
}

func TestSignalNilSubscriber(t *testing.T) {
	s := NewSignal(0)
	unsub := s.Subscribe(nil)
	unsub()
	s.Set(1)
	if s.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", s.Subscribers())
	}
}

func TestSignalWithEquals(t *testing.T) {
	type point struct{ x, y int }
	s := NewSignal(point{1, 2}).WithEquals(func(a, b point) bool { return a.x == b.x })

	calls := 0
	s.Subscribe(func(point) { calls++ })

	s.Set(point{1, 99})
	if calls != 0 {
		t.Errorf("calls = %d, want 0 for equal x", calls)
	}
	if s.Get().y != 2 {
		t.Errorf("value should not change when equal, got %+v", s.Get())
	}

	s.Set(point{2, 0})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDefaultEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"slices", []int{1, 2}, []int{1, 2}, true},
		{"different slices", []int{1}, []int{2}, false},
		{"maps", map[string]int{"a": 1}, map[string]int{"a": 1}, true},
		{"nil", nil, nil, true},
		{"mixed types", 1, "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultEquals(tt.a, tt.b); got != tt.want {
				t.Errorf("defaultEquals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSignalConcurrentWrites(t *testing.T) {
	s := NewSignal(0)

	var mu sync.Mutex
	notified := 0
	s.Subscribe(func(int) {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	if s.Get() != 50 {
		t.Errorf("Get() = %d, want 50", s.Get())
	}
	if notified != 50 {
		t.Errorf("notified = %d, want 50", notified)
	}
}

func TestBoolSignal(t *testing.T) {
	b := NewBoolSignal(false)

	b.Toggle()
	if !b.Get() {
		t.Error("Toggle should set true")
	}

	b.SetFalse()
	if b.Get() {
		t.Error("SetFalse should set false")
	}

	b.SetTrue()
	if !b.Get() {
		t.Error("SetTrue should set true")
	}

	var _ ReadOnly[bool] = b
}
