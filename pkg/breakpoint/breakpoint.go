// Package breakpoint derives responsive boolean signals from a viewport width.
//
// A Breakpoints value owns a width cell and a table of named thresholds.
// Predicates such as Smaller("sm") are reactive: they update whenever the
// width crosses the threshold, and are released together by Close. A
// consumer with a shorter lifetime can Dispose a predicate early.
//
//	bp := breakpoint.New(breakpoint.Tailwind, 1280)
//	defer bp.Close()
//
//	mobile, _ := bp.Smaller("sm")
//	bp.SetWidth(480) // mobile.Get() == true
package breakpoint

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vango-dev/appstore/internal/errors"
	"github.com/vango-dev/appstore/pkg/reactive"
)

// Breakpoint is a named minimum viewport width in CSS pixels.
type Breakpoint struct {
	Name  string
	Width int
}

// Table is a list of breakpoints ordered by ascending width.
type Table []Breakpoint

// Tailwind is the default Tailwind CSS breakpoint table.
var Tailwind = Table{
	{Name: "sm", Width: 640},
	{Name: "md", Width: 768},
	{Name: "lg", Width: 1024},
	{Name: "xl", Width: 1280},
	{Name: "2xl", Width: 1536},
}

// TableFromMap builds a table from name → width pairs, sorted by width.
func TableFromMap(m map[string]int) Table {
	t := make(Table, 0, len(m))
	for name, width := range m {
		t = append(t, Breakpoint{Name: name, Width: width})
	}
	sort.Slice(t, func(i, j int) bool {
		if t[i].Width == t[j].Width {
			return t[i].Name < t[j].Name
		}
		return t[i].Width < t[j].Width
	})
	return t
}

// Lookup returns the width registered for name.
func (t Table) Lookup(name string) (int, bool) {
	for _, bp := range t {
		if bp.Name == name {
			return bp.Width, true
		}
	}
	return 0, false
}

// Breakpoints tracks a viewport width against a breakpoint table.
type Breakpoints struct {
	table Table
	width *reactive.Signal[int]
	scope *reactive.Scope

	currentOnce sync.Once
	current     *reactive.Derived[string]
}

// New creates a Breakpoints with the given table and initial viewport width.
// A nil or empty table falls back to Tailwind.
func New(table Table, width int) *Breakpoints {
	if len(table) == 0 {
		table = Tailwind
	}
	sorted := make(Table, len(table))
	copy(sorted, table)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Width < sorted[j].Width })

	return &Breakpoints{
		table: sorted,
		width: reactive.NewSignal(width),
		scope: reactive.NewScope(nil),
	}
}

// Table returns a copy of the breakpoint table.
func (b *Breakpoints) Table() Table {
	out := make(Table, len(b.table))
	copy(out, b.table)
	return out
}

// Width returns the viewport width cell.
func (b *Breakpoints) Width() reactive.ReadOnly[int] {
	return b.width
}

// SetWidth updates the viewport width. Negative widths are treated as zero.
func (b *Breakpoints) SetWidth(width int) {
	if width < 0 {
		width = 0
	}
	b.width.Set(width)
}

// Smaller reports whether the viewport is narrower than the named breakpoint.
func (b *Breakpoints) Smaller(name string) (*reactive.Derived[bool], error) {
	threshold, err := b.threshold(name)
	if err != nil {
		return nil, err
	}
	return b.derive(func(w int) bool { return w < threshold }), nil
}

// SmallerOrEqual reports whether the viewport is at most the named breakpoint.
func (b *Breakpoints) SmallerOrEqual(name string) (*reactive.Derived[bool], error) {
	threshold, err := b.threshold(name)
	if err != nil {
		return nil, err
	}
	return b.derive(func(w int) bool { return w <= threshold }), nil
}

// Greater reports whether the viewport is wider than the named breakpoint.
func (b *Breakpoints) Greater(name string) (*reactive.Derived[bool], error) {
	threshold, err := b.threshold(name)
	if err != nil {
		return nil, err
	}
	return b.derive(func(w int) bool { return w > threshold }), nil
}

// GreaterOrEqual reports whether the viewport is at least the named breakpoint.
func (b *Breakpoints) GreaterOrEqual(name string) (*reactive.Derived[bool], error) {
	threshold, err := b.threshold(name)
	if err != nil {
		return nil, err
	}
	return b.derive(func(w int) bool { return w >= threshold }), nil
}

// Between reports whether from <= width < to.
func (b *Breakpoints) Between(from, to string) (*reactive.Derived[bool], error) {
	lo, err := b.threshold(from)
	if err != nil {
		return nil, err
	}
	hi, err := b.threshold(to)
	if err != nil {
		return nil, err
	}
	return b.derive(func(w int) bool { return w >= lo && w < hi }), nil
}

// Current returns the name of the largest breakpoint the viewport reaches,
// or "" when it is below the smallest one. Every call returns the same cell.
func (b *Breakpoints) Current() reactive.ReadOnly[string] {
	b.currentOnce.Do(func() {
		b.current = reactive.Map[int, string](b.width, b.nameFor)
		b.scope.OnCleanup(b.current.Dispose)
	})
	return b.current
}

// Close releases every derived predicate. Predicates keep their last value
// but stop following the width.
func (b *Breakpoints) Close() {
	b.scope.Dispose()
}

func (b *Breakpoints) nameFor(width int) string {
	name := ""
	for _, bp := range b.table {
		if width >= bp.Width {
			name = bp.Name
		}
	}
	return name
}

func (b *Breakpoints) threshold(name string) (int, error) {
	width, ok := b.table.Lookup(name)
	if !ok {
		names := make([]string, len(b.table))
		for i, bp := range b.table {
			names[i] = bp.Name
		}
		return 0, errors.New("E140").
			WithDetail(fmt.Sprintf("breakpoint %q is not defined", name)).
			SuggestClosest(name, names)
	}
	return width, nil
}

func (b *Breakpoints) derive(pred func(int) bool) *reactive.Derived[bool] {
	d := reactive.Map[int, bool](b.width, pred)
	b.scope.OnCleanup(d.Dispose)
	return d
}
