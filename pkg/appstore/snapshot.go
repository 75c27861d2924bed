package appstore

import (
	"github.com/vango-dev/appstore/pkg/i18n"
	"github.com/vango-dev/appstore/pkg/reactive"
)

// Snapshot is a point-in-time copy of every store field.
type Snapshot struct {
	ID                 string      `json:"id"`
	ThemeDrawerVisible bool        `json:"themeDrawerVisible"`
	ReloadFlag         bool        `json:"reloadFlag"`
	FullContent        bool        `json:"fullContent"`
	ContentXScrollable bool        `json:"contentXScrollable"`
	SiderCollapsed     bool        `json:"siderCollapsed"`
	MixSiderFixed      bool        `json:"mixSiderFixed"`
	Locale             i18n.Locale `json:"locale"`
	IsMobile           bool        `json:"isMobile"`
	Breakpoint         string      `json:"breakpoint"`
	Width              int         `json:"width"`
}

// Snapshot returns the current value of every field.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		ID:                 s.id,
		ThemeDrawerVisible: s.themeDrawerVisible.Get(),
		ReloadFlag:         s.reloadFlag.Get(),
		FullContent:        s.fullContent.Get(),
		ContentXScrollable: s.contentXScrollable.Get(),
		SiderCollapsed:     s.siderCollapsed.Get(),
		MixSiderFixed:      s.mixSiderFixed.Get(),
		Locale:             s.locale.Get(),
		IsMobile:           s.isMobile.Get(),
		Breakpoint:         s.bp.Current().Get(),
		Width:              s.bp.Width().Get(),
	}
}

// OnChange calls fn with a fresh snapshot whenever any field changes.
// The returned function stops delivery; Close stops it as well.
func (s *Store) OnChange(fn func(Snapshot)) func() {
	sub := reactive.NewScope(s.scope)
	emit := func() { fn(s.Snapshot()) }

	watchAny[bool](sub, s.themeDrawerVisible, emit)
	watchAny[bool](sub, s.reloadFlag, emit)
	watchAny[bool](sub, s.fullContent, emit)
	watchAny[bool](sub, s.contentXScrollable, emit)
	watchAny[bool](sub, s.siderCollapsed, emit)
	watchAny[bool](sub, s.mixSiderFixed, emit)
	watchAny[i18n.Locale](sub, s.locale, emit)
	watchAny[int](sub, s.bp.Width(), emit)

	return sub.Dispose
}
