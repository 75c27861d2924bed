// Package appstore holds the UI state of an admin application shell.
//
// A Store tracks transient interface flags (theme drawer, sider collapse,
// full-content mode), a reload pulse, the active display locale, and a
// mobile flag derived from the viewport breakpoints. Each field is a
// reactive cell: consumers read it with Get and observe it with Subscribe.
//
// # Usage
//
//	store, err := appstore.New(ctx,
//	    appstore.WithStorage(prefs),
//	    appstore.WithBreakpoints(bp),
//	)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	store.SiderCollapsed().Subscribe(func(collapsed bool) {
//	    // re-layout
//	})
//
//	if err := store.ChangeLocale(ctx, i18n.En); err != nil {
//	    return err
//	}
//
// # Mobile Collapse
//
// While the viewport is smaller than the "sm" breakpoint the sider is forced
// collapsed. Leaving the mobile range does not expand it again.
//
// # Reload Pulse
//
// ReloadPage drops the reload flag to false, waits, and raises it again.
// Views keyed on the flag remount on the false→true edge. Overlapping calls
// are allowed.
package appstore
