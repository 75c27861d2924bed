package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/appstore/internal/errors"
	"github.com/vango-dev/appstore/pkg/appstore"
	"github.com/vango-dev/appstore/pkg/i18n"
)

func simulateCmd(flags *globalFlags) *cobra.Command {
	var (
		widths   string
		locale   string
		reload   bool
		delay    string
		asJSON   bool
		openDraw bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted sequence against the store",
		Long: `Run a scripted sequence of viewport, drawer, locale, and reload
operations against a store and print every state change.

Steps run in this order: viewport widths, drawer, locale, reload.

Examples:
  appstore simulate --widths 1280,500,1024
  appstore simulate --locale en --reload --delay 300ms
  appstore simulate --widths 375 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), flags, simulateOptions{
				widths:     widths,
				locale:     locale,
				reload:     reload,
				delay:      delay,
				asJSON:     asJSON,
				openDrawer: openDraw,
			})
		},
	}

	cmd.Flags().StringVarP(&widths, "widths", "w", "", "Comma-separated viewport widths to step through")
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "Locale to switch to (zh-CN or en)")
	cmd.Flags().BoolVarP(&reload, "reload", "r", false, "Pulse the reload flag")
	cmd.Flags().StringVarP(&delay, "delay", "d", "", "Reload delay (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print snapshots as JSON lines")
	cmd.Flags().BoolVar(&openDraw, "drawer", false, "Open then close the theme drawer")

	return cmd
}

type simulateOptions struct {
	widths     string
	locale     string
	reload     bool
	delay      string
	asJSON     bool
	openDrawer bool
}

func runSimulate(ctx context.Context, flags *globalFlags, opts simulateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	widths, err := parseWidths(opts.widths)
	if err != nil {
		return err
	}

	e, err := setup(ctx, flags)
	if err != nil {
		return err
	}
	defer e.Close()

	delay, err := e.cfg.ReloadDelay()
	if err != nil {
		return err
	}
	if opts.delay != "" {
		delay, err = time.ParseDuration(opts.delay)
		if err != nil {
			return errors.New("E121").
				WithDetail("--delay must be a duration like \"300ms\"").
				Wrap(err)
		}
	}

	emit := snapshotPrinter(opts.asJSON)
	emit("initial", e.store.Snapshot())
	e.store.OnChange(func(snap appstore.Snapshot) {
		emit("change", snap)
	})

	for _, w := range widths {
		e.store.Breakpoints().SetWidth(w)
	}

	if opts.openDrawer {
		e.store.OpenThemeDrawer()
		e.store.CloseThemeDrawer()
	}

	if opts.locale != "" {
		if err := e.store.ChangeLocale(ctx, i18n.Locale(opts.locale)); err != nil {
			return err
		}
		if !opts.asJSON {
			success("Locale is now %s (%s)", opts.locale, e.catalog.Sprintf(i18n.KeyTitle))
		}
	}

	if opts.reload {
		if err := e.store.ReloadPage(ctx, delay); err != nil {
			return err
		}
		if !opts.asJSON {
			success("Reloaded after %s", delay)
		}
	}

	return nil
}

func parseWidths(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	widths := make([]int, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || w < 0 {
			return nil, errors.New("E121").
				WithDetail(fmt.Sprintf("invalid width %q in --widths", p))
		}
		widths = append(widths, w)
	}
	return widths, nil
}

func snapshotPrinter(asJSON bool) func(event string, snap appstore.Snapshot) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		return func(event string, snap appstore.Snapshot) {
			_ = enc.Encode(struct {
				Event string `json:"event"`
				appstore.Snapshot
			}{event, snap})
		}
	}

	return func(event string, snap appstore.Snapshot) {
		info("%-7s width=%-5d bp=%-3s mobile=%-5t sider=%-5t drawer=%-5t full=%-5t reload=%-5t locale=%s",
			event, snap.Width, snap.Breakpoint, snap.IsMobile, snap.SiderCollapsed,
			snap.ThemeDrawerVisible, snap.FullContent, snap.ReloadFlag, snap.Locale)
	}
}
