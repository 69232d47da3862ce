package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/printbed/gantry/internal/config"
	"github.com/printbed/gantry/internal/discover"
	"github.com/printbed/gantry/internal/farmd"
	"github.com/printbed/gantry/internal/feed"
	"github.com/printbed/gantry/internal/prefs"
	"github.com/printbed/gantry/internal/state"
	"github.com/printbed/gantry/internal/ui"
)

// Options configure the gantry application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/gantry/prefs.toml
	Printer    string // overrides the configured printer id
	PollEvery  int    // seconds; zero uses the configured interval
	Discover   bool   // locate farmd via mDNS instead of the configured address
}

// Run boots the gantry TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Printer != "" {
		cfg.Printer = opts.Printer
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}
	if opts.Discover {
		addr, err := discover.Find(ctx, 0)
		if err != nil {
			return fmt.Errorf("discover farmd: %w", err)
		}
		cfg.APIBind = addr
	}
	if cfg.APIBind == "" {
		// Nothing configured: a short mDNS browse, then the local default.
		if addr, err := discover.Find(ctx, 2*time.Second); err == nil {
			cfg.APIBind = addr
		} else {
			cfg.APIBind = config.DefaultAPIBind
		}
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		userPrefs = prefs.Prefs{}
	}

	client, err := farmd.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init farmd client: %w", err)
	}

	events := feed.New(feed.DefaultCapacity)

	// Best effort: a down daemon shows up as the offline banner, not a
	// refused start.
	warning := checkVersion(ctx, client, events)

	store := &state.Store{}
	if cfg.Printer != "" {
		store.SetTarget(cfg.Printer)
	}

	interval := cfg.PollInterval()
	StartPoller(ctx, store, client, interval)
	if cfg.Stream {
		StartStreams(ctx, store, client)
	}

	// Initial refresh so the UI has data on first paint.
	refresh(ctx, store, client)

	uiOpts := ui.Options{
		Context:        ctx,
		Client:         client,
		Store:          store,
		Feed:           events,
		PollTick:       interval,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
		VersionWarning: warning,
	}
	return ui.Run(uiOpts)
}

// checkVersion probes farmd and reports a compatibility warning, if any,
// for the header. Errors are logged and swallowed.
func checkVersion(ctx context.Context, client *farmd.Client, events *feed.Feed) string {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	warning, err := client.CheckVersion(probeCtx)
	if err != nil {
		log.Printf("version check failed: %v", err)
		return ""
	}
	if warning != "" {
		events.AddError(warning)
	}
	return warning
}
