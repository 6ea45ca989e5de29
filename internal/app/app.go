package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/config"
	"github.com/five82/concierge/internal/logging"
	"github.com/five82/concierge/internal/prefs"
	"github.com/five82/concierge/internal/state"
	"github.com/five82/concierge/internal/ui"
)

// Options configure the concierge application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/concierge/prefs.toml
	Route      string // initial screen, e.g. /residents?page=2
	PollEvery  int    // overview refresh in seconds; zero uses config
	BaseURL    string // overrides api_base_url
}

// env is everything built from configuration.
type env struct {
	cfg    config.Config
	log    *logging.Logger
	client *building.Client
}

func setup(opts Options) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.APIBaseURL = opts.BaseURL
	}

	log, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := building.NewClient(cfg.APIBaseURL, building.Options{
		Timeout: cfg.RequestTimeout,
		Token:   tokenProvider(cfg),
		Logger:  log.Logger,
	})
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	return &env{cfg: cfg, log: log, client: client}, nil
}

// tokenProvider prefers the environment, then the token file, then the
// configured token.
func tokenProvider(cfg config.Config) building.TokenProvider {
	chain := building.FirstToken{building.EnvToken(config.TokenEnv)}
	if cfg.TokenFile != "" {
		chain = append(chain, building.FileToken(cfg.TokenFile))
	}
	if cfg.Token != "" {
		chain = append(chain, building.StaticToken(cfg.Token))
	}
	return chain
}

// Run boots the concierge TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Close() }()
	log := e.log.Logger
	ctx = logging.WithLogger(ctx, log)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Info("using default preferences", "error", err.Error())
	}

	route := opts.Route
	if route == "" {
		route = userPrefs.LastRoute
	}

	interval := e.cfg.OverviewRefresh
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	store := &state.Store{}
	StartPoller(ctx, store, e.client, interval, log.WithName("poller"))

	log.Info("starting ui", "api", e.client.BaseURL(), "route", route, "pageSize", e.cfg.PageSize)
	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    e.client,
		Store:     store,
		Logger:    log,
		PageSize:  e.cfg.PageSize,
		Route:     route,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LogFile:   e.cfg.LogFile,
	})
}
