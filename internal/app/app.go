package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/roster/internal/api"
	"github.com/five82/roster/internal/config"
	"github.com/five82/roster/internal/employee"
	"github.com/five82/roster/internal/logging"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/state"
	"github.com/five82/roster/internal/ui"
)

// Options configure the roster application.
type Options struct {
	ConfigPath   string
	SettingsPath string // empty uses the config value
	Server       string // overrides every other source
	Schema       string
	PollEvery    int // seconds; zero uses config
}

// Run boots the roster TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logFile, err := logging.OpenFile(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	settingsPath := opts.SettingsPath
	if strings.TrimSpace(settingsPath) == "" {
		settingsPath = cfg.SettingsFile
	}
	settings := loadSettings(settingsPath)

	ep, err := resolveEndpoint(opts, cfg, settings)
	if err != nil {
		return err
	}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	client := api.NewClient(api.Options{Timeout: cfg.RequestTimeout})
	store := &state.Store{}
	poller := StartPoller(ctx, store, client, ep, interval)

	log.Info().
		Str("target", ep.Address()).
		Str("schema", ep.Schema.Name()).
		Dur("poll", interval).
		Msg("roster starting")

	final, runErr := ui.Run(ui.Options{
		Context:  ctx,
		Service:  client,
		Endpoint: ep,
		Store:    store,
		Poller:   poller,
		PollTick: time.Second,
		Settings: settings,
		LogFile:  cfg.LogFile,
	})

	if err := prefs.Save(settingsPath, final); err != nil {
		log.Error().Err(err).Str("path", settingsPath).Msg("save settings failed")
	}
	if runErr != nil {
		return fmt.Errorf("run ui: %w", runErr)
	}
	log.Info().Msg("roster stopped")
	return nil
}

// resolveEndpoint picks the server address: flag, then saved settings, then
// environment and config file.
// loadSettings reads saved settings, falling back to empty settings when the
// file cannot be used.
func loadSettings(path string) prefs.Settings {
	settings, err := prefs.Load(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("load settings failed, using defaults")
	}
	return settings
}

func resolveEndpoint(opts Options, cfg config.Config, settings prefs.Settings) (api.Endpoint, error) {
	schemaName := opts.Schema
	if strings.TrimSpace(schemaName) == "" {
		schemaName = cfg.Schema
	}
	schema, err := employee.Lookup(schemaName)
	if err != nil {
		return api.Endpoint{}, err
	}

	address := strings.TrimSpace(opts.Server)
	if address == "" && settings.ServerURL != nil {
		address = strings.TrimSpace(*settings.ServerURL)
	}
	if address == "" {
		address = cfg.ServerURL
	}

	ep, err := api.NewEndpoint(address, schema)
	if err != nil {
		return api.Endpoint{}, fmt.Errorf("server address %q: %w", address, err)
	}
	return ep, nil
}
