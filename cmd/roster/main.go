package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/roster/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/roster/config.toml)")
	settingsPath := flag.String("settings", "", "override settings file path (optional)")
	server := flag.String("server", "", "server address host:port (optional, overrides saved settings)")
	schema := flag.String("schema", "", "record schema: structured or flat (optional)")
	pollSeconds := flag.Int("poll", 0, "connection check interval in seconds (optional, defaults to 10s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:   *configPath,
		SettingsPath: *settingsPath,
		Server:       *server,
		Schema:       *schema,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "roster: %v\n", err)
		return 1
	}
	return 0
}
