package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/five82/roster/internal/devserver"
	"github.com/five82/roster/internal/employee"
	"github.com/five82/roster/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:8000", "listen address")
	schemaName := flag.String("schema", "structured", "record schema: structured or flat")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roster-devserver: %v\n", err)
		return 2
	}
	logging.Setup(os.Stderr, lvl)

	schema, err := employee.Lookup(*schemaName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roster-devserver: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("schema", schema.Name()).Msg("starting dev server")
	if err := devserver.ListenAndServe(ctx, *addr, devserver.New(schema)); err != nil {
		log.Error().Err(err).Msg("dev server exited")
		return 1
	}
	return 0
}
