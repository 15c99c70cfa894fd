package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"citydrive/internal/cli"
	"citydrive/internal/server"
)

func main() {
	opts := cli.Register(flag.CommandLine)
	addr := flag.String("addr", ":8080", "http listen address")
	tickRate := flag.Int("tick-rate", server.DefaultTickRate, "simulation ticks per second per session")
	flag.Parse()

	logger, err := opts.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	cfg, profiles, err := opts.GameConfig(os.Getenv)
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	// Clients that name no profile get the one picked on the command line.
	profiles.Default = cfg.Profile.Name

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:        *addr,
		TickRate:    *tickRate,
		Game:        cfg,
		Profiles:    profiles,
		VehiclePath: opts.VehiclePath,
	}, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
	logger.Info("shut down")
}
