package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"citydrive/internal/cli"
	"citydrive/internal/game"
)

func main() {
	opts := cli.Register(flag.CommandLine)
	mute := flag.Bool("mute", false, "start with sound off (toggle with M)")
	flag.Parse()

	logger, err := opts.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	cfg, _, err := opts.GameConfig(os.Getenv)
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	err = game.RunDesktop(game.Options{
		Game:        cfg,
		VehiclePath: opts.VehiclePath,
		Mute:        *mute,
	}, logger)
	if err != nil {
		logger.Fatal("desktop", zap.Error(err))
	}
}
