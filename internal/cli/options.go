// Package cli holds the flags shared by the citydrive binaries.
package cli

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"citydrive/internal/drive"
	"citydrive/internal/logging"
)

// SeedEnv overrides -seed when set.
const SeedEnv = "CITYDRIVE_SEED"

type Options struct {
	Seed         string
	Profile      string
	ProfilesPath string
	VehiclePath  string
	HalfExtent   int
	RainDrops    int
	Linear       bool
	LogLevel     string
	Dev          bool
}

// Register binds the shared flags on fs.
func Register(fs *flag.FlagSet) *Options {
	o := &Options{}
	fs.StringVar(&o.Seed, "seed", "1", "city seed: a number or any string ($"+SeedEnv+" overrides)")
	fs.StringVar(&o.Profile, "profile", "", "tuning profile name (default: the file's default)")
	fs.StringVar(&o.ProfilesPath, "profiles", "", "path to a profiles.yaml replacing the embedded one")
	fs.StringVar(&o.VehiclePath, "vehicle", "", "path to a vehicle spec yaml (default: built-in roadster)")
	fs.IntVar(&o.HalfExtent, "half-extent", drive.DefaultHalfExtent, "city half extent in grid cells")
	fs.IntVar(&o.RainDrops, "rain", drive.RainDrops, "number of rain drops")
	fs.BoolVar(&o.Linear, "linear", false, "use linear collision queries instead of the r-tree")
	fs.StringVar(&o.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.BoolVar(&o.Dev, "dev", false, "human-readable console logs")
	return o
}

// Logger builds the process logger from the log flags.
func (o *Options) Logger() (*zap.Logger, error) {
	return logging.New(o.LogLevel, o.Dev)
}

// Profiles loads the profile file, or the embedded set when none is given.
func (o *Options) Profiles() (drive.ProfileSet, error) {
	if o.ProfilesPath == "" {
		return drive.MustDefaultProfiles(), nil
	}
	return drive.LoadProfilesFile(o.ProfilesPath)
}

// GameConfig resolves the flags and environment into a validated config.
// getenv is usually os.Getenv.
func (o *Options) GameConfig(getenv func(string) string) (drive.Config, drive.ProfileSet, error) {
	cfg := drive.DefaultConfig()

	seedText := o.Seed
	if v := getenv(SeedEnv); v != "" {
		seedText = v
	}
	if seed, ok := drive.ParseSeed(seedText); ok {
		cfg.Seed = seed
	}

	set, err := o.Profiles()
	if err != nil {
		return cfg, set, err
	}
	cfg.Profile, err = set.Get(o.Profile)
	if err != nil {
		return cfg, set, err
	}

	cfg.HalfExtent = o.HalfExtent
	cfg.RainDrops = o.RainDrops
	cfg.LinearQueries = o.Linear
	if err := cfg.Validate(); err != nil {
		return cfg, set, fmt.Errorf("flags: %w", err)
	}
	return cfg, set, nil
}
