package cli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"citydrive/internal/drive"
)

func parse(t *testing.T, args ...string) *Options {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Register(fs)
	require.NoError(t, fs.Parse(args))
	return o
}

func env(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestGameConfig_Defaults(t *testing.T) {
	cfg, set, err := parse(t).GameConfig(env(nil))
	require.NoError(t, err)
	require.Equal(t, uint64(1), cfg.Seed)
	require.Equal(t, set.Default, cfg.Profile.Name)
	require.Equal(t, drive.DefaultHalfExtent, cfg.HalfExtent)
	require.False(t, cfg.LinearQueries)
}

func TestGameConfig_Flags(t *testing.T) {
	cfg, _, err := parse(t, "-seed", "downtown", "-profile", "arcade", "-half-extent", "6", "-rain", "0", "-linear").
		GameConfig(env(nil))
	require.NoError(t, err)
	require.Equal(t, xxhash.Sum64String("downtown"), cfg.Seed)
	require.Equal(t, "arcade", cfg.Profile.Name)
	require.Equal(t, drive.KindArcade, cfg.Profile.Controller)
	require.Equal(t, 6, cfg.HalfExtent)
	require.Zero(t, cfg.RainDrops)
	require.True(t, cfg.LinearQueries)
}

func TestGameConfig_SeedEnv(t *testing.T) {
	cfg, _, err := parse(t, "-seed", "5").GameConfig(env(map[string]string{SeedEnv: "99"}))
	require.NoError(t, err)
	require.Equal(t, uint64(99), cfg.Seed)
}

func TestGameConfig_Errors(t *testing.T) {
	_, _, err := parse(t, "-profile", "hovercraft").GameConfig(env(nil))
	require.ErrorIs(t, err, drive.ErrUnknownProfile)

	_, _, err = parse(t, "-half-extent", "-3").GameConfig(env(nil))
	require.ErrorIs(t, err, drive.ErrInvalidConfig)

	_, _, err = parse(t, "-profiles", filepath.Join(t.TempDir(), "missing.yaml")).GameConfig(env(nil))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogger(t *testing.T) {
	log, err := parse(t, "-log-level", "debug", "-dev").Logger()
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = parse(t, "-log-level", "loud").Logger()
	require.Error(t, err)
}
