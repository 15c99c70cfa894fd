package drive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultProfiles(t *testing.T) {
	set := MustDefaultProfiles()
	require.Equal(t, []string{"arcade", "classic", "drivetrain"}, set.Names())
	require.Equal(t, "drivetrain", set.Default)

	dt, err := set.Get("")
	require.NoError(t, err)
	require.Equal(t, "drivetrain", dt.Name)
	require.Equal(t, KindDrivetrain, dt.Controller)
	require.Equal(t, 6, dt.Drivetrain.MaxGear)
	require.Equal(t, 9000.0, dt.Drivetrain.MaxRPM)
	require.Equal(t, 0.5, dt.Drivetrain.ShiftDelay)
	require.Len(t, dt.Drivetrain.GearSpeedFactors, 7)

	arcade, err := set.Get("arcade")
	require.NoError(t, err)
	require.True(t, arcade.ScaleTurnBySpeed)
	require.Equal(t, 0.25, arcade.Arcade.MaxSpeed)

	classic, err := set.Get("classic")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1.2, -2.5}, classic.Camera.Offset)

	_, err = set.Get("hovercraft")
	require.ErrorIs(t, err, ErrUnknownProfile)
}

const tinyProfile = `
profiles:
  kart:
    controller: arcade
    base_rotation_speed: 0.04
    tight_rotation_speed: 0.08
    camera:
      offset: [0, 1, -2]
      lerp: 0.2
    arcade:
      max_speed: 0.3
      acceleration: 0.01
      friction: 0.01
      reverse_ratio: 0.5
`

func TestLoadProfiles(t *testing.T) {
	t.Run("single profile becomes default", func(t *testing.T) {
		set, err := LoadProfiles(strings.NewReader(tinyProfile))
		require.NoError(t, err)
		require.Equal(t, "kart", set.Default)
		p, err := set.Get("")
		require.NoError(t, err)
		require.Equal(t, 0.3, p.Arcade.MaxSpeed)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(tinyProfile), 0o644))
		set, err := LoadProfilesFile(path)
		require.NoError(t, err)
		require.Contains(t, set.Profiles, "kart")

		_, err = LoadProfilesFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	invalid := map[string]string{
		"gear factor count": strings.Replace(string(defaultProfilesYAML),
			"[0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6]", "[0, 0.1, 0.2]", 1),
		"zero gear factor": strings.Replace(string(defaultProfilesYAML),
			"[0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6]", "[0, 0.1, 0, 0.3, 0.4, 0.5, 0.6]", 1),
		"camera offset":   strings.Replace(tinyProfile, "[0, 1, -2]", "[0, 1]", 1),
		"controller":      strings.Replace(tinyProfile, "controller: arcade", "controller: hover", 1),
		"reverse ratio":   strings.Replace(tinyProfile, "reverse_ratio: 0.5", "reverse_ratio: 2", 1),
		"unknown default": "default: nope\n" + tinyProfile,
	}
	for name, doc := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProfiles(strings.NewReader(doc))
			require.Error(t, err)
		})
	}

	t.Run("invalid profile sentinel", func(t *testing.T) {
		doc := strings.Replace(tinyProfile, "max_speed: 0.3", "max_speed: 0", 1)
		_, err := LoadProfiles(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		doc := strings.Replace(tinyProfile, "lerp: 0.2", "lerp: 0.2\n      zoom: 3", 1)
		_, err := LoadProfiles(strings.NewReader(doc))
		require.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadProfiles(strings.NewReader(""))
		require.Error(t, err)
	})
}
