package drive

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfilesYAML []byte

type ControllerKind string

const (
	KindDrivetrain ControllerKind = "drivetrain"
	KindArcade     ControllerKind = "arcade"
)

// Profile is one named set of vehicle controller constants.
type Profile struct {
	Name               string         `yaml:"-"`
	Controller         ControllerKind `yaml:"controller"`
	BaseRotationSpeed  float64        `yaml:"base_rotation_speed"`
	TightRotationSpeed float64        `yaml:"tight_rotation_speed"`
	ScaleTurnBySpeed   bool           `yaml:"scale_turn_by_speed"`

	Camera     CameraTuning     `yaml:"camera"`
	Drivetrain DrivetrainTuning `yaml:"drivetrain"`
	Arcade     ArcadeTuning     `yaml:"arcade"`
}

type CameraTuning struct {
	Offset []float64 `yaml:"offset"`
	Lerp   float64   `yaml:"lerp"`
}

type DrivetrainTuning struct {
	MaxRPM              float64   `yaml:"max_rpm"`
	IdleRPM             float64   `yaml:"idle_rpm"`
	RPMRise             float64   `yaml:"rpm_rise"`
	RPMDecayRate        float64   `yaml:"rpm_decay_rate"`
	CoastRPMDrop        float64   `yaml:"coast_rpm_drop"`
	MaxGear             int       `yaml:"max_gear"`
	ShiftDelay          float64   `yaml:"shift_delay"` // seconds
	DecelerationRate    float64   `yaml:"deceleration_rate"`
	UpshiftRPM          float64   `yaml:"upshift_rpm"`
	DownshiftRPM        float64   `yaml:"downshift_rpm"`
	GearSpeedFactors    []float64 `yaml:"gear_speed_factors"`
	ReverseAcceleration float64   `yaml:"reverse_acceleration"`
	ReverseMaxSpeed     float64   `yaml:"reverse_max_speed"`
}

type ArcadeTuning struct {
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Friction     float64 `yaml:"friction"`
	ReverseRatio float64 `yaml:"reverse_ratio"`
}

type profilesFile struct {
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// ProfileSet is a decoded profiles file.
type ProfileSet struct {
	Default  string
	Profiles map[string]Profile
}

func (p Profile) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %q: %s", ErrInvalidProfile, p.Name, fmt.Sprintf(format, args...))
	}
	if p.BaseRotationSpeed < 0 || p.TightRotationSpeed < 0 {
		return bad("negative rotation speed")
	}
	if len(p.Camera.Offset) != 3 {
		return bad("camera offset needs 3 components, got %d", len(p.Camera.Offset))
	}
	if p.Camera.Lerp <= 0 || p.Camera.Lerp > 1 {
		return bad("camera lerp %g outside (0,1]", p.Camera.Lerp)
	}

	switch p.Controller {
	case KindDrivetrain:
		d := p.Drivetrain
		switch {
		case d.MaxGear < 1:
			return bad("max gear %d", d.MaxGear)
		case len(d.GearSpeedFactors) != d.MaxGear+1:
			return bad("want %d gear speed factors, got %d", d.MaxGear+1, len(d.GearSpeedFactors))
		case d.IdleRPM <= 0 || d.MaxRPM <= d.IdleRPM:
			return bad("rpm range %g..%g", d.IdleRPM, d.MaxRPM)
		case d.UpshiftRPM <= d.IdleRPM || d.UpshiftRPM > d.MaxRPM:
			return bad("upshift rpm %g", d.UpshiftRPM)
		case d.DownshiftRPM < d.IdleRPM:
			return bad("downshift rpm %g below idle", d.DownshiftRPM)
		case d.RPMRise <= 0 || d.RPMDecayRate <= 0 || d.CoastRPMDrop <= 0:
			return bad("rpm rates must be positive")
		case d.ShiftDelay < 0 || d.DecelerationRate < 0:
			return bad("negative shift delay or deceleration")
		case d.ReverseAcceleration < 0 || d.ReverseMaxSpeed < 0:
			return bad("negative reverse tuning")
		}
		for g := 1; g <= d.MaxGear; g++ {
			if d.GearSpeedFactors[g] <= 0 {
				return bad("gear %d speed factor %g", g, d.GearSpeedFactors[g])
			}
		}
	case KindArcade:
		a := p.Arcade
		switch {
		case a.MaxSpeed <= 0:
			return bad("max speed %g", a.MaxSpeed)
		case a.Acceleration <= 0 || a.Friction < 0:
			return bad("acceleration %g friction %g", a.Acceleration, a.Friction)
		case a.ReverseRatio < 0 || a.ReverseRatio > 1:
			return bad("reverse ratio %g", a.ReverseRatio)
		}
	default:
		return bad("controller %q", p.Controller)
	}
	return nil
}

// LoadProfiles decodes and validates a profiles document.
func LoadProfiles(r io.Reader) (ProfileSet, error) {
	var f profilesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return ProfileSet{}, fmt.Errorf("decode profiles: %w", err)
	}
	if len(f.Profiles) == 0 {
		return ProfileSet{}, fmt.Errorf("%w: no profiles", ErrInvalidProfile)
	}
	for name, p := range f.Profiles {
		p.Name = name
		if err := p.Validate(); err != nil {
			return ProfileSet{}, err
		}
		f.Profiles[name] = p
	}
	set := ProfileSet{Default: f.Default, Profiles: f.Profiles}
	if set.Default == "" {
		set.Default = set.Names()[0]
	}
	if _, ok := set.Profiles[set.Default]; !ok {
		return ProfileSet{}, fmt.Errorf("%w: default %q", ErrUnknownProfile, set.Default)
	}
	return set, nil
}

func LoadProfilesFile(path string) (ProfileSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return ProfileSet{}, fmt.Errorf("open profiles: %w", err)
	}
	defer f.Close()
	set, err := LoadProfiles(f)
	if err != nil {
		return ProfileSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// MustDefaultProfiles returns the embedded profiles.
func MustDefaultProfiles() ProfileSet {
	set, err := LoadProfiles(bytes.NewReader(defaultProfilesYAML))
	if err != nil {
		panic(fmt.Errorf("embedded profiles: %w", err))
	}
	return set
}

func DefaultProfile() Profile {
	set := MustDefaultProfiles()
	return set.Profiles[set.Default]
}

// Get returns the named profile, or the default one for an empty name.
func (s ProfileSet) Get(name string) (Profile, error) {
	if name == "" {
		name = s.Default
	}
	p, ok := s.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

func (s ProfileSet) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for n := range s.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
