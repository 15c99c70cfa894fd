package drive

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DecodeVehicleSpec reads a YAML vehicle description. Missing fields keep
// their DefaultVehicleSpec values.
func DecodeVehicleSpec(r io.Reader) (VehicleSpec, error) {
	spec := DefaultVehicleSpec()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return VehicleSpec{}, fmt.Errorf("decode vehicle: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 || spec.Length <= 0 || spec.Shrink < 0 {
		return VehicleSpec{}, fmt.Errorf("%w: vehicle %q dimensions %gx%gx%g shrink %g",
			ErrInvalidConfig, spec.Name, spec.Width, spec.Height, spec.Length, spec.Shrink)
	}
	return spec, nil
}

func LoadVehicleSpec(path string) (VehicleSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return VehicleSpec{}, fmt.Errorf("open vehicle: %w", err)
	}
	defer f.Close()
	spec, err := DecodeVehicleSpec(f)
	if err != nil {
		return VehicleSpec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// LoadVehicleAsync loads path on its own goroutine. The channel yields the
// spec once, or closes empty when loading fails; failures are logged only.
// An empty path delivers DefaultVehicleSpec.
func LoadVehicleAsync(ctx context.Context, path string, log *zap.Logger) <-chan VehicleSpec {
	if log == nil {
		log = zap.NewNop()
	}
	out := make(chan VehicleSpec, 1)
	go func() {
		defer close(out)
		if path == "" {
			out <- DefaultVehicleSpec()
			return
		}
		if ctx.Err() != nil {
			return
		}
		spec, err := LoadVehicleSpec(path)
		if err != nil {
			log.Warn("vehicle asset unavailable", zap.String("path", path), zap.Error(err))
			return
		}
		out <- spec
	}()
	return out
}
