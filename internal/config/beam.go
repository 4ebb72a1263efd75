package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/beamrays/internal/beam"
	"github.com/banshee-data/beamrays/internal/coords"
	"github.com/banshee-data/beamrays/internal/units"
)

// DefaultConfigPath is the path to the canonical beam defaults file.
const DefaultConfigPath = "config/beam.defaults.json"

// BeamConfig describes a beam to generate and the detector it is mapped onto.
// Every field is optional; the Get* methods supply defaults for omitted ones.
type BeamConfig struct {
	// Beam geometry
	Kind        *string  `json:"kind,omitempty"` // "circular" or "point"
	NumRays     *int     `json:"num_rays,omitempty"`
	OuterRadius *float64 `json:"outer_radius,omitempty"` // metres, circular beams
	Semiangle   *float64 `json:"semiangle,omitempty"`    // radians, point beams
	Random      *bool    `json:"random,omitempty"`
	Seed        *uint64  `json:"seed,omitempty"` // 0 draws from the global source

	// Electron source
	AcceleratingVoltage *float64 `json:"accelerating_voltage,omitempty"`
	VoltageUnit         *string  `json:"voltage_unit,omitempty"` // "v" or "kv"

	// Detector
	DetectorShape *[2]int  `json:"detector_shape,omitempty"` // (sy, sx)
	PixelSize     *float64 `json:"pixel_size,omitempty"`     // metres
	FlipY         *bool    `json:"flip_y,omitempty"`
	ScanRotation  *float64 `json:"scan_rotation,omitempty"` // degrees
}

// EmptyBeamConfig returns a BeamConfig with all fields unset.
func EmptyBeamConfig() *BeamConfig {
	return &BeamConfig{}
}

// LoadBeamConfig loads a BeamConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Omitted fields keep
// their defaults, so partial configs are safe.
func LoadBeamConfig(path string) (*BeamConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyBeamConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the beam defaults from DefaultConfigPath,
// searching the current directory and its parents. Panics if the file cannot
// be loaded; intended for test setup.
func MustLoadDefaultConfig() *BeamConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadBeamConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Validate checks that the configured values are usable.
func (c *BeamConfig) Validate() error {
	if c.Kind != nil {
		if _, err := beam.ParseKind(*c.Kind); err != nil {
			return fmt.Errorf("kind: %w", err)
		}
	}
	if c.NumRays != nil && *c.NumRays < 1 {
		return fmt.Errorf("num_rays must be at least 1, got %d", *c.NumRays)
	}
	if c.OuterRadius != nil && !positive(*c.OuterRadius) {
		return fmt.Errorf("outer_radius must be positive, got %g", *c.OuterRadius)
	}
	if c.Semiangle != nil && !positive(*c.Semiangle) {
		return fmt.Errorf("semiangle must be positive, got %g", *c.Semiangle)
	}
	if c.AcceleratingVoltage != nil && !positive(*c.AcceleratingVoltage) {
		return fmt.Errorf("accelerating_voltage must be positive, got %g", *c.AcceleratingVoltage)
	}
	if c.VoltageUnit != nil && !units.IsValidVoltage(*c.VoltageUnit) {
		return fmt.Errorf("voltage_unit must be one of v, kv, got %q", *c.VoltageUnit)
	}
	if c.DetectorShape != nil && (c.DetectorShape[0] <= 0 || c.DetectorShape[1] <= 0) {
		return fmt.Errorf("detector_shape must be positive, got %v", *c.DetectorShape)
	}
	if c.PixelSize != nil && !positive(*c.PixelSize) {
		return fmt.Errorf("pixel_size must be positive, got %g", *c.PixelSize)
	}
	return nil
}

// GetKind returns the beam kind or the default (circular).
func (c *BeamConfig) GetKind() beam.Kind {
	if c.Kind == nil {
		return beam.KindCircular
	}
	return beam.Kind(*c.Kind)
}

// GetNumRays returns the approximate ray count or the default.
func (c *BeamConfig) GetNumRays() int {
	if c.NumRays == nil {
		return 256
	}
	return *c.NumRays
}

// GetOuterRadius returns the circular beam radius or the default.
func (c *BeamConfig) GetOuterRadius() float64 {
	if c.OuterRadius == nil {
		return 1e-4 // 100 µm
	}
	return *c.OuterRadius
}

// GetSemiangle returns the point beam semiangle or the default.
func (c *BeamConfig) GetSemiangle() float64 {
	if c.Semiangle == nil {
		return 1e-3 // 1 mrad
	}
	return *c.Semiangle
}

// GetSize returns the sampling radius for the configured kind: the outer
// radius for circular beams and the semiangle for point beams.
func (c *BeamConfig) GetSize() float64 {
	if c.GetKind() == beam.KindPoint {
		return c.GetSemiangle()
	}
	return c.GetOuterRadius()
}

// GetRandom returns whether random disc sampling is enabled.
func (c *BeamConfig) GetRandom() bool {
	if c.Random == nil {
		return false
	}
	return *c.Random
}

// GetSeed returns the random seed or 0.
func (c *BeamConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// GetAcceleratingVoltage returns the accelerating voltage in volts.
func (c *BeamConfig) GetAcceleratingVoltage() float64 {
	if c.AcceleratingVoltage == nil {
		return 200e3
	}
	unit := units.Volt
	if c.VoltageUnit != nil {
		unit = *c.VoltageUnit
	}
	return units.ToVolts(*c.AcceleratingVoltage, unit)
}

// GetDetector returns the detector geometry with defaults filled in.
func (c *BeamConfig) GetDetector() coords.Detector {
	d := coords.Detector{
		Shape:     [2]int{128, 128},
		PixelSize: 1e-6,
	}
	if c.DetectorShape != nil {
		d.Shape = *c.DetectorShape
	}
	if c.PixelSize != nil {
		d.PixelSize = *c.PixelSize
	}
	if c.FlipY != nil {
		d.FlipY = *c.FlipY
	}
	if c.ScanRotation != nil {
		d.ScanRotation = *c.ScanRotation
	}
	return d
}
