// Package config handles stemforge configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/stemforge/internal/plant"
	"github.com/Faultbox/stemforge/pkg/math"
)

// Config holds all settings.
type Config struct {
	Plant   PlantConfig   `yaml:"plant"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Solver  SolverConfig  `yaml:"solver"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// PlantConfig describes the generated stem chain.
type PlantConfig struct {
	Preset      string     `yaml:"preset,omitempty"`
	Lengths     []float32  `yaml:"lengths"` // tip first
	Size        float32    `yaml:"size"`
	Compliance  float32    `yaml:"compliance"`
	Mode        string     `yaml:"mode"`
	Base        [3]float32 `yaml:"base"`
	BendDegrees float32    `yaml:"bend_deg"`
}

// MeshConfig holds extrusion settings.
type MeshConfig struct {
	RingResolution int `yaml:"ring_resolution"`
}

// SolverConfig holds relaxation settings.
type SolverConfig struct {
	LockSolved    bool `yaml:"lock_solved"`
	TicksPerFrame int  `yaml:"ticks_per_frame"`
}

// ViewerConfig holds window and display settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
	Wireframe  bool `yaml:"wireframe"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the three-stem plant.
func Default() *Config {
	return &Config{
		Plant: PlantConfig{
			Lengths:    []float32{1.1, 1.2, 1.3},
			Size:       0.2,
			Compliance: 0.1,
			Mode:       "additive",
		},
		Mesh: MeshConfig{
			RingResolution: 6,
		},
		Solver: SolverConfig{
			TicksPerFrame: 1,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values the loaders cannot enforce.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Plant.Lengths) == 0 {
		errs = append(errs, errors.New("plant.lengths: at least one stem is required"))
	}
	for i, l := range c.Plant.Lengths {
		if !(l > 0) {
			errs = append(errs, fmt.Errorf("plant.lengths[%d]: must be positive, got %v", i, l))
		}
	}
	if !(c.Plant.Size > 0) {
		errs = append(errs, fmt.Errorf("plant.size: must be positive, got %v", c.Plant.Size))
	}
	if !(c.Plant.Compliance > 0 && c.Plant.Compliance <= 1) {
		errs = append(errs, fmt.Errorf("plant.compliance: must be in (0, 1], got %v", c.Plant.Compliance))
	}
	if _, err := plant.ParseMode(c.Plant.Mode); err != nil {
		errs = append(errs, fmt.Errorf("plant.mode: %w", err))
	}
	if c.Mesh.RingResolution < 3 {
		errs = append(errs, fmt.Errorf("mesh.ring_resolution: must be at least 3, got %d", c.Mesh.RingResolution))
	}
	if c.Solver.TicksPerFrame < 0 {
		errs = append(errs, fmt.Errorf("solver.ticks_per_frame: must not be negative, got %d", c.Solver.TicksPerFrame))
	}
	return errors.Join(errs...)
}

// PlantSpec converts the plant, mesh and solver sections to a plant.Spec.
func (c *Config) PlantSpec() (plant.Spec, error) {
	mode, err := plant.ParseMode(c.Plant.Mode)
	if err != nil {
		return plant.Spec{}, err
	}
	lengths := make([]float32, len(c.Plant.Lengths))
	copy(lengths, c.Plant.Lengths)
	return plant.Spec{
		Lengths:        lengths,
		Size:           c.Plant.Size,
		Compliance:     c.Plant.Compliance,
		Mode:           mode,
		Base:           math.Vec3{X: c.Plant.Base[0], Y: c.Plant.Base[1], Z: c.Plant.Base[2]},
		BendDegrees:    c.Plant.BendDegrees,
		RingResolution: c.Mesh.RingResolution,
		LockSolved:     c.Solver.LockSolved,
	}, nil
}
