package config

import "flag"

// Flags are command-line overrides. Zero values mean "not set".
type Flags struct {
	Config     *string
	Preset     *string
	Mode       *string
	Debug      *bool
	Windowed   *bool
	Fullscreen *bool
	Ring       *int
	Width      *int
	Height     *int
}

// NewFlags registers the override flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config:     fs.String("config", "", "Path to config file"),
		Preset:     fs.String("preset", "", "Plant preset name"),
		Mode:       fs.String("mode", "", "Propagation mode: additive or compositional"),
		Debug:      fs.Bool("debug", false, "Enable debug logging"),
		Windowed:   fs.Bool("windowed", false, "Run in windowed mode"),
		Fullscreen: fs.Bool("fullscreen", false, "Run in fullscreen mode"),
		Ring:       fs.Int("ring", 0, "Vertices per mesh ring"),
		Width:      fs.Int("width", 0, "Window width"),
		Height:     fs.Int("height", 0, "Window height"),
	}
}

// ConfigPath returns the explicit config path, if any.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.Config
}

func (f *Flags) presetName() string {
	if f == nil {
		return ""
	}
	return *f.Preset
}

// apply writes set flags over cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.Mode != "" {
		cfg.Plant.Mode = *f.Mode
	}
	if *f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Viewer.ShowFPS = true
	}
	if *f.Windowed {
		cfg.Viewer.Fullscreen = false
	}
	if *f.Fullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *f.Ring > 0 {
		cfg.Mesh.RingResolution = *f.Ring
	}
	if *f.Width > 0 {
		cfg.Viewer.Width = *f.Width
	}
	if *f.Height > 0 {
		cfg.Viewer.Height = *f.Height
	}
}
