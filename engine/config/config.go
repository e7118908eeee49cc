// Package config holds the engine configuration and its yaml persistence.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file read by LoadOrCreateDefault when no explicit path is given.
const DefaultPath = "scion.yaml"

// Config is the full engine configuration.
type Config struct {
	AppName      string             `yaml:"app_name"`
	Window       *WindowConfig      `yaml:"window,omitempty"`
	FrameLimiter FrameLimiterConfig `yaml:"frame_limiter"`
	Logger       LoggerConfig       `yaml:"logger"`
	Render       RenderConfig       `yaml:"render"`
	Audio        AudioConfig        `yaml:"audio"`
	Profiling    ProfilingConfig    `yaml:"profiling"`
}

// WindowConfig describes the OS window. A nil window section runs the engine windowless.
type WindowConfig struct {
	Title           string `yaml:"title"`
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	Resizable       bool   `yaml:"resizable"`
	BackgroundColor string `yaml:"background_color,omitempty"`
	DefaultCursor   string `yaml:"default_cursor,omitempty"`
}

// FrameLimiterConfig holds the loop rates in hertz.
type FrameLimiterConfig struct {
	TickRate        int `yaml:"tick_rate"`
	FixedUpdateRate int `yaml:"fixed_update_rate"`
	RenderRate      int `yaml:"render_rate"`
}

// LoggerConfig selects the zap level and encoding.
type LoggerConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// RenderConfig tunes the GPU backend.
type RenderConfig struct {
	PresentMode  string `yaml:"present_mode"`
	ColorPicking bool   `yaml:"color_picking"`
}

// AudioConfig controls the audio controller.
type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate"`
}

// ProfilingConfig enables the periodic FPS and memory log.
type ProfilingConfig struct {
	Enabled       bool `yaml:"enabled"`
	IntervalTicks int  `yaml:"interval_ticks"`
}

// Default returns the configuration used when none is supplied.
//
// Returns:
//   - Config: a windowed 60 Hz configuration
func Default() Config {
	return Config{
		AppName: "Scion",
		Window: &WindowConfig{
			Title:           "Scion",
			Width:           1024,
			Height:          768,
			Resizable:       true,
			BackgroundColor: "#000000",
		},
		FrameLimiter: FrameLimiterConfig{
			TickRate:        120,
			FixedUpdateRate: 60,
			RenderRate:      60,
		},
		Logger: LoggerConfig{
			Level:    "info",
			Encoding: "console",
		},
		Render: RenderConfig{
			PresentMode: "fifo",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Profiling: ProfilingConfig{
			IntervalTicks: 600,
		},
	}
}

// Validate checks the configuration for values the engine cannot run with.
//
// Returns:
//   - error: error describing the first invalid field
func (c Config) Validate() error {
	if c.FrameLimiter.TickRate <= 0 {
		return eris.Errorf("frame_limiter.tick_rate must be positive, got %d", c.FrameLimiter.TickRate)
	}
	if c.FrameLimiter.FixedUpdateRate <= 0 {
		return eris.Errorf("frame_limiter.fixed_update_rate must be positive, got %d", c.FrameLimiter.FixedUpdateRate)
	}
	if c.FrameLimiter.RenderRate <= 0 {
		return eris.Errorf("frame_limiter.render_rate must be positive, got %d", c.FrameLimiter.RenderRate)
	}
	if c.Window != nil {
		if c.Window.Width <= 0 || c.Window.Height <= 0 {
			return eris.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
		}
		if c.Window.BackgroundColor != "" {
			if _, err := common.ParseHexColor(c.Window.BackgroundColor); err != nil {
				return eris.Wrap(err, "window.background_color")
			}
		}
	}
	switch c.Logger.Encoding {
	case "", "console", "json":
	default:
		return eris.Errorf("logger.encoding must be console or json, got %q", c.Logger.Encoding)
	}
	return nil
}

// BackgroundColor returns the parsed window background color, nil when unset or windowless.
func (c Config) BackgroundColor() *common.Color {
	if c.Window == nil || c.Window.BackgroundColor == "" {
		return nil
	}
	col, err := common.ParseHexColor(c.Window.BackgroundColor)
	if err != nil {
		return nil
	}
	return &col
}

// Load reads and validates a yaml configuration file. Missing sections keep their defaults.
//
// Parameters:
//   - path: the yaml file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "failed to open config %s", path)
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, eris.Wrapf(err, "failed to decode config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, eris.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Save writes cfg as yaml, creating parent directories as needed.
//
// Parameters:
//   - path: the destination file
//   - cfg: the configuration to write
//
// Returns:
//   - error: error if the file cannot be written
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "failed to create config directory %s", dir)
		}
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return eris.Wrap(err, "failed to encode config")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return eris.Wrapf(err, "failed to write config %s", path)
	}
	return nil
}

// LoadOrCreateDefault loads path, writing the default configuration there first when the file does not exist.
//
// Parameters:
//   - path: the yaml file path, DefaultPath when empty
//
// Returns:
//   - Config: the loaded or default configuration
//   - error: error if the file exists but is invalid, or the default cannot be written
func LoadOrCreateDefault(path string) (Config, error) {
	path = common.Coalesce(path, DefaultPath)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return Load(path)
}
