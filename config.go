package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config is the launcher.toml file.
type Config struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	BasePath   string `toml:"base_path"`
	Manifest   string `toml:"manifest"`
	Background string `toml:"background"`
	// OriginDot is the origin marker diameter in pixels; 0 hides it.
	OriginDot     float64 `toml:"origin_dot"`
	DotColor      string  `toml:"dot_color"`
	ShowGlow      bool    `toml:"show_glow"`
	ShowFPS       bool    `toml:"show_fps"`
	ScreenshotDir string  `toml:"screenshot_dir"`

	Layers  []*RawLayer    `toml:"layers"`
	Buttons []ButtonConfig `toml:"buttons"`
}

// ButtonConfig places an overlay button at a normalized position.
type ButtonConfig struct {
	Label string  `toml:"label"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:         "Launcher",
		Width:         1280,
		Height:        720,
		BasePath:      "/",
		Background:    "#111827",
		OriginDot:     DefaultMarkerSize,
		DotColor:      "#d63131",
		ShowGlow:      true,
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads a config file. Keys absent from the file keep their
// defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()
	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes TOML from r on top of DefaultConfig and validates it.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and colors.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.OriginDot < 0 {
		errs = append(errs, fmt.Errorf("origin_dot must not be negative, got %v", c.OriginDot))
	}
	if _, err := ParseColor(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if _, err := ParseColor(c.DotColor); err != nil {
		errs = append(errs, fmt.Errorf("dot_color: %w", err))
	}
	return errors.Join(errs...)
}

// ScreenOptions converts the config into options for NewScreen. The
// config must have passed Validate.
func (c Config) ScreenOptions(fetcher Fetcher, logger *log.Logger) ScreenOptions {
	bg, _ := ParseColor(c.Background)
	dot, _ := ParseColor(c.DotColor)
	marker := NewOriginMarker()
	marker.Size = c.OriginDot
	marker.Color = dot
	opts := ScreenOptions{
		BasePath:      c.BasePath,
		Manifest:      c.Manifest,
		Layers:        c.Layers,
		Background:    bg,
		Marker:        marker,
		ScreenshotDir: c.ScreenshotDir,
		Fetcher:       fetcher,
		Logger:        logger,
	}
	if c.ShowGlow {
		opts.Glow = NewGlow()
	}
	return opts
}

// NewButtons creates the configured overlay buttons. Empty labels use the
// sample label.
func (c Config) NewButtons(logger *log.Logger) []*Button {
	buttons := make([]*Button, 0, len(c.Buttons))
	for _, bc := range c.Buttons {
		label := bc.Label
		if label == "" {
			label = SampleButtonLabel
		}
		b := NewButton(label, Norm{X: bc.X, Y: bc.Y})
		b.Logger = logger
		buttons = append(buttons, b)
	}
	return buttons
}

// RunConfig returns the window settings.
func (c Config) RunConfig() RunConfig {
	return RunConfig{Title: c.Title, Width: c.Width, Height: c.Height}
}
