// Package config loads the settings shared by the example programs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the file the examples look for in the working directory.
const DefaultFile = "learngl.toml"

// Config holds window, shader, render and log settings.
type Config struct {
	Window  Window  `toml:"window"`
	Shaders Shaders `toml:"shaders"`
	Render  Render  `toml:"render"`
	Log     Log     `toml:"log"`
}

// Window configures the GLFW window.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// Shaders configures shader loading.
type Shaders struct {
	Vertex       string `toml:"vertex"`
	Fragment     string `toml:"fragment"`
	Strict       bool   `toml:"strict"`
	HotReload    bool   `toml:"hot_reload"`
	InfoLogLimit int    `toml:"info_log_limit"`
}

// Render configures the frame.
type Render struct {
	ClearColor [4]float32 `toml:"clear_color"`
	// Debug checks the device error state after every frame.
	Debug bool `toml:"debug"`
}

// Log configures logging.
type Log struct {
	Verbose bool `toml:"verbose"`
}

// Default returns the settings of the tutorial programs.
func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Learn OpenGL",
			VSync:  true,
		},
		Shaders: Shaders{
			Vertex:       "VertexShader.txt",
			Fragment:     "FragmentShader.txt",
			InfoLogLimit: 1024,
		},
		Render: Render{
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg, keeping fields the data does not set, and validates
// the result.
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.Title == "" {
		return errors.New("window title is empty")
	}
	for i, v := range c.Render.ClearColor {
		if math.IsNaN(float64(v)) || v < 0 || v > 1 {
			return fmt.Errorf("clear_color[%d] = %v outside [0, 1]", i, v)
		}
	}
	if c.Shaders.InfoLogLimit < 0 {
		return fmt.Errorf("info_log_limit %d is negative", c.Shaders.InfoLogLimit)
	}
	return nil
}
