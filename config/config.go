// Package config loads the settings of the waypoint demo from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Point is a waypoint in window coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Window describes the offscreen render target.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Actor describes one shape in the scene.
type Actor struct {
	Name   string  `yaml:"name"`
	Shape  string  `yaml:"shape"`
	Size   float64 `yaml:"size"`
	Color  string  `yaml:"color"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Follow bool    `yaml:"follow"`
}

// Config is the demo configuration.
type Config struct {
	Window Window `yaml:"window"`

	// FPS is the fixed update rate. Pace decides whether frames are also
	// throttled to it in wall-clock time.
	FPS  int  `yaml:"fps"`
	Pace bool `yaml:"pace"`

	// Frames is the number of frames to render. An unset or zero value in
	// YAML means 600. A Config whose Frames is set to 0 after loading, as
	// waypoints run --frames 0 does, renders until interrupted.
	Frames int `yaml:"frames"`

	Speed        float64 `yaml:"speed"`
	ArriveRadius float64 `yaml:"arrive_radius"`
	Waypoints    []Point `yaml:"waypoints"`
	Actors       []Actor `yaml:"actors"`

	// OutputDir receives numbered PNG frames. Empty discards frames.
	OutputDir  string `yaml:"output_dir"`
	Labels     bool   `yaml:"labels"`
	MaskCache  int    `yaml:"mask_cache"`
	Background string `yaml:"background"`
}

// Default returns the built-in scene: a triangle and a circle that walks the
// four corners of a square.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename, expands environment variables in it and fills every
// unset field with its default.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", filename, err)
	}
	return Parse([]byte(os.ExpandEnv(string(b))))
}

// Parse decodes YAML data and fills defaults.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = "waypoints"
	}
	if c.Window.Width == 0 {
		c.Window.Width = 800
	}
	if c.Window.Height == 0 {
		c.Window.Height = 600
	}
	if c.FPS == 0 {
		c.FPS = 60
	}
	if c.Frames == 0 {
		c.Frames = 600
	}
	if c.Speed == 0 {
		c.Speed = 200
	}
	if c.ArriveRadius == 0 {
		c.ArriveRadius = 10
	}
	if len(c.Waypoints) == 0 {
		c.Waypoints = []Point{{100, 100}, {400, 100}, {400, 400}, {100, 400}}
	}
	if len(c.Actors) == 0 {
		c.Actors = []Actor{
			{Name: "triangle", Shape: "triangle", Size: 50, Color: "#0000ff", X: 200, Y: 200},
			{Name: "circle", Shape: "circle", Size: 25, Color: "#ff0000", X: 100, Y: 100, Follow: true},
		}
	}
	if c.MaskCache == 0 {
		c.MaskCache = 32
	}
	if c.Background == "" {
		c.Background = "#000000"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width < 0 || c.Window.Height < 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.FPS < 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	case c.Speed < 0:
		return fmt.Errorf("%w: speed %g", ErrInvalid, c.Speed)
	case c.ArriveRadius < 0:
		return fmt.Errorf("%w: arrive_radius %g", ErrInvalid, c.ArriveRadius)
	}
	followers := 0
	for i, a := range c.Actors {
		if a.Name == "" {
			return fmt.Errorf("%w: actor %d has no name", ErrInvalid, i)
		}
		switch a.Shape {
		case "circle", "triangle", "rectangle":
		default:
			return fmt.Errorf("%w: actor %q has unknown shape %q", ErrInvalid, a.Name, a.Shape)
		}
		if a.Size <= 0 {
			return fmt.Errorf("%w: actor %q has size %g", ErrInvalid, a.Name, a.Size)
		}
		if a.Follow {
			followers++
		}
	}
	if followers > 1 {
		return fmt.Errorf("%w: %d actors follow the waypoints, at most one may", ErrInvalid, followers)
	}
	return nil
}
