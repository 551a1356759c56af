package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"RC/internal/cascade"
	"RC/internal/shape"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"gopkg.in/yaml.v2"
)

// DeriveMaxCascade in the cascade section asks for the cascade count to be
// derived from the window diagonal.
const DeriveMaxCascade = -1

// ErrBadShape is wrapped by every scene entry validation failure.
var ErrBadShape = errors.New("config: bad shape")

// Config represents the main configuration
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Cascade CascadeConfig `yaml:"cascade"`
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
}

// WindowConfig sizes the lit field and the viewer window
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
}

// CascadeConfig holds the startup cascade parameters
type CascadeConfig struct {
	D0            int `yaml:"d0"`
	R0            int `yaml:"r0"`
	RL0           int `yaml:"rl0"`
	SpatialFactor int `yaml:"spatial_factor"`
	AngularFactor int `yaml:"angular_factor"`
	LengthFactor  int `yaml:"length_factor"`
	MaxCascade    int `yaml:"max_cascade"` // -1 derives it from the diagonal
}

// RenderConfig holds the initial viewer toggles
type RenderConfig struct {
	Illumination    bool `yaml:"illumination"`
	Objects         bool `yaml:"objects"`
	DistanceMap     bool `yaml:"distance_map"`
	Rays            bool `yaml:"rays"`
	HolographicRays bool `yaml:"holographic_rays"`
}

// SceneConfig lists the shapes in paint order
type SceneConfig struct {
	Shapes []ShapeConfig `yaml:"shapes"`
}

// ShapeConfig describes one shape. Which geometry fields are read depends on
// Kind: circles use Center and Radius, rectangles Center and Size (half
// extents), triangles three Points and lines two Points and Thickness.
type ShapeConfig struct {
	Kind       string      `yaml:"kind"`
	Center     []float32   `yaml:"center,omitempty"`
	Size       []float32   `yaml:"size,omitempty"`
	Radius     float32     `yaml:"radius,omitempty"`
	Points     [][]float32 `yaml:"points,omitempty"`
	Thickness  float32     `yaml:"thickness,omitempty"`
	Color      string      `yaml:"color"`
	Emissivity float32     `yaml:"emissivity"`
}

// DefaultConfig creates a default configuration: a 512x512 field lit by four
// emissive circles around a dark rectangle.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Width: 512, Height: 512, Scale: 1},
		Cascade: CascadeConfig{
			D0:            64,
			R0:            4,
			RL0:           16,
			SpatialFactor: 2,
			AngularFactor: 4,
			LengthFactor:  3,
			MaxCascade:    DeriveMaxCascade,
		},
		Render: RenderConfig{
			Illumination: true,
			Objects:      true,
		},
		Scene: SceneConfig{Shapes: []ShapeConfig{
			{Kind: "rectangle", Center: []float32{192, 192}, Size: []float32{50, 25}, Color: "#404040", Emissivity: 0},
			{Kind: "circle", Center: []float32{256, 256}, Radius: 25, Color: "#fff0e3", Emissivity: 1},
			{Kind: "circle", Center: []float32{128, 128}, Radius: 12, Color: "#ff1000", Emissivity: 1},
			{Kind: "circle", Center: []float32{384, 128}, Radius: 12, Color: "#00ff00", Emissivity: 1},
			{Kind: "circle", Center: []float32{128, 384}, Radius: 25, Color: "#0020ff", Emissivity: 1},
		}},
	}
}

// LoadConfig loads the configuration from a file. On error the defaults are
// returned alongside it.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config %s: %w", filePath, err)
	}

	return config, config.Validate()
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks the window and every scene entry.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.Scale < 1 {
		return fmt.Errorf("config: window scale %d must be at least 1", c.Window.Scale)
	}
	if c.Cascade.MaxCascade < DeriveMaxCascade {
		return fmt.Errorf("config: max_cascade %d (use -1 to derive)", c.Cascade.MaxCascade)
	}
	for i, sc := range c.Scene.Shapes {
		if _, err := sc.Shape(); err != nil {
			return fmt.Errorf("scene shape %d: %w", i, err)
		}
	}
	return nil
}

// Params resolves the cascade section, deriving the cascade count from the
// window diagonal when max_cascade is -1.
func (c *Config) Params() (cascade.Params, error) {
	cc := c.Cascade
	p := cascade.Params{
		D0:            cc.D0,
		R0:            cc.R0,
		RL0:           cc.RL0,
		SpatialFactor: cc.SpatialFactor,
		AngularFactor: cc.AngularFactor,
		LengthFactor:  cc.LengthFactor,
		MaxCascade:    cc.MaxCascade,
	}
	if p.MaxCascade == DeriveMaxCascade {
		diag := math32.Hypot(float32(c.Window.Width), float32(c.Window.Height))
		n, err := cascade.DeriveMaxCascade(diag, p.D0, p.SpatialFactor, p.LengthFactor)
		if err != nil {
			return p, err
		}
		p.MaxCascade = n
	}
	return p, p.Validate()
}

// BuildScene converts the scene section into a shape.Scene sized to the
// window.
func (c *Config) BuildScene() (*shape.Scene, error) {
	sc := shape.NewScene(c.Window.Width, c.Window.Height)
	for i, cfg := range c.Scene.Shapes {
		s, err := cfg.Shape()
		if err != nil {
			return nil, fmt.Errorf("scene shape %d: %w", i, err)
		}
		sc.Add(s)
	}
	return sc, nil
}

// Shape converts one scene entry.
func (sc ShapeConfig) Shape() (shape.Shape, error) {
	kind, err := shape.ParseKind(sc.Kind)
	if err != nil {
		return shape.Shape{}, fmt.Errorf("%w: %v", ErrBadShape, err)
	}
	col, err := ParseColor(sc.Color)
	if err != nil {
		return shape.Shape{}, fmt.Errorf("%w: %v", ErrBadShape, err)
	}
	m := shape.Material{Color: col, Emissivity: sc.Emissivity}
	switch kind {
	case shape.Circle:
		c, err := vec("center", sc.Center)
		if err != nil {
			return shape.Shape{}, err
		}
		if sc.Radius <= 0 {
			return shape.Shape{}, fmt.Errorf("%w: circle radius %v", ErrBadShape, sc.Radius)
		}
		return shape.NewCircle(c, sc.Radius, m), nil
	case shape.Rectangle:
		c, err := vec("center", sc.Center)
		if err != nil {
			return shape.Shape{}, err
		}
		half, err := vec("size", sc.Size)
		if err != nil {
			return shape.Shape{}, err
		}
		if half.X <= 0 || half.Y <= 0 {
			return shape.Shape{}, fmt.Errorf("%w: rectangle size %v", ErrBadShape, sc.Size)
		}
		return shape.NewRectangle(c, half, m), nil
	case shape.Triangle:
		pts, err := points(sc.Points, 3)
		if err != nil {
			return shape.Shape{}, err
		}
		return shape.NewTriangle(pts[0], pts[1], pts[2], m), nil
	case shape.Line:
		pts, err := points(sc.Points, 2)
		if err != nil {
			return shape.Shape{}, err
		}
		if sc.Thickness < 0 {
			return shape.Shape{}, fmt.Errorf("%w: negative line thickness", ErrBadShape)
		}
		return shape.NewLine(pts[0], pts[1], sc.Thickness, m), nil
	}
	return shape.Shape{}, fmt.Errorf("%w: unhandled kind %v", ErrBadShape, kind)
}

func vec(name string, v []float32) (ms2.Vec, error) {
	if len(v) != 2 {
		return ms2.Vec{}, fmt.Errorf("%w: %s needs 2 values, got %d", ErrBadShape, name, len(v))
	}
	return ms2.Vec{X: v[0], Y: v[1]}, nil
}

func points(raw [][]float32, n int) ([]ms2.Vec, error) {
	if len(raw) != n {
		return nil, fmt.Errorf("%w: need %d points, got %d", ErrBadShape, n, len(raw))
	}
	out := make([]ms2.Vec, n)
	for i, p := range raw {
		v, err := vec(fmt.Sprintf("point %d", i), p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ParseColor reads "#rrggbb" or "#rrggbbaa"; the leading '#' is optional.
// Alpha defaults to opaque.
func ParseColor(s string) (shape.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return shape.Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return shape.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	ch := func(shift uint) float32 { return float32((v>>shift)&0xff) / 255 }
	return shape.Color{R: ch(24), G: ch(16), B: ch(8), A: ch(0)}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c shape.Color) string {
	b := func(v float32) uint8 { return uint8(math32.Round(math32.Max(0, math32.Min(1, v)) * 255)) }
	if b(c.A) == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
}

// FromScene captures the shapes of sc as scene entries, so a dragged layout
// can be saved back.
func FromScene(sc *shape.Scene) SceneConfig {
	out := SceneConfig{Shapes: make([]ShapeConfig, 0, len(sc.Shapes))}
	for _, s := range sc.Shapes {
		cfg := ShapeConfig{
			Kind:       s.Kind.String(),
			Color:      FormatColor(s.Material.Color),
			Emissivity: s.Material.Emissivity,
		}
		switch s.Kind {
		case shape.Circle:
			cfg.Center = []float32{s.Center.X, s.Center.Y}
			cfg.Radius = s.Radius
		case shape.Rectangle:
			cfg.Center = []float32{s.Center.X, s.Center.Y}
			cfg.Size = []float32{s.Half.X, s.Half.Y}
		case shape.Triangle:
			cfg.Points = [][]float32{{s.P0.X, s.P0.Y}, {s.P1.X, s.P1.Y}, {s.P2.X, s.P2.Y}}
		case shape.Line:
			cfg.Points = [][]float32{{s.P0.X, s.P0.Y}, {s.P1.X, s.P1.Y}}
			cfg.Thickness = s.Thickness
		}
		out.Shapes = append(out.Shapes, cfg)
	}
	return out
}
