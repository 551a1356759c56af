package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"RC/internal/cascade"
	"RC/internal/shape"
)

func TestDefaultConfigScene(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	sc, err := cfg.BuildScene()
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	if len(sc.Shapes) != 5 || sc.Width != 512 || sc.Height != 512 {
		t.Fatalf("default scene: %d shapes, %dx%d", len(sc.Shapes), sc.Width, sc.Height)
	}
	rect := sc.Shapes[0]
	if rect.Kind != shape.Rectangle || rect.Material.Emissivity != 0 || rect.Half.X != 50 || rect.Half.Y != 25 {
		t.Fatalf("first shape: %+v", rect)
	}
	for _, s := range sc.Shapes[1:] {
		if s.Kind != shape.Circle || s.Material.Emissivity != 1 || s.Material.Color.A != 1 {
			t.Fatalf("emitter: %+v", s)
		}
	}
}

func TestParamsDerivesMaxCascade(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.MaxCascade != 5 {
		t.Fatalf("derived max cascade %d want 5", p.MaxCascade)
	}
	cfg.Cascade.MaxCascade = 2
	if p, _ := cfg.Params(); p.MaxCascade != 2 {
		t.Fatalf("explicit max cascade ignored: %d", p.MaxCascade)
	}
	cfg.Cascade.LengthFactor = 1
	cfg.Cascade.MaxCascade = DeriveMaxCascade
	if _, err := cfg.Params(); !errors.Is(err, cascade.ErrDegenerateGrowth) {
		t.Fatalf("f=1: got %v want ErrDegenerateGrowth", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	cfg := DefaultConfig()
	cfg.Cascade.MaxCascade = 3
	cfg.Render.Rays = true
	cfg.Scene.Shapes = append(cfg.Scene.Shapes,
		ShapeConfig{Kind: "triangle", Points: [][]float32{{10, 10}, {40, 12}, {20, 50}}, Color: "#80808080", Emissivity: 0.5},
		ShapeConfig{Kind: "line", Points: [][]float32{{300, 400}, {450, 420}}, Thickness: 3, Color: "#ffffff"},
	)
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Cascade != cfg.Cascade || got.Render != cfg.Render || got.Window != cfg.Window {
		t.Fatalf("sections differ: %+v vs %+v", got, cfg)
	}
	sc, err := got.BuildScene()
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	if len(sc.Shapes) != 7 || sc.Shapes[5].Kind != shape.Triangle || sc.Shapes[6].Thickness != 3 {
		t.Fatalf("loaded scene: %+v", sc.Shapes)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	if err := os.WriteFile(path, []byte("cascade:\n  max_cascade: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cascade.MaxCascade != 1 || cfg.Cascade.D0 != 64 || len(cfg.Scene.Shapes) != 5 {
		t.Fatalf("partial file: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) || cfg == nil {
		t.Fatalf("missing file: got %v", err)
	}

	dir := t.TempDir()
	cases := []struct {
		name, body string
	}{
		{"syntax", "window: [1, 2\n"},
		{"kind", "scene:\n  shapes:\n    - kind: hexagon\n      color: '#ffffff'\n"},
		{"radius", "scene:\n  shapes:\n    - kind: circle\n      center: [1, 2]\n      color: '#ffffff'\n"},
		{"color", "scene:\n  shapes:\n    - kind: circle\n      center: [1, 2]\n      radius: 3\n      color: red\n"},
		{"window", "window:\n  width: 0\n"},
		{"rect size", "scene:\n  shapes:\n    - kind: rect\n      center: [10, 10]\n      size: [5, -2]\n      color: '#ffffff'\n"},
	}
	for _, c := range cases {
		path := filepath.Join(dir, c.name+".yaml")
		if err := os.WriteFile(path, []byte(c.body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected an error", c.name)
		}
	}
}

func TestRectangleSizeMustBePositive(t *testing.T) {
	for _, size := range [][]float32{{0, 4}, {4, 0}, {-3, 4}, {4, -1}} {
		sc := ShapeConfig{Kind: "rectangle", Center: []float32{10, 10}, Size: size, Color: "#ffffff"}
		if _, err := sc.Shape(); !errors.Is(err, ErrBadShape) {
			t.Fatalf("size %v: got %v want ErrBadShape", size, err)
		}
	}
	sc := ShapeConfig{Kind: "rectangle", Center: []float32{10, 10}, Size: []float32{4, 2}, Color: "#ffffff"}
	if _, err := sc.Shape(); err != nil {
		t.Fatalf("positive size: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff1000")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || c.G != float32(0x10)/255 || c.B != 0 || c.A != 1 {
		t.Fatalf("got %+v", c)
	}
	if FormatColor(c) != "#ff1000" {
		t.Fatalf("format: got %s", FormatColor(c))
	}
	if c, _ := ParseColor("00000080"); FormatColor(c) != "#00000080" {
		t.Fatalf("alpha round trip: got %s", FormatColor(c))
	}
	for _, bad := range []string{"", "#fff", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestFromScene(t *testing.T) {
	sc, err := DefaultConfig().BuildScene()
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Scene = FromScene(sc)
	back, err := cfg.BuildScene()
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	for i := range sc.Shapes {
		if back.Shapes[i] != sc.Shapes[i] {
			t.Fatalf("shape %d: %+v vs %+v", i, back.Shapes[i], sc.Shapes[i])
		}
	}
}
