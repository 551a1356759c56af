package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"RC/internal/config"
	"RC/internal/profile"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	cfg, err := loadConfig(*configPathFlag)
	if err != nil {
		return err
	}
	if *maxCascadeFlag != keepConfigValue {
		cfg.Cascade.MaxCascade = *maxCascadeFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if *saveConfigFlag != "" {
		if err := config.SaveConfig(cfg, *saveConfigFlag); err != nil {
			return err
		}
		log.Printf("Wrote configuration to %s", *saveConfigFlag)
	}
	prof, err := profile.Start(*cpuProfileFlag, *memProfileFlag)
	if err != nil {
		return fmt.Errorf("starting profiler: %w", err)
	}
	if *cpuProfileFlag != "" {
		log.Printf("Writing CPU profile to %s", *cpuProfileFlag)
	}

	g, err := newGame(cfg)
	if err != nil {
		prof.Stop()
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer func() {
		// The heap profile is taken while the engine buffers are still live.
		if err := prof.Stop(); err != nil {
			log.Printf("Profiling: %v", err)
		}
		g.Close()
	}()

	if *pngFlag != "" {
		if err := g.writeSnapshot(*pngFlag); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		log.Printf("Wrote %s (compute %.2f ms)", *pngFlag, msec(g.lastCompute))
		return nil
	}

	ebiten.SetWindowSize(g.width*cfg.Window.Scale, g.height*cfg.Window.Scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(defaultTPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// loadConfig reads path, falling back to the built-in defaults when no
// path is given or the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded configuration from %s (%d shapes)", path, len(cfg.Scene.Shapes))
	return cfg, nil
}
