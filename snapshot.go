package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// writeSnapshot computes one frame and encodes the composed canvas as PNG.
func (g *Game) writeSnapshot(path string) error {
	if g.dirty {
		if err := g.compute(); err != nil {
			return err
		}
	}
	g.composeFrame()
	img := &image.RGBA{
		Pix:    g.canvas.Pix,
		Stride: 4 * g.width,
		Rect:   image.Rect(0, 0, g.width, g.height),
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
