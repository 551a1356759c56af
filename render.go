package main

import (
	"fmt"

	"RC/internal/cascade"
	"RC/internal/overlay"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the enabled layers and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.composeFrame()
	screen.WritePixels(g.canvas.Pix)

	if *debugFlag {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

// composeFrame paints the canvas back to front: distance map, irradiance,
// objects, then ray overlays.
func (g *Game) composeFrame() {
	g.canvas.Clear()
	if g.view.distanceMap {
		cascade.DistancePixels(g.engine.Distance(), g.scene.Diagonal(), g.canvas.Pix)
	}
	if g.view.illumination {
		cascade.IrradiancePixels(g.engine.Irradiance(), g.canvas.Pix)
	}
	if g.view.objects {
		cascade.OverlayMaterials(g.engine.Materials(), g.canvas.Pix)
	}
	if g.view.rays {
		opt := overlay.RayOptions{Important: g.view.important, Mouse: g.mouse}
		for _, lv := range g.engine.Levels() {
			if g.view.level != allLevels && lv.Index != g.view.level {
				continue
			}
			overlay.DrawLevelRays(g.canvas, g.engine.Pyramid(), lv, opt)
		}
	}
	if g.view.holographic {
		overlay.DrawHolographicRays(g.canvas, holographicLevel)
	}
}

func (g *Game) debugText() string {
	level := "all"
	if g.view.level != allLevels {
		level = fmt.Sprint(g.view.level)
	}
	return fmt.Sprintf("FPS: %.1f\nCompute: %.2f ms (%d cascades, %d workers)\nRay level: %s (+/-)\n"+
		"[L]ight %s [O]bjects %s [M]ap %s [R]ays %s [H]olo %s",
		ebiten.ActualFPS(), msec(g.lastCompute), len(g.engine.Levels()), g.engine.Workers(), level,
		onOff(g.view.illumination), onOff(g.view.objects), onOff(g.view.distanceMap),
		onOff(g.view.rays), onOff(g.view.holographic))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
