package main

import (
	"log"

	"RC/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput processes dragging, display toggles and level selection.
func (g *Game) handleInput() {
	mx, my := ebiten.CursorPosition()
	g.mouse = cursorPoint(mx, my, g.width, g.height)
	g.handleDrag()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.view.important = !g.view.important
	}
	g.handleToggles()
	g.handleLevelControls()
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveLayout()
	}
}

// handleDrag picks the first shape under the cursor on press and keeps its
// centre on the cursor while the left button is held.
func (g *Game) handleDrag() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.drag = g.scene.Pick(g.mouse)
	}
	if g.drag >= 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s := &g.scene.Shapes[g.drag]
		if s.Centroid() != g.mouse {
			s.MoveTo(g.mouse)
			g.dirty = true
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.drag = -1
	}
}

// handleToggles flips display layers. Only the illumination layer needs a
// recompute, since the merge is skipped while it is off.
func (g *Game) handleToggles() {
	toggles := []struct {
		key       ebiten.Key
		value     *bool
		recompute bool
	}{
		{ebiten.KeyL, &g.view.illumination, true},
		{ebiten.KeyO, &g.view.objects, false},
		{ebiten.KeyM, &g.view.distanceMap, false},
		{ebiten.KeyR, &g.view.rays, false},
		{ebiten.KeyH, &g.view.holographic, false},
	}
	for _, t := range toggles {
		if !inpututil.IsKeyJustPressed(t.key) {
			continue
		}
		*t.value = !*t.value
		if t.recompute {
			g.dirty = true
		}
	}
}

// handleLevelControls steps the level whose rays are drawn. Stepping below
// level 0 draws every level again.
func (g *Game) handleLevelControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustLevel(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustLevel(1)
	}
}

// adjustLevel clamps the displayed level within [allLevels, max cascade].
func (g *Game) adjustLevel(delta int) {
	g.view.level = clampCoord(g.view.level+delta, allLevels, len(g.engine.Levels())-1)
}

// saveLayout writes the current, possibly dragged, scene to -save-config.
func (g *Game) saveLayout() {
	if *saveConfigFlag == "" {
		log.Printf("Set -save-config to save the scene layout")
		return
	}
	g.cfg.Scene = config.FromScene(g.scene)
	if err := config.SaveConfig(g.cfg, *saveConfigFlag); err != nil {
		log.Printf("Saving layout failed: %v", err)
		return
	}
	log.Printf("Saved %d shapes to %s", len(g.scene.Shapes), *saveConfigFlag)
}
