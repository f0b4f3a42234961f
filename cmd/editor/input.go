package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/tilekit/edit"
)

var toolKeys = []struct {
	key   ebiten.Key
	shift bool
	tool  edit.Tool
}{
	{ebiten.KeyS, false, edit.ToolSelect},
	{ebiten.KeyP, false, edit.ToolPen},
	{ebiten.KeyR, false, edit.ToolRectangle},
	{ebiten.KeyR, true, edit.ToolFilledRectangle},
	{ebiten.KeyL, false, edit.ToolLine},
	{ebiten.KeyF, false, edit.ToolFill},
	{ebiten.KeyH, false, edit.ToolFlipHorizontal},
	{ebiten.KeyV, false, edit.ToolFlipVertical},
	{ebiten.KeyT, false, edit.ToolRotate},
	{ebiten.KeyEqual, false, edit.ToolZoomIn},
	{ebiten.KeyEqual, true, edit.ToolZoomIn},
	{ebiten.KeyMinus, false, edit.ToolZoomOut},
	{ebiten.KeyNumpadAdd, false, edit.ToolZoomIn},
	{ebiten.KeyNumpadSubtract, false, edit.ToolZoomOut},
}

func (g *EditorGame) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.painting = false
		g.session.Cancel()
		g.session.EndZoom()
		return
	}
	if g.painting {
		return
	}

	if ctrl {
		g.handleCommandKeys(shift)
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.retarget()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.stepTile(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.stepTile(1)
	}
	for _, k := range toolKeys {
		if k.shift == shift && inpututil.IsKeyJustPressed(k.key) {
			g.report("activate tool", g.session.Activate(k.tool))
			return
		}
	}
}

func (g *EditorGame) handleCommandKeys(shift bool) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyZ) && shift:
		g.report("redo", g.session.Redo())
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.report("undo", g.session.Undo())
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.report("redo", g.session.Redo())
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.report("cut", g.session.Cut())
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.report("copy", g.session.Copy())
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.report("paste", g.session.Paste())
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.report("select all", g.session.SelectAll())
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.report("save", g.save())
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.report("export", g.export())
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.report("script", g.runScript())
	}
}

// stepTile moves the primary tile selection of the current tileset.
func (g *EditorGame) stepTile(delta int) {
	ts, ok := g.session.SelectedTileSet()
	if !ok {
		return
	}
	set, err := g.doc.TileSet(ts)
	if err != nil || len(set.Tiles) == 0 {
		return
	}
	n := len(set.Tiles)
	next := ((g.session.SelectedLeftTile()+delta)%n + n) % n
	g.report("select tile", g.session.SetSelectedLeftTile(ts, next))
	g.updateStatus()
}
