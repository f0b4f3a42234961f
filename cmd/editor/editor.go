package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/milk9111/tilekit/config"
	"github.com/milk9111/tilekit/edit"
	"github.com/milk9111/tilekit/project"
	"github.com/milk9111/tilekit/render"
)

const (
	canvasLeft = 16
	canvasTop  = 56
	swatchSize = 16
	scriptWait = 2 * time.Second
)

// EditorGame hosts one edit session on an ebiten window.
type EditorGame struct {
	log     *zap.Logger
	doc     *project.Project
	session *edit.Session
	watcher *config.Watcher

	tileSet project.ID
	mapID   project.ID

	ui      *ebitenui.UI
	toolBar *ToolBar
	status  *StatusBar

	savePath   string
	exportPath string
	scriptPath string

	canvas        *ebiten.Image
	dirty         bool
	width, height int

	painting   bool
	panning    bool
	panX, panY int
	lastPanX   int
	lastPanY   int

	unsubscribe []func()
}

func NewEditorGame(log *zap.Logger, doc *project.Project, session *edit.Session, tileSet, mapID project.ID) *EditorGame {
	g := &EditorGame{
		log:     log,
		doc:     doc,
		session: session,
		tileSet: tileSet,
		mapID:   mapID,
		dirty:   true,
	}
	g.unsubscribe = append(g.unsubscribe,
		doc.Subscribe(func(project.Event) { g.dirty = true }),
		session.Subscribe(g.onSessionEvent),
	)

	actions := []Action{
		{Name: "Undo", Run: func() { g.report("undo", g.session.Undo()) }},
		{Name: "Redo", Run: func() { g.report("redo", g.session.Redo()) }},
		{Name: "Cut", Run: func() { g.report("cut", g.session.Cut()) }},
		{Name: "Copy", Run: func() { g.report("copy", g.session.Copy()) }},
		{Name: "Paste", Run: func() { g.report("paste", g.session.Paste()) }},
		{Name: "Save", Run: func() { g.report("save", g.save()) }},
		{Name: "PNG", Run: func() { g.report("export", g.export()) }},
	}
	g.ui, g.toolBar, g.status = BuildEditorUI(func(t edit.Tool) {
		g.report("activate tool", g.session.Activate(t))
	}, session.Tool(), actions)
	g.updateStatus()
	return g
}

func (g *EditorGame) Close() {
	for _, cancel := range g.unsubscribe {
		cancel()
	}
	g.session.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("closing config watcher", zap.Error(err))
		}
	}
}

func (g *EditorGame) onSessionEvent(evt edit.Event) {
	switch evt.Kind {
	case edit.ToolChanged:
		g.toolBar.SetTool(g.session.Tool())
	case edit.HistoryChanged:
		g.dirty = true
	}
	g.updateStatus()
}

func (g *EditorGame) report(op string, err error) {
	if err != nil {
		g.log.Warn(op+" failed", zap.Error(err))
	}
}

func (g *EditorGame) Update() error {
	g.ui.Update()
	g.applyConfigUpdates()
	// Project events are delivered through Subscribe; the queue is drained
	// so it does not fill up.
	g.doc.Events().Drain()

	g.handleKeys()
	g.handlePan()
	g.handlePaint()
	return nil
}

func (g *EditorGame) applyConfigUpdates() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg := <-g.watcher.Configs:
			g.session.SetZoomBounds(cfg.ZoomBounds())
			g.session.History().SetLimit(cfg.UndoLimit)
			g.doc.SetDefaults(cfg.Settings())
			g.log.Info("config reloaded", zap.Float64("zoom", g.session.Zoom()))
			g.updateStatus()
		case err := <-g.watcher.Errors:
			g.log.Warn("config reload", zap.Error(err))
		default:
			return
		}
	}
}

func (g *EditorGame) handlePan() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.panning = true
		g.lastPanX, g.lastPanY = ebiten.CursorPosition()
	}
	if g.panning {
		cx, cy := ebiten.CursorPosition()
		g.panX += cx - g.lastPanX
		g.panY += cy - g.lastPanY
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.panning = false
	}
}

func (g *EditorGame) handlePaint() {
	sx, sy := ebiten.CursorPosition()
	if g.painting {
		g.session.Drag(g.cellAt(sx, sy))
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
			inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
			g.painting = false
			g.report("release", g.session.Release(g.cellAt(sx, sy)))
		}
		return
	}
	if ebuiinput.UIHovered {
		return
	}

	var button edit.Button
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		button = edit.Primary
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		button = edit.Secondary
	default:
		return
	}
	if g.pickSwatch(sx, sy, button) {
		return
	}
	if !g.overCanvas(sx, sy) {
		return
	}
	if err := g.session.Press(g.cellAt(sx, sy), button); err != nil {
		g.report("press", err)
		return
	}
	g.painting = g.session.Gesturing()
}

// cellScale returns the on-screen size of one surface cell.
func (g *EditorGame) cellScale() (float64, float64) {
	z := g.session.Zoom()
	surf, ok := g.session.Target()
	if ok && surf.Kind != project.SurfaceTileSet {
		return z * float64(g.doc.TileWidth()), z * float64(g.doc.TileHeight())
	}
	return z, z
}

func (g *EditorGame) origin() (int, int) {
	return canvasLeft + g.panX, canvasTop + g.panY
}

func (g *EditorGame) cellAt(sx, sy int) edit.Point {
	ox, oy := g.origin()
	cw, ch := g.cellScale()
	return edit.Point{
		X: int(math.Floor(float64(sx-ox) / cw)),
		Y: int(math.Floor(float64(sy-oy) / ch)),
	}
}

func (g *EditorGame) overCanvas(sx, sy int) bool {
	surf, ok := g.session.Target()
	if !ok {
		return false
	}
	w, h, err := g.doc.SurfaceSize(surf)
	if err != nil {
		return false
	}
	p := g.cellAt(sx, sy)
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

func (g *EditorGame) retarget() {
	surf, ok := g.session.Target()
	next := project.TileSetSurface(g.tileSet)
	if ok && surf.Kind == project.SurfaceTileSet {
		next = project.MapLayerSurface(g.mapID, 0)
	}
	if err := g.session.SetTarget(next); err != nil {
		g.report("retarget", err)
		return
	}
	g.dirty = true
	g.log.Info("target changed", zap.Stringer("surface", next))
}

func (g *EditorGame) save() error {
	if g.savePath == "" {
		return fmt.Errorf("no -out path given")
	}
	data, err := project.EncodeCompressed(g.doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.savePath, data, 0o644); err != nil {
		return err
	}
	g.log.Info("saved project", zap.String("path", g.savePath), zap.Int("bytes", len(data)))
	return nil
}

func (g *EditorGame) export() error {
	if g.exportPath == "" {
		return fmt.Errorf("no -png path given")
	}
	surf, ok := g.session.Target()
	if !ok {
		return edit.ErrNoTarget
	}
	img, err := render.Surface(g.doc, surf)
	if err != nil {
		return err
	}
	f, err := os.Create(g.exportPath)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, render.Scale(img, g.session.Zoom())); err != nil {
		f.Close()
		return err
	}
	g.log.Info("exported png", zap.String("path", g.exportPath), zap.Stringer("surface", surf))
	return f.Close()
}

func (g *EditorGame) runScript() error {
	if g.scriptPath == "" {
		return fmt.Errorf("no -script path given")
	}
	src, err := os.ReadFile(g.scriptPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), scriptWait)
	defer cancel()
	return g.session.RunScript(ctx, string(src))
}

func (g *EditorGame) updateStatus() {
	surf, ok := g.session.Target()
	target := "no target"
	if ok {
		target = surf.String()
	}
	undo, redo := g.session.History().Len()
	g.status.SetText(fmt.Sprintf("%s  tool %s  zoom %.2fx  L%d R%d  undo %d redo %d",
		target, g.session.Tool(), g.session.Zoom(),
		g.leftValue(), g.rightValue(), undo, redo))
}

func (g *EditorGame) leftValue() int {
	if g.paintsTiles() {
		return g.session.SelectedLeftTile()
	}
	return g.session.SelectedLeftPaletteEntry()
}

func (g *EditorGame) rightValue() int {
	if g.paintsTiles() {
		return g.session.SelectedRightTile()
	}
	return g.session.SelectedRightPaletteEntry()
}

func (g *EditorGame) paintsTiles() bool {
	surf, ok := g.session.Target()
	return ok && surf.Kind != project.SurfaceTileSet
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(canvasBackground)
	g.drawCanvas(screen)
	g.drawPreview(screen)
	g.drawRegion(screen)
	g.drawSwatches(screen)
	g.ui.Draw(screen)
}

func (g *EditorGame) drawCanvas(screen *ebiten.Image) {
	surf, ok := g.session.Target()
	if !ok {
		return
	}
	if g.dirty || g.canvas == nil {
		img, err := render.Surface(g.doc, surf)
		if err != nil {
			g.report("render", err)
			return
		}
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImageFromImage(img)
		g.dirty = false
	}
	ox, oy := g.origin()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.session.Zoom(), g.session.Zoom())
	op.GeoM.Translate(float64(ox), float64(oy))
	screen.DrawImage(g.canvas, op)
}

func (g *EditorGame) cellRect(p edit.Point) (float32, float32, float32, float32) {
	ox, oy := g.origin()
	cw, ch := g.cellScale()
	return float32(float64(ox) + float64(p.X)*cw), float32(float64(oy) + float64(p.Y)*ch), float32(cw), float32(ch)
}

func (g *EditorGame) drawPreview(screen *ebiten.Image) {
	if !g.session.Gesturing() {
		return
	}
	surf, _ := g.session.Target()
	w, h, err := g.doc.SurfaceSize(surf)
	if err != nil {
		return
	}
	colors := g.targetColors(surf)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := edit.Point{X: x, Y: y}
			v, ok := g.session.Preview(p)
			if !ok {
				continue
			}
			c := color.Color(previewTile)
			switch {
			case v == project.Empty:
				c = previewEmpty
			case !g.paintsTiles() && int(v) < len(colors):
				c = colors[v].NRGBA()
			}
			px, py, pw, ph := g.cellRect(p)
			vector.DrawFilledRect(screen, px, py, pw, ph, c, false)
		}
	}
}

func (g *EditorGame) drawRegion(screen *ebiten.Image) {
	r, ok := g.session.PendingRegion()
	if !ok {
		r, ok = g.session.Region()
	}
	if !ok || r.Empty() {
		return
	}
	px, py, _, _ := g.cellRect(edit.Point{X: r.X, Y: r.Y})
	qx, qy, _, _ := g.cellRect(edit.Point{X: r.X + r.W, Y: r.Y + r.H})
	vector.StrokeRect(screen, px, py, qx-px, qy-py, 1.0, regionOutline, false)
}

func (g *EditorGame) targetColors(surf project.Surface) []project.Color {
	pal, ok := g.doc.PaletteOf(surf)
	if !ok {
		return nil
	}
	p, err := g.doc.Palette(pal)
	if err != nil {
		return nil
	}
	return p.Entries
}

// swatchOrigin is the top-left of the palette strip, right of the canvas.
func (g *EditorGame) swatchOrigin() (int, int) {
	return g.width - canvasLeft - 2*swatchSize, canvasTop
}

func (g *EditorGame) drawSwatches(screen *ebiten.Image) {
	surf, ok := g.session.Target()
	if !ok || g.paintsTiles() {
		return
	}
	x0, y0 := g.swatchOrigin()
	for i, c := range g.targetColors(surf) {
		x := float32(x0 + (i%2)*swatchSize)
		y := float32(y0 + (i/2)*swatchSize)
		vector.DrawFilledRect(screen, x, y, swatchSize, swatchSize, c.NRGBA(), false)
		switch i {
		case g.session.SelectedLeftPaletteEntry():
			vector.StrokeRect(screen, x, y, swatchSize, swatchSize, 2, primarySwatch, false)
		case g.session.SelectedRightPaletteEntry():
			vector.StrokeRect(screen, x, y, swatchSize, swatchSize, 2, secondarySwatch, false)
		}
	}
}

func (g *EditorGame) pickSwatch(sx, sy int, b edit.Button) bool {
	surf, ok := g.session.Target()
	if !ok || g.paintsTiles() {
		return false
	}
	x0, y0 := g.swatchOrigin()
	if !image.Pt(sx, sy).In(image.Rect(x0, y0, x0+2*swatchSize, math.MaxInt32)) {
		return false
	}
	pal, ok := g.doc.PaletteOf(surf)
	if !ok {
		return false
	}
	i := ((sy-y0)/swatchSize)*2 + (sx-x0)/swatchSize
	var err error
	if b == edit.Primary {
		err = g.session.SetSelectedLeftPaletteEntry(pal, i)
	} else {
		err = g.session.SetSelectedRightPaletteEntry(pal, i)
	}
	return err == nil
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
