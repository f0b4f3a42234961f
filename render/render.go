// Package render rasterizes tilesets and maps into RGBA images.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/milk9111/tilekit/project"
)

// TileSet draws every tile in its grid position. Empty pixels are
// transparent. A tileset without a palette is drawn with a grey ramp.
func TileSet(p *project.Project, id project.ID) (*image.RGBA, error) {
	ts, err := p.TileSet(id)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	tw, th := p.TileWidth(), p.TileHeight()
	img := image.NewRGBA(image.Rect(0, 0, ts.Columns*tw, ts.Rows()*th))
	colors := paletteColors(p, ts)
	for i, t := range ts.Tiles {
		ox, oy := (i%ts.Columns)*tw, (i/ts.Columns)*th
		for j, px := range t.Pixels {
			if px == project.Empty || int(px) >= len(colors) {
				continue
			}
			img.SetRGBA(ox+j%tw, oy+j/tw, toRGBA(colors[px]))
		}
	}
	return img, nil
}

func paletteColors(p *project.Project, ts project.TileSet) []project.Color {
	if pal, err := p.Palette(ts.Palette); err == nil {
		return pal.Entries
	}
	n := 0
	for _, t := range ts.Tiles {
		for _, px := range t.Pixels {
			n = max(n, int(px)+1)
		}
	}
	out := make([]project.Color, n)
	for i := range out {
		level := uint8(0)
		if n > 1 {
			level = uint8(i * 31 / (n - 1))
		}
		out[i] = project.RGB(level, level, level)
	}
	return out
}

// Map draws the background and then every layer bottom to top. Tile layers
// overwrite opaque pixels; effect layers blend with their mode and alpha.
// Tiles whose tileset has no palette are skipped.
func Map(p *project.Project, id project.ID) (*image.RGBA, error) {
	m, err := p.Map(id)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	c := newCanvas(p, m.Width, m.Height)
	c.fill(m.Background)
	for _, l := range m.Layers {
		c.layer(l)
	}
	return c.image(nil), nil
}

// Layer draws a single layer surface over a transparent background.
func Layer(p *project.Project, s project.Surface) (*image.RGBA, error) {
	var l project.MapLayer
	switch s.Kind {
	case project.SurfaceEffectLayer:
		el, err := p.EffectLayer(s.ID)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		l = el
	case project.SurfaceMapLayer:
		m, err := p.Map(s.ID)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if s.Layer < 0 || s.Layer >= len(m.Layers) {
			return nil, fmt.Errorf("render: map %q layer %d: %w", m.Name, s.Layer, project.ErrNotFound)
		}
		l = *m.Layers[s.Layer]
	default:
		return nil, fmt.Errorf("render: %s is not a layer: %w", s, project.ErrWrongKind)
	}
	c := newCanvas(p, l.Width, l.Height)
	l.Effect = false
	c.layer(&l)
	return c.image(c.drawn), nil
}

// Surface draws whatever s names.
func Surface(p *project.Project, s project.Surface) (*image.RGBA, error) {
	if s.Kind == project.SurfaceTileSet {
		return TileSet(p, s.ID)
	}
	return Layer(p, s)
}

// canvas accumulates RGB555 pixels the way the layers combine them.
type canvas struct {
	p      *project.Project
	tw, th int
	w, h   int
	pix    []project.Color
	drawn  []bool
}

func newCanvas(p *project.Project, cols, rows int) *canvas {
	tw, th := p.TileWidth(), p.TileHeight()
	w, h := cols*tw, rows*th
	return &canvas{p: p, tw: tw, th: th, w: w, h: h, pix: make([]project.Color, w*h), drawn: make([]bool, w*h)}
}

func (c *canvas) fill(bg project.Color) {
	for i := range c.pix {
		c.pix[i] = bg
	}
}

func (c *canvas) layer(l *project.MapLayer) {
	ts, err := c.p.TileSet(l.TileSet)
	if err != nil {
		return
	}
	pal, err := c.p.Palette(ts.Palette)
	if err != nil {
		return
	}
	blend := normalBlend
	alpha := uint8(0)
	if l.Effect {
		blend, alpha = blender(l.Blend), l.Alpha
	}
	for i, cell := range l.Cells {
		if cell == project.Empty || int(cell) >= len(ts.Tiles) {
			continue
		}
		ox, oy := (i%l.Width)*c.tw, (i/l.Width)*c.th
		for j, px := range ts.Tiles[cell].Pixels {
			if px == project.Empty || int(px) >= len(pal.Entries) {
				continue
			}
			k := (oy+j/c.tw)*c.w + ox + j%c.tw
			c.pix[k] = alphaBlend(c.pix[k], pal.Entries[px], alpha, blend)
			c.drawn[k] = true
		}
	}
}

// image converts the canvas. With a mask only drawn pixels are opaque.
func (c *canvas) image(mask []bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
	for i, px := range c.pix {
		if mask != nil && !mask[i] {
			continue
		}
		img.SetRGBA(i%c.w, i/c.w, toRGBA(px))
	}
	return img
}

func toRGBA(c project.Color) color.RGBA {
	n := c.NRGBA()
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}
