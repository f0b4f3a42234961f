package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4"
	"gopkg.in/yaml.v3"
)

const documentVersion = 1

type document struct {
	Version      int          `yaml:"version"`
	TileWidth    int          `yaml:"tile_width"`
	TileHeight   int          `yaml:"tile_height"`
	Palettes     []paletteDoc `yaml:"palettes"`
	TileSets     []tileSetDoc `yaml:"tilesets"`
	EffectLayers []layerDoc   `yaml:"effect_layers,omitempty"`
	Maps         []mapDoc     `yaml:"maps,omitempty"`
}

type paletteDoc struct {
	Name   string  `yaml:"name"`
	Colors []Color `yaml:"colors,flow"`
}

type tileSetDoc struct {
	Name    string   `yaml:"name"`
	Palette string   `yaml:"palette,omitempty"`
	Columns int      `yaml:"columns"`
	Tiles   [][]Cell `yaml:"tiles"`
}

type layerDoc struct {
	Name    string `yaml:"name"`
	TileSet string `yaml:"tileset,omitempty"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Cells   []Cell `yaml:"cells,flow"`
	Effect  bool   `yaml:"effect,omitempty"`
	Blend   string `yaml:"blend,omitempty"`
	Alpha   uint8  `yaml:"alpha,omitempty"`
}

type mapDoc struct {
	Name       string     `yaml:"name"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background Color      `yaml:"background"`
	Layers     []layerDoc `yaml:"layers"`
}

// Encode serializes the project as YAML.
func Encode(p *Project) ([]byte, error) {
	doc := document{
		Version:    documentVersion,
		TileWidth:  p.settings.TileWidth,
		TileHeight: p.settings.TileHeight,
	}
	for _, id := range p.Palettes() {
		pal := p.palettes[id]
		doc.Palettes = append(doc.Palettes, paletteDoc{Name: pal.Name, Colors: pal.Entries})
	}
	for _, id := range p.TileSets() {
		ts := p.tileSets[id]
		td := tileSetDoc{Name: ts.Name, Palette: p.Name(ts.Palette), Columns: ts.Columns}
		for _, t := range ts.Tiles {
			td.Tiles = append(td.Tiles, t.Pixels)
		}
		doc.TileSets = append(doc.TileSets, td)
	}
	for _, id := range p.EffectLayers() {
		doc.EffectLayers = append(doc.EffectLayers, p.encodeLayer(p.effects[id]))
	}
	for _, id := range p.Maps() {
		m := p.maps[id]
		md := mapDoc{Name: m.Name, Width: m.Width, Height: m.Height, Background: m.Background}
		for _, l := range m.Layers {
			md.Layers = append(md.Layers, p.encodeLayer(l))
		}
		doc.Maps = append(doc.Maps, md)
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("project: encode: %w", err)
	}
	return out, nil
}

func (p *Project) encodeLayer(l *MapLayer) layerDoc {
	ld := layerDoc{
		Name:    l.Name,
		TileSet: p.Name(l.TileSet),
		Width:   l.Width,
		Height:  l.Height,
		Cells:   l.Cells,
		Effect:  l.Effect,
		Alpha:   l.Alpha,
	}
	if l.Blend != BlendNormal {
		ld.Blend = l.Blend.String()
	}
	return ld
}

// Decode parses a YAML project, rejecting bad sizes and dangling references.
func Decode(data []byte) (*Project, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("project: decode: %w", err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("project: decode: unsupported version %d", doc.Version)
	}
	if doc.TileWidth < 1 || doc.TileHeight < 1 {
		return nil, fmt.Errorf("project: decode: tile size %dx%d: %w", doc.TileWidth, doc.TileHeight, ErrInvalidDimension)
	}
	s := DefaultSettings()
	s.TileWidth, s.TileHeight = doc.TileWidth, doc.TileHeight
	p := New(s)

	for _, pd := range doc.Palettes {
		if err := p.checkNewName(KindPalette, pd.Name); err != nil {
			return nil, err
		}
		if len(pd.Colors) == 0 {
			return nil, fmt.Errorf("project: decode palette %q: no entries: %w", pd.Name, ErrInvalidDimension)
		}
		p.addPalette(&Palette{Name: pd.Name, Entries: append([]Color(nil), pd.Colors...)})
	}
	for _, td := range doc.TileSets {
		if err := p.checkNewName(KindTileSet, td.Name); err != nil {
			return nil, err
		}
		if td.Columns < 1 {
			return nil, fmt.Errorf("project: decode tileset %q: %d columns: %w", td.Name, td.Columns, ErrInvalidDimension)
		}
		ts := &TileSet{Name: td.Name, Columns: td.Columns}
		limit := 0
		if td.Palette != "" {
			id, ok := p.Lookup(KindPalette, td.Palette)
			if !ok {
				return nil, fmt.Errorf("project: decode tileset %q: palette %q: %w", td.Name, td.Palette, ErrNotFound)
			}
			ts.Palette = id
			limit = len(p.palettes[id].Entries)
		}
		for i, px := range td.Tiles {
			if len(px) != s.TileWidth*s.TileHeight {
				return nil, fmt.Errorf("project: decode tileset %q tile %d: %d pixels: %w", td.Name, i, len(px), ErrInvalidDimension)
			}
			if err := checkCells(px, limit); err != nil {
				return nil, fmt.Errorf("project: decode tileset %q tile %d: %w", td.Name, i, err)
			}
			ts.Tiles = append(ts.Tiles, Tile{Pixels: append([]Cell(nil), px...)})
		}
		p.addTileSet(ts)
	}
	for _, ld := range doc.EffectLayers {
		if err := p.checkNewName(KindEffectLayer, ld.Name); err != nil {
			return nil, err
		}
		l, err := p.decodeLayer(ld, ld.Width, ld.Height)
		if err != nil {
			return nil, err
		}
		p.addEffectLayer(l)
	}
	for _, md := range doc.Maps {
		if err := p.checkNewName(KindMap, md.Name); err != nil {
			return nil, err
		}
		if md.Width < 1 || md.Height < 1 {
			return nil, fmt.Errorf("project: decode map %q: size %dx%d: %w", md.Name, md.Width, md.Height, ErrInvalidDimension)
		}
		m := &Map{Name: md.Name, Width: md.Width, Height: md.Height, Background: md.Background}
		for _, ld := range md.Layers {
			l, err := p.decodeLayer(ld, md.Width, md.Height)
			if err != nil {
				return nil, fmt.Errorf("project: decode map %q: %w", md.Name, err)
			}
			m.Layers = append(m.Layers, l)
		}
		p.addMap(m)
	}
	p.events.Drain()
	return p, nil
}

func (p *Project) decodeLayer(ld layerDoc, w, h int) (*MapLayer, error) {
	if ld.Width != w || ld.Height != h || w < 1 || h < 1 {
		return nil, fmt.Errorf("project: decode layer %q: size %dx%d: %w", ld.Name, ld.Width, ld.Height, ErrInvalidDimension)
	}
	if len(ld.Cells) != w*h {
		return nil, fmt.Errorf("project: decode layer %q: %d cells: %w", ld.Name, len(ld.Cells), ErrInvalidDimension)
	}
	if ld.Alpha > MaxAlpha {
		return nil, fmt.Errorf("project: decode layer %q: alpha %d: %w", ld.Name, ld.Alpha, ErrInvalidDimension)
	}
	blend, err := parseBlend(ld.Blend)
	if err != nil {
		return nil, fmt.Errorf("project: decode layer %q: %w", ld.Name, err)
	}
	l := &MapLayer{Name: ld.Name, Width: w, Height: h, Effect: ld.Effect, Blend: blend, Alpha: ld.Alpha}
	limit := 0
	if ld.TileSet != "" {
		id, ok := p.Lookup(KindTileSet, ld.TileSet)
		if !ok {
			return nil, fmt.Errorf("project: decode layer %q: tileset %q: %w", ld.Name, ld.TileSet, ErrNotFound)
		}
		l.TileSet = id
		limit = len(p.tileSets[id].Tiles)
	}
	if err := checkCells(ld.Cells, limit); err != nil {
		return nil, fmt.Errorf("project: decode layer %q: %w", ld.Name, err)
	}
	l.Cells = append([]Cell(nil), ld.Cells...)
	return l, nil
}

func (p *Project) checkNewName(k Kind, name string) error {
	if n, ok := validName(name); !ok || n != name {
		return fmt.Errorf("project: decode %s %q: %w", k, name, ErrInvalidName)
	}
	if p.nameTaken(k, name, 0) {
		return fmt.Errorf("project: decode %s %q: %w", k, name, ErrNameConflict)
	}
	return nil
}

func checkCells(cells []Cell, limit int) error {
	for i, c := range cells {
		if c != Empty && (c < 0 || int(c) >= limit) {
			return fmt.Errorf("cell %d value %d: %w", i, c, ErrIndexOutOfRange)
		}
	}
	return nil
}

func parseBlend(s string) (BlendMode, error) {
	for m := BlendNormal; m <= BlendMultiply; m++ {
		if s == m.String() {
			return m, nil
		}
	}
	if s == "" {
		return BlendNormal, nil
	}
	return 0, fmt.Errorf("blend %q: %w", s, errors.ErrUnsupported)
}

// EncodeCompressed returns the YAML form wrapped in an LZ4 frame.
func EncodeCompressed(p *Project) ([]byte, error) {
	raw, err := Encode(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)
	if _, err := writer.Write(raw); err != nil {
		writer.Close()
		return nil, fmt.Errorf("project: compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("project: compress: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCompressed reverses EncodeCompressed.
func DecodeCompressed(data []byte) (*Project, error) {
	reader := lz4.NewReader(bytes.NewReader(data))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("project: decompress: %w", err)
	}
	return Decode(buf.Bytes())
}
