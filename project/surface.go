package project

import "fmt"

type SurfaceKind uint8

const (
	SurfaceTileSet SurfaceKind = iota + 1
	SurfaceEffectLayer
	SurfaceMapLayer
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceTileSet:
		return "tileset"
	case SurfaceEffectLayer:
		return "effect layer"
	case SurfaceMapLayer:
		return "map layer"
	}
	return "none"
}

// Surface names one editable grid of cells. Layer is only used for map
// layers.
type Surface struct {
	Kind  SurfaceKind
	ID    ID
	Layer int
}

func TileSetSurface(id ID) Surface     { return Surface{Kind: SurfaceTileSet, ID: id} }
func EffectLayerSurface(id ID) Surface { return Surface{Kind: SurfaceEffectLayer, ID: id} }
func MapLayerSurface(id ID, layer int) Surface {
	return Surface{Kind: SurfaceMapLayer, ID: id, Layer: layer}
}

func (s Surface) String() string {
	if s.Kind == SurfaceMapLayer {
		return fmt.Sprintf("%s %s/%d", s.Kind, s.ID, s.Layer)
	}
	return fmt.Sprintf("%s %s", s.Kind, s.ID)
}

// Addr is the storage address of a surface cell. Tileset pixels are addressed
// by tile and pixel index so addresses survive column changes. Layer cells
// use Tile as the row-major cell index.
type Addr struct {
	Tile  int
	Pixel int
}

// Change is one cell write with the value it replaces.
type Change struct {
	Addr   Addr
	Before Cell
	After  Cell
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	return Change{Addr: c.Addr, Before: c.After, After: c.Before}
}

func (p *Project) layer(s Surface) (*MapLayer, error) {
	switch s.Kind {
	case SurfaceEffectLayer:
		return p.effectLayer(s.ID)
	case SurfaceMapLayer:
		m, err := p.mapByID(s.ID)
		if err != nil {
			return nil, err
		}
		if s.Layer < 0 || s.Layer >= len(m.Layers) {
			return nil, fmt.Errorf("project: map %q layer %d: %w", m.Name, s.Layer, ErrNotFound)
		}
		return m.Layers[s.Layer], nil
	}
	return nil, fmt.Errorf("project: %s is not a layer: %w", s, ErrWrongKind)
}

// SurfaceSize returns the grid dimensions of s.
func (p *Project) SurfaceSize(s Surface) (w, h int, err error) {
	if s.Kind == SurfaceTileSet {
		ts, err := p.tileSet(s.ID)
		if err != nil {
			return 0, 0, err
		}
		return ts.Columns * p.settings.TileWidth, ts.Rows() * p.settings.TileHeight, nil
	}
	l, err := p.layer(s)
	if err != nil {
		return 0, 0, err
	}
	return l.Width, l.Height, nil
}

// Locate maps a surface coordinate to its storage address. It reports false
// for coordinates outside the surface and for unbacked cells past the last
// tile.
func (p *Project) Locate(s Surface, x, y int) (Addr, bool) {
	if x < 0 || y < 0 {
		return Addr{}, false
	}
	if s.Kind == SurfaceTileSet {
		ts, err := p.tileSet(s.ID)
		if err != nil {
			return Addr{}, false
		}
		tw, th := p.settings.TileWidth, p.settings.TileHeight
		col, row := x/tw, y/th
		if col >= ts.Columns {
			return Addr{}, false
		}
		tile := row*ts.Columns + col
		if tile >= len(ts.Tiles) {
			return Addr{}, false
		}
		return Addr{Tile: tile, Pixel: (y%th)*tw + x%tw}, true
	}
	l, err := p.layer(s)
	if err != nil || x >= l.Width || y >= l.Height {
		return Addr{}, false
	}
	return Addr{Tile: y*l.Width + x}, true
}

// CellAt reads the cell stored at a. Invalid addresses read as Empty.
func (p *Project) CellAt(s Surface, a Addr) Cell {
	cells, err := p.cells(s, a.Tile)
	if err != nil {
		return Empty
	}
	i := a.Pixel
	if s.Kind != SurfaceTileSet {
		i = a.Tile
	}
	if i < 0 || i >= len(cells) {
		return Empty
	}
	return cells[i]
}

// Read returns the cell at (x, y) or Empty when the coordinate is unbacked.
func (p *Project) Read(s Surface, x, y int) Cell {
	a, ok := p.Locate(s, x, y)
	if !ok {
		return Empty
	}
	return p.CellAt(s, a)
}

// Snapshot returns every cell of s in row-major order.
func (p *Project) Snapshot(s Surface) ([]Cell, error) {
	w, h, err := p.SurfaceSize(s)
	if err != nil {
		return nil, err
	}
	out := make([]Cell, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out = append(out, p.Read(s, x, y))
		}
	}
	return out, nil
}

// Limit is the exclusive upper bound of values storable on s: the palette
// size for tilesets and the tile count for layers. Detached surfaces accept
// only Empty.
func (p *Project) Limit(s Surface) int {
	if s.Kind == SurfaceTileSet {
		ts, err := p.tileSet(s.ID)
		if err != nil {
			return 0
		}
		if pal, ok := p.palettes[ts.Palette]; ok {
			return len(pal.Entries)
		}
		return 0
	}
	l, err := p.layer(s)
	if err != nil {
		return 0
	}
	if ts, ok := p.tileSets[l.TileSet]; ok {
		return len(ts.Tiles)
	}
	return 0
}

// PaletteOf returns the palette that colours s, following a layer's tileset.
func (p *Project) PaletteOf(s Surface) (ID, bool) {
	ts, ok := p.TileSetOf(s)
	if !ok {
		return 0, false
	}
	pal := p.tileSets[ts].Palette
	return pal, p.Kind(pal) == KindPalette
}

// TileSetOf returns the tileset behind s.
func (p *Project) TileSetOf(s Surface) (ID, bool) {
	id := s.ID
	if s.Kind != SurfaceTileSet {
		l, err := p.layer(s)
		if err != nil {
			return 0, false
		}
		id = l.TileSet
	}
	if p.Kind(id) != KindTileSet {
		return 0, false
	}
	return id, true
}

func (p *Project) cells(s Surface, tile int) ([]Cell, error) {
	if s.Kind == SurfaceTileSet {
		ts, err := p.tileSet(s.ID)
		if err != nil {
			return nil, err
		}
		if tile < 0 || tile >= len(ts.Tiles) {
			return nil, fmt.Errorf("project: tileset %q tile %d: %w", ts.Name, tile, ErrIndexOutOfRange)
		}
		return ts.Tiles[tile].Pixels, nil
	}
	l, err := p.layer(s)
	if err != nil {
		return nil, err
	}
	return l.Cells, nil
}

// Apply writes every change's After value. All addresses and values are
// checked before anything is written, and one ContentChanged event is emitted.
func (p *Project) Apply(s Surface, changes []Change) error {
	return p.apply(s, changes, false)
}

// ApplyExact is Apply that also requires every stored cell to still hold the
// change's Before value. On a mismatch nothing is written and ErrConflict is
// returned.
func (p *Project) ApplyExact(s Surface, changes []Change) error {
	return p.apply(s, changes, true)
}

func (p *Project) apply(s Surface, changes []Change, exact bool) error {
	if err := p.checkIdle("apply"); err != nil {
		return err
	}
	if _, _, err := p.SurfaceSize(s); err != nil {
		return err
	}
	if len(changes) == 0 {
		return nil
	}
	limit := Cell(p.Limit(s))
	for _, c := range changes {
		if c.After != Empty && (c.After < 0 || c.After >= limit) {
			return fmt.Errorf("project: apply %s value %d: %w", s, c.After, ErrIndexOutOfRange)
		}
		cells, err := p.cells(s, c.Addr.Tile)
		if err != nil {
			return err
		}
		i := c.Addr.Pixel
		if s.Kind != SurfaceTileSet {
			i = c.Addr.Tile
		}
		if i < 0 || i >= len(cells) {
			return fmt.Errorf("project: apply %s address %v: %w", s, c.Addr, ErrIndexOutOfRange)
		}
		if exact && cells[i] != c.Before {
			return fmt.Errorf("project: apply %s address %v holds %d, want %d: %w", s, c.Addr, cells[i], c.Before, ErrConflict)
		}
	}
	for _, c := range changes {
		cells, _ := p.cells(s, c.Addr.Tile)
		if s.Kind == SurfaceTileSet {
			cells[c.Addr.Pixel] = c.After
		} else {
			cells[c.Addr.Tile] = c.After
		}
	}
	p.emit(Event{Kind: ContentChanged, ID: s.ID, EntityKind: p.Kind(s.ID), Surface: s})
	return nil
}
