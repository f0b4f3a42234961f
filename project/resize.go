package project

import "fmt"

// ResizeTileSet changes how many columns a tileset is displayed in. The tile
// sequence is untouched, so layers that reference tiles by linear index keep
// pointing at the same tiles and resizing back restores the original layout.
func (p *Project) ResizeTileSet(id ID, columns int) error {
	if err := p.checkIdle("resize tileset"); err != nil {
		return err
	}
	if columns < 1 {
		return fmt.Errorf("project: resize tileset to %d columns: %w", columns, ErrInvalidDimension)
	}
	ts, err := p.tileSet(id)
	if err != nil {
		return err
	}
	if ts.Columns == columns {
		return nil
	}
	ts.Columns = columns
	p.emit(Event{Kind: TileSetResized, ID: id, EntityKind: KindTileSet})
	return nil
}

// ReshapeTileSet resizes the tile grid to columns x rows keeping each tile at
// its on-screen (row, column). Tiles that fall outside the new grid are
// dropped, new slots are blank and every layer cell is remapped; cells that
// pointed at a dropped tile become Empty.
func (p *Project) ReshapeTileSet(id ID, columns, rows int) error {
	if err := p.checkIdle("reshape tileset"); err != nil {
		return err
	}
	if columns < 1 || rows < 1 {
		return fmt.Errorf("project: reshape tileset to %dx%d: %w", columns, rows, ErrInvalidDimension)
	}
	ts, err := p.tileSet(id)
	if err != nil {
		return err
	}

	remap := make([]Cell, len(ts.Tiles))
	tiles := make([]Tile, columns*rows)
	filled := make([]bool, len(tiles))
	for i, t := range ts.Tiles {
		r, c := i/ts.Columns, i%ts.Columns
		remap[i] = Empty
		if r < rows && c < columns {
			n := r*columns + c
			tiles[n] = t
			filled[n] = true
			remap[i] = Cell(n)
		}
	}
	for i := range tiles {
		if !filled[i] {
			tiles[i] = newTile(p.settings.TileWidth, p.settings.TileHeight)
		}
	}
	ts.Tiles = tiles
	ts.Columns = columns

	var touched []ID
	remapLayer := func(l *MapLayer) bool {
		if l.TileSet != id {
			return false
		}
		for i, c := range l.Cells {
			if c == Empty {
				continue
			}
			if int(c) < len(remap) {
				l.Cells[i] = remap[c]
			} else {
				l.Cells[i] = Empty
			}
		}
		return true
	}
	for _, lid := range p.order[KindEffectLayer-1] {
		if remapLayer(p.effects[lid]) {
			touched = append(touched, lid)
		}
	}
	for _, mid := range p.order[KindMap-1] {
		hit := false
		for _, l := range p.maps[mid].Layers {
			if remapLayer(l) {
				hit = true
			}
		}
		if hit {
			touched = append(touched, mid)
		}
	}

	p.emit(Event{Kind: TileSetReshaped, ID: id, EntityKind: KindTileSet})
	for _, t := range touched {
		p.emit(Event{Kind: EntityChanged, ID: t, EntityKind: p.Kind(t)})
	}
	return nil
}
