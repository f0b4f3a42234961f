package project

import "fmt"

// SetPaletteColor replaces one palette entry.
func (p *Project) SetPaletteColor(id ID, index int, c Color) error {
	if err := p.checkIdle("set palette color"); err != nil {
		return err
	}
	pal, err := p.palette(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(pal.Entries) {
		return fmt.Errorf("project: palette %q entry %d: %w", pal.Name, index, ErrIndexOutOfRange)
	}
	if pal.Entries[index] == c {
		return nil
	}
	pal.Entries[index] = c
	p.emit(Event{Kind: EntityChanged, ID: id, EntityKind: KindPalette})
	return nil
}

// AppendPaletteColor adds an entry and returns its index.
func (p *Project) AppendPaletteColor(id ID, c Color) (int, error) {
	if err := p.checkIdle("append palette color"); err != nil {
		return 0, err
	}
	pal, err := p.palette(id)
	if err != nil {
		return 0, err
	}
	pal.Entries = append(pal.Entries, c)
	p.emit(Event{Kind: EntityChanged, ID: id, EntityKind: KindPalette})
	return len(pal.Entries) - 1, nil
}

// SetTileSetPalette points a tileset at another palette. Every pixel must be
// a valid entry of the new palette.
func (p *Project) SetTileSetPalette(tsID, palID ID) error {
	if err := p.checkIdle("set tileset palette"); err != nil {
		return err
	}
	ts, err := p.tileSet(tsID)
	if err != nil {
		return err
	}
	pal, err := p.palette(palID)
	if err != nil {
		return err
	}
	limit := Cell(len(pal.Entries))
	for i, t := range ts.Tiles {
		for _, px := range t.Pixels {
			if px >= limit {
				return fmt.Errorf("project: tileset %q tile %d uses entry %d beyond palette %q: %w", ts.Name, i, px, pal.Name, ErrIndexOutOfRange)
			}
		}
	}
	if ts.Palette == palID {
		return nil
	}
	ts.Palette = palID
	p.emit(Event{Kind: EntityChanged, ID: tsID, EntityKind: KindTileSet})
	return nil
}

// SetMapBackground changes the colour drawn beneath a map's layers.
func (p *Project) SetMapBackground(id ID, c Color) error {
	if err := p.checkIdle("set map background"); err != nil {
		return err
	}
	m, err := p.mapByID(id)
	if err != nil {
		return err
	}
	m.Background = c
	p.emit(Event{Kind: EntityChanged, ID: id, EntityKind: KindMap})
	return nil
}

// AddMapLayer appends an empty layer drawing from ts and returns its index.
// A zero ts creates a detached layer.
func (p *Project) AddMapLayer(mapID, ts ID) (int, error) {
	if err := p.checkIdle("add map layer"); err != nil {
		return 0, err
	}
	m, err := p.mapByID(mapID)
	if err != nil {
		return 0, err
	}
	if ts != 0 {
		if _, err := p.tileSet(ts); err != nil {
			return 0, err
		}
	}
	name := ""
	for n := len(m.Layers) + 1; ; n++ {
		name = fmt.Sprintf("Layer %d", n)
		taken := false
		for _, l := range m.Layers {
			if l.Name == name {
				taken = true
				break
			}
		}
		if !taken {
			break
		}
	}
	m.Layers = append(m.Layers, newLayer(name, ts, m.Width, m.Height))
	p.emit(Event{Kind: EntityChanged, ID: mapID, EntityKind: KindMap})
	return len(m.Layers) - 1, nil
}

// RemoveMapLayer deletes the layer at index.
func (p *Project) RemoveMapLayer(mapID ID, index int) error {
	if err := p.checkIdle("remove map layer"); err != nil {
		return err
	}
	m, err := p.mapByID(mapID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(m.Layers) {
		return fmt.Errorf("project: map %q layer %d: %w", m.Name, index, ErrIndexOutOfRange)
	}
	m.Layers = append(m.Layers[:index], m.Layers[index+1:]...)
	p.emit(Event{Kind: LayersReordered, ID: mapID, EntityKind: KindMap, From: index, To: -1})
	return nil
}

// MoveMapLayer moves the layer at from so that it ends up at index to.
func (p *Project) MoveMapLayer(mapID ID, from, to int) error {
	if err := p.checkIdle("move map layer"); err != nil {
		return err
	}
	m, err := p.mapByID(mapID)
	if err != nil {
		return err
	}
	n := len(m.Layers)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("project: map %q move layer %d to %d: %w", m.Name, from, to, ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}
	l := m.Layers[from]
	m.Layers = append(m.Layers[:from], m.Layers[from+1:]...)
	m.Layers = append(m.Layers[:to], append([]*MapLayer{l}, m.Layers[to:]...)...)
	p.emit(Event{Kind: LayersReordered, ID: mapID, EntityKind: KindMap, From: from, To: to})
	return nil
}

// SetLayerBlend sets how a layer surface mixes with the layers beneath it.
func (p *Project) SetLayerBlend(s Surface, mode BlendMode, alpha uint8) error {
	if err := p.checkIdle("set layer blend"); err != nil {
		return err
	}
	if alpha > MaxAlpha || mode > BlendMultiply {
		return fmt.Errorf("project: blend %s alpha %d: %w", mode, alpha, ErrInvalidDimension)
	}
	l, err := p.layer(s)
	if err != nil {
		return err
	}
	l.Blend, l.Alpha = mode, alpha
	p.emitLayerChanged(s)
	return nil
}

// SetLayerEffect marks a map layer as an effect layer or back to a tile layer.
func (p *Project) SetLayerEffect(s Surface, effect bool) error {
	if err := p.checkIdle("set layer effect"); err != nil {
		return err
	}
	l, err := p.layer(s)
	if err != nil {
		return err
	}
	l.Effect = effect
	p.emitLayerChanged(s)
	return nil
}

// SetLayerTileSet points a layer at another tileset. Every cell must be a
// valid tile index of the new tileset.
func (p *Project) SetLayerTileSet(s Surface, tsID ID) error {
	if err := p.checkIdle("set layer tileset"); err != nil {
		return err
	}
	l, err := p.layer(s)
	if err != nil {
		return err
	}
	ts, err := p.tileSet(tsID)
	if err != nil {
		return err
	}
	for i, c := range l.Cells {
		if int(c) >= len(ts.Tiles) {
			return fmt.Errorf("project: layer %q cell %d uses tile %d beyond tileset %q: %w", l.Name, i, c, ts.Name, ErrIndexOutOfRange)
		}
	}
	l.TileSet = tsID
	p.emitLayerChanged(s)
	return nil
}

func (p *Project) emitLayerChanged(s Surface) {
	k := KindEffectLayer
	if s.Kind == SurfaceMapLayer {
		k = KindMap
	}
	p.emit(Event{Kind: EntityChanged, ID: s.ID, EntityKind: k, Surface: s})
}
