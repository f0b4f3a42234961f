package project

import (
	"fmt"
	"slices"
)

// AddPalette creates a grey-ramp palette with a default name.
func (p *Project) AddPalette() (ID, error) {
	if err := p.checkIdle("add palette"); err != nil {
		return 0, err
	}
	pal := &Palette{Name: p.uniqueName(KindPalette, KindPalette.defaultName()), Entries: greyRamp(p.settings.PaletteSize)}
	return p.addPalette(pal), nil
}

// AddTileSet creates a tileset of blank tiles on the first palette.
func (p *Project) AddTileSet() (ID, error) {
	if err := p.checkIdle("add tileset"); err != nil {
		return 0, err
	}
	ts := &TileSet{
		Name:    p.uniqueName(KindTileSet, KindTileSet.defaultName()),
		Palette: p.first(KindPalette),
		Columns: p.settings.TileSetColumns,
		Tiles:   make([]Tile, p.settings.TileSetTiles),
	}
	for i := range ts.Tiles {
		ts.Tiles[i] = newTile(p.settings.TileWidth, p.settings.TileHeight)
	}
	return p.addTileSet(ts), nil
}

// AddEffectLayer creates an empty standalone effect layer on the first tileset.
func (p *Project) AddEffectLayer() (ID, error) {
	if err := p.checkIdle("add effect layer"); err != nil {
		return 0, err
	}
	l := newLayer(p.uniqueName(KindEffectLayer, KindEffectLayer.defaultName()), p.first(KindTileSet), p.settings.MapWidth, p.settings.MapHeight)
	l.Effect = true
	return p.addEffectLayer(l), nil
}

// AddMap creates a map with one empty layer on the first tileset.
func (p *Project) AddMap() (ID, error) {
	if err := p.checkIdle("add map"); err != nil {
		return 0, err
	}
	w, h := p.settings.MapWidth, p.settings.MapHeight
	m := &Map{
		Name:   p.uniqueName(KindMap, KindMap.defaultName()),
		Width:  w,
		Height: h,
		Layers: []*MapLayer{newLayer("Layer 1", p.first(KindTileSet), w, h)},
	}
	return p.addMap(m), nil
}

func (p *Project) addPalette(pal *Palette) ID {
	id := p.insert(KindPalette)
	p.palettes[id] = pal
	p.emit(Event{Kind: EntityAdded, ID: id, EntityKind: KindPalette})
	return id
}

func (p *Project) addTileSet(ts *TileSet) ID {
	id := p.insert(KindTileSet)
	p.tileSets[id] = ts
	p.emit(Event{Kind: EntityAdded, ID: id, EntityKind: KindTileSet})
	return id
}

func (p *Project) addEffectLayer(l *MapLayer) ID {
	id := p.insert(KindEffectLayer)
	p.effects[id] = l
	p.emit(Event{Kind: EntityAdded, ID: id, EntityKind: KindEffectLayer})
	return id
}

func (p *Project) addMap(m *Map) ID {
	id := p.insert(KindMap)
	p.maps[id] = m
	p.emit(Event{Kind: EntityAdded, ID: id, EntityKind: KindMap})
	return id
}

// Rename changes an entity's name. Names are unique within a collection.
func (p *Project) Rename(id ID, name string) error {
	if err := p.checkIdle("rename"); err != nil {
		return err
	}
	k := p.Kind(id)
	if k == KindNone {
		return fmt.Errorf("project: rename %s: %w", id, ErrNotFound)
	}
	name, ok := validName(name)
	if !ok {
		return fmt.Errorf("project: rename %s: %w", id, ErrInvalidName)
	}
	if name == p.Name(id) {
		return nil
	}
	if p.nameTaken(k, name, id) {
		return fmt.Errorf("project: rename %s to %q: %w", id, name, ErrNameConflict)
	}
	switch k {
	case KindPalette:
		p.palettes[id].Name = name
	case KindTileSet:
		p.tileSets[id].Name = name
	case KindEffectLayer:
		p.effects[id].Name = name
	case KindMap:
		p.maps[id].Name = name
	}
	p.emit(Event{Kind: EntityRenamed, ID: id, EntityKind: k})
	return nil
}

// Duplicate deep-copies an entity. An empty name picks "<name> copy".
func (p *Project) Duplicate(id ID, name string) (ID, error) {
	if err := p.checkIdle("duplicate"); err != nil {
		return 0, err
	}
	k := p.Kind(id)
	if k == KindNone {
		return 0, fmt.Errorf("project: duplicate %s: %w", id, ErrNotFound)
	}
	if name == "" {
		name = p.uniqueName(k, p.Name(id)+" copy")
	} else {
		var ok bool
		if name, ok = validName(name); !ok {
			return 0, fmt.Errorf("project: duplicate %s: %w", id, ErrInvalidName)
		}
		if p.nameTaken(k, name, 0) {
			return 0, fmt.Errorf("project: duplicate %s as %q: %w", id, name, ErrNameConflict)
		}
	}
	switch k {
	case KindPalette:
		c := p.palettes[id].clone()
		c.Name = name
		return p.addPalette(c), nil
	case KindTileSet:
		c := p.tileSets[id].clone()
		c.Name = name
		return p.addTileSet(c), nil
	case KindEffectLayer:
		c := p.effects[id].clone()
		c.Name = name
		return p.addEffectLayer(c), nil
	default:
		c := p.maps[id].clone()
		c.Name = name
		return p.addMap(c), nil
	}
}

// Remove deletes an entity. A palette used by a tileset, or a tileset used by
// any layer, is only removed with cascade set; cascading detaches the
// dependents instead of removing them.
func (p *Project) Remove(id ID, cascade bool) error {
	if err := p.checkIdle("remove"); err != nil {
		return err
	}
	k := p.Kind(id)
	if k == KindNone {
		return fmt.Errorf("project: remove %s: %w", id, ErrNotFound)
	}
	refs := p.References(id)
	if len(refs) > 0 && !cascade {
		names := make([]string, len(refs))
		for i, r := range refs {
			names[i] = p.Name(r)
		}
		return fmt.Errorf("project: remove: %w", &ReferenceError{Entity: id, Name: p.Name(id), Referrers: names})
	}
	for _, r := range refs {
		p.detach(r, id)
	}

	switch k {
	case KindPalette:
		delete(p.palettes, id)
	case KindTileSet:
		delete(p.tileSets, id)
	case KindEffectLayer:
		delete(p.effects, id)
	case KindMap:
		delete(p.maps, id)
	}
	delete(p.kinds, id)
	p.order[k-1] = slices.DeleteFunc(p.order[k-1], func(v ID) bool { return v == id })
	p.ids.destroy(id)
	p.emit(Event{Kind: EntityRemoved, ID: id, EntityKind: k})
	for _, r := range refs {
		p.emit(Event{Kind: EntityChanged, ID: r, EntityKind: p.Kind(r)})
	}
	return nil
}

// detach drops every reference from dependent to target.
func (p *Project) detach(dependent, target ID) {
	switch p.Kind(dependent) {
	case KindTileSet:
		p.tileSets[dependent].Palette = 0
	case KindEffectLayer:
		l := p.effects[dependent]
		l.TileSet = 0
		l.clear()
	case KindMap:
		for _, l := range p.maps[dependent].Layers {
			if l.TileSet == target {
				l.TileSet = 0
				l.clear()
			}
		}
	}
}
