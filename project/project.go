// Package project holds the tile document: palettes, tilesets, standalone
// effect layers and maps, addressed by stable IDs and owned by one Project.
package project

import (
	"fmt"
	"strings"
)

// Settings fixes the document-wide tile size and the content of new entities.
type Settings struct {
	TileWidth      int
	TileHeight     int
	PaletteSize    int
	TileSetColumns int
	TileSetTiles   int
	MapWidth       int
	MapHeight      int
}

// DefaultSettings returns 8x8 tiles, 16-colour palettes, 64-tile tilesets in
// 8 columns and 64x32 maps.
func DefaultSettings() Settings {
	return Settings{
		TileWidth:      8,
		TileHeight:     8,
		PaletteSize:    16,
		TileSetColumns: 8,
		TileSetTiles:   64,
		MapWidth:       64,
		MapHeight:      32,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&s.TileWidth, d.TileWidth)
	fill(&s.TileHeight, d.TileHeight)
	fill(&s.PaletteSize, d.PaletteSize)
	fill(&s.TileSetColumns, d.TileSetColumns)
	fill(&s.TileSetTiles, d.TileSetTiles)
	fill(&s.MapWidth, d.MapWidth)
	fill(&s.MapHeight, d.MapHeight)
	return s
}

type Project struct {
	settings Settings

	ids   idStore
	kinds map[ID]Kind
	order [numKinds][]ID

	palettes map[ID]*Palette
	tileSets map[ID]*TileSet
	effects  map[ID]*MapLayer
	maps     map[ID]*Map

	busy bool

	events       EventQueue
	listeners    []listener
	nextListener int
}

// New returns an empty project. Non-positive settings fall back to
// DefaultSettings.
func New(s Settings) *Project {
	return &Project{
		settings: s.withDefaults(),
		kinds:    make(map[ID]Kind),
		palettes: make(map[ID]*Palette),
		tileSets: make(map[ID]*TileSet),
		effects:  make(map[ID]*MapLayer),
		maps:     make(map[ID]*Map),
	}
}

func (p *Project) Settings() Settings { return p.settings }
func (p *Project) TileWidth() int     { return p.settings.TileWidth }
func (p *Project) TileHeight() int    { return p.settings.TileHeight }

// SetDefaults replaces the content settings used for new entities. The tile
// size is fixed for the life of the project and is left unchanged.
func (p *Project) SetDefaults(s Settings) {
	s.TileWidth, s.TileHeight = p.settings.TileWidth, p.settings.TileHeight
	p.settings = s.withDefaults()
}

// SetBusy marks a gesture in progress. While busy every mutation fails with
// ErrBusy.
func (p *Project) SetBusy(busy bool) { p.busy = busy }

func (p *Project) Busy() bool { return p.busy }

func (p *Project) checkIdle(op string) error {
	if p.busy {
		return fmt.Errorf("project: %s: %w", op, ErrBusy)
	}
	return nil
}

// Kind reports the collection id belongs to, or KindNone if it is stale.
func (p *Project) Kind(id ID) Kind {
	if !p.ids.alive(id) {
		return KindNone
	}
	return p.kinds[id]
}

func (p *Project) Palettes() []ID     { return p.list(KindPalette) }
func (p *Project) TileSets() []ID     { return p.list(KindTileSet) }
func (p *Project) EffectLayers() []ID { return p.list(KindEffectLayer) }
func (p *Project) Maps() []ID         { return p.list(KindMap) }

func (p *Project) list(k Kind) []ID {
	return append([]ID(nil), p.order[k-1]...)
}

// Name returns the entity's name or "" for a stale id.
func (p *Project) Name(id ID) string {
	switch p.Kind(id) {
	case KindPalette:
		return p.palettes[id].Name
	case KindTileSet:
		return p.tileSets[id].Name
	case KindEffectLayer:
		return p.effects[id].Name
	case KindMap:
		return p.maps[id].Name
	}
	return ""
}

// Lookup finds an entity by exact name within one collection.
func (p *Project) Lookup(k Kind, name string) (ID, bool) {
	if k == KindNone {
		return 0, false
	}
	for _, id := range p.order[k-1] {
		if p.Name(id) == name {
			return id, true
		}
	}
	return 0, false
}

// Palette returns a copy of the palette.
func (p *Project) Palette(id ID) (Palette, error) {
	pal, err := p.palette(id)
	if err != nil {
		return Palette{}, err
	}
	return *pal.clone(), nil
}

// TileSet returns a copy of the tileset including its tiles.
func (p *Project) TileSet(id ID) (TileSet, error) {
	ts, err := p.tileSet(id)
	if err != nil {
		return TileSet{}, err
	}
	return *ts.clone(), nil
}

// EffectLayer returns a copy of a standalone effect layer.
func (p *Project) EffectLayer(id ID) (MapLayer, error) {
	l, err := p.effectLayer(id)
	if err != nil {
		return MapLayer{}, err
	}
	return *l.clone(), nil
}

// Map returns a copy of the map and its layers.
func (p *Project) Map(id ID) (Map, error) {
	m, err := p.mapByID(id)
	if err != nil {
		return Map{}, err
	}
	return *m.clone(), nil
}

func (p *Project) palette(id ID) (*Palette, error) {
	if err := p.expect(id, KindPalette); err != nil {
		return nil, err
	}
	return p.palettes[id], nil
}

func (p *Project) tileSet(id ID) (*TileSet, error) {
	if err := p.expect(id, KindTileSet); err != nil {
		return nil, err
	}
	return p.tileSets[id], nil
}

func (p *Project) effectLayer(id ID) (*MapLayer, error) {
	if err := p.expect(id, KindEffectLayer); err != nil {
		return nil, err
	}
	return p.effects[id], nil
}

func (p *Project) mapByID(id ID) (*Map, error) {
	if err := p.expect(id, KindMap); err != nil {
		return nil, err
	}
	return p.maps[id], nil
}

func (p *Project) expect(id ID, k Kind) error {
	got := p.Kind(id)
	if got == KindNone {
		return fmt.Errorf("project: %s %s: %w", k, id, ErrNotFound)
	}
	if got != k {
		return fmt.Errorf("project: %s is a %s, want %s: %w", id, got, k, ErrWrongKind)
	}
	return nil
}

// References lists the entities that refer to id: tilesets using a palette,
// or effect layers and maps with a layer drawing from a tileset.
func (p *Project) References(id ID) []ID {
	var out []ID
	switch p.Kind(id) {
	case KindPalette:
		for _, tsID := range p.order[KindTileSet-1] {
			if p.tileSets[tsID].Palette == id {
				out = append(out, tsID)
			}
		}
	case KindTileSet:
		for _, lid := range p.order[KindEffectLayer-1] {
			if p.effects[lid].TileSet == id {
				out = append(out, lid)
			}
		}
		for _, mid := range p.order[KindMap-1] {
			for _, l := range p.maps[mid].Layers {
				if l.TileSet == id {
					out = append(out, mid)
					break
				}
			}
		}
	}
	return out
}

func (p *Project) insert(k Kind) ID {
	id := p.ids.create()
	p.kinds[id] = k
	p.order[k-1] = append(p.order[k-1], id)
	return id
}

func (p *Project) nameTaken(k Kind, name string, except ID) bool {
	for _, id := range p.order[k-1] {
		if id != except && p.Name(id) == name {
			return true
		}
	}
	return false
}

// uniqueName returns base, or base with the first free numeric suffix.
func (p *Project) uniqueName(k Kind, base string) string {
	if !p.nameTaken(k, base, 0) {
		return base
	}
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s %d", base, n)
		if !p.nameTaken(k, name, 0) {
			return name
		}
	}
}

func validName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	return name, name != ""
}

func (p *Project) first(k Kind) ID {
	if ids := p.order[k-1]; len(ids) > 0 {
		return ids[0]
	}
	return 0
}
