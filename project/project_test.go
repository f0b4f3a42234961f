package project

import (
	"errors"
	"testing"
)

func newTestProject(t *testing.T) (*Project, ID, ID, ID) {
	t.Helper()
	p := New(Settings{TileWidth: 2, TileHeight: 2, PaletteSize: 4, TileSetColumns: 4, TileSetTiles: 8, MapWidth: 3, MapHeight: 2})
	pal, err := p.AddPalette()
	if err != nil {
		t.Fatalf("AddPalette: %v", err)
	}
	ts, err := p.AddTileSet()
	if err != nil {
		t.Fatalf("AddTileSet: %v", err)
	}
	m, err := p.AddMap()
	if err != nil {
		t.Fatalf("AddMap: %v", err)
	}
	return p, pal, ts, m
}

func TestIDStoreReuse(t *testing.T) {
	var s idStore
	a := s.create()
	b := s.create()
	s.destroy(a)
	if s.alive(a) {
		t.Fatalf("destroyed id %s still alive", a)
	}
	c := s.create()
	if c.slot() != a.slot() {
		t.Fatalf("expected slot reuse, got %d want %d", c.slot(), a.slot())
	}
	if c == a {
		t.Fatalf("reused slot must carry a new generation")
	}
	if !s.alive(b) || !s.alive(c) {
		t.Fatalf("live ids reported dead")
	}
	if s.alive(0) {
		t.Fatalf("zero id must never be alive")
	}
}

func TestDefaultNames(t *testing.T) {
	p := New(DefaultSettings())
	cases := []struct {
		name string
		add  func() (ID, error)
		want []string
	}{
		{"palette", p.AddPalette, []string{"Palette", "Palette 2", "Palette 3"}},
		{"tileset", p.AddTileSet, []string{"Tileset", "Tileset 2", "Tileset 3"}},
		{"effect_layer", p.AddEffectLayer, []string{"Effect layer", "Effect layer 2", "Effect layer 3"}},
		{"map", p.AddMap, []string{"Map", "Map 2", "Map 3"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, want := range c.want {
				id, err := c.add()
				if err != nil {
					t.Fatalf("add: %v", err)
				}
				if got := p.Name(id); got != want {
					t.Fatalf("expected name %q, got %q", want, got)
				}
			}
		})
	}
}

func TestDefaultContent(t *testing.T) {
	p, pal, ts, m := newTestProject(t)
	palette, _ := p.Palette(pal)
	if len(palette.Entries) != 4 || palette.Entries[0] != RGB(0, 0, 0) || palette.Entries[3] != RGB(31, 31, 31) {
		t.Fatalf("unexpected default palette %v", palette.Entries)
	}
	tileSet, _ := p.TileSet(ts)
	if tileSet.Palette != pal || tileSet.Columns != 4 || len(tileSet.Tiles) != 8 {
		t.Fatalf("unexpected default tileset %+v", tileSet)
	}
	for _, px := range tileSet.Tiles[0].Pixels {
		if px != Empty {
			t.Fatalf("new tiles should be blank, got %d", px)
		}
	}
	mp, _ := p.Map(m)
	if len(mp.Layers) != 1 || mp.Layers[0].Name != "Layer 1" || mp.Layers[0].TileSet != ts {
		t.Fatalf("unexpected default map %+v", mp)
	}
}

func TestRename(t *testing.T) {
	p, _, ts, _ := newTestProject(t)
	other, _ := p.AddTileSet()

	cases := []struct {
		name    string
		id      ID
		to      string
		wantErr error
		want    string
	}{
		{"conflict", other, "Tileset", ErrNameConflict, "Tileset 2"},
		{"blank", other, "   ", ErrInvalidName, "Tileset 2"},
		{"same_name", ts, "Tileset", nil, "Tileset"},
		{"trimmed", other, "  Sprites ", nil, "Sprites"},
		{"stale", ID(999), "x", ErrNotFound, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := p.Rename(c.id, c.to)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected error %v, got %v", c.wantErr, err)
			}
			if got := p.Name(c.id); got != c.want {
				t.Fatalf("expected name %q, got %q", c.want, got)
			}
		})
	}
	if p.Name(ts) != "Tileset" {
		t.Fatalf("conflicting rename changed the other entity: %q", p.Name(ts))
	}
}

func TestRenameAcrossCollectionsAllowed(t *testing.T) {
	p, pal, _, _ := newTestProject(t)
	if err := p.Rename(pal, "Tileset"); err != nil {
		t.Fatalf("names only need to be unique per collection: %v", err)
	}
}

func TestDuplicateDeepCopies(t *testing.T) {
	p, _, _, m := newTestProject(t)
	dup, err := p.Duplicate(m, "")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if p.Name(dup) != "Map copy" {
		t.Fatalf("expected %q, got %q", "Map copy", p.Name(dup))
	}
	if err := p.Apply(MapLayerSurface(dup, 0), []Change{{Addr: Addr{Tile: 0}, Before: Empty, After: 3}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := p.Read(MapLayerSurface(m, 0), 0, 0); got != Empty {
		t.Fatalf("editing the duplicate changed the original: %d", got)
	}
	if _, err := p.Duplicate(m, "Map copy"); !errors.Is(err, ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict, got %v", err)
	}
	again, _ := p.Duplicate(m, "")
	if p.Name(again) != "Map copy 2" {
		t.Fatalf("expected %q, got %q", "Map copy 2", p.Name(again))
	}
}

func TestRemoveReferenced(t *testing.T) {
	p, pal, ts, m := newTestProject(t)
	fx, _ := p.AddEffectLayer()

	err := p.Remove(pal, false)
	var ref *ReferenceError
	if !errors.As(err, &ref) || !errors.Is(err, ErrReferencedElsewhere) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
	if len(ref.Referrers) != 1 || ref.Referrers[0] != "Tileset" {
		t.Fatalf("unexpected referrers %v", ref.Referrers)
	}
	if p.Kind(pal) != KindPalette {
		t.Fatalf("failed removal must leave the palette in place")
	}

	if err := p.Apply(MapLayerSurface(m, 0), []Change{{Addr: Addr{Tile: 1}, Before: Empty, After: 2}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := p.Remove(ts, true); err != nil {
		t.Fatalf("cascade Remove: %v", err)
	}
	if p.Kind(ts) != KindNone {
		t.Fatalf("removed tileset still resolves")
	}
	mp, _ := p.Map(m)
	if mp.Layers[0].TileSet != 0 || mp.Layers[0].Cells[1] != Empty {
		t.Fatalf("map layer not detached: %+v", mp.Layers[0])
	}
	l, _ := p.EffectLayer(fx)
	if l.TileSet != 0 {
		t.Fatalf("effect layer not detached")
	}
	if err := p.Remove(pal, false); err != nil {
		t.Fatalf("palette no longer referenced: %v", err)
	}
	if err := p.Remove(pal, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for stale id, got %v", err)
	}
}

func TestBusyBlocksMutation(t *testing.T) {
	p, pal, ts, _ := newTestProject(t)
	p.SetBusy(true)
	ops := map[string]func() error{
		"rename":  func() error { return p.Rename(ts, "x") },
		"remove":  func() error { return p.Remove(pal, true) },
		"add":     func() error { _, err := p.AddPalette(); return err },
		"resize":  func() error { return p.ResizeTileSet(ts, 2) },
		"color":   func() error { return p.SetPaletteColor(pal, 0, RGB(1, 2, 3)) },
		"content": func() error { return p.Apply(TileSetSurface(ts), []Change{{After: 0}}) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, ErrBusy) {
				t.Fatalf("expected ErrBusy, got %v", err)
			}
		})
	}
	p.SetBusy(false)
	if err := p.Rename(ts, "x"); err != nil {
		t.Fatalf("Rename after busy cleared: %v", err)
	}
}

func TestSetTileSetPaletteChecksPixels(t *testing.T) {
	p, _, ts, _ := newTestProject(t)
	small, _ := p.AddPalette()
	p.palettes[small].Entries = p.palettes[small].Entries[:2]
	if err := p.Apply(TileSetSurface(ts), []Change{{Addr: Addr{Tile: 0, Pixel: 0}, Before: Empty, After: 3}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := p.SetTileSetPalette(ts, small); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestMapLayerOps(t *testing.T) {
	p, _, ts, m := newTestProject(t)
	idx, err := p.AddMapLayer(m, ts)
	if err != nil || idx != 1 {
		t.Fatalf("AddMapLayer = %d, %v", idx, err)
	}
	if err := p.MoveMapLayer(m, 1, 0); err != nil {
		t.Fatalf("MoveMapLayer: %v", err)
	}
	mp, _ := p.Map(m)
	if mp.Layers[0].Name != "Layer 2" || mp.Layers[1].Name != "Layer 1" {
		t.Fatalf("unexpected layer order %q, %q", mp.Layers[0].Name, mp.Layers[1].Name)
	}
	if err := p.SetLayerBlend(MapLayerSurface(m, 0), BlendAdd, 17); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}
	if err := p.SetLayerBlend(MapLayerSurface(m, 0), BlendAdd, 8); err != nil {
		t.Fatalf("SetLayerBlend: %v", err)
	}
	if err := p.RemoveMapLayer(m, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := p.RemoveMapLayer(m, 0); err != nil {
		t.Fatalf("RemoveMapLayer: %v", err)
	}
}

func TestEventsAndSubscribe(t *testing.T) {
	p := New(DefaultSettings())
	var seen []EventKind
	cancel := p.Subscribe(func(e Event) { seen = append(seen, e.Kind) })
	pal, _ := p.AddPalette()
	_ = p.Rename(pal, "Main")
	cancel()
	_ = p.Rename(pal, "Other")

	if len(seen) != 2 || seen[0] != EntityAdded || seen[1] != EntityRenamed {
		t.Fatalf("unexpected listener events %v", seen)
	}
	if got := len(p.Events().Drain()); got != 3 {
		t.Fatalf("expected 3 queued events, got %d", got)
	}
	if p.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func TestLayerEvents(t *testing.T) {
	p, _, ts, m := newTestProject(t)
	_, _ = p.AddMapLayer(m, ts)
	_, _ = p.AddMapLayer(m, ts)
	var got []Event
	cancel := p.Subscribe(func(e Event) { got = append(got, e) })
	defer cancel()

	if err := p.MoveMapLayer(m, 2, 0); err != nil {
		t.Fatalf("MoveMapLayer: %v", err)
	}
	if err := p.RemoveMapLayer(m, 1); err != nil {
		t.Fatalf("RemoveMapLayer: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %v", got)
	}
	if e := got[0]; e.Kind != LayersReordered || e.ID != m || e.From != 2 || e.To != 0 {
		t.Fatalf("unexpected move event %+v", e)
	}
	if e := got[1]; e.Kind != LayersReordered || e.From != 1 || e.To != -1 {
		t.Fatalf("unexpected remove event %+v", e)
	}
}

func TestEventLayerIndex(t *testing.T) {
	move := func(from, to int) Event { return Event{Kind: LayersReordered, From: from, To: to} }
	tests := []struct {
		name   string
		evt    Event
		before []int
		after  []int
		kept   []bool
	}{
		{"move_down", move(0, 2), []int{0, 1, 2, 3}, []int{2, 0, 1, 3}, []bool{true, true, true, true}},
		{"move_up", move(3, 1), []int{0, 1, 2, 3}, []int{0, 2, 3, 1}, []bool{true, true, true, true}},
		{"remove", move(1, -1), []int{0, 1, 2}, []int{0, -1, 1}, []bool{true, false, true}},
		{"other_kind", Event{Kind: EntityChanged, From: 0, To: 1}, []int{0, 1}, []int{0, 1}, []bool{true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, b := range tt.before {
				got, ok := tt.evt.LayerIndex(b)
				if ok != tt.kept[i] || (ok && got != tt.after[i]) {
					t.Fatalf("LayerIndex(%d) = %d, %v; want %d, %v", b, got, ok, tt.after[i], tt.kept[i])
				}
			}
		})
	}
}

func TestReshapeEmitsReshaped(t *testing.T) {
	p, _, ts, _ := newTestProject(t)
	var kinds []EventKind
	cancel := p.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })
	defer cancel()
	_ = p.ResizeTileSet(ts, 2)
	_ = p.ReshapeTileSet(ts, 4, 2)
	if len(kinds) < 2 || kinds[0] != TileSetResized || kinds[1] != TileSetReshaped {
		t.Fatalf("unexpected events %v", kinds)
	}
}
