package project

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p, _, ts, m := newTestProject(t)
	stampTiles(t, p, ts)
	if _, err := p.AddEffectLayer(); err != nil {
		t.Fatalf("AddEffectLayer: %v", err)
	}
	if err := p.SetLayerBlend(MapLayerSurface(m, 0), BlendSubtract, 4); err != nil {
		t.Fatalf("SetLayerBlend: %v", err)
	}
	if err := p.Apply(MapLayerSurface(m, 0), []Change{{Addr: Addr{Tile: 2}, Before: Empty, After: 7}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for _, c := range []struct {
		name   string
		encode func(*Project) ([]byte, error)
		decode func([]byte) (*Project, error)
	}{
		{"yaml", Encode, Decode},
		{"lz4", EncodeCompressed, DecodeCompressed},
	} {
		t.Run(c.name, func(t *testing.T) {
			data, err := c.encode(p)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := c.decode(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			gts, ok := got.Lookup(KindTileSet, "Tileset")
			if !ok {
				t.Fatalf("tileset missing after decode")
			}
			want, _ := p.Snapshot(TileSetSurface(ts))
			have, _ := got.Snapshot(TileSetSurface(gts))
			if !slices.Equal(want, have) {
				t.Fatalf("tileset pixels differ after decode")
			}
			gm, _ := got.Lookup(KindMap, "Map")
			mp, _ := got.Map(gm)
			if mp.Layers[0].Blend != BlendSubtract || mp.Layers[0].Alpha != 4 || mp.Layers[0].Cells[2] != 7 || mp.Layers[0].TileSet != gts {
				t.Fatalf("map layer not restored: %+v", mp.Layers[0])
			}
			if len(got.EffectLayers()) != 1 {
				t.Fatalf("expected one effect layer, got %d", len(got.EffectLayers()))
			}
		})
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	header := "version: 1\ntile_width: 1\ntile_height: 1\n"
	cases := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"duplicate_names", header + "palettes:\n  - {name: A, colors: [0]}\n  - {name: A, colors: [1]}\n", ErrNameConflict},
		{"empty_palette", header + "palettes:\n  - {name: A, colors: []}\n", ErrInvalidDimension},
		{"zero_columns", header + "tilesets:\n  - {name: T, columns: 0, tiles: []}\n", ErrInvalidDimension},
		{"unknown_palette", header + "tilesets:\n  - {name: T, palette: P, columns: 1, tiles: []}\n", ErrNotFound},
		{"pixel_out_of_range", header + "palettes:\n  - {name: P, colors: [0]}\ntilesets:\n  - {name: T, palette: P, columns: 1, tiles: [[1]]}\n", ErrIndexOutOfRange},
		{"cell_out_of_range", header + "tilesets:\n  - {name: T, columns: 1, tiles: [[-1]]}\nmaps:\n  - {name: M, width: 1, height: 1, layers: [{name: L, tileset: T, width: 1, height: 1, cells: [1]}]}\n", ErrIndexOutOfRange},
		{"layer_size", header + "maps:\n  - {name: M, width: 2, height: 1, layers: [{name: L, width: 1, height: 1, cells: [-1]}]}\n", ErrInvalidDimension},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode([]byte(c.doc))
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
		})
	}
	if _, err := Decode([]byte("version: 7\n")); err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}
