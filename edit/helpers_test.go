package edit

import (
	"slices"
	"testing"

	"github.com/milk9111/tilekit/project"
)

// newTestSession returns a session targeting a single w x h tile on a
// four-entry palette.
func newTestSession(t *testing.T, w, h int, opts ...Option) (*Session, *project.Project, project.Surface) {
	t.Helper()
	p := project.New(project.Settings{TileWidth: w, TileHeight: h, PaletteSize: 4, TileSetColumns: 1, TileSetTiles: 1, MapWidth: w, MapHeight: h})
	if _, err := p.AddPalette(); err != nil {
		t.Fatalf("AddPalette: %v", err)
	}
	ts, err := p.AddTileSet()
	if err != nil {
		t.Fatalf("AddTileSet: %v", err)
	}
	s := NewSession(p, opts...)
	surf := project.TileSetSurface(ts)
	if err := s.SetTarget(surf); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	return s, p, surf
}

func setCell(t *testing.T, p *project.Project, surf project.Surface, x, y int, v project.Cell) {
	t.Helper()
	a, ok := p.Locate(surf, x, y)
	if !ok {
		t.Fatalf("(%d, %d) is not on the surface", x, y)
	}
	if err := p.Apply(surf, []project.Change{{Addr: a, Before: p.CellAt(surf, a), After: v}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}

func snapshot(t *testing.T, p *project.Project, surf project.Surface) []project.Cell {
	t.Helper()
	cells, err := p.Snapshot(surf)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return cells
}

func drag(t *testing.T, s *Session, tool Tool, from, to Point, b Button) {
	t.Helper()
	if err := s.Activate(tool); err != nil {
		t.Fatalf("Activate %s: %v", tool, err)
	}
	if err := s.Press(from, b); err != nil {
		t.Fatalf("Press: %v", err)
	}
	s.Drag(to)
	if err := s.Release(to); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func sameCells(a, b []project.Cell) bool {
	return slices.Equal(a, b)
}
