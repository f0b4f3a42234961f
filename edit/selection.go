package edit

import (
	"fmt"

	"github.com/milk9111/tilekit/project"
)

// SelectedPalette returns the palette colouring the target surface.
func (s *Session) SelectedPalette() (project.ID, bool) {
	if !s.hasTarget {
		return 0, false
	}
	return s.doc.PaletteOf(s.target)
}

// SelectedTileSet returns the tileset behind the target surface.
func (s *Session) SelectedTileSet() (project.ID, bool) {
	if !s.hasTarget {
		return 0, false
	}
	return s.doc.TileSetOf(s.target)
}

func (s *Session) SelectedLeftPaletteEntry() int {
	pal, _ := s.SelectedPalette()
	return s.leftEntry[pal]
}

func (s *Session) SelectedRightPaletteEntry() int {
	pal, _ := s.SelectedPalette()
	return s.rightEntry[pal]
}

// SetSelectedLeftPaletteEntry remembers entry i of pal for the primary button.
func (s *Session) SetSelectedLeftPaletteEntry(pal project.ID, i int) error {
	return s.setEntry(s.leftEntry, pal, i)
}

// SetSelectedRightPaletteEntry remembers entry i of pal for the secondary button.
func (s *Session) SetSelectedRightPaletteEntry(pal project.ID, i int) error {
	return s.setEntry(s.rightEntry, pal, i)
}

func (s *Session) setEntry(m map[project.ID]int, pal project.ID, i int) error {
	p, err := s.doc.Palette(pal)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(p.Entries) {
		return fmt.Errorf("edit: palette %q entry %d: %w", p.Name, i, project.ErrIndexOutOfRange)
	}
	if m[pal] != i {
		m[pal] = i
		s.emit(SelectionChanged)
	}
	return nil
}

func (s *Session) SelectedLeftTile() int {
	ts, _ := s.SelectedTileSet()
	return s.leftTile[ts]
}

func (s *Session) SelectedRightTile() int {
	ts, _ := s.SelectedTileSet()
	return s.rightTile[ts]
}

// SetSelectedLeftTile remembers tile i of ts for painting layers with the
// primary button.
func (s *Session) SetSelectedLeftTile(ts project.ID, i int) error {
	return s.setTile(s.leftTile, ts, i)
}

func (s *Session) SetSelectedRightTile(ts project.ID, i int) error {
	return s.setTile(s.rightTile, ts, i)
}

func (s *Session) setTile(m map[project.ID]int, ts project.ID, i int) error {
	t, err := s.doc.TileSet(ts)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(t.Tiles) {
		return fmt.Errorf("edit: tileset %q tile %d: %w", t.Name, i, project.ErrIndexOutOfRange)
	}
	if m[ts] != i {
		m[ts] = i
		s.emit(SelectionChanged)
	}
	return nil
}

// paintValue is the value a button paints on the target surface.
func (s *Session) paintValue(b Button) project.Cell {
	if s.target.Kind == project.SurfaceTileSet {
		if b == Secondary {
			return project.Cell(s.SelectedRightPaletteEntry())
		}
		return project.Cell(s.SelectedLeftPaletteEntry())
	}
	if b == Secondary {
		return project.Cell(s.SelectedRightTile())
	}
	return project.Cell(s.SelectedLeftTile())
}

// Region returns the committed selection rectangle.
func (s *Session) Region() (Rect, bool) {
	return s.region, s.hasRegion
}

// SetRegion selects r clipped to the target surface.
func (s *Session) SetRegion(r Rect) error {
	if err := s.idle(); err != nil {
		return err
	}
	if _, err := s.bounds(); err != nil {
		return err
	}
	s.setRegion(r)
	return nil
}

func (s *Session) setRegion(r Rect) {
	b, err := s.bounds()
	if err == nil {
		r = r.Intersect(b)
	}
	if r.Empty() {
		s.ClearRegion()
		return
	}
	s.region, s.hasRegion = r, true
	s.emit(SelectionChanged)
}

func (s *Session) ClearRegion() {
	if !s.hasRegion {
		return
	}
	s.region, s.hasRegion = Rect{}, false
	s.emit(SelectionChanged)
}

// SelectAll selects the whole target surface.
func (s *Session) SelectAll() error {
	if err := s.idle(); err != nil {
		return err
	}
	b, err := s.bounds()
	if err != nil {
		return err
	}
	s.setRegion(b)
	return nil
}

// area is the active region or the whole surface.
func (s *Session) area() (Rect, error) {
	b, err := s.bounds()
	if err != nil {
		return Rect{}, err
	}
	if s.hasRegion {
		return s.region.Intersect(b), nil
	}
	return b, nil
}
