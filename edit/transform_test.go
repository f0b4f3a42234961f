package edit

import (
	"testing"

	"github.com/milk9111/tilekit/project"
)

const e = project.Empty

func fillRows(t *testing.T, p *project.Project, surf project.Surface, rows [][]project.Cell) {
	t.Helper()
	for y, row := range rows {
		for x, v := range row {
			if v != e {
				setCell(t, p, surf, x, y, v)
			}
		}
	}
}

func flat(rows [][]project.Cell) []project.Cell {
	var out []project.Cell
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

func TestTransforms(t *testing.T) {
	start := [][]project.Cell{
		{0, 1, 2, e},
		{3, 2, 1, e},
		{e, e, e, e},
		{e, e, e, e},
	}
	cases := []struct {
		name       string
		region     *Rect
		run        func(*Session) error
		want       [][]project.Cell
		wantRegion Rect
	}{
		{
			name: "flip_horizontal_surface",
			run:  (*Session).FlipHorizontal,
			want: [][]project.Cell{
				{e, 2, 1, 0},
				{e, 1, 2, 3},
				{e, e, e, e},
				{e, e, e, e},
			},
		},
		{
			name:   "flip_vertical_region",
			region: &Rect{W: 3, H: 2},
			run:    (*Session).FlipVertical,
			want: [][]project.Cell{
				{3, 2, 1, e},
				{0, 1, 2, e},
				{e, e, e, e},
				{e, e, e, e},
			},
			wantRegion: Rect{W: 3, H: 2},
		},
		{
			name:   "rotate_non_square_region",
			region: &Rect{W: 3, H: 2},
			run:    (*Session).Rotate,
			want: [][]project.Cell{
				{3, 0, e, e},
				{2, 1, e, e},
				{1, 2, e, e},
				{e, e, e, e},
			},
			wantRegion: Rect{W: 2, H: 3},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, p, surf := newTestSession(t, 4, 4)
			fillRows(t, p, surf, start)
			if c.region != nil {
				if err := s.SetRegion(*c.region); err != nil {
					t.Fatalf("SetRegion: %v", err)
				}
			}
			if err := c.run(s); err != nil {
				t.Fatalf("transform: %v", err)
			}
			if got := snapshot(t, p, surf); !sameCells(got, flat(c.want)) {
				t.Fatalf("got %v, want %v", got, flat(c.want))
			}
			if c.region != nil {
				if r, _ := s.Region(); r != c.wantRegion {
					t.Fatalf("region %+v, want %+v", r, c.wantRegion)
				}
			}
			if err := s.Undo(); err != nil {
				t.Fatalf("Undo: %v", err)
			}
			if !sameCells(snapshot(t, p, surf), flat(start)) {
				t.Fatalf("undo did not restore the original")
			}
		})
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	s, p, surf := newTestSession(t, 3, 3)
	fillRows(t, p, surf, [][]project.Cell{{0, 1, 2}, {3, e, 1}, {e, 2, e}})
	before := snapshot(t, p, surf)
	for i := 0; i < 4; i++ {
		if err := s.Rotate(); err != nil {
			t.Fatalf("Rotate: %v", err)
		}
	}
	if !sameCells(before, snapshot(t, p, surf)) {
		t.Fatalf("four rotations changed the content")
	}
}

func TestTransformToolsActOnPress(t *testing.T) {
	s, p, surf := newTestSession(t, 2, 1)
	setCell(t, p, surf, 0, 0, 1)
	_ = s.Activate(ToolFlipHorizontal)
	if err := s.Press(Point{}, Primary); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if s.Gesturing() {
		t.Fatalf("flip should not start a gesture")
	}
	if p.Read(surf, 1, 0) != 1 || p.Read(surf, 0, 0) != e {
		t.Fatalf("flip on press did not apply")
	}
}
