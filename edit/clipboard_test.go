package edit

import (
	"errors"
	"testing"

	"github.com/milk9111/tilekit/project"
)

type fakeMirror struct {
	text string
	err  error
}

func (m *fakeMirror) ReadText() (string, error) { return m.text, m.err }

func (m *fakeMirror) WriteText(s string) error {
	if m.err != nil {
		return m.err
	}
	m.text = s
	return nil
}

func paintPattern(t *testing.T, p *project.Project, surf project.Surface) {
	t.Helper()
	setCell(t, p, surf, 1, 1, 1)
	setCell(t, p, surf, 2, 1, 2)
	setCell(t, p, surf, 1, 2, 3)
}

func TestCutThenPasteRestores(t *testing.T) {
	s, p, surf := newTestSession(t, 4, 4)
	paintPattern(t, p, surf)
	before := snapshot(t, p, surf)

	if err := s.Cut(); !errors.Is(err, ErrNoRegion) {
		t.Fatalf("expected ErrNoRegion, got %v", err)
	}
	if err := s.SetRegion(Rect{X: 1, Y: 1, W: 2, H: 2}); err != nil {
		t.Fatalf("SetRegion: %v", err)
	}
	if err := s.Cut(); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	for _, pt := range []Point{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if v := p.Read(surf, pt.X, pt.Y); v != project.Empty {
			t.Fatalf("cut left %d at %v", v, pt)
		}
	}
	if err := s.Paste(); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if !sameCells(before, snapshot(t, p, surf)) {
		t.Fatalf("cut then paste did not restore the content")
	}
	if undo, _ := s.History().Len(); undo != 2 {
		t.Fatalf("expected cut and paste records, got %d", undo)
	}
}

func TestCopyDoesNotMutate(t *testing.T) {
	s, p, surf := newTestSession(t, 4, 4)
	paintPattern(t, p, surf)
	before := snapshot(t, p, surf)
	_ = s.SetRegion(Rect{X: 1, Y: 1, W: 2, H: 1})
	if err := s.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if !sameCells(before, snapshot(t, p, surf)) {
		t.Fatalf("copy changed the project")
	}
	if undo, _ := s.History().Len(); undo != 0 {
		t.Fatalf("copy pushed a record")
	}
	c, ok := s.Clipboard()
	if !ok || c.Width != 2 || c.Height != 1 || c.Cells[0] != 1 || c.Cells[1] != 2 {
		t.Fatalf("unexpected clipboard %+v", c)
	}
}

func TestPasteClipsAndSelects(t *testing.T) {
	s, p, surf := newTestSession(t, 4, 4)
	paintPattern(t, p, surf)
	_ = s.SetRegion(Rect{X: 1, Y: 1, W: 2, H: 2})
	_ = s.Copy()
	_ = s.SetRegion(Rect{X: 3, Y: 3, W: 1, H: 1})
	if err := s.Paste(); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if v := p.Read(surf, 3, 3); v != 1 {
		t.Fatalf("(3, 3) = %d, want 1", v)
	}
	if r, _ := s.Region(); r != (Rect{X: 3, Y: 3, W: 1, H: 1}) {
		t.Fatalf("region should be the clipped paste, got %+v", r)
	}

	s.ClearRegion()
	if err := s.Paste(); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if p.Read(surf, 0, 0) != 1 || p.Read(surf, 1, 0) != 2 || p.Read(surf, 0, 1) != 3 {
		t.Fatalf("paste without region should land at the origin")
	}
}

func TestPasteEmptyClipboard(t *testing.T) {
	s, _, _ := newTestSession(t, 2, 2)
	if err := s.Paste(); !errors.Is(err, ErrEmptyClipboard) {
		t.Fatalf("expected ErrEmptyClipboard, got %v", err)
	}
}

func TestMirrorCarriesClipboard(t *testing.T) {
	mirror := &fakeMirror{}
	src, p1, surf1 := newTestSession(t, 4, 4, WithMirror(mirror))
	paintPattern(t, p1, surf1)
	_ = src.SetRegion(Rect{X: 1, Y: 1, W: 2, H: 2})
	if err := src.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	want := "tiles 2 2\n1 2\n3 .\n"
	if mirror.text != want {
		t.Fatalf("mirror text %q, want %q", mirror.text, want)
	}

	dst, p2, surf2 := newTestSession(t, 4, 4, WithMirror(mirror))
	if err := dst.Paste(); err != nil {
		t.Fatalf("Paste from mirror: %v", err)
	}
	if p2.Read(surf2, 0, 0) != 1 || p2.Read(surf2, 1, 0) != 2 || p2.Read(surf2, 0, 1) != 3 || p2.Read(surf2, 1, 1) != project.Empty {
		t.Fatalf("unexpected paste %v", snapshot(t, p2, surf2))
	}

	broken := &fakeMirror{err: errors.New("no display")}
	s, p3, surf3 := newTestSession(t, 4, 4, WithMirror(broken))
	paintPattern(t, p3, surf3)
	_ = s.SetRegion(Rect{X: 1, Y: 1, W: 1, H: 1})
	if err := s.Copy(); err != nil {
		t.Fatalf("mirror failures must not fail Copy: %v", err)
	}
}

func TestClipboardText(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"valid", "tiles 2 1\n0 .\n", false},
		{"bad_header", "pixels 2 1\n0 .\n", true},
		{"short_row", "tiles 2 1\n0\n", true},
		{"missing_row", "tiles 1 2\n0\n", true},
		{"negative", "tiles 1 1\n-4\n", true},
		{"zero_width", "tiles 0 1\n\n", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var clip Clipboard
			err := clip.UnmarshalText([]byte(c.text))
			if (err != nil) != c.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v", c.text, err)
			}
			if err != nil {
				if !errors.Is(err, ErrClipboardFormat) {
					t.Fatalf("expected ErrClipboardFormat, got %v", err)
				}
				return
			}
			out, _ := clip.MarshalText()
			if string(out) != c.text {
				t.Fatalf("MarshalText = %q, want %q", out, c.text)
			}
		})
	}
}

func TestRetargetDropsClipboard(t *testing.T) {
	tests := []struct {
		name    string
		mirror  *fakeMirror
		wantErr error
	}{
		{"no_mirror", nil, ErrEmptyClipboard},
		{"mirror", &fakeMirror{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.mirror != nil {
				opts = append(opts, WithMirror(tt.mirror))
			}
			s, p, surf := newTestSession(t, 2, 2, opts...)
			setCell(t, p, surf, 0, 0, 2)
			if err := s.SelectAll(); err != nil {
				t.Fatalf("SelectAll: %v", err)
			}
			if err := s.Copy(); err != nil {
				t.Fatalf("Copy: %v", err)
			}
			other, _ := p.AddTileSet()
			if err := s.SetTarget(project.TileSetSurface(other)); err != nil {
				t.Fatalf("SetTarget: %v", err)
			}
			if _, ok := s.Clipboard(); ok {
				t.Fatalf("clipboard should be dropped with the old target")
			}
			if err := s.Paste(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Paste = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if v := p.Read(project.TileSetSurface(other), 0, 0); v != 2 {
					t.Fatalf("mirror paste wrote %d, want 2", v)
				}
			}
		})
	}
}
