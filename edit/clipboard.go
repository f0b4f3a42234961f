package edit

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/milk9111/tilekit/project"
)

var ErrClipboardFormat = errors.New("edit: malformed clipboard text")

const clipboardHeader = "tiles"

// Clipboard is a rectangular snapshot of surface cells in row-major order.
type Clipboard struct {
	Width  int
	Height int
	Cells  []project.Cell
}

func (c *Clipboard) at(x, y int) project.Cell {
	return c.Cells[y*c.Width+x]
}

// MarshalText writes "tiles W H" followed by one line per row, with "." for
// empty cells.
func (c *Clipboard) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d %d\n", clipboardHeader, c.Width, c.Height)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if x > 0 {
				buf.WriteByte(' ')
			}
			if v := c.at(x, y); v == project.Empty {
				buf.WriteByte('.')
			} else {
				buf.WriteString(strconv.Itoa(int(v)))
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func (c *Clipboard) UnmarshalText(text []byte) error {
	sc := bufio.NewScanner(bytes.NewReader(text))
	if !sc.Scan() {
		return ErrClipboardFormat
	}
	var w, h int
	header := strings.Fields(sc.Text())
	if len(header) != 3 || header[0] != clipboardHeader {
		return ErrClipboardFormat
	}
	var err error
	if w, err = strconv.Atoi(header[1]); err != nil || w < 1 {
		return fmt.Errorf("%w: width %q", ErrClipboardFormat, header[1])
	}
	if h, err = strconv.Atoi(header[2]); err != nil || h < 1 {
		return fmt.Errorf("%w: height %q", ErrClipboardFormat, header[2])
	}
	cells := make([]project.Cell, 0, w*h)
	for row := 0; row < h; row++ {
		if !sc.Scan() {
			return fmt.Errorf("%w: missing row %d", ErrClipboardFormat, row)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != w {
			return fmt.Errorf("%w: row %d has %d cells", ErrClipboardFormat, row, len(fields))
		}
		for _, f := range fields {
			if f == "." {
				cells = append(cells, project.Empty)
				continue
			}
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				return fmt.Errorf("%w: cell %q", ErrClipboardFormat, f)
			}
			cells = append(cells, project.Cell(v))
		}
	}
	c.Width, c.Height, c.Cells = w, h, cells
	return nil
}

// Clipboard returns the session's clipboard snapshot, if any.
func (s *Session) Clipboard() (*Clipboard, bool) {
	return s.clip, s.clip != nil
}

// Copy snapshots the active region. It does not touch the project.
func (s *Session) Copy() error {
	if err := s.idle(); err != nil {
		return err
	}
	if !s.hasRegion {
		return ErrNoRegion
	}
	r, err := s.area()
	if err != nil {
		return err
	}
	if r.Empty() {
		return ErrNoRegion
	}
	s.snapshot(r)
	return nil
}

// Cut snapshots the active region and clears it as one record.
func (s *Session) Cut() error {
	if err := s.idle(); err != nil {
		return err
	}
	if !s.hasRegion {
		return ErrNoRegion
	}
	r, err := s.area()
	if err != nil {
		return err
	}
	if r.Empty() {
		return ErrNoRegion
	}
	s.snapshot(r)
	return s.commit("Cut", s.diff(r.points(), func(Point) project.Cell { return project.Empty }))
}

func (s *Session) snapshot(r Rect) {
	c := &Clipboard{Width: r.W, Height: r.H, Cells: make([]project.Cell, 0, r.W*r.H)}
	for _, p := range r.points() {
		c.Cells = append(c.Cells, s.doc.Read(s.target, p.X, p.Y))
	}
	s.clip = c
	if s.mirror == nil {
		return
	}
	text, _ := c.MarshalText()
	if err := s.mirror.WriteText(string(text)); err != nil {
		s.log.Warn("clipboard mirror write failed", zap.Error(err))
	}
}

// Paste writes the clipboard at the region origin, or at (0, 0) without a
// region, clipped to the surface. The pasted area becomes the region.
func (s *Session) Paste() error {
	if err := s.idle(); err != nil {
		return err
	}
	bounds, err := s.bounds()
	if err != nil {
		return err
	}
	c := s.clip
	if c == nil {
		if c = s.readMirror(); c == nil {
			return ErrEmptyClipboard
		}
		s.clip = c
	}
	origin := Point{}
	if s.hasRegion {
		origin = Point{s.region.X, s.region.Y}
	}
	dst := Rect{X: origin.X, Y: origin.Y, W: c.Width, H: c.Height}.Intersect(bounds)
	changes := s.diff(dst.points(), func(p Point) project.Cell {
		return c.at(p.X-origin.X, p.Y-origin.Y)
	})
	if err := s.commit("Paste", changes); err != nil {
		return err
	}
	s.setRegion(dst)
	return nil
}

func (s *Session) readMirror() *Clipboard {
	if s.mirror == nil {
		return nil
	}
	text, err := s.mirror.ReadText()
	if err != nil {
		s.log.Warn("clipboard mirror read failed", zap.Error(err))
		return nil
	}
	var c Clipboard
	if err := c.UnmarshalText([]byte(text)); err != nil {
		s.log.Debug("clipboard mirror holds no tiles", zap.Error(err))
		return nil
	}
	return &c
}
