package edit

import "github.com/milk9111/tilekit/project"

// FlipHorizontal mirrors the active region, or the whole surface, left to right.
func (s *Session) FlipHorizontal() error {
	return s.transform(ToolFlipHorizontal.String(), func(src Rect) (Rect, func(Point) Point) {
		return src, func(p Point) Point {
			return Point{X: src.X + src.W - 1 - (p.X - src.X), Y: p.Y}
		}
	})
}

// FlipVertical mirrors the active region, or the whole surface, top to bottom.
func (s *Session) FlipVertical() error {
	return s.transform(ToolFlipVertical.String(), func(src Rect) (Rect, func(Point) Point) {
		return src, func(p Point) Point {
			return Point{X: p.X, Y: src.Y + src.H - 1 - (p.Y - src.Y)}
		}
	})
}

// Rotate turns the active region, or the whole surface, 90 degrees clockwise
// about its top-left corner. A w x h area becomes h x w, clipped to the
// surface, and cells it no longer covers are cleared.
func (s *Session) Rotate() error {
	return s.transform(ToolRotate.String(), func(src Rect) (Rect, func(Point) Point) {
		dst := Rect{X: src.X, Y: src.Y, W: src.H, H: src.W}
		return dst, func(p Point) Point {
			nx, ny := p.X-src.X, p.Y-src.Y
			return Point{X: src.X + ny, Y: src.Y + src.H - 1 - nx}
		}
	})
}

// transform rewrites the area through layout, which returns the destination
// rectangle and, for each destination cell, the source cell it copies.
func (s *Session) transform(label string, layout func(src Rect) (Rect, func(Point) Point)) error {
	if err := s.idle(); err != nil {
		return err
	}
	bounds, err := s.bounds()
	if err != nil {
		return err
	}
	src, err := s.area()
	if err != nil {
		return err
	}
	dst, from := layout(src)
	dst = dst.Intersect(bounds)

	values := make(map[Point]project.Cell, src.W*src.H)
	for _, p := range dst.points() {
		q := from(p)
		values[p] = s.doc.Read(s.target, q.X, q.Y)
	}
	pts := dst.points()
	for _, p := range src.points() {
		if !dst.Contains(p) {
			values[p] = project.Empty
			pts = append(pts, p)
		}
	}
	if err := s.commit(label, s.diff(pts, func(p Point) project.Cell { return values[p] })); err != nil {
		return err
	}
	if s.hasRegion {
		s.setRegion(dst)
	}
	return nil
}
