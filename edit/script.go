package edit

import (
	"context"

	"github.com/milk9111/tilekit/project"
	"github.com/milk9111/tilekit/script"
)

// RunScript compiles src and filters the active region, or the whole surface,
// through it as one record.
func (s *Session) RunScript(ctx context.Context, src string) error {
	f, err := script.Compile(src)
	if err != nil {
		return err
	}
	return s.RunFilter(ctx, f)
}

// RunFilter applies a compiled filter to the active region or the surface.
func (s *Session) RunFilter(ctx context.Context, f *script.Filter) error {
	if err := s.idle(); err != nil {
		return err
	}
	r, err := s.area()
	if err != nil {
		return err
	}
	pts := r.points()
	in := script.Grid{Width: r.W, Height: r.H, Limit: s.doc.Limit(s.target), Cells: make([]int, len(pts))}
	for i, p := range pts {
		in.Cells[i] = int(s.doc.Read(s.target, p.X, p.Y))
	}
	out, err := f.Run(ctx, in)
	if err != nil {
		return err
	}
	values := make(map[Point]project.Cell, len(pts))
	for i, p := range pts {
		values[p] = project.Cell(out[i])
	}
	return s.commit("Script", s.diff(pts, func(p Point) project.Cell { return values[p] }))
}
