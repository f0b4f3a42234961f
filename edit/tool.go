package edit

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/milk9111/tilekit/project"
)

type Tool int

const (
	ToolSelect Tool = iota
	ToolPen
	ToolRectangle
	ToolFilledRectangle
	ToolLine
	ToolFill
	ToolFlipHorizontal
	ToolFlipVertical
	ToolRotate
	ToolZoomIn
	ToolZoomOut
	numTools
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolPen:
		return "Pen"
	case ToolRectangle:
		return "Rectangle"
	case ToolFilledRectangle:
		return "Filled rectangle"
	case ToolLine:
		return "Line"
	case ToolFill:
		return "Fill"
	case ToolFlipHorizontal:
		return "Flip horizontal"
	case ToolFlipVertical:
		return "Flip vertical"
	case ToolRotate:
		return "Rotate"
	case ToolZoomIn:
		return "Zoom in"
	case ToolZoomOut:
		return "Zoom out"
	default:
		return "Unknown"
	}
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	out := make([]Tool, 0, numTools)
	for t := ToolSelect; t < numTools; t++ {
		out = append(out, t)
	}
	return out
}

func (t Tool) transient() bool {
	return t == ToolZoomIn || t == ToolZoomOut
}

// gesture is the transient state between Press and Release.
type gesture struct {
	tool    Tool
	value   project.Cell
	anchor  Point
	last    Point
	overlay map[Point]project.Cell
	pending Rect
}

// Tool returns the active tool, which may be a zoom tool.
func (s *Session) Tool() Tool { return s.tool }

// EditingTool returns the last non-zoom tool.
func (s *Session) EditingTool() Tool { return s.editTool }

// Activate selects a tool. Exactly one tool is active at a time.
func (s *Session) Activate(t Tool) error {
	if err := s.idle(); err != nil {
		return err
	}
	if t < 0 || t >= numTools {
		return fmt.Errorf("%w: %d", ErrUnknownTool, int(t))
	}
	if t == s.tool {
		return nil
	}
	s.tool = t
	if !t.transient() {
		s.editTool = t
	}
	s.log.Debug("tool changed", zap.Stringer("tool", t))
	s.emit(ToolChanged)
	return nil
}

// EndZoom returns from a zoom tool to the editing tool.
func (s *Session) EndZoom() {
	if s.gesture != nil || !s.tool.transient() {
		return
	}
	s.tool = s.editTool
	s.emit(ToolChanged)
}

// Gesturing reports whether a press has not yet been released or cancelled.
func (s *Session) Gesturing() bool { return s.gesture != nil }

// Press starts a gesture at p. Fill, flip, rotate and zoom act immediately.
// Zoom only changes the view and works without a target.
func (s *Session) Press(p Point, b Button) error {
	if err := s.idle(); err != nil {
		return err
	}
	switch s.tool {
	case ToolZoomIn:
		s.setZoom(s.zoom * s.zoomCfg.Step)
		return nil
	case ToolZoomOut:
		s.setZoom(s.zoom / s.zoomCfg.Step)
		return nil
	}
	bounds, err := s.bounds()
	if err != nil {
		return err
	}
	p = s.clamp(p, bounds)

	switch s.tool {
	case ToolFlipHorizontal:
		return s.FlipHorizontal()
	case ToolFlipVertical:
		return s.FlipVertical()
	case ToolRotate:
		return s.Rotate()
	case ToolFill:
		return s.fill(p, s.paintValue(b), bounds)
	}

	g := &gesture{tool: s.tool, value: s.paintValue(b), anchor: p, last: p, overlay: make(map[Point]project.Cell)}
	s.gesture = g
	s.doc.SetBusy(true)
	switch g.tool {
	case ToolSelect:
		g.pending = rectFrom(p, p)
	case ToolPen:
		g.overlay[p] = g.value
	default:
		s.shape(g, p)
	}
	s.emit(PreviewChanged)
	return nil
}

// Drag extends the gesture. Without a gesture it does nothing.
func (s *Session) Drag(p Point) {
	g := s.gesture
	if g == nil {
		return
	}
	bounds, err := s.bounds()
	if err != nil {
		return
	}
	p = s.clamp(p, bounds)
	if p == g.last {
		return
	}
	switch g.tool {
	case ToolSelect:
		g.pending = rectFrom(g.anchor, p)
	case ToolPen:
		for _, q := range bresenhamLine(g.last, p) {
			g.overlay[q] = g.value
		}
	default:
		s.shape(g, p)
	}
	g.last = p
	s.emit(PreviewChanged)
}

func (s *Session) shape(g *gesture, p Point) {
	var pts []Point
	switch g.tool {
	case ToolRectangle:
		pts = rectOutline(g.anchor, p)
	case ToolFilledRectangle:
		pts = rectFilled(g.anchor, p)
	case ToolLine:
		pts = bresenhamLine(g.anchor, p)
	}
	clear(g.overlay)
	for _, q := range pts {
		g.overlay[q] = g.value
	}
}

// Release finishes the gesture at p and commits it as one record.
func (s *Session) Release(p Point) error {
	g := s.gesture
	if g == nil {
		return nil
	}
	s.Drag(p)
	s.gesture = nil
	s.doc.SetBusy(false)
	defer s.emit(PreviewChanged)

	if g.tool == ToolSelect {
		s.setRegion(g.pending)
		return nil
	}
	pts := slices.SortedFunc(maps.Keys(g.overlay), func(a, b Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	changes := s.diff(pts, func(q Point) project.Cell { return g.overlay[q] })
	return s.commit(g.tool.String(), changes)
}

// Cancel drops the gesture without touching the project.
func (s *Session) Cancel() {
	if s.gesture == nil {
		return
	}
	s.gesture = nil
	s.doc.SetBusy(false)
	s.log.Debug("gesture cancelled")
	s.emit(PreviewChanged)
}

// Preview returns the uncommitted value at p, if the gesture painted it.
func (s *Session) Preview(p Point) (project.Cell, bool) {
	if s.gesture == nil {
		return project.Empty, false
	}
	v, ok := s.gesture.overlay[p]
	return v, ok
}

// Cell returns what the target shows at p: the preview over committed content.
func (s *Session) Cell(p Point) project.Cell {
	if v, ok := s.Preview(p); ok {
		return v
	}
	if !s.hasTarget {
		return project.Empty
	}
	return s.doc.Read(s.target, p.X, p.Y)
}

// PendingRegion is the rectangle being dragged by the select tool.
func (s *Session) PendingRegion() (Rect, bool) {
	if s.gesture == nil || s.gesture.tool != ToolSelect {
		return Rect{}, false
	}
	return s.gesture.pending, true
}

func (s *Session) fill(seed Point, value project.Cell, bounds Rect) error {
	if s.doc.Read(s.target, seed.X, seed.Y) == value {
		return nil
	}
	pts := floodFill(bounds, seed, func(p Point) (project.Cell, bool) {
		a, ok := s.doc.Locate(s.target, p.X, p.Y)
		if !ok {
			return project.Empty, false
		}
		return s.doc.CellAt(s.target, a), true
	})
	return s.commit(ToolFill.String(), s.diff(pts, func(Point) project.Cell { return value }))
}
