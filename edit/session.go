// Package edit drives interactive editing of one project surface: tool
// dispatch, the left/right selection model, undo history and the clipboard.
package edit

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/milk9111/tilekit/project"
)

var (
	ErrGestureActive  = errors.New("edit: gesture in progress")
	ErrNoRegion       = errors.New("edit: no active region")
	ErrNoTarget       = errors.New("edit: no target surface")
	ErrEmptyClipboard = errors.New("edit: clipboard is empty")
	ErrUnknownTool    = errors.New("edit: unknown tool")
)

// Button selects which of the two selected values a gesture paints with.
type Button uint8

const (
	Primary Button = iota
	Secondary
)

type EventKind uint8

const (
	ToolChanged EventKind = iota + 1
	SelectionChanged
	PreviewChanged
	ViewChanged
	HistoryChanged
)

type Event struct {
	Kind EventKind
}

// Mirror receives clipboard snapshots as text, typically the system clipboard.
type Mirror interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// Zoom bounds the view scale changed by the zoom tools.
type Zoom struct {
	Min, Max, Step, Initial float64
}

func DefaultZoom() Zoom {
	return Zoom{Min: 0.25, Max: 32, Step: 2, Initial: 4}
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMirror(m Mirror) Option {
	return func(s *Session) { s.mirror = m }
}

func WithUndoLimit(n int) Option {
	return func(s *Session) { s.history.SetLimit(n) }
}

func WithZoom(z Zoom) Option {
	return func(s *Session) { s.SetZoomBounds(z) }
}

// Session edits one target surface of a project at a time.
type Session struct {
	doc    *project.Project
	log    *zap.Logger
	mirror Mirror

	target    project.Surface
	hasTarget bool

	tool     Tool
	editTool Tool
	gesture  *gesture

	zoomCfg Zoom
	zoom    float64

	leftEntry  map[project.ID]int
	rightEntry map[project.ID]int
	leftTile   map[project.ID]int
	rightTile  map[project.ID]int

	region    Rect
	hasRegion bool

	history *History
	clip    *Clipboard

	unsubscribe func()

	listeners    []sessionListener
	nextListener int
}

type sessionListener struct {
	id int
	fn func(Event)
}

func NewSession(doc *project.Project, opts ...Option) *Session {
	s := &Session{
		doc:        doc,
		log:        zap.NewNop(),
		tool:       ToolPen,
		editTool:   ToolPen,
		leftEntry:  make(map[project.ID]int),
		rightEntry: make(map[project.ID]int),
		leftTile:   make(map[project.ID]int),
		rightTile:  make(map[project.ID]int),
		history:    NewHistory(DefaultUndoLimit),
	}
	s.SetZoomBounds(DefaultZoom())
	for _, opt := range opts {
		opt(s)
	}
	s.unsubscribe = doc.Subscribe(s.onProjectEvent)
	return s
}

// Close detaches the session from its project.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Session) Project() *project.Project { return s.doc }
func (s *Session) History() *History         { return s.history }

// Target returns the surface being edited.
func (s *Session) Target() (project.Surface, bool) {
	return s.target, s.hasTarget
}

// SetTarget switches the edited surface. The region is dropped, and so is the
// clipboard when the target entity changes; history and per-palette
// selections are kept.
func (s *Session) SetTarget(surf project.Surface) error {
	if s.gesture != nil {
		return ErrGestureActive
	}
	if _, _, err := s.doc.SurfaceSize(surf); err != nil {
		return fmt.Errorf("edit: set target: %w", err)
	}
	if !s.hasTarget || surf.ID != s.target.ID {
		s.clip = nil
	}
	s.target, s.hasTarget = surf, true
	s.hasRegion = false
	s.log.Debug("target changed", zap.Stringer("surface", surf))
	s.emit(SelectionChanged)
	s.emit(PreviewChanged)
	return nil
}

// Subscribe registers fn for session events.
func (s *Session) Subscribe(fn func(Event)) (cancel func()) {
	id := s.nextListener
	s.nextListener++
	s.listeners = append(s.listeners, sessionListener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l sessionListener) bool { return l.id == id })
	}
}

func (s *Session) emit(k EventKind) {
	for _, l := range append([]sessionListener(nil), s.listeners...) {
		l.fn(Event{Kind: k})
	}
}

func (s *Session) bounds() (Rect, error) {
	if !s.hasTarget {
		return Rect{}, ErrNoTarget
	}
	w, h, err := s.doc.SurfaceSize(s.target)
	if err != nil {
		return Rect{}, fmt.Errorf("edit: %w: %w", ErrNoTarget, err)
	}
	if w == 0 || h == 0 {
		return Rect{}, ErrNoTarget
	}
	return Rect{W: w, H: h}, nil
}

func (s *Session) clamp(p Point, b Rect) Point {
	return Point{X: min(max(p.X, b.X), b.X+b.W-1), Y: min(max(p.Y, b.Y), b.Y+b.H-1)}
}

// Zoom returns the current view scale.
func (s *Session) Zoom() float64 { return s.zoom }

// SetZoomBounds replaces the zoom limits and resets the scale to Initial.
func (s *Session) SetZoomBounds(z Zoom) {
	d := DefaultZoom()
	if z.Min <= 0 {
		z.Min = d.Min
	}
	if z.Max < z.Min {
		z.Max = math.Max(d.Max, z.Min)
	}
	if z.Step <= 1 {
		z.Step = d.Step
	}
	s.zoomCfg = z
	s.setZoom(z.Initial)
}

func (s *Session) setZoom(z float64) {
	z = math.Min(math.Max(z, s.zoomCfg.Min), s.zoomCfg.Max)
	if z == s.zoom {
		return
	}
	s.zoom = z
	s.emit(ViewChanged)
}

// commit applies changes as one history record.
func (s *Session) commit(label string, changes []project.Change) error {
	if len(changes) == 0 {
		return nil
	}
	if err := s.doc.ApplyExact(s.target, changes); err != nil {
		return fmt.Errorf("edit: %s: %w", label, err)
	}
	s.history.Push(Record{Label: label, Surface: s.target, Changes: changes})
	s.log.Debug("edit committed", zap.String("label", label), zap.Int("changes", len(changes)), zap.Stringer("surface", s.target))
	s.emit(HistoryChanged)
	return nil
}

// diff builds the change list that writes values at the given points.
// Unbacked points and cells that already hold the value are skipped.
func (s *Session) diff(points []Point, value func(Point) project.Cell) []project.Change {
	var changes []project.Change
	for _, p := range points {
		addr, ok := s.doc.Locate(s.target, p.X, p.Y)
		if !ok {
			continue
		}
		before := s.doc.CellAt(s.target, addr)
		after := value(p)
		if before != after {
			changes = append(changes, project.Change{Addr: addr, Before: before, After: after})
		}
	}
	return changes
}

func (s *Session) idle() error {
	if s.gesture != nil {
		return ErrGestureActive
	}
	return nil
}

// Undo reverts the most recent record.
func (s *Session) Undo() error {
	if err := s.idle(); err != nil {
		return err
	}
	r, ok := s.history.popUndo()
	if !ok {
		return nil
	}
	if err := s.doc.ApplyExact(r.Surface, r.inverse()); err != nil {
		s.discard("undo", r, err)
		return fmt.Errorf("edit: undo %s: %w", r.Label, err)
	}
	s.history.redo = append(s.history.redo, r)
	s.log.Debug("undo", zap.String("label", r.Label))
	s.emit(HistoryChanged)
	return nil
}

// Redo reapplies the most recently undone record.
func (s *Session) Redo() error {
	if err := s.idle(); err != nil {
		return err
	}
	r, ok := s.history.popRedo()
	if !ok {
		return nil
	}
	if err := s.doc.ApplyExact(r.Surface, r.Changes); err != nil {
		s.discard("redo", r, err)
		return fmt.Errorf("edit: redo %s: %w", r.Label, err)
	}
	s.history.undo = append(s.history.undo, r)
	s.log.Debug("redo", zap.String("label", r.Label))
	s.emit(HistoryChanged)
	return nil
}

// discard drops a record that can no longer be applied.
func (s *Session) discard(op string, r Record, err error) {
	s.log.Warn(op+" record dropped", zap.String("label", r.Label), zap.Stringer("surface", r.Surface), zap.Error(err))
	s.emit(HistoryChanged)
}
