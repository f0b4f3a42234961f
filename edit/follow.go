package edit

import (
	"go.uber.org/zap"

	"github.com/milk9111/tilekit/project"
)

// onProjectEvent keeps history records and the target addressing the same
// storage when the project renumbers layers or tiles.
func (s *Session) onProjectEvent(evt project.Event) {
	switch evt.Kind {
	case project.LayersReordered:
		s.history.rewrite(func(r Record) (Record, bool) {
			if r.Surface.Kind != project.SurfaceMapLayer || r.Surface.ID != evt.ID {
				return r, true
			}
			i, ok := evt.LayerIndex(r.Surface.Layer)
			r.Surface.Layer = i
			return r, ok
		})
		if s.hasTarget && s.target.Kind == project.SurfaceMapLayer && s.target.ID == evt.ID {
			if i, ok := evt.LayerIndex(s.target.Layer); ok {
				s.target.Layer = i
			} else {
				s.dropTarget()
			}
		}
	case project.TileSetReshaped:
		// Tiles and the layer cells that name them moved; records against
		// either no longer describe what is stored.
		s.history.rewrite(func(r Record) (Record, bool) {
			ts, ok := s.doc.TileSetOf(r.Surface)
			return r, !ok || ts != evt.ID
		})
		s.clipRegion()
	case project.EntityRemoved:
		s.history.rewrite(func(r Record) (Record, bool) {
			return r, r.Surface.ID != evt.ID
		})
		if s.hasTarget && s.target.ID == evt.ID {
			s.dropTarget()
		}
	default:
		return
	}
	s.log.Debug("history follows project", zap.Stringer("event", evt.Kind), zap.Stringer("entity", evt.ID))
	s.emit(HistoryChanged)
}

func (s *Session) dropTarget() {
	s.target, s.hasTarget = project.Surface{}, false
	s.hasRegion = false
	s.clip = nil
	s.emit(SelectionChanged)
}

// clipRegion shrinks the region to the current surface bounds.
func (s *Session) clipRegion() {
	if !s.hasRegion {
		return
	}
	b, err := s.bounds()
	if err != nil {
		s.hasRegion = false
		s.emit(SelectionChanged)
		return
	}
	if r := s.region.Intersect(b); r != s.region {
		s.region = r
		s.hasRegion = !r.Empty()
		s.emit(SelectionChanged)
	}
}
