package edit

import "github.com/milk9111/tilekit/project"

// DefaultUndoLimit bounds the undo stack when no limit is configured.
const DefaultUndoLimit = 100

// Record is one undoable edit: the cell deltas applied to a surface.
type Record struct {
	Label   string
	Surface project.Surface
	Changes []project.Change
}

func (r Record) inverse() []project.Change {
	out := make([]project.Change, len(r.Changes))
	for i, c := range r.Changes {
		out[len(r.Changes)-1-i] = c.Invert()
	}
	return out
}

// History keeps undo and redo stacks. Pushing a record clears redo, and the
// oldest records fall off once the limit is reached.
type History struct {
	undo  []Record
	redo  []Record
	limit int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &History{limit: limit}
}

// Push records r. Records without changes are ignored.
func (h *History) Push(r Record) bool {
	if len(r.Changes) == 0 {
		return false
	}
	if len(h.undo) >= h.limit {
		h.undo = h.undo[len(h.undo)-h.limit+1:]
	}
	h.undo = append(h.undo, r)
	h.redo = nil
	return true
}

func (h *History) popUndo() (Record, bool) {
	n := len(h.undo)
	if n == 0 {
		return Record{}, false
	}
	r := h.undo[n-1]
	h.undo = h.undo[:n-1]
	return r, true
}

func (h *History) popRedo() (Record, bool) {
	n := len(h.redo)
	if n == 0 {
		return Record{}, false
	}
	r := h.redo[n-1]
	h.redo = h.redo[:n-1]
	return r, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the undo and redo depths.
func (h *History) Len() (undo, redo int) { return len(h.undo), len(h.redo) }

// SetLimit changes the cap, dropping the oldest records if needed.
func (h *History) SetLimit(limit int) {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	h.limit = limit
	if len(h.undo) > limit {
		h.undo = h.undo[len(h.undo)-limit:]
	}
}

func (h *History) Clear() {
	h.undo, h.redo = nil, nil
}

// rewrite passes every record through fn and drops the ones it rejects.
func (h *History) rewrite(fn func(Record) (Record, bool)) {
	h.undo = rewriteRecords(h.undo, fn)
	h.redo = rewriteRecords(h.redo, fn)
}

func rewriteRecords(rs []Record, fn func(Record) (Record, bool)) []Record {
	out := rs[:0]
	for _, r := range rs {
		if r, ok := fn(r); ok {
			out = append(out, r)
		}
	}
	return out
}
