package project

// EventKind identifies a document change.
type EventKind uint8

const (
	EntityAdded EventKind = iota + 1
	EntityRenamed
	EntityRemoved
	EntityChanged
	ContentChanged
	TileSetResized
	TileSetReshaped
	LayersReordered
)

func (k EventKind) String() string {
	switch k {
	case EntityAdded:
		return "entity-added"
	case EntityRenamed:
		return "entity-renamed"
	case EntityRemoved:
		return "entity-removed"
	case EntityChanged:
		return "entity-changed"
	case ContentChanged:
		return "content-changed"
	case TileSetResized:
		return "tileset-resized"
	case TileSetReshaped:
		return "tileset-reshaped"
	case LayersReordered:
		return "layers-reordered"
	}
	return "unknown"
}

// Event describes one document change. Surface is set for ContentChanged.
// For LayersReordered the map layer at From now sits at To, or was removed
// when To is -1.
type Event struct {
	Kind       EventKind
	ID         ID
	EntityKind Kind
	Surface    Surface
	From, To   int
}

// LayerIndex maps a layer index from before a LayersReordered event to the
// index the same layer has after it. It reports false for a removed layer.
func (e Event) LayerIndex(i int) (int, bool) {
	if e.Kind != LayersReordered {
		return i, true
	}
	switch {
	case i == e.From:
		return e.To, e.To >= 0
	case e.To < 0:
		if i > e.From {
			return i - 1, true
		}
	case e.From < e.To && i > e.From && i <= e.To:
		return i - 1, true
	case e.To < e.From && i >= e.To && i < e.From:
		return i + 1, true
	}
	return i, true
}

const maxQueuedEvents = 1024

// EventQueue is a bounded FIFO queue. When full the oldest event is dropped.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	if len(q.items) >= maxQueuedEvents {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Events returns the project's queue for hosts that poll once per frame.
func (p *Project) Events() *EventQueue {
	return &p.events
}

// Subscribe registers fn to be called synchronously after every change.
// The returned func removes the listener.
func (p *Project) Subscribe(fn func(Event)) (cancel func()) {
	id := p.nextListener
	p.nextListener++
	p.listeners = append(p.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range p.listeners {
			if l.id == id {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

type listener struct {
	id int
	fn func(Event)
}

func (p *Project) emit(evt Event) {
	p.events.Push(evt)
	for _, l := range append([]listener(nil), p.listeners...) {
		l.fn(evt)
	}
}
