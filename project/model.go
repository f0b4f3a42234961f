package project

// Cell is one grid value: a palette entry index on tileset surfaces and a
// linear tile index on layer surfaces.
type Cell int32

// Empty marks an unset cell.
const Empty Cell = -1

// Kind identifies the collection an entity belongs to.
type Kind uint8

const (
	KindNone Kind = iota
	KindPalette
	KindTileSet
	KindEffectLayer
	KindMap
)

const numKinds = int(KindMap)

func (k Kind) String() string {
	switch k {
	case KindPalette:
		return "palette"
	case KindTileSet:
		return "tileset"
	case KindEffectLayer:
		return "effect layer"
	case KindMap:
		return "map"
	default:
		return "none"
	}
}

func (k Kind) defaultName() string {
	switch k {
	case KindPalette:
		return "Palette"
	case KindTileSet:
		return "Tileset"
	case KindEffectLayer:
		return "Effect layer"
	case KindMap:
		return "Map"
	}
	return ""
}

type Palette struct {
	Name    string
	Entries []Color
}

func (p *Palette) clone() *Palette {
	return &Palette{Name: p.Name, Entries: append([]Color(nil), p.Entries...)}
}

type Tile struct {
	Pixels []Cell
}

func newTile(w, h int) Tile {
	px := make([]Cell, w*h)
	for i := range px {
		px[i] = Empty
	}
	return Tile{Pixels: px}
}

func (t Tile) clone() Tile {
	return Tile{Pixels: append([]Cell(nil), t.Pixels...)}
}

type TileSet struct {
	Name    string
	Palette ID
	Tiles   []Tile
	Columns int
}

// Rows is the number of grid rows needed to show every tile.
func (ts *TileSet) Rows() int {
	if ts.Columns < 1 {
		return 0
	}
	return (len(ts.Tiles) + ts.Columns - 1) / ts.Columns
}

func (ts *TileSet) clone() *TileSet {
	out := &TileSet{Name: ts.Name, Palette: ts.Palette, Columns: ts.Columns, Tiles: make([]Tile, len(ts.Tiles))}
	for i, t := range ts.Tiles {
		out.Tiles[i] = t.clone()
	}
	return out
}

// BlendMode selects how an effect layer combines with what is below it.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendSubtract
	BlendMultiply
)

func (m BlendMode) String() string {
	switch m {
	case BlendAdd:
		return "add"
	case BlendSubtract:
		return "subtract"
	case BlendMultiply:
		return "multiply"
	default:
		return "normal"
	}
}

// MaxAlpha is the largest layer alpha. Alpha 0 is opaque and alpha n keeps n/16
// of the existing pixel.
const MaxAlpha = 16

type MapLayer struct {
	Name    string
	TileSet ID
	Width   int
	Height  int
	Cells   []Cell
	Effect  bool
	Blend   BlendMode
	Alpha   uint8
}

func newLayer(name string, ts ID, w, h int) *MapLayer {
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = Empty
	}
	return &MapLayer{Name: name, TileSet: ts, Width: w, Height: h, Cells: cells}
}

func (l *MapLayer) clone() *MapLayer {
	out := *l
	out.Cells = append([]Cell(nil), l.Cells...)
	return &out
}

func (l *MapLayer) clear() {
	for i := range l.Cells {
		l.Cells[i] = Empty
	}
}

type Map struct {
	Name       string
	Width      int
	Height     int
	Background Color
	Layers     []*MapLayer
}

func (m *Map) clone() *Map {
	out := &Map{Name: m.Name, Width: m.Width, Height: m.Height, Background: m.Background, Layers: make([]*MapLayer, len(m.Layers))}
	for i, l := range m.Layers {
		out.Layers[i] = l.clone()
	}
	return out
}
