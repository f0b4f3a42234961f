// Package script runs tengo filters over a rectangular grid of cells.
//
// A filter sees the globals width, height, limit and cells (a row-major array
// of ints where -1 is an empty cell) and reassigns cells with its result:
//
//	for i := 0; i < len(cells); i++ {
//		if cells[i] >= 0 { cells[i] = (cells[i] + 1) % limit }
//	}
package script

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var (
	ErrShape = errors.New("script: result does not match the input grid")
	ErrValue = errors.New("script: result cell is not a cell value")
)

// Grid is the input handed to a filter.
type Grid struct {
	Width  int
	Height int
	Limit  int
	Cells  []int
}

type Filter struct {
	compiled *tengo.Compiled
}

// Compile parses src once so it can run against many grids.
func Compile(src string) (*Filter, error) {
	s := tengo.NewScript([]byte(src))
	globals := []struct {
		name  string
		value any
	}{
		{"width", 0},
		{"height", 0},
		{"limit", 0},
		{"cells", []any{}},
	}
	for _, g := range globals {
		if err := s.Add(g.name, g.value); err != nil {
			return nil, fmt.Errorf("script: global %s: %w", g.name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return &Filter{compiled: compiled}, nil
}

// Run executes the filter on g and returns the reassigned cells.
func (f *Filter) Run(ctx context.Context, g Grid) ([]int, error) {
	if len(g.Cells) != g.Width*g.Height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrShape, len(g.Cells), g.Width, g.Height)
	}
	c := f.compiled.Clone()
	cells := make([]any, len(g.Cells))
	for i, v := range g.Cells {
		cells[i] = v
	}
	if err := c.Set("width", g.Width); err != nil {
		return nil, err
	}
	if err := c.Set("height", g.Height); err != nil {
		return nil, err
	}
	if err := c.Set("limit", g.Limit); err != nil {
		return nil, err
	}
	if err := c.Set("cells", cells); err != nil {
		return nil, err
	}
	if err := c.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("script: run: %w", err)
	}
	return cellsOf(c.Get("cells").Object(), len(g.Cells))
}

func cellsOf(obj tengo.Object, want int) ([]int, error) {
	var items []tengo.Object
	switch v := obj.(type) {
	case *tengo.Array:
		items = v.Value
	case *tengo.ImmutableArray:
		items = v.Value
	default:
		return nil, fmt.Errorf("%w: cells is %s", ErrShape, obj.TypeName())
	}
	if len(items) != want {
		return nil, fmt.Errorf("%w: %d cells, want %d", ErrShape, len(items), want)
	}
	out := make([]int, len(items))
	for i, item := range items {
		n, ok := item.(*tengo.Int)
		if !ok {
			return nil, fmt.Errorf("%w: cell %d is %s", ErrValue, i, item.TypeName())
		}
		if n.Value < math.MinInt32 || n.Value > math.MaxInt32 {
			return nil, fmt.Errorf("%w: cell %d is %d", ErrValue, i, n.Value)
		}
		out[i] = int(n.Value)
	}
	return out, nil
}
