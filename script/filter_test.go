package script

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestFilterRun(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		in      Grid
		want    []int
		wantErr error
	}{
		{
			name: "increment_wraps",
			src:  "for i := 0; i < len(cells); i++ { if cells[i] >= 0 { cells[i] = (cells[i] + 1) % limit } }",
			in:   Grid{Width: 2, Height: 2, Limit: 3, Cells: []int{0, 1, 2, -1}},
			want: []int{1, 2, 0, -1},
		},
		{
			name: "mirror_rows",
			src: `out := []
for y := 0; y < height; y++ {
	for x := width - 1; x >= 0; x-- { out = append(out, cells[y*width+x]) }
}
cells = out`,
			in:   Grid{Width: 3, Height: 1, Limit: 4, Cells: []int{1, 2, 3}},
			want: []int{3, 2, 1},
		},
		{
			name:    "wrong_length",
			src:     "cells = [1]",
			in:      Grid{Width: 2, Height: 1, Limit: 2, Cells: []int{0, 0}},
			wantErr: ErrShape,
		},
		{
			name:    "not_int",
			src:     `cells = ["a", 1]`,
			in:      Grid{Width: 2, Height: 1, Limit: 2, Cells: []int{0, 0}},
			wantErr: ErrValue,
		},
		{
			name:    "beyond_cell_range",
			src:     "cells = [4294967298, 0]",
			in:      Grid{Width: 2, Height: 1, Limit: 4, Cells: []int{0, 0}},
			wantErr: ErrValue,
		},
		{
			name:    "negative_beyond_cell_range",
			src:     "cells = [-4294967295]",
			in:      Grid{Width: 1, Height: 1, Limit: 4, Cells: []int{0}},
			wantErr: ErrValue,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := Compile(c.src)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			got, err := f.Run(context.Background(), c.in)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
			if err == nil && !slices.Equal(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestFilterReusable(t *testing.T) {
	f, err := Compile("cells = [limit]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, limit := range []int{3, 7} {
		got, err := f.Run(context.Background(), Grid{Width: 1, Height: 1, Limit: limit, Cells: []int{0}})
		if err != nil || got[0] != limit {
			t.Fatalf("limit %d: got %v, %v", limit, got, err)
		}
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile("cells = ("); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestRunCancelled(t *testing.T) {
	f, err := Compile("for { }")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Run(ctx, Grid{Width: 1, Height: 1, Cells: []int{0}}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
