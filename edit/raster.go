package edit

import "github.com/milk9111/tilekit/project"

// bresenhamLine rasterizes the segment a-b. Endpoints are ordered first so
// a-b and b-a produce the same cells.
func bresenhamLine(a, b Point) []Point {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	var points []Point
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		points = append(points, Point{x0, y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// rectOutline returns the border cells of the box spanned by a and b.
func rectOutline(a, b Point) []Point {
	r := rectFrom(a, b)
	var out []Point
	for _, p := range r.points() {
		if p.X == r.X || p.Y == r.Y || p.X == r.X+r.W-1 || p.Y == r.Y+r.H-1 {
			out = append(out, p)
		}
	}
	return out
}

func rectFilled(a, b Point) []Point {
	return rectFrom(a, b).points()
}

// floodFill returns the 4-connected cells reachable from seed that share its
// value. at reports the value of a cell and whether it can be filled.
func floodFill(bounds Rect, seed Point, at func(Point) (project.Cell, bool)) []Point {
	target, ok := at(seed)
	if !ok || !bounds.Contains(seed) {
		return nil
	}
	visited := map[Point]bool{seed: true}
	queue := []Point{seed}
	var out []Point
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		out = append(out, p)
		for _, n := range [4]Point{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
			if visited[n] || !bounds.Contains(n) {
				continue
			}
			visited[n] = true
			if v, ok := at(n); ok && v == target {
				queue = append(queue, n)
			}
		}
	}
	return out
}
