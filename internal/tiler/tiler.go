// Package tiler partitions a color-index grid into axis-aligned rectangles.
//
// The partition is greedy, not optimal: the scan is row-major, each
// rectangle grows to its maximum width first and then downward, so the
// result is deterministic but may use more rectangles than a true
// maximal-rectangle decomposition would. Coverage and disjointness hold
// unconditionally by construction.
package tiler

// Grid is a row-major matrix of palette indices.
type Grid struct {
	Width  int
	Height int
	Cells  []int // len = Width*Height, row-major
}

// NewGrid returns a zero-filled grid.
func NewGrid(width, height int) Grid {
	return Grid{Width: width, Height: height, Cells: make([]int, width*height)}
}

// At returns the palette index at (x, y).
func (g Grid) At(x, y int) int {
	return g.Cells[y*g.Width+x]
}

// SetAt stores a palette index at (x, y).
func (g Grid) SetAt(x, y, v int) {
	g.Cells[y*g.Width+x] = v
}

// Rect is one emitted rectangle with its palette index.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
	Color  int
}

// AreaCells returns the rectangle's area in grid cells.
func (r Rect) AreaCells() int {
	return r.Width * r.Height
}

// Partition splits the grid into same-color rectangles covering every cell
// exactly once. Scanning is top-to-bottom, left-to-right; at each unvisited
// cell the rectangle grows rightward while the color matches and the cell is
// unclaimed, then extends downward one full row at a time, stopping at the
// first row with a color mismatch or an already-claimed cell.
func Partition(g Grid) []Rect {
	visited := make([]bool, len(g.Cells))
	var rects []Rect

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if visited[y*g.Width+x] {
				continue
			}
			c := g.At(x, y)

			maxW := 0
			for x+maxW < g.Width && g.At(x+maxW, y) == c && !visited[y*g.Width+x+maxW] {
				maxW++
			}

			maxH := 1
			for y+maxH < g.Height {
				ok := true
				for dx := 0; dx < maxW; dx++ {
					idx := (y+maxH)*g.Width + x + dx
					if g.Cells[idx] != c || visited[idx] {
						ok = false
						break
					}
				}
				if !ok {
					break
				}
				maxH++
			}

			for dy := 0; dy < maxH; dy++ {
				for dx := 0; dx < maxW; dx++ {
					visited[(y+dy)*g.Width+x+dx] = true
				}
			}
			rects = append(rects, Rect{X: x, Y: y, Width: maxW, Height: maxH, Color: c})
		}
	}
	return rects
}

// Coverage returns the fraction of the grid covered by multi-cell
// rectangles. Singleton rectangles count as noise; a result dominated by
// them scores near zero.
func Coverage(rects []Rect, totalCells int) float64 {
	if totalCells == 0 {
		return 0
	}
	multi := 0
	for _, r := range rects {
		if r.AreaCells() > 1 {
			multi += r.AreaCells()
		}
	}
	return float64(multi) / float64(totalCells)
}
