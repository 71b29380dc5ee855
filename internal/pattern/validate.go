package pattern

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks the pattern geometry and returns a list of human-readable
// violations: out-of-bounds blocks, unknown fabric references, overlapping
// cells, and uncovered cells. An empty list means the blocks exactly
// partition the grid and every fabric reference resolves.
//
// Validation is advisory. Derived computations (areas, cutting chart)
// proceed on invalid patterns, double-counting overlapped cells.
func (p *QuiltPattern) Validate() []string {
	var errs []string
	fabricIDs := make(map[string]bool, len(p.Fabrics))
	for _, f := range p.Fabrics {
		fabricIDs[f.ID] = true
	}

	seen := make(map[Cell]int) // cell -> index of first covering block
	for i, b := range p.Blocks {
		if b.X < 0 || b.X+b.Width > p.GridWidth {
			errs = append(errs, fmt.Sprintf(
				"Block %d (fabric=%s) out of X bounds: x=%d, width=%d, grid_width=%d",
				i, b.FabricID, b.X, b.Width, p.GridWidth))
		}
		if b.Y < 0 || b.Y+b.Height > p.GridHeight {
			errs = append(errs, fmt.Sprintf(
				"Block %d (fabric=%s) out of Y bounds: y=%d, height=%d, grid_height=%d",
				i, b.FabricID, b.Y, b.Height, p.GridHeight))
		}
		if !fabricIDs[b.FabricID] {
			errs = append(errs, fmt.Sprintf(
				"Block %d references unknown fabric_id=%q", i, b.FabricID))
		}
		for _, c := range b.Cells() {
			if first, ok := seen[c]; ok {
				errs = append(errs, fmt.Sprintf(
					"Overlap at cell (%d, %d) between block %d and block %d",
					c.X, c.Y, first, i))
			} else {
				seen[c] = i
			}
		}
	}

	var uncovered []Cell
	for x := 0; x < p.GridWidth; x++ {
		for y := 0; y < p.GridHeight; y++ {
			if _, ok := seen[Cell{X: x, Y: y}]; !ok {
				uncovered = append(uncovered, Cell{X: x, Y: y})
			}
		}
	}
	if len(uncovered) > 0 {
		sort.Slice(uncovered, func(i, j int) bool {
			if uncovered[i].X != uncovered[j].X {
				return uncovered[i].X < uncovered[j].X
			}
			return uncovered[i].Y < uncovered[j].Y
		})
		sample := uncovered
		if len(sample) > 5 {
			sample = sample[:5]
		}
		coords := make([]string, len(sample))
		for i, c := range sample {
			coords[i] = fmt.Sprintf("(%d, %d)", c.X, c.Y)
		}
		errs = append(errs, fmt.Sprintf("%d cells uncovered (e.g. %s)",
			len(uncovered), strings.Join(coords, ", ")))
	}

	return errs
}

// ComputeFabricAreas recomputes every fabric's total area in square inches
// from its assigned blocks, replacing any previous totals. Each block
// contributes width*height cells at the cut size; overlapped cells are
// counted once per covering block.
func (p *QuiltPattern) ComputeFabricAreas() {
	sqPerCell := p.CutSizeIn() * p.CutSizeIn()
	area := make(map[string]float64, len(p.Fabrics))
	for _, f := range p.Fabrics {
		area[f.ID] = 0
	}
	for _, b := range p.Blocks {
		area[b.FabricID] += float64(b.AreaCells()) * sqPerCell
	}
	for i := range p.Fabrics {
		p.Fabrics[i].TotalSqIn = round2(area[p.Fabrics[i].ID])
	}
}
