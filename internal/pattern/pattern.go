// Package pattern provides the quilting domain model: fabrics, blocks, the
// quilt pattern aggregate, geometry validation, and cutting chart derivation.
package pattern

import "math"

// Default pattern geometry.
const (
	DefaultGridWidth     = 40
	DefaultGridHeight    = 50
	DefaultBlockSizeIn   = 2.5
	DefaultSeamAllowance = 0.25
)

// fatQuarterSqIn is the area of a standard 22" x 18" fat quarter.
const fatQuarterSqIn = 396.0

// wasteFactor adds 10% for cutting waste and miscuts.
const wasteFactor = 1.10

// Fabric is a named, colored material referenced by blocks.
type Fabric struct {
	ID        string  `json:"id"`
	ColorHex  string  `json:"color_hex"`
	Name      string  `json:"name"`
	TotalSqIn float64 `json:"total_sqin"` // Recomputed from block assignments
}

// FatQuarters returns the number of fat quarters needed to cover the
// fabric's total area, including the waste allowance. The waste-adjusted
// area is rounded to hundredths like every other area in the model, so an
// exact fat-quarter total does not tip over on float error.
func (f Fabric) FatQuarters() int {
	return int(math.Ceil(round2(f.TotalSqIn*wasteFactor) / fatQuarterSqIn))
}

// Yardage returns yards of fabric needed for a run of identical cut pieces,
// assuming strips cut across the given fabric width.
func (f Fabric) Yardage(cutWidthIn, cutHeightIn float64, quantity int, fabricWidth float64) float64 {
	cutsPerStrip := int(math.Floor(fabricWidth / cutWidthIn))
	if cutsPerStrip == 0 {
		cutsPerStrip = 1
	}
	strips := int(math.Ceil(float64(quantity) / float64(cutsPerStrip)))
	totalLengthIn := float64(strips) * cutHeightIn
	return round2(totalLengthIn / 36)
}

// Cell identifies one grid cell by column and row.
type Cell struct {
	X int
	Y int
}

// Block is an axis-aligned rectangle on the grid assigned to one fabric.
type Block struct {
	X        int    `json:"x"`      // Grid column, 0-indexed
	Y        int    `json:"y"`      // Grid row, 0-indexed
	Width    int    `json:"width"`  // In grid units
	Height   int    `json:"height"` // In grid units
	FabricID string `json:"fabric_id"`
}

// Cells returns every grid cell the block covers, row-major.
func (b Block) Cells() []Cell {
	cells := make([]Cell, 0, b.Width*b.Height)
	for dy := 0; dy < b.Height; dy++ {
		for dx := 0; dx < b.Width; dx++ {
			cells = append(cells, Cell{X: b.X + dx, Y: b.Y + dy})
		}
	}
	return cells
}

// AreaCells returns the block's area in grid cells.
func (b Block) AreaCells() int {
	return b.Width * b.Height
}

// QuiltPattern is the aggregate root: grid geometry plus the fabric and
// block collections. Edits replace the collections wholesale; a pattern is
// rebuilt from scratch for each extraction or edit.
type QuiltPattern struct {
	GridWidth     int      `json:"grid_width"`
	GridHeight    int      `json:"grid_height"`
	BlockSizeIn   float64  `json:"block_size_in"`
	SeamAllowance float64  `json:"seam_allowance"`
	Fabrics       []Fabric `json:"fabrics"`
	Blocks        []Block  `json:"blocks"`
}

// New returns an empty pattern with default geometry.
func New() *QuiltPattern {
	return &QuiltPattern{
		GridWidth:     DefaultGridWidth,
		GridHeight:    DefaultGridHeight,
		BlockSizeIn:   DefaultBlockSizeIn,
		SeamAllowance: DefaultSeamAllowance,
	}
}

// CutSizeIn returns the cut size: finished block size plus seam allowance
// on both sides.
func (p *QuiltPattern) CutSizeIn() float64 {
	return round4(p.BlockSizeIn + 2*p.SeamAllowance)
}

// FinishedWidthIn returns the finished quilt width in inches.
func (p *QuiltPattern) FinishedWidthIn() float64 {
	return float64(p.GridWidth) * p.BlockSizeIn
}

// FinishedHeightIn returns the finished quilt height in inches.
func (p *QuiltPattern) FinishedHeightIn() float64 {
	return float64(p.GridHeight) * p.BlockSizeIn
}

// FabricMap returns fabrics keyed by id.
func (p *QuiltPattern) FabricMap() map[string]Fabric {
	m := make(map[string]Fabric, len(p.Fabrics))
	for _, f := range p.Fabrics {
		m[f.ID] = f
	}
	return m
}

// CellGrid maps every assigned cell to its fabric id. Overlapping blocks
// overwrite in block order.
func (p *QuiltPattern) CellGrid() map[Cell]string {
	grid := make(map[Cell]string)
	for _, b := range p.Blocks {
		for _, c := range b.Cells() {
			grid[c] = b.FabricID
		}
	}
	return grid
}

// CoveredCells returns the set of cells covered by at least one block.
func (p *QuiltPattern) CoveredCells() map[Cell]bool {
	covered := make(map[Cell]bool)
	for _, b := range p.Blocks {
		for _, c := range b.Cells() {
			covered[c] = true
		}
	}
	return covered
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
