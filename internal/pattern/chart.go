package pattern

import (
	"fmt"
	"sort"
)

// CutPiece is one distinct rectangular cut for one fabric: exact dimensions
// with seam allowance included, and how many identical pieces to cut.
type CutPiece struct {
	FabricID    string  `json:"fabric_id"`
	FabricName  string  `json:"fabric_name"`
	ColorHex    string  `json:"color_hex"`
	CutWidthIn  float64 `json:"cut_width_in"`
	CutHeightIn float64 `json:"cut_height_in"`
	Quantity    int     `json:"quantity"`
}

// Label returns a human-readable description of the piece.
func (cp CutPiece) Label() string {
	return fmt.Sprintf("%g\" × %g\" — qty %d", cp.CutWidthIn, cp.CutHeightIn, cp.Quantity)
}

// CuttingChart lists every cut piece type for a pattern. It is derived from
// a QuiltPattern and never edited directly; rebuild it after any edit.
type CuttingChart struct {
	BlockSizeIn   float64    `json:"block_size_in"`
	SeamAllowance float64    `json:"seam_allowance"`
	Pieces        []CutPiece `json:"pieces"`
}

// CutSizeIn returns the cut size for one grid cell.
func (c *CuttingChart) CutSizeIn() float64 {
	return round4(c.BlockSizeIn + 2*c.SeamAllowance)
}

// TotalPieces returns the total piece count across all entries. It always
// equals the number of blocks in the source pattern.
func (c *CuttingChart) TotalPieces() int {
	total := 0
	for _, p := range c.Pieces {
		total += p.Quantity
	}
	return total
}

// ByFabric groups pieces by fabric id, preserving chart order.
func (c *CuttingChart) ByFabric() map[string][]CutPiece {
	m := make(map[string][]CutPiece)
	for _, p := range c.Pieces {
		m[p.FabricID] = append(m[p.FabricID], p)
	}
	return m
}

type pieceKey struct {
	fabricID string
	widthIn  float64
	heightIn float64
}

// ToCuttingChart groups blocks into cut piece types. Blocks with the same
// fabric and dimensions merge into one entry; mirror orientations merge too,
// since dimensions are normalized so width <= height. Entries are sorted by
// (fabric_id, width, height) for reproducible output.
func (p *QuiltPattern) ToCuttingChart() *CuttingChart {
	p.ComputeFabricAreas()
	fabricMap := p.FabricMap()
	cutSize := p.CutSizeIn()

	counts := make(map[pieceKey]int)
	for _, b := range p.Blocks {
		w := round4(float64(b.Width) * cutSize)
		h := round4(float64(b.Height) * cutSize)
		if w > h {
			w, h = h, w
		}
		counts[pieceKey{fabricID: b.FabricID, widthIn: w, heightIn: h}]++
	}

	keys := make([]pieceKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].fabricID != keys[j].fabricID {
			return keys[i].fabricID < keys[j].fabricID
		}
		if keys[i].widthIn != keys[j].widthIn {
			return keys[i].widthIn < keys[j].widthIn
		}
		return keys[i].heightIn < keys[j].heightIn
	})

	chart := &CuttingChart{
		BlockSizeIn:   p.BlockSizeIn,
		SeamAllowance: p.SeamAllowance,
	}
	for _, k := range keys {
		name, colorHex := k.fabricID, "#888888"
		if fab, ok := fabricMap[k.fabricID]; ok {
			name, colorHex = fab.Name, fab.ColorHex
		}
		chart.Pieces = append(chart.Pieces, CutPiece{
			FabricID:    k.fabricID,
			FabricName:  name,
			ColorHex:    colorHex,
			CutWidthIn:  k.widthIn,
			CutHeightIn: k.heightIn,
			Quantity:    counts[k],
		})
	}
	return chart
}
