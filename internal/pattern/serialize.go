package pattern

import (
	"encoding/json"
	"fmt"
)

// patternDoc is the serialized form of a QuiltPattern. Finished dimensions
// and fat quarter counts are derived on output and ignored on input.
type patternDoc struct {
	GridWidth        int         `json:"grid_width"`
	GridHeight       int         `json:"grid_height"`
	BlockSizeIn      float64     `json:"block_size_in"`
	SeamAllowance    float64     `json:"seam_allowance"`
	FinishedWidthIn  float64     `json:"finished_width_in"`
	FinishedHeightIn float64     `json:"finished_height_in"`
	Fabrics          []fabricDoc `json:"fabrics"`
	Blocks           []Block     `json:"blocks"`
}

type fabricDoc struct {
	ID          string  `json:"id"`
	ColorHex    string  `json:"color_hex"`
	Name        string  `json:"name"`
	TotalSqIn   float64 `json:"total_sqin"`
	FatQuarters int     `json:"fat_quarters"`
}

// rawPatternDoc uses pointers for fields whose absence must be detected.
type rawPatternDoc struct {
	GridWidth     *int           `json:"grid_width"`
	GridHeight    *int           `json:"grid_height"`
	BlockSizeIn   *float64       `json:"block_size_in"`
	SeamAllowance *float64       `json:"seam_allowance"`
	Fabrics       []rawFabricDoc `json:"fabrics"`
	Blocks        []rawBlockDoc  `json:"blocks"`
}

type rawFabricDoc struct {
	ID        *string `json:"id"`
	ColorHex  *string `json:"color_hex"`
	Name      *string `json:"name"`
	TotalSqIn float64 `json:"total_sqin"`
}

type rawBlockDoc struct {
	X        *int    `json:"x"`
	Y        *int    `json:"y"`
	Width    *int    `json:"width"`
	Height   *int    `json:"height"`
	FabricID *string `json:"fabric_id"`
}

// Marshal serializes the pattern to JSON, recomputing fabric areas and
// derived dimensions first.
func (p *QuiltPattern) Marshal() ([]byte, error) {
	p.ComputeFabricAreas()
	doc := patternDoc{
		GridWidth:        p.GridWidth,
		GridHeight:       p.GridHeight,
		BlockSizeIn:      p.BlockSizeIn,
		SeamAllowance:    p.SeamAllowance,
		FinishedWidthIn:  p.FinishedWidthIn(),
		FinishedHeightIn: p.FinishedHeightIn(),
		Fabrics:          make([]fabricDoc, len(p.Fabrics)),
		Blocks:           p.Blocks,
	}
	if doc.Blocks == nil {
		doc.Blocks = []Block{}
	}
	for i, f := range p.Fabrics {
		doc.Fabrics[i] = fabricDoc{
			ID:          f.ID,
			ColorHex:    f.ColorHex,
			Name:        f.Name,
			TotalSqIn:   f.TotalSqIn,
			FatQuarters: f.FatQuarters(),
		}
	}
	if doc.Fabrics == nil {
		doc.Fabrics = []fabricDoc{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal reconstructs a pattern from its serialized form. Grid dimensions
// are required; block size and seam allowance default when absent. Missing
// fields on a fabric or block make the document malformed.
func Unmarshal(data []byte) (*QuiltPattern, error) {
	var raw rawPatternDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse pattern document: %w", err)
	}
	if raw.GridWidth == nil {
		return nil, fmt.Errorf("pattern document missing required field %q", "grid_width")
	}
	if raw.GridHeight == nil {
		return nil, fmt.Errorf("pattern document missing required field %q", "grid_height")
	}

	p := New()
	p.GridWidth = *raw.GridWidth
	p.GridHeight = *raw.GridHeight
	if raw.BlockSizeIn != nil {
		p.BlockSizeIn = *raw.BlockSizeIn
	}
	if raw.SeamAllowance != nil {
		p.SeamAllowance = *raw.SeamAllowance
	}

	for i, f := range raw.Fabrics {
		if f.ID == nil || f.ColorHex == nil || f.Name == nil {
			return nil, fmt.Errorf("fabric %d missing required field", i)
		}
		p.Fabrics = append(p.Fabrics, Fabric{
			ID:        *f.ID,
			ColorHex:  *f.ColorHex,
			Name:      *f.Name,
			TotalSqIn: f.TotalSqIn,
		})
	}
	for i, b := range raw.Blocks {
		if b.X == nil || b.Y == nil || b.Width == nil || b.Height == nil || b.FabricID == nil {
			return nil, fmt.Errorf("block %d missing required field", i)
		}
		p.Blocks = append(p.Blocks, Block{
			X:        *b.X,
			Y:        *b.Y,
			Width:    *b.Width,
			Height:   *b.Height,
			FabricID: *b.FabricID,
		})
	}
	return p, nil
}

// chartDoc is the serialized form of a CuttingChart.
type chartDoc struct {
	BlockSizeIn   float64    `json:"block_size_in"`
	CutSizeIn     float64    `json:"cut_size_in"`
	SeamAllowance float64    `json:"seam_allowance"`
	Pieces        []CutPiece `json:"pieces"`
}

// Marshal serializes the chart to JSON, including the derived cut size.
func (c *CuttingChart) Marshal() ([]byte, error) {
	doc := chartDoc{
		BlockSizeIn:   c.BlockSizeIn,
		CutSizeIn:     c.CutSizeIn(),
		SeamAllowance: c.SeamAllowance,
		Pieces:        c.Pieces,
	}
	if doc.Pieces == nil {
		doc.Pieces = []CutPiece{}
	}
	return json.MarshalIndent(doc, "", "  ")
}
