package extract

import (
	"fmt"

	"github.com/Emeier2/quiltify/internal/pattern"
)

// syntheticColors are the stripe fabrics used by the fallback pattern, in
// stripe order top to bottom.
var syntheticColors = []struct {
	hex  string
	name string
}{
	{"#1b2d5b", "Kona Cotton - Navy"},
	{"#c43428", "Kona Cotton - Tomato"},
	{"#f5f0dc", "Kona Cotton - Cream"},
	{"#4a7c3f", "Kona Cotton - Grass"},
	{"#d4a42a", "Kona Cotton - Gold"},
	{"#7db8d8", "Kona Cotton - Sky"},
}

// Synthetic returns a deterministic striped placeholder pattern: one
// equal-height horizontal stripe per palette color, with the last stripe
// absorbing any remainder. The result always passes validation. This is the
// designed degraded path for when no usable image input exists.
func Synthetic(opts Options) Result {
	n := opts.PaletteSize
	if n < 1 {
		n = 1
	}
	if n > len(syntheticColors) {
		n = len(syntheticColors)
	}

	p := &pattern.QuiltPattern{
		GridWidth:     opts.GridWidth,
		GridHeight:    opts.GridHeight,
		BlockSizeIn:   opts.BlockSizeIn,
		SeamAllowance: opts.SeamAllowance,
	}
	for i := 0; i < n; i++ {
		p.Fabrics = append(p.Fabrics, pattern.Fabric{
			ID:       fmt.Sprintf("f%d", i+1),
			ColorHex: syntheticColors[i].hex,
			Name:     syntheticColors[i].name,
		})
	}

	stripeH := opts.GridHeight / n
	if stripeH < 1 {
		stripeH = 1
	}
	for i := 0; i < n; i++ {
		yStart := i * stripeH
		if yStart >= opts.GridHeight {
			break
		}
		yEnd := yStart + stripeH
		if i == n-1 || yEnd > opts.GridHeight {
			yEnd = opts.GridHeight
		}
		p.Blocks = append(p.Blocks, pattern.Block{
			X: 0, Y: yStart, Width: opts.GridWidth, Height: yEnd - yStart,
			FabricID: p.Fabrics[i].ID,
		})
	}

	return Result{Pattern: p, Confidence: 0, Source: SourceSynthetic}
}
