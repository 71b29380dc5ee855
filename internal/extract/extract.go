// Package extract converts a raster image into a validated quilt pattern:
// resample, quantize to a small palette, sample each grid cell, then merge
// same-color cells into rectangular blocks.
package extract

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"golang.org/x/image/draw"

	"github.com/Emeier2/quiltify/internal/palette"
	"github.com/Emeier2/quiltify/internal/pattern"
	"github.com/Emeier2/quiltify/internal/tiler"
	"github.com/Emeier2/quiltify/pkg/colorutil"
)

// CellSamplePx is the sampling stride: each grid cell corresponds to a
// CellSamplePx square pixel block in the resampled image.
const CellSamplePx = 24

// confidenceBias reflects that even an all-singleton extraction has
// baseline usefulness.
const confidenceBias = 0.3

// Options configures extraction.
type Options struct {
	GridWidth     int     // Grid columns
	GridHeight    int     // Grid rows
	PaletteSize   int     // Requested number of fabrics
	BlockSizeIn   float64 // Finished size of one grid unit, inches
	SeamAllowance float64 // Inches added per side before cutting
}

// DefaultOptions returns the standard throw-size quilt geometry.
func DefaultOptions() Options {
	return Options{
		GridWidth:     pattern.DefaultGridWidth,
		GridHeight:    pattern.DefaultGridHeight,
		PaletteSize:   6,
		BlockSizeIn:   pattern.DefaultBlockSizeIn,
		SeamAllowance: pattern.DefaultSeamAllowance,
	}
}

// Source indicates how a result was produced.
type Source int

const (
	// SourceExtracted indicates the pattern came from image extraction.
	SourceExtracted Source = iota
	// SourceSynthetic indicates the deterministic fallback pattern was
	// produced instead of extracting from an image.
	SourceSynthetic
)

func (s Source) String() string {
	switch s {
	case SourceExtracted:
		return "Extracted"
	case SourceSynthetic:
		return "Synthetic"
	default:
		return "Unknown"
	}
}

// Result is an extracted pattern with its provenance and quality estimate.
type Result struct {
	Pattern    *pattern.QuiltPattern
	Confidence float64 // 0.0-1.0, informational only
	Source     Source
}

// Extract builds a QuiltPattern from raw image bytes. Undecodable image
// data is a fatal input error; callers wanting a degraded result instead
// use Synthetic.
func Extract(imageBytes []byte, opts Options, pal *palette.Palette) (Result, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}
	if opts.GridWidth < 1 || opts.GridHeight < 1 {
		return Result{}, fmt.Errorf("invalid grid dimensions %dx%d", opts.GridWidth, opts.GridHeight)
	}

	// Step 1: Resample so each grid cell maps to a CellSamplePx square.
	resampled := resample(img, opts.GridWidth*CellSamplePx, opts.GridHeight*CellSamplePx)

	// Step 2: Quantize all pixels to the working palette.
	centers := quantize(pixelsOf(resampled), opts.PaletteSize)

	// Step 3: Sample each cell and assign it the nearest palette entry.
	grid := sampleCells(resampled, opts.GridWidth, opts.GridHeight, centers)

	// Step 4: Name the palette colors and build the fabric list.
	fabrics, fabricIDs := buildFabrics(centers, pal)

	// Step 5: Merge same-color cells into rectangular blocks.
	rects := tiler.Partition(grid)
	blocks := make([]pattern.Block, len(rects))
	for i, r := range rects {
		blocks[i] = pattern.Block{
			X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
			FabricID: fabricIDs[r.Color],
		}
	}

	confidence := math.Min(1.0, tiler.Coverage(rects, opts.GridWidth*opts.GridHeight)+confidenceBias)

	return Result{
		Pattern: &pattern.QuiltPattern{
			GridWidth:     opts.GridWidth,
			GridHeight:    opts.GridHeight,
			BlockSizeIn:   opts.BlockSizeIn,
			SeamAllowance: opts.SeamAllowance,
			Fabrics:       fabrics,
			Blocks:        blocks,
		},
		Confidence: round3(confidence),
		Source:     SourceExtracted,
	}, nil
}

// DecodeBase64 decodes a base64 image payload, stripping a leading
// "data:...;base64," URI prefix if present.
func DecodeBase64(b64 string) ([]byte, error) {
	if strings.HasPrefix(b64, "data:") {
		if _, rest, ok := strings.Cut(b64, ","); ok {
			b64 = rest
		}
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	return data, nil
}

// ImageBytes normalizes image input that may be either raw image bytes or
// the text of a base64 data URI (the form image-generation collaborators
// return). Raw bytes pass through unchanged.
func ImageBytes(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, []byte("data:")) {
		return DecodeBase64(strings.TrimSpace(string(data)))
	}
	return data, nil
}

// resample scales the image to exactly w by h pixels with a high-quality
// Catmull-Rom filter.
func resample(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// pixelsOf flattens an RGBA image into RGB triples.
func pixelsOf(img *image.RGBA) [][3]float64 {
	b := img.Bounds()
	pixels := make([][3]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			pixels = append(pixels, [3]float64{float64(c.R), float64(c.G), float64(c.B)})
		}
	}
	return pixels
}

// sampleCells takes a 3x3 median sample at each cell midpoint and assigns
// the cell to the nearest cluster center by RGB Euclidean distance.
func sampleCells(img *image.RGBA, gridW, gridH int, centers [][3]float64) tiler.Grid {
	grid := tiler.NewGrid(gridW, gridH)
	half := CellSamplePx / 2
	patch := make([][3]float64, 0, 9)
	for gy := 0; gy < gridH; gy++ {
		for gx := 0; gx < gridW; gx++ {
			cx := gx*CellSamplePx + half
			cy := gy*CellSamplePx + half
			patch = patch[:0]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					c := img.RGBAAt(cx+dx, cy+dy)
					patch = append(patch, [3]float64{float64(c.R), float64(c.G), float64(c.B)})
				}
			}
			grid.SetAt(gx, gy, nearestCenter(channelMedian(patch), centers))
		}
	}
	return grid
}

// buildFabrics turns cluster centers into fabrics named after the nearest
// reference palette entry. Duplicate names get a numeric suffix so fabric
// names stay distinguishable.
func buildFabrics(centers [][3]float64, pal *palette.Palette) ([]pattern.Fabric, []string) {
	fabrics := make([]pattern.Fabric, 0, len(centers))
	ids := make([]string, len(centers))
	used := make(map[string]bool, len(centers))
	for ci, center := range centers {
		rgba := color.RGBA{
			R: clampByte(center[0]),
			G: clampByte(center[1]),
			B: clampByte(center[2]),
			A: 255,
		}
		name := pal.Nearest(rgba).Name
		if used[name] {
			name = fmt.Sprintf("%s (%d)", name, ci+1)
		}
		used[name] = true
		id := fmt.Sprintf("f%d", ci+1)
		ids[ci] = id
		fabrics = append(fabrics, pattern.Fabric{
			ID:       id,
			ColorHex: colorutil.Hex(rgba),
			Name:     name,
		})
	}
	return fabrics, ids
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
