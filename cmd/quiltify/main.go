// Command quiltify converts an image into a quilt pattern: a rectangular
// block layout, a cutting chart, and per-fabric yardage requirements.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"

	"github.com/Emeier2/quiltify/internal/cutting"
	"github.com/Emeier2/quiltify/internal/extract"
	"github.com/Emeier2/quiltify/internal/palette"
	"github.com/Emeier2/quiltify/internal/pattern"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imagePath := flag.String("image", "", "Path to quilt image (PNG, JPEG, GIF, TIFF, or a base64 data URI file)")
	synthetic := flag.Bool("synthetic", false, "Skip extraction and emit the striped fallback pattern")
	gridWidth := flag.Int("grid-width", pattern.DefaultGridWidth, "Grid columns (10-100)")
	gridHeight := flag.Int("grid-height", pattern.DefaultGridHeight, "Grid rows (10-100)")
	paletteSize := flag.Int("palette", 6, "Number of fabrics (2-12)")
	blockSize := flag.Float64("block-size", pattern.DefaultBlockSizeIn, "Finished block size in inches (1.0-6.0)")
	seam := flag.Float64("seam", pattern.DefaultSeamAllowance, "Seam allowance in inches")
	paletteFile := flag.String("palette-file", "", "JSON reference palette (falls back to the builtin Kona palette)")
	outDir := flag.String("out", "", "Directory for pattern.json and chart.json (omit to skip writing)")
	flag.Parse()

	if *imagePath == "" && !*synthetic {
		fmt.Println("Usage: quiltify -image <path> [options], or quiltify -synthetic [options]")
		os.Exit(1)
	}
	if *gridWidth < 10 || *gridWidth > 100 || *gridHeight < 10 || *gridHeight > 100 {
		log.Fatalf("grid dimensions %dx%d out of range 10-100", *gridWidth, *gridHeight)
	}
	if *paletteSize < 2 || *paletteSize > 12 {
		log.Fatalf("palette size %d out of range 2-12", *paletteSize)
	}
	if *blockSize < 1.0 || *blockSize > 6.0 {
		log.Fatalf("block size %g out of range 1.0-6.0", *blockSize)
	}

	pal := palette.Builtin()
	if *paletteFile != "" {
		pal = palette.Load(*paletteFile)
	}

	opts := extract.Options{
		GridWidth:     *gridWidth,
		GridHeight:    *gridHeight,
		PaletteSize:   *paletteSize,
		BlockSizeIn:   *blockSize,
		SeamAllowance: *seam,
	}

	var res extract.Result
	if *synthetic {
		res = extract.Synthetic(opts)
	} else {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			log.Fatalf("read image: %v", err)
		}
		data, err = extract.ImageBytes(data)
		if err != nil {
			log.Fatalf("decode image input: %v", err)
		}
		res, err = extract.Extract(data, opts, pal)
		if err != nil {
			log.Fatalf("extract pattern: %v", err)
		}
	}

	p := res.Pattern
	fmt.Printf("Pattern: %dx%d grid, %g\" blocks, %g\" seams (%g\" cut)\n",
		p.GridWidth, p.GridHeight, p.BlockSizeIn, p.SeamAllowance, p.CutSizeIn())
	fmt.Printf("Finished size: %g\" × %g\"\n", p.FinishedWidthIn(), p.FinishedHeightIn())
	fmt.Printf("Source: %s, confidence %.3f\n", res.Source, res.Confidence)
	fmt.Printf("Fabrics: %d, blocks: %d\n", len(p.Fabrics), len(p.Blocks))

	if violations := p.Validate(); len(violations) > 0 {
		log.Printf("pattern has %d validation issues:", len(violations))
		for _, v := range violations {
			log.Printf("  %s", v)
		}
	}

	chart := p.ToCuttingChart()
	fmt.Printf("\nCutting chart: %d piece types, %d pieces total\n",
		len(chart.Pieces), chart.TotalPieces())
	fmt.Println(strings.Join(cutting.FormatCuttingSequence(chart, p.Fabrics), "\n"))

	if *outDir != "" {
		if err := writeOutputs(*outDir, p, chart); err != nil {
			log.Fatalf("write outputs: %v", err)
		}
	}
}

func writeOutputs(dir string, p *pattern.QuiltPattern, chart *pattern.CuttingChart) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	patternJSON, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("marshal pattern: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pattern.json"), patternJSON, 0o644); err != nil {
		return err
	}
	chartJSON, err := chart.Marshal()
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "chart.json"), chartJSON, 0o644)
}
