package extract

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Emeier2/quiltify/internal/palette"
)

// encodePNG renders a solid-stripe test image: equal-height horizontal
// stripes, one per color, top to bottom.
func encodePNG(t *testing.T, w, h int, stripes []color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stripeH := h / len(stripes)
	for y := 0; y < h; y++ {
		si := y / stripeH
		if si >= len(stripes) {
			si = len(stripes) - 1
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, stripes[si])
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.GridWidth = 10
	opts.GridHeight = 10
	opts.PaletteSize = 2
	return opts
}

func TestExtractMalformedImage(t *testing.T) {
	_, err := Extract([]byte("definitely not an image"), DefaultOptions(), palette.Builtin())
	if err == nil {
		t.Fatal("Extract on junk bytes succeeded, want error")
	}
}

func TestExtractSolidImage(t *testing.T) {
	data := encodePNG(t, 80, 80, []color.RGBA{{R: 0xc4, G: 0x34, B: 0x28, A: 255}})
	res, err := Extract(data, smallOptions(), palette.Builtin())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Source != SourceExtracted {
		t.Errorf("Source = %v, want Extracted", res.Source)
	}
	p := res.Pattern
	if errs := p.Validate(); len(errs) != 0 {
		t.Errorf("extracted pattern invalid: %v", errs)
	}
	// A single distinct color still yields the minimum of two clusters.
	if len(p.Fabrics) != 2 {
		t.Errorf("fabric count = %d, want 2", len(p.Fabrics))
	}
	// One color, one rectangle covering the whole grid.
	if len(p.Blocks) != 1 {
		t.Errorf("block count = %d, want 1", len(p.Blocks))
	}
	if res.Confidence != 1.0 {
		t.Errorf("Confidence = %g, want 1.0", res.Confidence)
	}
}

func TestExtractStripedImage(t *testing.T) {
	stripes := []color.RGBA{
		{R: 0x1b, G: 0x2d, B: 0x5b, A: 255}, // navy
		{R: 0xf5, G: 0xf0, B: 0xdc, A: 255}, // cream
	}
	data := encodePNG(t, 120, 120, stripes)
	res, err := Extract(data, smallOptions(), palette.Builtin())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	p := res.Pattern
	if errs := p.Validate(); len(errs) != 0 {
		t.Errorf("extracted pattern invalid: %v", errs)
	}
	if len(p.Fabrics) != 2 {
		t.Fatalf("fabric count = %d, want 2", len(p.Fabrics))
	}
	names := map[string]bool{}
	for _, f := range p.Fabrics {
		names[f.Name] = true
	}
	if !names["Kona Cotton - Navy"] || !names["Kona Cotton - Cream"] {
		t.Errorf("fabric names = %v, want navy and cream", names)
	}
	// Two clean stripes ten cells wide merge into two blocks.
	if len(p.Blocks) != 2 {
		t.Errorf("block count = %d, want 2", len(p.Blocks))
	}
	if res.Confidence != 1.0 {
		t.Errorf("Confidence = %g, want 1.0", res.Confidence)
	}
}

func TestExtractDeterministic(t *testing.T) {
	stripes := []color.RGBA{
		{R: 0x1b, G: 0x2d, B: 0x5b, A: 255},
		{R: 0xc4, G: 0x34, B: 0x28, A: 255},
		{R: 0x4a, G: 0x7c, B: 0x3f, A: 255},
	}
	data := encodePNG(t, 90, 90, stripes)
	opts := smallOptions()
	opts.PaletteSize = 3
	pal := palette.Builtin()

	first, err := Extract(data, opts, pal)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	second, err := Extract(data, opts, pal)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if diff := cmp.Diff(first.Pattern, second.Pattern); diff != "" {
		t.Errorf("extraction not deterministic (-first +second):\n%s", diff)
	}
	if first.Confidence != second.Confidence {
		t.Errorf("confidence differs: %g vs %g", first.Confidence, second.Confidence)
	}
}

func TestExtractPartitionProperty(t *testing.T) {
	stripes := []color.RGBA{
		{R: 0xd4, G: 0xa4, B: 0x2a, A: 255},
		{R: 0x7d, G: 0xb8, B: 0xd8, A: 255},
		{R: 0x4a, G: 0x20, B: 0x60, A: 255},
		{R: 0xe8, G: 0x70, B: 0x5a, A: 255},
	}
	data := encodePNG(t, 64, 96, stripes)
	opts := smallOptions()
	opts.GridWidth = 8
	opts.GridHeight = 12
	opts.PaletteSize = 4
	res, err := Extract(data, opts, palette.Builtin())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if errs := res.Pattern.Validate(); len(errs) != 0 {
		t.Errorf("partition violated: %v", errs)
	}
	covered := 0
	for _, b := range res.Pattern.Blocks {
		covered += b.AreaCells()
	}
	if covered != opts.GridWidth*opts.GridHeight {
		t.Errorf("covered %d cells, want %d", covered, opts.GridWidth*opts.GridHeight)
	}
}

func TestSyntheticValid(t *testing.T) {
	for _, ps := range []int{1, 2, 4, 6, 12} {
		opts := DefaultOptions()
		opts.PaletteSize = ps
		res := Synthetic(opts)
		if res.Source != SourceSynthetic {
			t.Errorf("Source = %v, want Synthetic", res.Source)
		}
		if res.Confidence != 0 {
			t.Errorf("Confidence = %g, want 0", res.Confidence)
		}
		if errs := res.Pattern.Validate(); len(errs) != 0 {
			t.Errorf("palette size %d: synthetic pattern invalid: %v", ps, errs)
		}
	}
}

func TestSyntheticShortGrid(t *testing.T) {
	// Fewer rows than palette colors: later stripes are dropped, coverage
	// still holds.
	opts := DefaultOptions()
	opts.GridHeight = 5
	opts.PaletteSize = 6
	res := Synthetic(opts)
	if errs := res.Pattern.Validate(); len(errs) != 0 {
		t.Errorf("short grid synthetic invalid: %v", errs)
	}
}

func TestSyntheticStripeLayout(t *testing.T) {
	opts := DefaultOptions() // 40x50, 6 colors
	p := Synthetic(opts).Pattern
	if len(p.Fabrics) != 6 || len(p.Blocks) != 6 {
		t.Fatalf("got %d fabrics, %d blocks, want 6 and 6", len(p.Fabrics), len(p.Blocks))
	}
	for i, b := range p.Blocks[:5] {
		if b.Height != 8 {
			t.Errorf("stripe %d height = %d, want 8", i, b.Height)
		}
	}
	if last := p.Blocks[5]; last.Y != 40 || last.Height != 10 {
		t.Errorf("last stripe = %+v, want y=40 height=10", last)
	}
}

func TestDecodeBase64(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	b64 := "iVBORw==" // base64 of the PNG magic prefix
	for _, in := range []string{b64, "data:image/png;base64," + b64} {
		got, err := DecodeBase64(in)
		if err != nil {
			t.Fatalf("DecodeBase64(%q): %v", in, err)
		}
		if !bytes.Equal(got, raw) {
			t.Errorf("DecodeBase64(%q) = %v, want %v", in, got, raw)
		}
	}
	if _, err := DecodeBase64("!!not base64!!"); err == nil {
		t.Error("DecodeBase64 on junk succeeded, want error")
	}
}

func TestImageBytes(t *testing.T) {
	raw := encodePNG(t, 16, 16, []color.RGBA{{R: 0x1b, G: 0x2d, B: 0x5b, A: 255}})

	got, err := ImageBytes(raw)
	if err != nil {
		t.Fatalf("ImageBytes on raw bytes: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Error("raw image bytes did not pass through unchanged")
	}

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw) + "\n"
	got, err = ImageBytes([]byte(uri))
	if err != nil {
		t.Fatalf("ImageBytes on data URI: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Error("data URI did not decode back to the original bytes")
	}
}

func TestSourceString(t *testing.T) {
	if SourceExtracted.String() != "Extracted" || SourceSynthetic.String() != "Synthetic" {
		t.Error("Source.String() mismatch")
	}
}
