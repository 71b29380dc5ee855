package cutting

import (
	"sort"
	"strings"
	"testing"

	"github.com/Emeier2/quiltify/internal/pattern"
)

// simplePattern builds a 10x10 grid split into two 10x5 stripes, 2.5"
// blocks with 0.25" seams (3.0" cut).
func simplePattern() *pattern.QuiltPattern {
	return &pattern.QuiltPattern{
		GridWidth:     10,
		GridHeight:    10,
		BlockSizeIn:   2.5,
		SeamAllowance: 0.25,
		Fabrics: []pattern.Fabric{
			{ID: "f1", ColorHex: "#1b2d5b", Name: "Navy"},
			{ID: "f2", ColorHex: "#c43428", Name: "Red"},
		},
		Blocks: []pattern.Block{
			{X: 0, Y: 0, Width: 10, Height: 5, FabricID: "f1"},
			{X: 0, Y: 5, Width: 10, Height: 5, FabricID: "f2"},
		},
	}
}

func chartOf(pieces ...pattern.CutPiece) *pattern.CuttingChart {
	return &pattern.CuttingChart{BlockSizeIn: 2.5, SeamAllowance: 0.25, Pieces: pieces}
}

func TestCalculateRequirementsPerFabric(t *testing.T) {
	p := simplePattern()
	reqs := CalculateRequirements(p.ToCuttingChart(), p.Fabrics)
	if len(reqs) != 2 {
		t.Fatalf("got %d requirements, want 2", len(reqs))
	}
	for _, r := range reqs {
		// One 15x30 piece per fabric: 450 sq in.
		if r.TotalSqIn != 450.0 {
			t.Errorf("%s TotalSqIn = %g, want 450", r.FabricID, r.TotalSqIn)
		}
		// 495 sq in with waste, 396 per fat quarter.
		if r.FatQuartersNeeded != 2 {
			t.Errorf("%s FatQuartersNeeded = %d, want 2", r.FabricID, r.FatQuartersNeeded)
		}
		if len(r.Pieces) != 1 {
			t.Errorf("%s has %d pieces, want 1", r.FabricID, len(r.Pieces))
		}
	}
}

func TestRequirementsSortedByName(t *testing.T) {
	p := simplePattern()
	p.Fabrics[0].Name = "Zinnia"
	p.Fabrics[1].Name = "Aqua"
	reqs := CalculateRequirements(p.ToCuttingChart(), p.Fabrics)
	names := make([]string, len(reqs))
	for i, r := range reqs {
		names[i] = r.FabricName
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("requirements not sorted by name: %v", names)
	}
}

func TestFatQuarterFloor(t *testing.T) {
	// A single tiny piece still needs one fat quarter.
	chart := chartOf(pattern.CutPiece{
		FabricID: "f1", FabricName: "Navy", ColorHex: "#1b2d5b",
		CutWidthIn: 3.0, CutHeightIn: 3.0, Quantity: 1,
	})
	reqs := CalculateRequirements(chart, nil)
	if len(reqs) != 1 || reqs[0].FatQuartersNeeded != 1 {
		t.Fatalf("reqs = %+v, want one requirement with 1 fat quarter", reqs)
	}
}

func TestFatQuarterExactBoundary(t *testing.T) {
	// Waste-adjusted area exactly one fat quarter: 360 * 1.1 = 396.
	chart := chartOf(pattern.CutPiece{
		FabricID: "f1", FabricName: "Navy", ColorHex: "#1b2d5b",
		CutWidthIn: 18.0, CutHeightIn: 20.0, Quantity: 1,
	})
	reqs := CalculateRequirements(chart, nil)
	if reqs[0].FatQuartersNeeded != 1 {
		t.Errorf("FatQuartersNeeded = %d, want exactly 1 at the boundary", reqs[0].FatQuartersNeeded)
	}
}

func TestWOFYardageSmallAndLargeRuns(t *testing.T) {
	small := chartOf(pattern.CutPiece{
		FabricID: "f1", FabricName: "Navy", ColorHex: "#1b2d5b",
		CutWidthIn: 3.0, CutHeightIn: 3.0, Quantity: 1,
	})
	if y := CalculateRequirements(small, nil)[0].YardageWOF; y > 0.25 {
		t.Errorf("yardage for one 3\" piece = %g, want <= 0.25", y)
	}

	large := chartOf(pattern.CutPiece{
		FabricID: "f1", FabricName: "Navy", ColorHex: "#1b2d5b",
		CutWidthIn: 3.0, CutHeightIn: 3.0, Quantity: 100,
	})
	if y := CalculateRequirements(large, nil)[0].YardageWOF; y <= 0.5 {
		t.Errorf("yardage for 100 3\" pieces = %g, want > 0.5", y)
	}
}

func TestWOFYardageEighthRounding(t *testing.T) {
	// 14 pieces fit across 44": one 3" strip, 3.3" with waste,
	// 0.0917 yd, rounded up to the next eighth: 0.125.
	chart := chartOf(pattern.CutPiece{
		FabricID: "f1", FabricName: "Navy", ColorHex: "#1b2d5b",
		CutWidthIn: 3.0, CutHeightIn: 3.0, Quantity: 14,
	})
	if y := CalculateRequirements(chart, nil)[0].YardageWOF; y != 0.125 {
		t.Errorf("YardageWOF = %g, want 0.125", y)
	}
}

func TestWOFYardagePieceWiderThanFabric(t *testing.T) {
	chart := chartOf(pattern.CutPiece{
		FabricID: "f1", FabricName: "Navy", ColorHex: "#1b2d5b",
		CutWidthIn: 50.0, CutHeightIn: 10.0, Quantity: 2,
	})
	// fitsAcross floors to 1: two 10" strips, 22" with waste, 0.611 yd,
	// up to 0.625.
	if y := CalculateRequirements(chart, nil)[0].YardageWOF; y != 0.625 {
		t.Errorf("YardageWOF = %g, want 0.625", y)
	}
}

func TestUnknownFabricPlaceholder(t *testing.T) {
	chart := chartOf(pattern.CutPiece{
		FabricID: "ghost", FabricName: "ghost", ColorHex: "#888888",
		CutWidthIn: 3.0, CutHeightIn: 3.0, Quantity: 1,
	})
	reqs := CalculateRequirements(chart, nil)
	if reqs[0].FabricName != "ghost" || reqs[0].ColorHex != "#888888" {
		t.Errorf("placeholder requirement = %+v", reqs[0])
	}
}

func TestFormatCuttingSequence(t *testing.T) {
	p := simplePattern()
	lines := FormatCuttingSequence(p.ToCuttingChart(), p.Fabrics)
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if lines[0] != "### Navy (#1b2d5b)" {
		t.Errorf("first header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "450 sq in") || !strings.Contains(lines[1], "2 fat quarters") {
		t.Errorf("totals line = %q", lines[1])
	}
	if !strings.Contains(lines[2], `Cut 1× pieces 15" × 30"`) {
		t.Errorf("piece line = %q", lines[2])
	}
	if lines[3] != "### Red (#c43428)" {
		t.Errorf("second header = %q", lines[3])
	}
}

func TestFormatCuttingSequenceLargestFirst(t *testing.T) {
	chart := chartOf(
		pattern.CutPiece{FabricID: "f1", FabricName: "Navy", ColorHex: "#1b2d5b",
			CutWidthIn: 3.0, CutHeightIn: 3.0, Quantity: 4},
		pattern.CutPiece{FabricID: "f1", FabricName: "Navy", ColorHex: "#1b2d5b",
			CutWidthIn: 9.0, CutHeightIn: 12.0, Quantity: 1},
	)
	lines := FormatCuttingSequence(chart, []pattern.Fabric{
		{ID: "f1", ColorHex: "#1b2d5b", Name: "Navy"},
	})
	bigIdx, smallIdx := -1, -1
	for i, l := range lines {
		if strings.Contains(l, `9" × 12"`) {
			bigIdx = i
		}
		if strings.Contains(l, `3" × 3"`) {
			smallIdx = i
		}
	}
	if bigIdx == -1 || smallIdx == -1 || bigIdx > smallIdx {
		t.Errorf("largest piece not listed first:\n%s", strings.Join(lines, "\n"))
	}
}
