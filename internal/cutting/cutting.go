// Package cutting computes fabric purchase requirements and cutting
// instructions from a cutting chart.
package cutting

import (
	"fmt"
	"math"
	"sort"

	"github.com/Emeier2/quiltify/internal/pattern"
)

// Standard fabric trade dimensions.
const (
	FatQuarterWidthIn   = 22.0 // unwashed
	FatQuarterHeightIn  = 18.0 // unwashed
	FatQuarterSqIn      = FatQuarterWidthIn * FatQuarterHeightIn
	StandardFabricWidth = 44.0 // WOF, width of fabric
)

// WasteFactor adds 10% for cutting waste and miscuts.
const WasteFactor = 1.10

// FabricRequirement aggregates the purchase quantities for one fabric:
// total area, fat quarter count, and yards of standard-width fabric.
type FabricRequirement struct {
	FabricID          string
	FabricName        string
	ColorHex          string
	TotalSqIn         float64
	FatQuartersNeeded int
	YardageWOF        float64 // yards of 44" wide fabric
	Pieces            []pattern.CutPiece
}

// CalculateRequirements computes per-fabric purchase requirements from a
// cutting chart, sorted by fabric name.
func CalculateRequirements(chart *pattern.CuttingChart, fabrics []pattern.Fabric) []FabricRequirement {
	fabricMap := make(map[string]pattern.Fabric, len(fabrics))
	for _, f := range fabrics {
		fabricMap[f.ID] = f
	}

	byFabric := chart.ByFabric()
	order := make([]string, 0, len(byFabric))
	seen := make(map[string]bool, len(byFabric))
	for _, p := range chart.Pieces {
		if !seen[p.FabricID] {
			seen[p.FabricID] = true
			order = append(order, p.FabricID)
		}
	}

	reqs := make([]FabricRequirement, 0, len(order))
	for _, fabricID := range order {
		pieces := byFabric[fabricID]
		totalSqIn := 0.0
		for _, p := range pieces {
			totalSqIn += p.CutWidthIn * p.CutHeightIn * float64(p.Quantity)
		}
		// Round the waste-adjusted area to hundredths, like every other
		// area in the model, so an exact fat-quarter total stays one fat
		// quarter instead of tipping over on float error.
		wasteAdjusted := math.Round(totalSqIn*WasteFactor*100) / 100
		fatQuarters := int(math.Ceil(wasteAdjusted / FatQuarterSqIn))
		if fatQuarters < 1 {
			fatQuarters = 1
		}

		name, colorHex := fabricID, "#888888"
		if fab, ok := fabricMap[fabricID]; ok {
			name, colorHex = fab.Name, fab.ColorHex
		}
		reqs = append(reqs, FabricRequirement{
			FabricID:          fabricID,
			FabricName:        name,
			ColorHex:          colorHex,
			TotalSqIn:         math.Round(totalSqIn*100) / 100,
			FatQuartersNeeded: fatQuarters,
			YardageWOF:        wofYardage(pieces, StandardFabricWidth),
			Pieces:            pieces,
		})
	}

	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].FabricName != reqs[j].FabricName {
			return reqs[i].FabricName < reqs[j].FabricName
		}
		return reqs[i].FabricID < reqs[j].FabricID
	})
	return reqs
}

// wofYardage estimates yards of fabric needed when strips are cut across
// the width of fabric, rounded up to the nearest eighth of a yard.
func wofYardage(pieces []pattern.CutPiece, fabricWidth float64) float64 {
	totalInches := 0.0
	for _, p := range pieces {
		fitsAcross := int(math.Floor(fabricWidth / p.CutWidthIn))
		if fitsAcross == 0 {
			fitsAcross = 1
		}
		strips := int(math.Ceil(float64(p.Quantity) / float64(fitsAcross)))
		totalInches += float64(strips) * p.CutHeightIn
	}
	totalInches *= WasteFactor
	yards := totalInches / 36.0
	return math.Ceil(yards*8) / 8
}

// FormatCuttingSequence returns ordered cutting instructions: fabrics
// alphabetically, pieces within a fabric by area descending so the large
// cuts come off the fabric before remnants shrink.
func FormatCuttingSequence(chart *pattern.CuttingChart, fabrics []pattern.Fabric) []string {
	reqs := CalculateRequirements(chart, fabrics)
	var out []string
	for _, req := range reqs {
		pieces := make([]pattern.CutPiece, len(req.Pieces))
		copy(pieces, req.Pieces)
		sort.SliceStable(pieces, func(i, j int) bool {
			return pieces[i].CutWidthIn*pieces[i].CutHeightIn >
				pieces[j].CutWidthIn*pieces[j].CutHeightIn
		})

		plural := ""
		if req.FatQuartersNeeded > 1 {
			plural = "s"
		}
		out = append(out, fmt.Sprintf("### %s (%s)", req.FabricName, req.ColorHex))
		out = append(out, fmt.Sprintf(
			"Total needed: ~%.0f sq in (%d fat quarter%s or %g yd WOF)",
			req.TotalSqIn, req.FatQuartersNeeded, plural, req.YardageWOF))
		for _, p := range pieces {
			out = append(out, fmt.Sprintf("  • Cut %d× pieces %g\" × %g\"",
				p.Quantity, p.CutWidthIn, p.CutHeightIn))
		}
	}
	return out
}
