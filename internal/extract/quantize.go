package extract

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// clusterSeed fixes the k-means random source so identical input always
// produces identical palettes.
const clusterSeed = 42

const (
	clusterRestarts   = 3
	clusterMaxIter    = 25
	clusterTolerance  = 0.5
	maxClusterSamples = 65536 // cap on pixels fed to k-means
)

// clampClusters bounds k to [2, distinct] so clustering always has at least
// two groups and never more groups than distinct colors.
func clampClusters(k int, pixels [][3]float64) int {
	distinct := distinctColors(pixels, k)
	if k > distinct {
		k = distinct
	}
	if k < 2 {
		k = 2
	}
	return k
}

// distinctColors counts distinct pixel colors, stopping at limit since only
// the comparison against the requested palette size matters.
func distinctColors(pixels [][3]float64, limit int) int {
	seen := make(map[[3]float64]struct{}, limit+1)
	for _, px := range pixels {
		seen[px] = struct{}{}
		if len(seen) > limit {
			break
		}
	}
	return len(seen)
}

// quantize clusters pixels into k representative colors with seeded k-means
// and returns the cluster centers. Large inputs are subsampled with a fixed
// stride, keeping the result deterministic.
func quantize(pixels [][3]float64, k int) [][3]float64 {
	k = clampClusters(k, pixels)
	samples := pixels
	if len(samples) > maxClusterSamples {
		stride := len(samples) / maxClusterSamples
		sub := make([][3]float64, 0, maxClusterSamples+1)
		for i := 0; i < len(samples); i += stride {
			sub = append(sub, samples[i])
		}
		samples = sub
	}

	rng := rand.New(rand.NewSource(clusterSeed))
	var best [][3]float64
	bestScore := 0.0
	for restart := 0; restart < clusterRestarts; restart++ {
		centers, score := kmeansRun(samples, k, rng)
		if best == nil || score < bestScore {
			best = centers
			bestScore = score
		}
	}
	return best
}

// kmeansRun performs one k-means pass: random initial centers, Lloyd
// iterations until convergence or the iteration cap, returning the centers
// and the total within-cluster distance.
func kmeansRun(samples [][3]float64, k int, rng *rand.Rand) ([][3]float64, float64) {
	centers := make([][3]float64, k)
	for i := range centers {
		centers[i] = samples[rng.Intn(len(samples))]
	}

	assign := make([]int, len(samples))
	for iter := 0; iter < clusterMaxIter; iter++ {
		for i, px := range samples {
			assign[i] = nearestCenter(px, centers)
		}

		sums := make([][3]float64, k)
		counts := make([]int, k)
		for i, px := range samples {
			c := assign[i]
			sums[c][0] += px[0]
			sums[c][1] += px[1]
			sums[c][2] += px[2]
			counts[c]++
		}

		moved := 0.0
		for c := range centers {
			if counts[c] == 0 {
				// Reseed empty clusters from a random sample.
				centers[c] = samples[rng.Intn(len(samples))]
				moved += clusterTolerance + 1
				continue
			}
			next := [3]float64{
				sums[c][0] / float64(counts[c]),
				sums[c][1] / float64(counts[c]),
				sums[c][2] / float64(counts[c]),
			}
			moved += floats.Distance(centers[c][:], next[:], 2)
			centers[c] = next
		}
		if moved < clusterTolerance {
			break
		}
	}

	score := 0.0
	for i, px := range samples {
		score += floats.Distance(px[:], centers[assign[i]][:], 2)
	}
	return centers, score
}

// nearestCenter returns the index of the center closest to px in plain
// Euclidean RGB distance.
func nearestCenter(px [3]float64, centers [][3]float64) int {
	best := 0
	bestDist := floats.Distance(px[:], centers[0][:], 2)
	for i := 1; i < len(centers); i++ {
		if d := floats.Distance(px[:], centers[i][:], 2); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// channelMedian returns the per-channel median of a pixel patch, robust
// against single-pixel noise.
func channelMedian(patch [][3]float64) [3]float64 {
	var med [3]float64
	ch := make([]float64, len(patch))
	for c := 0; c < 3; c++ {
		for i, px := range patch {
			ch[i] = px[c]
		}
		sort.Float64s(ch)
		med[c] = stat.Quantile(0.5, stat.Empirical, ch, nil)
	}
	return med
}
