package stats

import (
	"fmt"
	"math"
	"sort"
)

// Mean returns the arithmetic mean, or 0 for an empty sample.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Std returns the sample standard deviation (n-1 denominator), or 0 when
// fewer than two samples exist.
func Std(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

// Median returns the middle value, averaging the two central values for
// even-sized samples.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Pearson computes the Pearson correlation coefficient over paired
// samples. Pairs must align; samples with fewer than two pairs or zero
// variance on either side are rejected.
func Pearson(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("sample length mismatch: %d vs %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("need at least 2 paired samples, got %d", len(xs))
	}

	mx, my := Mean(xs), Mean(ys)
	var cov, vx, vy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0, fmt.Errorf("zero variance in sample")
	}
	return cov / math.Sqrt(vx*vy), nil
}

// CV returns the coefficient of variation (sample std / mean) as a
// percentage. A zero mean yields 0 rather than a division blowup.
func CV(xs []float64) float64 {
	m := Mean(xs)
	if m == 0 {
		return 0
	}
	return Std(xs) / m * 100
}

// CutIndex assigns v to one of bins equal-width intervals over
// [min, max], lowest value included, mirroring dataframe-style binning.
func CutIndex(v, min, max float64, bins int) int {
	if bins <= 0 || max <= min {
		return 0
	}
	width := (max - min) / float64(bins)
	idx := int((v - min) / width)
	if idx < 0 {
		idx = 0
	}
	if idx >= bins {
		idx = bins - 1
	}
	return idx
}
