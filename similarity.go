package affinity

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// PreferenceMode selects the self-similarity (preference) constant placed on
// the diagonal of the similarity matrix. The preference is a point's prior
// likelihood of becoming an exemplar: lower values yield fewer, larger
// clusters.
type PreferenceMode int

const (
	// PreferenceMinimum sets every preference to the minimum off-diagonal
	// similarity, favoring fewer and larger clusters.
	PreferenceMinimum PreferenceMode = 1

	// PreferenceMedian sets every preference to the median off-diagonal
	// similarity, favoring more clusters.
	PreferenceMedian PreferenceMode = 2
)

// BuildSimilarity computes the n×n similarity matrix for the given points.
// data must be rectangular with at least two rows; all points share one
// dimensionality. Off-diagonal entries are the negative squared Euclidean
// distance between points; every diagonal entry is the preference constant
// selected by mode, applied uniformly.
//
// Returns a flat []float64 of length n×n in row-major order.
func BuildSimilarity(data [][]float64, mode PreferenceMode) ([]float64, error) {
	if mode != PreferenceMinimum && mode != PreferenceMedian {
		return nil, fmt.Errorf("%w: Preference must be 1 (minimum) or 2 (median), got %d", ErrInvalidParameter, mode)
	}
	n := len(data)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points to build a similarity matrix, got %d", ErrInvalidParameter, n)
	}
	dims := len(data[0])
	for i, row := range data {
		if len(row) != dims {
			return nil, fmt.Errorf("%w: point %d has %d dimensions, expected %d", ErrInvalidParameter, i, len(row), dims)
		}
	}

	s := make([]float64, n*n)
	// Upper-triangle values double as the sample for the preference constant.
	// S is symmetric, so the min/median over one triangle equals the
	// min/median over all off-diagonal entries.
	offDiag := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := -squaredEuclidean(data[i], data[j])
			s[i*n+j] = v
			s[j*n+i] = v
			offDiag = append(offDiag, v)
		}
	}

	var pref float64
	if mode == PreferenceMinimum {
		pref = floats.Min(offDiag)
	} else {
		pref = median(offDiag)
	}
	for i := 0; i < n; i++ {
		s[i*n+i] = pref
	}
	return s, nil
}

func squaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// median returns the middle element of xs, averaging the two middle
// elements for even lengths. xs is sorted in place.
func median(xs []float64) float64 {
	sort.Float64s(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 0 {
		return (xs[mid-1] + xs[mid]) / 2
	}
	return xs[mid]
}
