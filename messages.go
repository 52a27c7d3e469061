package affinity

import "math"

// InitResponsibilities computes the iteration-0 responsibility matrix:
// R0[i,k] = S[i,k] - max over the full row i of S (including k itself).
// The iteration-0 availability matrix is all zeros.
//
// s is the flat n×n similarity matrix; the result has the same layout.
func InitResponsibilities(s []float64, n int) []float64 {
	r := make([]float64, n*n)
	for i := 0; i < n; i++ {
		row := s[i*n : (i+1)*n]
		rowMax := math.Inf(-1)
		for _, v := range row {
			if v > rowMax {
				rowMax = v
			}
		}
		for k, v := range row {
			r[i*n+k] = v - rowMax
		}
	}
	return r
}

// UpdateAvailabilities computes one damped availability half-step into dst:
//
//	i != k: upd = min(0, r(k,k) + Σ_{j∉{i,k}} max(0, r(j,k)))
//	i == k: upd = Σ_{j≠k} max(0, r(j,k))
//	dst[i,k] = damping·upd + (1-damping)·prevA[i,k]
//
// prevR and prevA are the previous iteration's matrices and are not
// modified. dst must not alias prevA.
func UpdateAvailabilities(dst, prevR, prevA []float64, n int, damping float64) {
	updateAvailabilityRows(dst, prevR, prevA, n, damping, 0, n)
}

// updateAvailabilityRows computes availability entries for rows [start, end).
// Each entry reads only column k of prevR, which is fixed for the whole
// half-step, so disjoint row ranges can run concurrently.
func updateAvailabilityRows(dst, prevR, prevA []float64, n int, damping float64, start, end int) {
	for i := start; i < end; i++ {
		for k := 0; k < n; k++ {
			var upd float64
			if i == k {
				// Self-availability: total rectified support for k as an
				// exemplar, unclipped.
				var sum float64
				for j := 0; j < n; j++ {
					if j != k {
						sum += max(0, prevR[j*n+k])
					}
				}
				upd = sum
			} else {
				sum := prevR[k*n+k]
				for j := 0; j < n; j++ {
					if j != i && j != k {
						sum += max(0, prevR[j*n+k])
					}
				}
				upd = min(0, sum)
			}
			dst[i*n+k] = damping*upd + (1-damping)*prevA[i*n+k]
		}
	}
}

// UpdateResponsibilities computes one damped responsibility half-step into
// dst, using the availabilities a just computed for this iteration:
//
//	upd = S[i,k] - max_{k'≠k}(S[i,k'] + a[i,k'])
//	dst[i,k] = damping·upd + (1-damping)·prevR[i,k]
//
// dst must not alias prevR. Requires n >= 2 so the competing maximum is
// never taken over an empty set.
func UpdateResponsibilities(dst, a, s, prevR []float64, n int, damping float64) {
	updateResponsibilityRows(dst, a, s, prevR, n, damping, 0, n)
}

// updateResponsibilityRows computes responsibility entries for rows
// [start, end). One pass per row finds the largest and second-largest
// S[i,k']+a[i,k'], so excluding k' == k is the runner-up lookup when k is
// the argmax and the maximum otherwise.
func updateResponsibilityRows(dst, a, s, prevR []float64, n int, damping float64, start, end int) {
	for i := start; i < end; i++ {
		max1 := math.Inf(-1)
		max2 := math.Inf(-1)
		argmax := -1
		for k := 0; k < n; k++ {
			v := s[i*n+k] + a[i*n+k]
			if v > max1 {
				max2 = max1
				max1 = v
				argmax = k
			} else if v > max2 {
				max2 = v
			}
		}
		for k := 0; k < n; k++ {
			competing := max1
			if k == argmax {
				competing = max2
			}
			upd := s[i*n+k] - competing
			dst[i*n+k] = damping*upd + (1-damping)*prevR[i*n+k]
		}
	}
}
