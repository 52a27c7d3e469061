package affinity

import "gonum.org/v1/gonum/floats"

// Assignments computes the hard cluster assignment from the current message
// matrices: dst[i] = argmax_k (r[i,k] + a[i,k]), the exemplar currently
// preferred by point i. Ties go to the lowest index k, so assignments are
// reproducible across runs and implementations.
//
// scratch must have length n and is clobbered; it exists so the per-row
// combined scores can be formed without allocating inside the iteration
// loop.
func Assignments(dst []int, r, a []float64, n int, scratch []float64) {
	for i := 0; i < n; i++ {
		floats.AddTo(scratch, r[i*n:(i+1)*n], a[i*n:(i+1)*n])
		// floats.MaxIdx returns the first index of the maximum, which is
		// exactly the lowest-index tie-break.
		dst[i] = floats.MaxIdx(scratch)
	}
}

// stabilityTracker declares convergence after the cluster assignment has
// been identical for window consecutive iterations.
//
// Iteration 1 has no predecessor and is never counted as stable, so the
// earliest possible convergence is iteration window+1. If the assignment
// becomes fixed at iteration k, convergence fires at iteration k+window.
type stabilityTracker struct {
	window int
	prev   []int
	run    int
	seen   bool
}

func newStabilityTracker(window, n int) *stabilityTracker {
	return &stabilityTracker{window: window, prev: make([]int, n)}
}

// observe records iteration t's assignment and reports whether convergence
// fired at t.
func (st *stabilityTracker) observe(assignment []int) bool {
	if st.seen && intsEqual(assignment, st.prev) {
		st.run++
	} else {
		st.run = 0
	}
	copy(st.prev, assignment)
	st.seen = true
	return st.run >= st.window
}

func intsEqual(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
