package affinity

import (
	"math"
	"testing"
)

// lineS is the similarity matrix for 1-D points {0, 1, 5} with minimum
// preference (-25). All expected message values in this file were computed
// by hand from the update rules.
func lineS() []float64 {
	return []float64{
		-25, -1, -25,
		-1, -25, -16,
		-25, -16, -25,
	}
}

func TestInitResponsibilities(t *testing.T) {
	r := InitResponsibilities(lineS(), 3)

	// R0[i,k] = S[i,k] - rowmax(S[i,:]); row maxes are -1, -1, -16.
	want := []float64{
		-24, 0, -24,
		0, -24, -15,
		-9, 0, -9,
	}
	compareMatrix(t, "R0", r, want, 0)
}

func TestUpdateAvailabilities_Undamped(t *testing.T) {
	n := 3
	r0 := InitResponsibilities(lineS(), n)
	a0 := make([]float64, n*n)
	a1 := make([]float64, n*n)

	// Damping 1 returns the raw update terms.
	UpdateAvailabilities(a1, r0, a0, n, 1.0)

	want := []float64{
		0, -24, -9,
		-24, 0, -9,
		-24, -24, 0,
	}
	compareMatrix(t, "A1 (undamped)", a1, want, 0)
}

func TestMessageUpdates_DampedFullIteration(t *testing.T) {
	n := 3
	s := lineS()
	r0 := InitResponsibilities(s, n)
	a0 := make([]float64, n*n)
	a1 := make([]float64, n*n)
	r1 := make([]float64, n*n)

	UpdateAvailabilities(a1, r0, a0, n, 0.5)
	UpdateResponsibilities(r1, a1, s, r0, n, 0.5)

	wantA1 := []float64{
		0, -12, -4.5,
		-12, 0, -4.5,
		-12, -12, 0,
	}
	compareMatrix(t, "A1", a1, wantA1, 1e-12)

	wantR1 := []float64{
		-18, 12, -18,
		9.75, -18, -9,
		-4.5, 4.5, -3,
	}
	compareMatrix(t, "R1", r1, wantR1, 1e-12)
}

func TestUpdateAvailabilities_SelfUnclipped(t *testing.T) {
	// Positive responsibilities toward column 0 must accumulate in the
	// self-availability a(0,0) without being clipped at zero.
	n := 3
	r := []float64{
		0, -1, -1,
		2, -1, -1,
		3, -1, -1,
	}
	aPrev := make([]float64, n*n)
	a := make([]float64, n*n)

	UpdateAvailabilities(a, r, aPrev, n, 1.0)

	if a[0] != 5 {
		t.Errorf("a(0,0) = %v, want 5 (sum of positive support)", a[0])
	}
	// Off-diagonal availabilities are clipped at zero from above.
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			if i != k && a[i*n+k] > 0 {
				t.Errorf("a(%d,%d) = %v, want <= 0", i, k, a[i*n+k])
			}
		}
	}
}

func TestUpdateResponsibilities_ExcludesSelfCandidate(t *testing.T) {
	// With a dominant combined score at k'=1, responsibilities toward
	// every other k subtract that maximum; responsibility toward k=1
	// itself must subtract the runner-up instead.
	n := 2
	s := []float64{-5, -1, -1, -5}
	a := make([]float64, n*n)
	rPrev := make([]float64, n*n)
	r := make([]float64, n*n)

	UpdateResponsibilities(r, a, s, rPrev, n, 1.0)

	// Row 0: scores are (-5, -1). r(0,0) = -5 - (-1) = -4; r(0,1) = -1 - (-5) = 4.
	want := []float64{-4, 4, 4, -4}
	compareMatrix(t, "R", r, want, 0)
}

func TestMessageUpdates_DampingConvexCombination(t *testing.T) {
	// With damping λ the result must be exactly λ·update + (1-λ)·previous.
	n := 3
	s := lineS()
	r0 := InitResponsibilities(s, n)
	a0 := make([]float64, n*n)

	raw := make([]float64, n*n)
	UpdateAvailabilities(raw, r0, a0, n, 1.0)

	lambda := 0.7
	damped := make([]float64, n*n)
	UpdateAvailabilities(damped, r0, a0, n, lambda)

	for i := range damped {
		want := lambda*raw[i] + (1-lambda)*a0[i]
		if math.Abs(damped[i]-want) > 1e-12 {
			t.Errorf("damped[%d] = %v, want %v", i, damped[i], want)
		}
	}
}

// compareMatrix reports entries of got that differ from want by more than tol.
func compareMatrix(t *testing.T, name string, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s length: got %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}
