package affinity

import (
	"context"
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidParameter is wrapped by every configuration and input
// validation failure, so callers can test with errors.Is. Validation runs
// before any computation; no partial state is produced.
var ErrInvalidParameter = errors.New("affinity: invalid parameter")

// Config controls Affinity Propagation clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Preference selects the uniform self-similarity placed on the
	// similarity matrix diagonal: PreferenceMinimum (1) favors fewer,
	// larger clusters; PreferenceMedian (2) favors more clusters.
	// Default: PreferenceMinimum.
	Preference PreferenceMode

	// MaxIterations bounds the message-passing loop. If the assignment has
	// not stabilized by then, the run ends with Result.Converged == false.
	// Must be >= 1. Default: 100.
	MaxIterations int

	// Damping is the convex-combination weight applied to each message
	// update: new = Damping·update + (1-Damping)·old. The undamped
	// recurrence oscillates for many inputs; values in [0.5, 0.9] are
	// typical. Must be in (0, 1]. Default: 0.5.
	Damping float64

	// StabilityWindow is the number of consecutive iterations with an
	// identical cluster assignment required to declare convergence.
	// Must satisfy 1 <= StabilityWindow <= MaxIterations. Default: 10.
	StabilityWindow int

	// Workers controls the number of goroutines used for each message
	// half-step. Parallel runs are bitwise identical to sequential ones,
	// so Workers never affects the clustering. 0 means runtime.NumCPU().
	// Default: 0 (auto).
	Workers int
}

// Result contains the output of Affinity Propagation clustering.
type Result struct {
	// Labels assigns each point the index of its chosen exemplar.
	Labels []int

	// Exemplars lists the self-selected cluster centers in ascending
	// order. When Converged is true, every label is one of these indices.
	Exemplars []int

	// ClusterCount is the number of distinct labels. Equals
	// len(Exemplars) for converged runs.
	ClusterCount int

	// Converged reports whether the assignment was stable for
	// StabilityWindow consecutive iterations. When false, the run
	// exhausted MaxIterations and the fields above describe the final
	// iteration's clustering — a legitimate outcome the caller may accept
	// or retry with different Damping or StabilityWindow.
	Converged bool

	// Iterations is the iteration at which convergence fired, or
	// MaxIterations when Converged is false.
	Iterations int
}

// ExemplarMask reports, per point, whether it is an exemplar. Intended for
// 2-D visualization collaborators that take (points, labels, exemplar
// flags); the library itself performs no rendering.
func (r *Result) ExemplarMask() []bool {
	mask := make([]bool, len(r.Labels))
	for _, e := range r.Exemplars {
		mask[e] = true
	}
	return mask
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Preference:      PreferenceMinimum,
		MaxIterations:   100,
		Damping:         0.5,
		StabilityWindow: 10,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.Preference != PreferenceMinimum && cfg.Preference != PreferenceMedian {
		return fmt.Errorf("%w: Preference must be 1 (minimum) or 2 (median), got %d", ErrInvalidParameter, cfg.Preference)
	}
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("%w: MaxIterations must be >= 1, got %d", ErrInvalidParameter, cfg.MaxIterations)
	}
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		return fmt.Errorf("%w: Damping must be in (0, 1], got %f", ErrInvalidParameter, cfg.Damping)
	}
	if cfg.StabilityWindow < 1 {
		return fmt.Errorf("%w: StabilityWindow must be >= 1, got %d", ErrInvalidParameter, cfg.StabilityWindow)
	}
	if cfg.StabilityWindow > cfg.MaxIterations {
		return fmt.Errorf("%w: StabilityWindow (%d) must not exceed MaxIterations (%d)", ErrInvalidParameter, cfg.StabilityWindow, cfg.MaxIterations)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// Cluster performs Affinity Propagation clustering on the given data.
// Each element is a point (float64 slice); all points must have the same
// dimensionality. Returns an error if the config or input is invalid.
// A run that fails to stabilize is not an error: it returns the last
// iteration's clustering with Result.Converged == false.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	return ClusterContext(context.Background(), data, cfg)
}

// ClusterContext is Cluster with cancellation. ctx is checked between
// iterations, so cancellation takes effect within one O(n³) iteration.
func ClusterContext(ctx context.Context, data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	n := len(data)
	if n <= 1 {
		return trivialResult(n), nil
	}

	s, err := BuildSimilarity(data, cfg.Preference)
	if err != nil {
		return nil, err
	}
	return passMessages(ctx, s, n, cfg)
}

// ClusterSimilarity performs Affinity Propagation on a precomputed
// similarity matrix. s is a flat []float64 of length n*n in row-major
// order with the diagonal preferences already set; the Config.Preference
// field is ignored since the matrix is already built.
func ClusterSimilarity(s []float64, n int, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if cfg.Preference == 0 {
		cfg.Preference = PreferenceMinimum // unused for precomputed matrices
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if n < 0 || len(s) != n*n {
		return nil, fmt.Errorf("%w: similarity matrix length %d does not match n*n = %d (n=%d)", ErrInvalidParameter, len(s), n*n, n)
	}

	if n <= 1 {
		return trivialResult(n), nil
	}
	return passMessages(context.Background(), s, n, cfg)
}

// trivialResult covers n == 0 and n == 1, where no message passing is
// needed: a single point is its own exemplar.
func trivialResult(n int) *Result {
	r := &Result{
		Labels:    make([]int, n),
		Exemplars: []int{},
		Converged: true,
	}
	if n == 1 {
		r.Exemplars = []int{0}
		r.ClusterCount = 1
	}
	return r
}

// passMessages runs the damped responsibility/availability recurrence until
// the assignment is stable for cfg.StabilityWindow iterations or the
// iteration budget runs out.
//
// Only two slots per matrix are kept (previous and current), swapped each
// iteration, so memory stays O(n²) regardless of MaxIterations. Within an
// iteration the availability half-step must complete before the
// responsibility half-step begins: R_t depends on A_t, and A_t on R_{t-1}.
func passMessages(ctx context.Context, s []float64, n int, cfg Config) (*Result, error) {
	r := InitResponsibilities(s, n)
	a := make([]float64, n*n)
	rNext := make([]float64, n*n)
	aNext := make([]float64, n*n)

	assignment := make([]int, n)
	scratch := make([]float64, n)
	tracker := newStabilityTracker(cfg.StabilityWindow, n)

	converged := false
	iterations := cfg.MaxIterations
	for t := 1; t <= cfg.MaxIterations; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		UpdateAvailabilitiesParallel(aNext, r, a, n, cfg.Damping, cfg.Workers)
		UpdateResponsibilitiesParallel(rNext, aNext, s, r, n, cfg.Damping, cfg.Workers)
		r, rNext = rNext, r
		a, aNext = aNext, a

		Assignments(assignment, r, a, n, scratch)
		if tracker.observe(assignment) {
			converged = true
			iterations = t
			break
		}
	}

	labels, exemplars, clusterCount := ExtractClusters(assignment)
	return &Result{
		Labels:       labels,
		Exemplars:    exemplars,
		ClusterCount: clusterCount,
		Converged:    converged,
		Iterations:   iterations,
	}, nil
}
