// Package affinity implements Affinity Propagation clustering.
//
// Affinity Propagation discovers the number of clusters and their
// membership simultaneously by passing "responsibility" and "availability"
// messages between data points until the cluster assignment stabilizes.
// Cluster centers are exemplars: actual data points that end up selecting
// themselves.
//
// Basic usage:
//
//	cfg := affinity.DefaultConfig()
//	result, err := affinity.Cluster(data, cfg)
//	// result.Labels[i] is the exemplar index chosen for point i
//	// result.Exemplars are the self-selected cluster centers
//	// result.Converged reports whether assignments stabilized within
//	// cfg.MaxIterations; if false the result carries the last iteration's
//	// clustering rather than nothing.
//
// For a precomputed similarity matrix (diagonal preferences already set):
//
//	result, err := affinity.ClusterSimilarity(s, n, cfg)
//
// # Convergence
//
// The message recurrence is damped by Config.Damping to prevent
// oscillation, and convergence is declared once the hard cluster
// assignment has been identical for Config.StabilityWindow consecutive
// iterations. Runs that exhaust Config.MaxIterations without stabilizing
// return a Result with Converged == false so callers can retry with a
// different damping factor or accept the last clustering as-is.
package affinity
