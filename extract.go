package affinity

// ExtractClusters derives the final clustering from a hard assignment
// vector. Labels are the assignment as-is (each entry is the chosen
// exemplar's index), exemplars are the self-selected points
// {i : assignment[i] == i} in ascending order, and clusterCount is the
// number of distinct labels.
//
// For a converged assignment every label resolves to an exemplar's own
// index, so clusterCount == len(exemplars); assignments from an exhausted
// run may still be mid-oscillation and only the distinct-label count is
// meaningful.
func ExtractClusters(assignment []int) (labels []int, exemplars []int, clusterCount int) {
	labels = make([]int, len(assignment))
	copy(labels, assignment)

	exemplars = []int{}
	distinct := make(map[int]struct{}, len(assignment))
	for i, k := range assignment {
		if k == i {
			exemplars = append(exemplars, i)
		}
		distinct[k] = struct{}{}
	}
	return labels, exemplars, len(distinct)
}
