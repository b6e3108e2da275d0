package chroma

import "gonum.org/v1/gonum/floats"

// SortByDistance returns a new list ordered by ascending Euclidean
// distance to ref. The sort is stable, so colors at equal distance keep
// their input order; the input list is not modified.
func SortByDistance(l List, ref Color) List {
	dists := make([]float64, len(l))
	inds := make([]int, len(l))
	for i, c := range l {
		dists[i] = c.Distance(ref)
	}
	floats.ArgsortStable(dists, inds)

	out := make(List, len(l))
	for i, idx := range inds {
		out[i] = l[idx]
	}
	return out
}
