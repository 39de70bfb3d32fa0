package glrm

import (
	"math"
	"sort"
)

// projectSimplex returns the Euclidean projection of u onto the
// probability simplex using the exact algorithm of Chen and Ye
// (arXiv:1101.6081). The projection is a function of the multiset of
// values, so tie order among equal entries does not affect the result.
func projectSimplex(u []float64) []float64 {
	n := len(u)

	// Sort indices so u[idxs[0]] <= ... <= u[idxs[n-1]].
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	sort.Slice(idxs, func(a, b int) bool { return u[idxs[a]] < u[idxs[b]] })

	// Suffix sums over the sorted order:
	// csum[i] = u[idxs[i]] + u[idxs[i+1]] + ... + u[idxs[n-1]].
	csum := make([]float64, n)
	csum[n-1] = u[idxs[n-1]]
	for i := n - 2; i >= 0; i-- {
		csum[i] = csum[i+1] + u[idxs[i]]
	}

	// Scan from the top for the first threshold t_i = (csum[i]-1)/(n-i)
	// at or above the next-smaller sorted value. If none qualifies the
	// whole vector shifts by t = (sum-1)/n.
	t := (csum[0] - 1) / float64(n)
	for i := n - 1; i >= 1; i-- {
		tmp := (csum[i] - 1) / float64(n-i)
		if tmp >= u[idxs[i-1]] {
			t = tmp
			break
		}
	}

	v := make([]float64, n)
	for i := range u {
		v[i] = math.Max(u[i]-t, 0)
	}
	return v
}
