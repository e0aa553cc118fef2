// Package quantcorr measures the agreement between quantification tools by
// computing, for every sample and every pair of tools, the Spearman rank
// correlation of abundance over the features the tools share.
package quantcorr

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Spearman returns the Spearman rank correlation of the paired observations
// in x and y. Tied values receive their mid-rank (the mean of the positions
// the run occupies), and the coefficient is the Pearson correlation of the
// two rank vectors. Identical inputs yield exactly 1.
func Spearman(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("input vectors differ in length: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("need at least 2 paired observations, got %d", len(x))
	}

	rho := stat.Correlation(ranks(x), ranks(y), nil)
	if math.IsNaN(rho) {
		return 0, fmt.Errorf("an input vector is constant, so its rank variance is zero and the coefficient is undefined")
	}

	return rho, nil
}

// ranks assigns 1-based ranks to v, averaging the rank over runs of equal
// values.
func ranks(v []float64) []float64 {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })

	out := make([]float64, len(v))
	for i := 0; i < len(idx); {
		j := i + 1
		for j < len(idx) && v[idx[j]] == v[idx[i]] {
			j++
		}

		// Sorted positions i..j-1 hold equal values; each gets the
		// mean of ranks i+1..j.
		mid := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			out[idx[k]] = mid
		}

		i = j
	}

	return out
}
