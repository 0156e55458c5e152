// Package scarcity selects the top-N time steps of the load and residual
// load vectors and labels each load scarcity step as confirmed or not by
// the residual ranking.
package scarcity

import (
	"sort"

	"github.com/enerscan/resload/internal/domain/duration"
	"github.com/enerscan/resload/internal/errs"
)

// Result is the classification outcome for one (loadFlat, residualFlat, n)
// request. LoadRank and ResidualRank hold flat indices; Confirmed is
// parallel to LoadRank.
type Result struct {
	N            int
	LoadRank     []int
	ResidualRank []int
	Confirmed    []bool
}

// ConfirmedCount returns how many load scarcity steps the residual ranking
// confirms.
func (r *Result) ConfirmedCount() int {
	count := 0
	for _, ok := range r.Confirmed {
		if ok {
			count++
		}
	}
	return count
}

// Classify ranks the n largest load and residual values independently and
// flags each load top-n index whose residual value belongs to the residual
// top-n value set. Membership is tested by value against the n-th largest
// residual value, not by index identity, so an index whose residual value
// ties the boundary counts as confirmed even when the residual index
// ranking picked a different index for that value.
//
// Ties inside either ranking are broken by ascending flat index, which
// keeps the selection deterministic for degenerate all-equal input.
func Classify(loadFlat, residualFlat []float64, n int) (*Result, error) {
	if len(loadFlat) != len(residualFlat) {
		return nil, &errs.InvalidParameterError{
			Parameter: "residualFlat",
			Reason:    "length differs from loadFlat",
		}
	}
	if n < 1 || n > len(loadFlat) {
		return nil, &errs.InvalidParameterError{
			Parameter: "n",
			Reason:    "must be in [1, series length]",
		}
	}

	loadRank := topIndices(loadFlat, n)
	residualRank := topIndices(residualFlat, n)

	threshold := duration.Threshold(residualFlat, n)
	confirmed := make([]bool, n)
	for i, idx := range loadRank {
		confirmed[i] = residualFlat[idx] >= threshold
	}

	return &Result{
		N:            n,
		LoadRank:     loadRank,
		ResidualRank: residualRank,
		Confirmed:    confirmed,
	}, nil
}

// topIndices returns the indices of the n largest values, ordered by value
// descending with ties broken by ascending index.
func topIndices(values []float64, n int) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if values[idx[a]] != values[idx[b]] {
			return values[idx[a]] > values[idx[b]]
		}
		return idx[a] < idx[b]
	})
	return idx[:n]
}
