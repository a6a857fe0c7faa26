// SPDX-License-Identifier: MIT

package community

import (
	"context"
	"fmt"

	"fortio.org/log"

	"github.com/katalvlaran/newman/eigen"
	"github.com/katalvlaran/newman/matrix"
)

// BisectResult is the outcome of attempting to split a community in two.
type BisectResult struct {
	// S is the ±1 assignment of each member (in membership order) to one of
	// the two sides. Nil when Divisible is false.
	S []float64
	// DeltaQ is the modularity gain of the split. Meaningless when
	// Divisible is false.
	DeltaQ float64
	// Divisible reports whether the community should be split.
	Divisible bool
	// Passes is the number of power-iteration passes the eigensolver used
	// for a divisible result; it is 0 whenever Divisible is false.
	Passes int
}

// Bisect implements spec.md §4.4: it decides whether the community named by
// membership (indices into the graph mm was built from) should be split in
// two, and if so returns the bisection vector and its ΔQ.
//
// Eigensolver non-convergence is treated as indivisible (conservative) per
// spec.md §4.4 "Failure modes".
func Bisect(ctx context.Context, mm *matrix.ModularityMatrix, membership []int, opts Options) (BisectResult, error) {
	n := len(membership)
	if n <= 1 {
		return BisectResult{}, nil
	}

	Bg, err := mm.Restrict(membership)
	if err != nil {
		return BisectResult{}, fmt.Errorf("community: Bisect: %w", err)
	}

	res, err := eigen.LeadingEigenpair(ctx, Bg, opts.EigenMethod)
	if err != nil {
		if err == eigen.ErrConvergence {
			msg := fmt.Sprintf("community: eigensolver did not converge for a community of size %d, treating as indivisible", n)
			log.Warnf("%s", msg)
			if opts.OnWarning != nil {
				opts.OnWarning(msg)
			}
			return BisectResult{}, nil
		}
		return BisectResult{}, fmt.Errorf("community: Bisect: %w", err)
	}

	// Open Question (spec.md §9): the comparison "λ ≤ 0 ⇒ indivisible" is
	// against the true, shift-corrected eigenvalue eigen.LeadingEigenpair
	// always returns.
	if res.Lambda <= 0 {
		return BisectResult{}, nil
	}

	s := make([]float64, n)
	positive, negative := false, false
	for i, vi := range res.Vector {
		if vi >= 0 {
			s[i] = 1
			positive = true
		} else {
			s[i] = -1
			negative = true
		}
	}
	if !positive || !negative {
		return BisectResult{}, nil
	}

	deltaQ, err := mm.DeltaQ(Bg, s)
	if err != nil {
		return BisectResult{}, fmt.Errorf("community: Bisect: %w", err)
	}
	if deltaQ <= 0 {
		return BisectResult{}, nil
	}

	if opts.UseMVM {
		s, deltaQ = refineMVM(ctx, Bg, s, deltaQ, mm.M())
	}

	return BisectResult{S: s, DeltaQ: deltaQ, Divisible: true, Passes: res.Passes}, nil
}

// refineMVM runs the local Moving-Vertex heuristic of spec.md §4.4 step 6:
// repeatedly flip the single vertex with the largest positive δ until no
// flip improves ΔQ. y = B⁽ᵍ⁾·s is maintained incrementally so each pass
// costs O(n²) total rather than O(n³). ctx is checked before every pass; on
// cancellation the refinement stops and the split found so far is returned.
func refineMVM(ctx context.Context, Bg matrix.Matrix, s []float64, deltaQ, m float64) ([]float64, float64) {
	n := len(s)
	y, err := matrix.MatVec(Bg, s)
	if err != nil {
		return s, deltaQ
	}

	for {
		if ctx != nil && ctx.Err() != nil {
			break
		}
		bestIdx := -1
		bestDelta := 0.0
		for i := 0; i < n; i++ {
			bii, _ := Bg.At(i, i)
			delta := -(s[i]/m)*y[i] + bii/m
			if delta > bestDelta {
				bestDelta = delta
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}

		k := bestIdx
		sk := s[k]
		for i := 0; i < n; i++ {
			bik, _ := Bg.At(i, k)
			y[i] -= 2 * sk * bik
		}
		s[k] = -sk
		deltaQ += bestDelta
	}

	return s, deltaQ
}
