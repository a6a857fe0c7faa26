// SPDX-License-Identifier: MIT

// Package eigen computes the most positive eigenpair of a real symmetric
// dense matrix, the input the Bisector needs from the generalized
// modularity matrix B⁽ᵍ⁾.
//
// Two backends are offered, selected by Method:
//
//	Power   — deterministic power iteration with a positive-shift fallback
//	          (this package's default, and the only backend spec.md §4.2
//	          mandates for production use).
//	FullEVD — delegates to matrix/ops.Eigen (Jacobi rotations) and picks the
//	          algebraically largest eigenvalue; used for validation on small
//	          communities, where O(n³) per sweep is affordable.
//
// Contract: LeadingEigenpair returns ‖v‖=1 and, for Power, the TRUE
// (shift-corrected) eigenvalue — never the shifted one. Callers compare
// the returned λ against 0 directly.
package eigen

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/newman/matrix"
	"github.com/katalvlaran/newman/matrix/ops"
)

// Method selects the eigensolver backend.
type Method int

const (
	// Power is deterministic power iteration (spec.md §4.2 default).
	Power Method = iota
	// FullEVD computes every eigenpair via Jacobi rotations and selects the
	// algebraically largest; for validation on small N.
	FullEVD
)

const (
	// MaxIterations is the default power-iteration cap (spec.md §4.2).
	MaxIterations = 50000
	// Eps is the "β too small to trust" threshold.
	Eps = 1e-5
	// Dta is the convergence threshold on max|Δuᵢ|.
	Dta = 1e-5
)

// ErrEmptySystem indicates a zero-dimension matrix was passed in.
var ErrEmptySystem = errors.New("eigen: empty system")

// ErrConvergence indicates power iteration exhausted MaxIterations without
// converging. Not fatal: callers are expected to treat the community as
// indivisible and log a ConvergenceWarning (spec.md §7).
var ErrConvergence = errors.New("eigen: power iteration did not converge")

// Result is the leading/most-positive eigenpair of a symmetric matrix.
type Result struct {
	Lambda float64
	Vector []float64
	// Passes records how many power-iteration passes were used (0 for FullEVD).
	Passes int
}

// LeadingEigenpair returns the most positive eigenpair of the symmetric
// matrix A, using the requested backend. ctx is checked between
// power-iteration passes (spec.md §5); FullEVD does not check ctx since a
// single Jacobi sweep set is bounded and cheap for the small N it is used on.
func LeadingEigenpair(ctx context.Context, A matrix.Matrix, method Method) (Result, error) {
	n := A.Rows()
	if n == 0 || A.Cols() == 0 {
		return Result{}, ErrEmptySystem
	}

	switch method {
	case FullEVD:
		return fullEVD(A)
	default:
		return power(ctx, A)
	}
}

func fullEVD(A matrix.Matrix) (Result, error) {
	eigs, Q, err := ops.Eigen(A, 1e-9, 1000)
	if err != nil {
		return Result{}, fmt.Errorf("eigen: FullEVD: %w", err)
	}
	best := 0
	for i := 1; i < len(eigs); i++ {
		if eigs[i] > eigs[best] {
			best = i
		}
	}
	n := A.Rows()
	v := make([]float64, n)
	var norm float64
	for i := 0; i < n; i++ {
		vi, _ := Q.At(i, best)
		v[i] = vi
		norm += vi * vi
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range v {
			v[i] /= norm
		}
	}
	return Result{Lambda: eigs[best], Vector: v}, nil
}

// power runs the algorithm of spec.md §4.2, including the positive-shift
// fallback: if the eigenvalue found by raw iteration is negative, A is
// shifted by |β|·I and re-solved, then the shift is subtracted back out so
// the caller always sees the TRUE eigenvalue of A.
func power(ctx context.Context, A matrix.Matrix) (Result, error) {
	res, err := powerRaw(ctx, A)
	if err != nil {
		return Result{}, err
	}
	if res.Lambda >= 0 {
		return res, nil
	}

	// Positive-shift fallback: A' = A + |λ|·I shares eigenvectors with A;
	// its eigenvalues are λᵢ + |λ|, so λ = λ' - |λ|.
	shift := math.Abs(res.Lambda)
	shifted := shiftDiagonal(A, shift)
	res2, err := powerRaw(ctx, shifted)
	if err != nil {
		return Result{}, err
	}
	res2.Lambda -= shift
	return res2, nil
}

func shiftDiagonal(A matrix.Matrix, shift float64) matrix.Matrix {
	n := A.Rows()
	out, _ := matrix.NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, _ := A.At(i, j)
			if i == j {
				v += shift
			}
			_ = out.Set(i, j, v)
		}
	}
	return out
}

// powerRaw implements the deterministic power-iteration loop of spec.md
// §4.2 with no shift handling: seed uᵢ⁽⁰⁾ = 1/√(i+1), iterate y = A·u,
// β = signed largest-magnitude element of y (preserves sign, unlike ‖y‖₂),
// normalize y by β, check convergence on max|Δu|.
func powerRaw(ctx context.Context, A matrix.Matrix) (Result, error) {
	n := A.Rows()
	u := make([]float64, n)
	for i := 0; i < n; i++ {
		u[i] = 1 / math.Sqrt(float64(i+1))
	}

	var beta float64
	y := make([]float64, n)
	var phi float64
	t := 0
	for ; t < MaxIterations; t++ {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		yv, err := matrix.MatVec(A, u)
		if err != nil {
			return Result{}, err
		}
		y = yv

		beta = signedLargest(y)
		if math.Abs(beta) < Eps {
			return Result{Lambda: 0, Vector: unitSeed(n), Passes: t + 1}, nil
		}
		for i := range y {
			y[i] /= beta
		}

		phi = 0
		for i := range y {
			if d := math.Abs(y[i] - u[i]); d > phi {
				phi = d
			}
		}
		if phi < Dta {
			return Result{Lambda: beta, Vector: normalize(y), Passes: t + 1}, nil
		}
		copy(u, y)
	}

	if phi > 1 {
		// Non-convergence heuristic (spec.md §4.2 step 3): unconditionally
		// sign-flip and return (-β, y), regardless of β's sign. power()'s
		// "retry with a positive shift when Lambda < 0" check then decides
		// on its own whether the flipped value needs a second pass: a
		// positive raw β flips negative here and gets retried on a shifted
		// matrix; a negative raw β flips positive and is accepted directly.
		return Result{Lambda: -beta, Vector: normalize(y), Passes: MaxIterations}, nil
	}
	return Result{}, ErrConvergence
}

func signedLargest(y []float64) float64 {
	best := y[0]
	bestAbs := math.Abs(best)
	for _, v := range y[1:] {
		if a := math.Abs(v); a > bestAbs {
			best, bestAbs = v, a
		}
	}
	return best
}

func normalize(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	out := make([]float64, len(v))
	if norm == 0 {
		return out
	}
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func unitSeed(n int) []float64 {
	v := make([]float64, n)
	if n > 0 {
		v[0] = 1
	}
	return v
}
