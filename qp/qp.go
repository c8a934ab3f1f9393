// Package qp defines the convex quadratic-program oracle BBW solves
// against, plus a default projected-gradient implementation so the
// module runs without an external solver wired in. The oracle takes L
// itself rather than the dense product LᵀL: Q = LᵀL is never
// materialised, its action is always Lᵀ(Lx) via two gosl sparse
// matrix-vector kernels, so the interface stays a pluggable Oracle and
// this default stays a genuine projected gradient, not a rewrite into
// a dense solve. Q = LᵀL is PSD by construction, so fixed-step
// projected gradient on the penalised objective converges; the step is
// bounded by a short power iteration, the same fallback gofem's own
// shp package reaches for when it needs a cheap numerical estimate
// instead of an exact eigensolve.
package qp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// ErrInfeasible names the case where the equality constraints A x = b
// cannot be satisfied by any x in [0,1]ⁿ. ProjectedGradient does not
// detect infeasibility and never returns it: an infeasible set ends in
// ErrDidNotConverge there.
var ErrInfeasible = chk.Err("qp: constraint set is infeasible")

// ErrDidNotConverge is returned when the iteration limit is hit before
// the equality-constraint residual falls below the tolerance.
var ErrDidNotConverge = chk.Err("qp: projected gradient did not converge")

// Oracle solves min ½xᵀLᵀLx s.t. Ax=b, 0≤x≤1 for n variables, L being
// the (generally rectangular, lRows×n) operator whose Gram matrix LᵀL
// is the quadratic form's PSD coefficient matrix.
type Oracle interface {
	Solve(L, A *la.Triplet, b []float64, n, lRows int) (x []float64, err error)
}

// ProjectedGradient is the default Oracle: projected gradient descent
// on the penalised objective ½‖Lx‖² + (ρ/2)‖Ax−b‖², with the box
// constraint enforced by clamping after every step.
type ProjectedGradient struct {
	MaxIters    int     // default 2000
	Tol         float64 // gradient-norm stopping tolerance, default 1e-9
	MaxResidual float64 // per-row |Ax-b| scale: Solve accepts rows within 50×MaxResidual, default 1e-6
	Penalty     float64 // ρ; <=0 means "pick automatically"
}

// NewProjectedGradient returns a ProjectedGradient with the defaults
// documented on its fields.
func NewProjectedGradient() *ProjectedGradient {
	return &ProjectedGradient{MaxIters: 2000, Tol: 1e-9, MaxResidual: 1e-6}
}

func (o *ProjectedGradient) Solve(L, A *la.Triplet, b []float64, n, lRows int) ([]float64, error) {
	m := len(b)
	x := make([]float64, n)
	if m == 0 {
		return x, nil
	}

	Lm := L.ToMatrix(nil)
	Am := A.ToMatrix(nil)

	rhoQ := powerIterationRadiusRect(Lm, n, lRows)
	rhoQ = rhoQ * rhoQ // spectral radius of LᵀL is the square of L's spectral norm
	rhoA := powerIterationRadiusRect(Am, n, m)

	rho := o.Penalty
	if rho <= 0 {
		rho = rhoQ + 4*rhoA*rhoA
		if rho < 10 {
			rho = 10
		}
	}
	step := 1.0 / (rhoQ + rho*rhoA*rhoA + 1e-9)

	for i := range x {
		x[i] = 0.5
	}

	grad := make([]float64, n)
	Lx := make([]float64, lRows)
	Ax := make([]float64, m)
	resid := make([]float64, m)

	maxIters := o.MaxIters
	if maxIters <= 0 {
		maxIters = 2000
	}
	tol := o.Tol
	if tol <= 0 {
		tol = 1e-9
	}

	for it := 0; it < maxIters; it++ {
		for i := range Lx {
			Lx[i] = 0
		}
		la.SpMatVecMulAdd(Lx, 1, Lm, x)
		for i := range grad {
			grad[i] = 0
		}
		la.SpMatTrVecMulAdd(grad, 1, Lm, Lx)

		for i := range Ax {
			Ax[i] = 0
		}
		la.SpMatVecMulAdd(Ax, 1, Am, x)
		for i := range resid {
			resid[i] = Ax[i] - b[i]
		}
		la.SpMatTrVecMulAdd(grad, rho, Am, resid)

		gnorm := 0.0
		for _, g := range grad {
			gnorm += g * g
		}
		gnorm = math.Sqrt(gnorm)

		for i := range x {
			x[i] -= step * grad[i]
			if x[i] < 0 {
				x[i] = 0
			} else if x[i] > 1 {
				x[i] = 1
			}
		}

		if gnorm < tol && it > 10 {
			break
		}
	}

	for i := range Ax {
		Ax[i] = 0
	}
	la.SpMatVecMulAdd(Ax, 1, Am, x)
	maxResidual := o.MaxResidual
	if maxResidual <= 0 {
		maxResidual = 1e-6
	}
	for i := range Ax {
		if math.Abs(Ax[i]-b[i]) > maxResidual*50 { // the penalty method is approximate by construction
			return x, ErrDidNotConverge
		}
	}
	return x, nil
}

// powerIterationRadiusRect estimates the spectral norm of an m×n
// (generally rectangular) matrix M via power iteration on MᵀM.
func powerIterationRadiusRect(M *la.CCMatrix, n, m int) float64 {
	if n == 0 || m == 0 {
		return 0
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	Mv := make([]float64, m)
	MtMv := make([]float64, n)
	lambda := 0.0
	for it := 0; it < 20; it++ {
		for i := range Mv {
			Mv[i] = 0
		}
		la.SpMatVecMulAdd(Mv, 1, M, v)
		for i := range MtMv {
			MtMv[i] = 0
		}
		la.SpMatTrVecMulAdd(MtMv, 1, M, Mv)
		norm := 0.0
		for _, x := range MtMv {
			norm += x * x
		}
		norm = math.Sqrt(norm)
		if norm < 1e-15 {
			return 0
		}
		lambda = norm
		for i := range v {
			v[i] = MtMv[i] / norm
		}
	}
	return math.Sqrt(lambda)
}
