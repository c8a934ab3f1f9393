package qp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Test_qp01 solves a trivial 2-variable program with a single equality
// row forcing x0+x1=1 and an L that penalises imbalance between them;
// the minimiser should land at x0=x1=0.5.
func Test_qp01(tst *testing.T) {
	chk.PrintTitle("Test qp01: balanced two-variable program")

	var L la.Triplet
	L.Init(1, 2, 2)
	L.Put(0, 0, 1)
	L.Put(0, 1, -1)

	var A la.Triplet
	A.Init(1, 2, 2)
	A.Put(0, 0, 1)
	A.Put(0, 1, 1)
	b := []float64{1}

	o := NewProjectedGradient()
	x, err := o.Solve(&L, &A, b, 2, 1)
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}
	utl.CheckScalar(tst, "x0", 1e-3, x[0], 0.5)
	utl.CheckScalar(tst, "x1", 1e-3, x[1], 0.5)
}

// Test_qp02 checks that the box constraint holds and the equality
// residual is small for a 3-variable partition-of-unity row, even when
// the L operator favours an infeasible corner.
func Test_qp02(tst *testing.T) {
	chk.PrintTitle("Test qp02: partition of unity under box constraints")

	var L la.Triplet
	L.Init(3, 3, 3)
	L.Put(0, 0, 3)
	L.Put(1, 1, 1)
	L.Put(2, 2, 1)

	var A la.Triplet
	A.Init(1, 3, 3)
	A.Put(0, 0, 1)
	A.Put(0, 1, 1)
	A.Put(0, 2, 1)
	b := []float64{1}

	o := NewProjectedGradient()
	x, err := o.Solve(&L, &A, b, 3, 3)
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}
	sum := x[0] + x[1] + x[2]
	utl.CheckScalar(tst, "sum(x)", 1e-3, sum, 1.0)
	for i, v := range x {
		if v < -1e-9 || v > 1+1e-9 {
			tst.Errorf("x[%d]=%v out of [0,1]", i, v)
		}
	}
	// L favours small x0 (heavier penalty), so it should end up smaller
	// than the unweighted x1,x2.
	if x[0] >= x[1] || x[0] >= x[2] {
		tst.Errorf("expected x0 < x1,x2 under the heavier penalty, got %v", x)
	}
}

func Test_qp03(tst *testing.T) {
	chk.PrintTitle("Test qp03: empty constraint set returns the zero vector")

	var L la.Triplet
	L.Init(1, 2, 1)
	L.Put(0, 0, 1)
	var A la.Triplet
	A.Init(0, 2, 0)

	o := NewProjectedGradient()
	x, err := o.Solve(&L, &A, nil, 2, 1)
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}
	for i, v := range x {
		if math.Abs(v) > 1e-15 {
			tst.Errorf("x[%d]=%v, want 0", i, v)
		}
	}
}
