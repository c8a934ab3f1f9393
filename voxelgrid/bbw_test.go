package voxelgrid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
)

func Test_bbw01(tst *testing.T) {
	chk.PrintTitle("Test bbw01: a single handle gets full, constant weight everywhere")

	g := fullCube(2)
	hs := handle.New()
	hs.AddSupport([3]float64{0, 0, 0}, []int{0}, false)

	if err := g.ComputeBBW(hs, nil); err != nil {
		tst.Fatalf("ComputeBBW failed: %v", err)
	}
	for _, d := range g.Deform {
		utl.CheckScalar(tst, "w[0]", 1e-3, d.W[0], 1)
	}
}

func Test_bbw02(tst *testing.T) {
	chk.PrintTitle("Test bbw02: every node's weight vector sums to one")

	g := fullCube(3)
	hs := handle.New()
	hs.AddSupport([3]float64{0, 0, 0}, []int{0}, false)
	hs.AddUser([3]float64{1, 1, 1}, g.NumNodes-1)

	if err := g.ComputeBBW(hs, nil); err != nil {
		tst.Fatalf("ComputeBBW failed: %v", err)
	}
	for i, d := range g.Deform {
		sum := 0.0
		for _, w := range d.W {
			sum += w
		}
		utl.CheckScalar(tst, "sum(w)", 1e-6, sum, 1)
		for _, w := range d.W {
			if w < -1e-9 || w > 1+1e-9 {
				tst.Errorf("node %d has an out-of-range weight %v", i, w)
			}
		}
	}
}

func Test_bbw03(tst *testing.T) {
	chk.PrintTitle("Test bbw03: the constrained node of each handle gets that handle's full weight")

	g := fullCube(3)
	hs := handle.New()
	node0, node1 := 0, g.NumNodes-1
	hs.AddSupport([3]float64{0, 0, 0}, []int{node0}, false)
	hs.AddUser([3]float64{1, 1, 1}, node1)

	if err := g.ComputeBBW(hs, nil); err != nil {
		tst.Fatalf("ComputeBBW failed: %v", err)
	}
	utl.CheckScalar(tst, "w0 at its own constrained node", 1e-3, g.Deform[node0].W[0], 1)
	utl.CheckScalar(tst, "w1 at its own constrained node", 1e-3, g.Deform[node1].W[1], 1)
}

func Test_bbw04(tst *testing.T) {
	chk.PrintTitle("Test bbw04: graphLaplacian rows sum to zero, so it annihilates the constant vector")

	g := fullCube(2)
	L := g.graphLaplacian().ToMatrix(nil)
	ones := make([]float64, g.NumNodes)
	for i := range ones {
		ones[i] = 1
	}
	y := make([]float64, g.NumNodes)
	la.SpMatVecMulAdd(y, 1, L, ones)
	for _, v := range y {
		utl.CheckScalar(tst, "L*1", 1e-9, v, 0)
	}
}
