package optimizer

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/support"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

func fullCube(R int) *voxelgrid.Grid {
	g := voxelgrid.New(R)
	occ := make(voxelgrid.Occupancy, R*R*R)
	for i := range occ {
		occ[i] = 1
	}
	g.InitVoxels(occ, nil)
	g.InitStructure()
	return g
}

func Test_carve01(tst *testing.T) {
	chk.PrintTitle("Test carve01: plane carving never touches a box at or below hullDepth")

	g := fullCube(3)
	outerMass, outerCOM := 8.0, [3]float64{0.5, 0.5, 0.5}
	target := support.NewSuspensionPoint([3]float64{0.7, 0.5, 0.5}, [3]float64{0, -1, 0}, 0.2)

	BalanceByPlaneCarving(g, outerMass, outerCOM, target, 0)

	for k := 0; k < g.NumBoxes; k++ {
		if g.Depth[k] <= 0 && !g.Filled[k] {
			tst.Errorf("box %d at depth %d was carved despite hullDepth=0", k, g.Depth[k])
		}
	}
}

func Test_carve02(tst *testing.T) {
	chk.PrintTitle("Test carve02: an already-centred COM carves nothing")

	g := fullCube(3)
	outerMass, outerCOM := 8.0, [3]float64{0.5, 0.5, 0.5}
	target := support.NewSuspensionPoint(outerCOM, [3]float64{0, -1, 0}, 0.2)

	BalanceByPlaneCarving(g, outerMass, outerCOM, target, 0)

	for k := 0; k < g.NumBoxes; k++ {
		if !g.Filled[k] {
			tst.Errorf("box %d was carved even though the COM is already centred on the target", k)
		}
	}
}

func Test_carve03(tst *testing.T) {
	chk.PrintTitle("Test carve03: multi-objective carving respects hullDepth and both gravities")

	g := fullCube(3)
	outerMass, outerCOM := 8.0, [3]float64{0.5, 0.5, 0.5}
	t0 := support.NewSuspensionPoint([3]float64{0.7, 0.5, 0.5}, [3]float64{0, -1, 0}, 0.2)
	t1 := support.NewSuspensionPoint([3]float64{0.5, 0.5, 0.7}, [3]float64{0, 0, -1}, 0.2)

	BalanceByPlaneCarvingMulti(g, outerMass, outerCOM, []support.Objective{t0, t1}, 0)

	for k := 0; k < g.NumBoxes; k++ {
		if g.Depth[k] <= 0 && !g.Filled[k] {
			tst.Errorf("box %d at depth %d was carved despite hullDepth=0", k, g.Depth[k])
		}
	}
}

func Test_carve04(tst *testing.T) {
	chk.PrintTitle("Test carve04: BalanceByPlaneCarvingMulti is a no-op for other than 2 targets")

	g := fullCube(3)
	t0 := support.NewSuspensionPoint([3]float64{0.7, 0.5, 0.5}, [3]float64{0, -1, 0}, 0.2)

	BalanceByPlaneCarvingMulti(g, 8.0, [3]float64{0.5, 0.5, 0.5}, []support.Objective{t0}, 0)
	for k := 0; k < g.NumBoxes; k++ {
		if !g.Filled[k] {
			tst.Errorf("box %d was carved despite an invalid (len != 2) target list", k)
		}
	}
}
