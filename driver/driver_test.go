package driver

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/optimizer"
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

func Test_driver01(tst *testing.T) {
	chk.PrintTitle("Test driver01: Reset restores the schedule, handles and carving")

	hs := handle.New()
	h := hs.AddUser([3]float64{0, 0, 0}, 0)
	h.T = [3]float64{1, 2, 3}
	h.S = 1.3

	grid := fullCube(2)
	grid.Filled[0] = false

	d := &Driver{
		Handles: hs,
		Grid:    grid,
		Cfg:     DefaultConfig(),
		OptCfg:  optimizer.Config{Mu: 0.1, Step: 0.2},
	}
	d.Reset(optimizer.Config{Mu: 0.75, Lambda: 20, HullDepth: 1})

	utl.CheckScalar(tst, "OptCfg.Mu", 1e-12, d.OptCfg.Mu, 0.75)
	utl.CheckScalar(tst, "OptCfg.Step", 1e-12, d.OptCfg.Step, d.Cfg.StartStep)
	if h.T != [3]float64{0, 0, 0} || h.S != 1 {
		tst.Errorf("handle not reset: T=%v S=%v", h.T, h.S)
	}
	for k, f := range grid.Filled {
		if !f {
			tst.Errorf("box %d still carved after Reset", k)
		}
	}
}

func Test_driver02(tst *testing.T) {
	chk.PrintTitle("Test driver02: allObjectivesMet is false with no objectives, true once every objective is Stable")

	d := &Driver{}
	st := optimizer.State{MassO: 1, ComO: [3]float64{0, -1, 0}}
	if d.allObjectivesMet(st) {
		tst.Errorf("expected false with zero objectives")
	}

	sp := support.NewSuspensionPoint([3]float64{0, 0, 0}, [3]float64{0, -1, 0}, 0.2)
	d.Objectives = []support.Objective{sp}
	if !d.allObjectivesMet(st) {
		tst.Errorf("expected true: COM hangs straight down from the suspension point")
	}

	st2 := optimizer.State{MassO: 1, ComO: [3]float64{5, -1, 0}}
	if d.allObjectivesMet(st2) {
		tst.Errorf("expected false: COM far off to the side")
	}
}

func Test_driver03(tst *testing.T) {
	chk.PrintTitle("Test driver03: retarget recomputes every objective's Target from the combined COM")

	half := 0.5
	poly := support.NewPolygon([][3]float64{
		{-half, 0, -half}, {half, 0, -half}, {half, 0, half}, {-half, 0, half},
	}, [3]float64{0, -1, 0}, 0.5, 0.3)

	d := &Driver{Objectives: []support.Objective{poly}}
	st := optimizer.State{MassO: 1, ComO: [3]float64{0.1, 1, 0}}
	d.retarget(st)

	if poly.Target()[0] != 0.1 || poly.Target()[2] != 0 {
		tst.Errorf("Target() = %v, want the COM's horizontal projection (0.1, _, 0)", poly.Target())
	}
}

func Test_driver04(tst *testing.T) {
	chk.PrintTitle("Test driver04: Result constants are distinct")

	if ResultContinue == ResultDone || ResultDone == ResultTerminated || ResultContinue == ResultTerminated {
		tst.Errorf("Result constants must be pairwise distinct")
	}
}
