package innermesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

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

func Test_innermesh01(tst *testing.T) {
	chk.PrintTitle("Test innermesh01: an all-filled grid's inner surface is its 24 boundary faces")

	g := fullCube(2)
	im := Compute(g)
	if len(im.Quads) != 24 {
		tst.Errorf("expected 24 inner quads (the grid's boundary faces) for a solid grid, got %d", len(im.Quads))
	}
}

func Test_innermesh02(tst *testing.T) {
	chk.PrintTitle("Test innermesh02: carving a corner box trades its 3 boundary faces for its 3 filled neighbours' faces")

	g := fullCube(2)
	g.Filled[0] = false // corner box (0,0,0), not itself contributing any quad

	im := Compute(g)
	if len(im.Quads) != 24 {
		tst.Errorf("expected 24 quads (21 boundary + 3 exposed), got %d", len(im.Quads))
	}
}

func Test_innermesh03(tst *testing.T) {
	chk.PrintTitle("Test innermesh03: MassGradients returns one row per grid node, even for untouched nodes")

	g := fullCube(2)
	g.Filled[0] = false
	im := Compute(g)

	dm, dc := im.MassGradients(g)
	if len(dm) != g.NumNodes || len(dc) != g.NumNodes {
		tst.Errorf("len(dm)=%d len(dc)=%d, want %d", len(dm), len(dc), g.NumNodes)
	}
}

func Test_innermesh04(tst *testing.T) {
	chk.PrintTitle("Test innermesh04: MassAndCenterOfMass of an all-filled grid is the unit cube's")

	g := fullCube(2)
	im := Compute(g)
	mass, com := im.MassAndCenterOfMass(g)
	utl.CheckScalar(tst, "mass", 1e-12, mass, 1)
	utl.CheckScalar(tst, "com.x", 1e-12, com[0], 0.5)
	utl.CheckScalar(tst, "com.y", 1e-12, com[1], 0.5)
	utl.CheckScalar(tst, "com.z", 1e-12, com[2], 0.5)
}
