// Package innermesh implements the derived inner cavity surface:
// a quad for every exposed face of the filled-box set,
// with mass/COM and their gradients wrt node positions computed the
// same way mesh.Mesh integrates the outer surface. The traversal
// itself follows VoxelGrid's own BoxBoxes adjacency idiom.
package innermesh

import (
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/massint"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

// InnerMesh is the derived cavity surface: one quad per exposed face of
// the filled-box set, 4 node indices in winding order such that the
// outward normal (from filled into carved/empty space) follows the
// right-hand rule.
type InnerMesh struct {
	Quads [][4]int
}

// faceQuadNodes gives, for direction d (matching voxelgrid's
// ±x,±y,±z order), the box-local corner indices forming that face's
// quad with outward winding — the same table voxelgrid.boxFaceCorners
// uses for box_com, duplicated here. Compute emits every quad from the
// filled box's side, so outward from that box is outward from the
// filled region.
var faceQuadNodes = [6][4]int{
	{0, 1, 3, 2}, // -x
	{4, 6, 7, 5}, // +x
	{0, 4, 5, 1}, // -y
	{2, 3, 7, 6}, // +y
	{0, 2, 6, 4}, // -z
	{1, 5, 7, 3}, // +z
}

// opposite maps a face direction to its opposite (±x,±y,±z pairing).
// Compute does not use it: no quad is ever wound from the carved/empty
// side.
var opposite = [6]int{1, 0, 3, 2, 5, 4}

// Compute rebuilds the quad list from the grid's current fill status:
// a quad exists for every (filled box, direction) whose neighbour
// across that direction is absent or carved.
func Compute(grid *voxelgrid.Grid) *InnerMesh {
	im := &InnerMesh{}
	for k := 0; k < grid.NumBoxes; k++ {
		if !grid.Filled[k] {
			continue
		}
		for d := 0; d < 6; d++ {
			nb := grid.BoxBoxes[k][d]
			if nb >= 0 && grid.Filled[nb] {
				continue
			}
			corners := faceQuadNodes[d]
			var q [4]int
			for i, c := range corners {
				q[i] = grid.BoxNodes[k][c]
			}
			im.Quads = append(im.Quads, q)
		}
	}
	return im
}

// MassAndCenterOfMass integrates the inner surface's mass/COM (no
// gradients) over the grid's current node poses.
func (im *InnerMesh) MassAndCenterOfMass(grid *voxelgrid.Grid) (mass float64, com [3]float64) {
	var acc massint.Accum
	for _, q := range im.Quads {
		p0, p1, p2, p3 := grid.NodePose(q[0]), grid.NodePose(q[1]), grid.NodePose(q[2]), grid.NodePose(q[3])
		acc.AddTriangle(p0, p1, p2)
		acc.AddTriangle(p0, p2, p3)
	}
	return acc.Mass(), acc.CenterOfMass()
}

// MassGradients returns, per active node, the gradient of mass and the
// Jacobian of the moment sum wrt that node's position, summed over
// every quad touching it — Optimizer's chain-rule input for
// dv_I/dTα.
func (im *InnerMesh) MassGradients(grid *voxelgrid.Grid) (dm [][3]float64, dc [][3][3]float64) {
	dm = make([][3]float64, grid.NumNodes)
	dc = make([][3][3]float64, grid.NumNodes)
	for _, q := range im.Quads {
		p0, p1, p2, p3 := grid.NodePose(q[0]), grid.NodePose(q[1]), grid.NodePose(q[2]), grid.NodePose(q[3])
		accumTriGrad(dm, dc, q[0], q[1], q[2], p0, p1, p2)
		accumTriGrad(dm, dc, q[0], q[2], q[3], p0, p2, p3)
	}
	return
}

func accumTriGrad(dm [][3]float64, dc [][3][3]float64, i0, i1, i2 int, p0, p1, p2 [3]float64) {
	g := massint.TriangleWithGrad(p0, p1, p2)
	idx := [3]int{i0, i1, i2}
	for slot, v := range idx {
		for a := 0; a < 3; a++ {
			dm[v][a] += g.DM[slot][a]
			for b := 0; b < 3; b++ {
				dc[v][a][b] += g.DC[slot][a][b]
			}
		}
	}
}
