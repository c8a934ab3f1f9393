// Package voxelgrid implements the regular axis-aligned box grid:
// active-box/active-node index tables, 8-node and
// 6-neighbour adjacency, hull depth, BBW weight solving, node pose
// update and per-box mass/COM. The dense sentinel-array indirection
// (boxIdx/nodeIdx over the full R³/(R+1)³ lattice) is grounded on
// gofem's own inp.Mesh cell/vertex tagging idiom — a flat slice keyed
// by a lexicographic (x,y,z) index, exactly how fem.Domain looks up
// cells by tag.
package voxelgrid

import (
	"github.com/cpmech/gosl/chk"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/deform"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/massint"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/parallel"
)

// ErrPointOutsideGrid is the PointOutsideGrid sentinel condition:
// callers receive ok==false from Locate rather than an error, the
// condition is not fatal to the program.
var ErrPointOutsideGrid = chk.Err("voxelgrid: point outside [0,1]^3 grid")

// cornerOffsets lists the 8 corner offsets in the lexicographic
// (dx,dy,dz) order: boxNodes[k,i] orders 8 corners lexicographically
// by (dx,dy,dz)∈{0,1}³ so trilinear interpolation uses bits of i.
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1},
	{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1},
}

// faceOffsets lists the 6 face-neighbour directions, ±x,±y,±z.
var faceOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1},
}

// Occupancy is the flat R³ occupancy bitmap consumed by InitVoxels,
// x-fastest, non-zero marking an occupied cell.
type Occupancy []byte

// Grid is the voxel box/node structure.
type Grid struct {
	R        int
	CellSize float64

	boxIdx  []int32 // len R^3, x-fastest, -1 if inactive
	nodeIdx []int32 // len (R+1)^3, x-fastest, -1 if inactive

	NumBoxes int
	NumNodes int

	BoxNodes  [][8]int // trilinear corner order
	BoxBoxes  [][6]int // ±x,±y,±z neighbours, -1 if absent
	NodeNodes [][6]int

	Depth  []int
	Filled []bool // fill status fₖ, true == filled

	NodeRest [][3]float64

	Deform []*deform.Deformable // one per active node
}

// New allocates an empty Grid of resolution R over [0,1]³.
func New(R int) *Grid {
	return &Grid{R: R, CellSize: 1.0 / float64(R)}
}

// BoxIdx exposes the flat box-index lattice for persistence (voxelio's
// `.vox` format); NumBoxes is the count of entries >= 0.
func (g *Grid) BoxIdx() []int32 { return g.boxIdx }

// SetBoxIdx installs a previously persisted box-index lattice (e.g.
// from voxelio.LoadVox), bypassing InitVoxels' rasterisation step.
func (g *Grid) SetBoxIdx(boxIdx []int32, numBoxes int) {
	g.boxIdx = boxIdx
	g.NumBoxes = numBoxes
}

func (g *Grid) idx3(x, y, z int) int { return x + y*g.R + z*g.R*g.R }

func (g *Grid) nodeIdx3(x, y, z int) int {
	n := g.R + 1
	return x + y*n + z*n*n
}

// cellOf returns the box-grid coordinate containing point p, clamped
// into range, together with whether p actually lies in [0,1]³.
func (g *Grid) cellOf(p [3]float64) (x, y, z int, ok bool) {
	ok = true
	coord := [3]int{}
	for k := 0; k < 3; k++ {
		if p[k] < 0 || p[k] > 1 {
			ok = false
		}
		c := int(p[k] * float64(g.R))
		if c < 0 {
			c = 0
		}
		if c >= g.R {
			c = g.R - 1
		}
		coord[k] = c
	}
	return coord[0], coord[1], coord[2], ok
}

// InitVoxels consumes the external rasteriser's occupancy bitmap,
// assigns compact box indices, then activates any box missing a mesh
// vertex it should contain.
func (g *Grid) InitVoxels(occ Occupancy, meshV [][3]float64) error {
	n3 := g.R * g.R * g.R
	if len(occ) != n3 {
		return chk.Err("voxelgrid: occupancy length %d != R^3=%d", len(occ), n3)
	}
	g.boxIdx = make([]int32, n3)
	for i := range g.boxIdx {
		g.boxIdx[i] = -1
	}
	next := int32(0)
	for i, v := range occ {
		if v != 0 {
			g.boxIdx[i] = next
			next++
		}
	}
	for _, v := range meshV {
		x, y, z, ok := g.cellOf(v)
		if !ok {
			continue
		}
		i := g.idx3(x, y, z)
		if g.boxIdx[i] == -1 {
			g.boxIdx[i] = next
			next++
		}
	}
	g.NumBoxes = int(next)
	return nil
}

// InitStructure activates nodes, fills the adjacency tables and
// computes hull depth. Idempotent given the same boxIdx.
func (g *Grid) InitStructure() error {
	n := g.R + 1
	g.nodeIdx = make([]int32, n*n*n)
	for i := range g.nodeIdx {
		g.nodeIdx[i] = -1
	}

	// 1. activate nodes incident to any active box.
	activeBoxCoord := make([][3]int, g.NumBoxes)
	for x := 0; x < g.R; x++ {
		for y := 0; y < g.R; y++ {
			for z := 0; z < g.R; z++ {
				bi := g.boxIdx[g.idx3(x, y, z)]
				if bi < 0 {
					continue
				}
				activeBoxCoord[bi] = [3]int{x, y, z}
				for _, off := range cornerOffsets {
					nx, ny, nz := x+off[0], y+off[1], z+off[2]
					g.nodeIdx[g.nodeIdx3(nx, ny, nz)] = 0 // mark, reindex below
				}
			}
		}
	}
	next := int32(0)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				i := g.nodeIdx3(x, y, z)
				if g.nodeIdx[i] == 0 {
					g.nodeIdx[i] = next
					next++
				} else {
					g.nodeIdx[i] = -1
				}
			}
		}
	}
	g.NumNodes = int(next)

	// 2. fill BoxNodes, BoxBoxes, NodeNodes.
	g.BoxNodes = make([][8]int, g.NumBoxes)
	g.BoxBoxes = make([][6]int, g.NumBoxes)
	g.Depth = make([]int, g.NumBoxes)
	g.Filled = make([]bool, g.NumBoxes)
	for i := range g.Filled {
		g.Filled[i] = true
	}
	for bi, c := range activeBoxCoord {
		x, y, z := c[0], c[1], c[2]
		for i, off := range cornerOffsets {
			nx, ny, nz := x+off[0], y+off[1], z+off[2]
			g.BoxNodes[bi][i] = int(g.nodeIdx[g.nodeIdx3(nx, ny, nz)])
		}
		for d, off := range faceOffsets {
			nx, ny, nz := x+off[0], y+off[1], z+off[2]
			if nx < 0 || ny < 0 || nz < 0 || nx >= g.R || ny >= g.R || nz >= g.R {
				g.BoxBoxes[bi][d] = -1
				continue
			}
			g.BoxBoxes[bi][d] = int(g.boxIdx[g.idx3(nx, ny, nz)])
		}
	}

	g.NodeNodes = make([][6]int, g.NumNodes)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				ni := g.nodeIdx[g.nodeIdx3(x, y, z)]
				if ni < 0 {
					continue
				}
				for d, off := range faceOffsets {
					nx, ny, nz := x+off[0], y+off[1], z+off[2]
					if nx < 0 || ny < 0 || nz < 0 || nx >= n || ny >= n || nz >= n {
						g.NodeNodes[ni][d] = -1
						continue
					}
					g.NodeNodes[ni][d] = int(g.nodeIdx[g.nodeIdx3(nx, ny, nz)])
				}
			}
		}
	}

	// 3. hull depth: BFS seeded by 26-neighbour emptiness, propagated
	// over 6-adjacency. The seed and propagation adjacencies differ on
	// purpose: a box touching empty space only at a corner or edge is
	// still exposed, but depth should only step across shared faces.
	g.computeHullDepth(activeBoxCoord)

	g.NodeRest = make([][3]float64, g.NumNodes)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				ni := g.nodeIdx[g.nodeIdx3(x, y, z)]
				if ni < 0 {
					continue
				}
				g.NodeRest[ni] = [3]float64{
					float64(x) * g.CellSize,
					float64(y) * g.CellSize,
					float64(z) * g.CellSize,
				}
			}
		}
	}
	return nil
}

// computeHullDepth runs a BFS seeded by boxes that have at least one
// missing 26-neighbour at depth 0, propagating along 6-face adjacency
// only.
func (g *Grid) computeHullDepth(coord [][3]int) {
	for i := range g.Depth {
		g.Depth[i] = -1
	}
	queue := make([]int, 0, g.NumBoxes)
	for bi, c := range coord {
		if g.has26Gap(c) {
			g.Depth[bi] = 0
			queue = append(queue, bi)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.BoxBoxes[cur] {
			if nb < 0 {
				continue
			}
			if g.Depth[nb] == -1 {
				g.Depth[nb] = g.Depth[cur] + 1
				queue = append(queue, nb)
			}
		}
	}
}

// has26Gap reports whether any of the 26 neighbours of box coordinate c
// is outside the grid or inactive.
func (g *Grid) has26Gap(c [3]int) bool {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				x, y, z := c[0]+dx, c[1]+dy, c[2]+dz
				if x < 0 || y < 0 || z < 0 || x >= g.R || y >= g.R || z >= g.R {
					return true
				}
				if g.boxIdx[g.idx3(x, y, z)] == -1 {
					return true
				}
			}
		}
	}
	return false
}

// hex8Of maps cornerOffsets' lexicographic (dx,dy,dz) ordering onto
// hex8Shape's own vertex numbering (gofem's hex8 NatCoords table), so
// Locate can reuse that isoparametric shape function instead of
// re-deriving the trilinear weights by hand.
var hex8Of = [8]int{0, 4, 3, 7, 1, 5, 2, 6}

// Locate implements mesh.BoxLocator: the containing box's 8 corner
// nodes and their hex8 trilinear weights at p, evaluated via
// hex8Shape at the box-local natural coordinates.
func (g *Grid) Locate(p [3]float64) (nodeIndices [8]int, weights [8]float64, ok bool) {
	x, y, z, inRange := g.cellOf(p)
	if !inRange {
		return nodeIndices, weights, false
	}
	bi := g.boxIdx[g.idx3(x, y, z)]
	if bi < 0 {
		return nodeIndices, weights, false
	}
	origin := [3]float64{float64(x) * g.CellSize, float64(y) * g.CellSize, float64(z) * g.CellSize}
	u := (p[0] - origin[0]) / g.CellSize
	v := (p[1] - origin[1]) / g.CellSize
	w := (p[2] - origin[2]) / g.CellSize
	nodeIndices = g.BoxNodes[bi]

	var s [8]float64
	hex8Shape(&s, 2*u-1, 2*v-1, 2*w-1)
	for i, hi := range hex8Of {
		weights[i] = s[hi]
	}
	return nodeIndices, weights, true
}

// IsHull reports whether box k is on the active set's boundary.
func (g *Grid) IsHull(k int) bool { return g.Depth[k] == 0 }

// ClearFilling sets fill status to "filled" for every box with depth
// ≤ h, carved otherwise.
func (g *Grid) ClearFilling(h int) {
	for k := range g.Filled {
		g.Filled[k] = g.Depth[k] <= h
	}
}

// ClearCarving marks every box filled.
func (g *Grid) ClearCarving() {
	for k := range g.Filled {
		g.Filled[k] = true
	}
}

// NodePose returns node i's current deformed position, falling back to
// its rest position before BBW/UpdatePoses has run.
func (g *Grid) NodePose(i int) [3]float64 {
	if g.Deform == nil || g.Deform[i] == nil {
		return g.NodeRest[i]
	}
	return g.Deform[i].Current
}

// UpdatePoses recomputes every node's current pose from its Deformable
// and the given handles, over a worker pool.
func (g *Grid) UpdatePoses(handles *handle.Set) {
	if g.Deform == nil {
		return
	}
	parallel.For(len(g.Deform), func(i int) {
		g.Deform[i].ComputeCurrentPose(handles)
	})
}

// boxCorners returns the current poses of box k's 8 corner nodes, in
// BoxNodes' lexicographic order.
func (g *Grid) boxCorners(k int) [8][3]float64 {
	var c [8][3]float64
	for i, ni := range g.BoxNodes[k] {
		c[i] = g.NodePose(ni)
	}
	return c
}

// boxFaceCorners decomposes a box into its 6 quad faces, each split
// into 2 outward-oriented triangles for mass/COM integration.
var boxFaceCorners = [6][4]int{
	{0, 1, 3, 2}, // -x face (x=0 corners: indices with dx==0, i.e. bit2==0 -> 0,1,2,3; ordered as quad)
	{4, 6, 7, 5}, // +x face
	{0, 4, 5, 1}, // -y face
	{2, 3, 7, 6}, // +y face
	{0, 2, 6, 4}, // -z face
	{1, 5, 7, 3}, // +z face
}

// BoxCenterOfMass integrates box k's mass/COM over its current (posed)
// boundary via the same divergence-theorem accumulator Mesh uses.
func (g *Grid) BoxCenterOfMass(k int) (mass float64, com [3]float64) {
	corners := g.boxCorners(k)
	var acc massint.Accum
	for _, quad := range boxFaceCorners {
		a, b, c, d := corners[quad[0]], corners[quad[1]], corners[quad[2]], corners[quad[3]]
		acc.AddTriangle(a, b, c)
		acc.AddTriangle(a, c, d)
	}
	return acc.Mass(), acc.CenterOfMass()
}
