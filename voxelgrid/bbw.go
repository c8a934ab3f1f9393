package voxelgrid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/deform"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/qp"
)

// ComputeBBW solves, for every handle, a BBW weight vector over active
// nodes against the unnormalised node-adjacency graph Laplacian L:
// A selects rows for constrained nodes, and each handle solves
// min ½xᵀLᵀLx s.t. Ax=bⱼ, 0≤x≤1. After every handle is solved, each
// node's weight vector is renormalised to sum to one.
func (g *Grid) ComputeBBW(handles *handle.Set, oracle qp.Oracle) error {
	if oracle == nil {
		oracle = qp.NewProjectedGradient()
	}
	n := g.NumNodes
	L := g.graphLaplacian()

	g.Deform = make([]*deform.Deformable, n)
	for i := range g.Deform {
		g.Deform[i] = deform.New(g.NodeRest[i], handles.Len())
	}

	var rows []int // every handle's constrained nodes, in handle order
	for _, h := range handles.Handles {
		rows = append(rows, h.NodeIndices...)
	}
	A := new(la.Triplet)
	A.Init(len(rows), n, len(rows))
	for r, ni := range rows {
		A.Put(r, ni, 1)
	}
	first := 0 // first row of A belonging to handle j
	for j := 0; j < handles.Len(); j++ {
		nodes := handles.Handles[j].NodeIndices
		if len(nodes) == 0 {
			continue // HandleOutsideGrid already filtered by the caller
		}
		b := make([]float64, len(rows))
		for r := range nodes {
			b[first+r] = 1
		}
		first += len(nodes)
		x, err := oracle.Solve(L, A, b, n, n)
		if err != nil {
			return chk.Err("voxelgrid: BBW solve failed for handle %d: %v", j, err)
		}
		for i, w := range x {
			if w != 0 {
				g.Deform[i].PushWeight(j, w)
			}
		}
	}
	for _, d := range g.Deform {
		d.NormalizeWeights()
	}
	return nil
}

// graphLaplacian assembles the unnormalised node-adjacency graph
// Laplacian: diagonal = valence (count of active 6-neighbours),
// off-diagonal = -1 for each active neighbour.
func (g *Grid) graphLaplacian() *la.Triplet {
	n := g.NumNodes
	L := new(la.Triplet)
	L.Init(n, n, n*7)
	for i, nbrs := range g.NodeNodes {
		valence := 0
		for _, nb := range nbrs {
			if nb >= 0 {
				valence++
				L.Put(i, nb, -1)
			}
		}
		L.Put(i, i, float64(valence))
	}
	return L
}

// SetNodeWeights installs a previously solved (e.g. voxelio.LoadBBW'd)
// per-node weight table directly, bypassing the QP solve — used when
// BBW has already run in an earlier pipeline stage and its result was
// persisted.
func (g *Grid) SetNodeWeights(nodeWeights [][]float64) error {
	if len(nodeWeights) != g.NumNodes {
		return chk.Err("voxelgrid: weight table has %d rows, grid has %d nodes", len(nodeWeights), g.NumNodes)
	}
	g.Deform = make([]*deform.Deformable, g.NumNodes)
	for i, w := range nodeWeights {
		d := deform.New(g.NodeRest[i], len(w))
		copy(d.W, w)
		g.Deform[i] = d
	}
	return nil
}

// NodeWeights returns every active node's handle weight vector, indexed
// [node][handle] — the table mesh.Mesh.ComputeBBW trilinearly
// interpolates onto vertices.
func (g *Grid) NodeWeights() [][]float64 {
	w := make([][]float64, len(g.Deform))
	for i, d := range g.Deform {
		w[i] = d.W
	}
	return w
}
