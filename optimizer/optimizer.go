// Package optimizer assembles the COM and Laplacian energies, their
// gradients wrt handle parameters, applies the gradient step, and
// runs the plane-carving inner balancer. Grounded on
// msolid.Driver's "prepare once, iterate many" shape (Init builds the
// consistent-matrix scratch space; subsequent calls reuse it) and on
// fem.Domain's Kb sparse-Jacobian assembly for the analogous
// Jacobian-block bookkeeping, here built with gonum/mat.Dense since the
// Jacobian blocks are small and dense (3Nv × H, H being a handful of
// handles) rather than sparse.
package optimizer

import (
	"gonum.org/v1/gonum/mat"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/deform"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/mesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

// Optimizer holds the per-handle Jacobian blocks prepare() assembles
// once after BBW weights are finalised, plus the MM·(Jacobian block)
// products precomputed for the Laplacian-energy gradient.
type Optimizer struct {
	NH int // number of handles at the time Prepare ran

	// outer-vertex Jacobian blocks, each 3Nv x NH.
	DvOdT [3]*mat.Dense
	DvOdS *mat.Dense

	// MM * DvOdT[a], MM * DvOdS, same shape.
	MMDvOdT [3]*mat.Dense
	MMDvOdS *mat.Dense

	// voxel-node Jacobian blocks, each 3Nn x NH.
	DvIdT [3]*mat.Dense
	DvIdS *mat.Dense
}

// New returns an empty Optimizer; call Prepare before using it.
func New() *Optimizer { return &Optimizer{} }

// Prepare assembles dv_O/dTx,Ty,Tz,S and dv_I/dTx,Ty,Tz,S from the
// current BBW weights, plus MM·dv_O/dTα. Must be called
// exactly once after Mesh.ComputeBBW/VoxelGrid.ComputeBBW have run, and
// again whenever weights are recomputed (e.g. a re-voxelise).
func (o *Optimizer) Prepare(m *mesh.Mesh, grid *voxelgrid.Grid, handles *handle.Set) {
	nh := handles.Len()
	o.NH = nh

	nv := len(m.V)
	for a := 0; a < 3; a++ {
		o.DvOdT[a] = mat.NewDense(3*nv, nh, nil)
	}
	o.DvOdS = mat.NewDense(3*nv, nh, nil)
	fillJacobianBlocks(o.DvOdT, o.DvOdS, m.Deform, handles)
	for a := 0; a < 3; a++ {
		o.MMDvOdT[a] = applyOperatorCols(m.ApplyMtM, o.DvOdT[a])
	}
	o.MMDvOdS = applyOperatorCols(m.ApplyMtM, o.DvOdS)

	nn := grid.NumNodes
	for a := 0; a < 3; a++ {
		o.DvIdT[a] = mat.NewDense(3*nn, nh, nil)
	}
	o.DvIdS = mat.NewDense(3*nn, nh, nil)
	fillJacobianBlocks(o.DvIdT, o.DvIdS, grid.Deform, handles)
}

// fillJacobianBlocks is shared by Mesh and VoxelGrid Jacobian assembly:
// dv/dTα[3i+α, j] = w_{i,j} (translation moves every blended point
// equally along α), dv/dS[3i+α, j] = w_{i,j}·(rest_i − rest_j)[α]
// (scale moves a point along the line to the handle's rest position).
func fillJacobianBlocks(dvdT [3]*mat.Dense, dvdS *mat.Dense, deforms []*deform.Deformable, handles *handle.Set) {
	for i, d := range deforms {
		for j := 0; j < handles.Len() && j < len(d.W); j++ {
			w := d.W[j]
			if w == 0 {
				continue
			}
			grad := handles.GradScale(j, d.Rest)
			for a := 0; a < 3; a++ {
				dvdT[a].Set(3*i+a, j, w)
				dvdS.Set(3*i+a, j, w*grad[a])
			}
		}
	}
}

// applyOperatorCols applies a linear operator (here Mesh.ApplyMtM)
// column-by-column to a dense Jacobian block: an explicit loop over a
// generic sparse-dense kernel, since gosl has no ready-made one.
func applyOperatorCols(op func([]float64) []float64, D *mat.Dense) *mat.Dense {
	r, c := D.Dims()
	out := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = D.At(i, j)
		}
		res := op(col)
		out.SetCol(j, res)
	}
	return out
}
