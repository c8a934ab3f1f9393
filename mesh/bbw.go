package mesh

import (
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/deform"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/parallel"
)

// BoxLocator is the VoxelGrid capability Mesh needs to interpolate
// per-node BBW weights onto its vertices: given a point, the eight grid
// nodes surrounding its containing box and their trilinear (hex8)
// shape-function weights at that point. Expressed as an interface
// (rather than importing voxelgrid directly) because VoxelGrid in turn
// needs Mesh's vertex positions during InitVoxels — the two packages
// are mutually dependent at the domain level but not at the Go import
// level, mirroring how gofem's shp.Shape is handed to fem.Element
// rather than imported the other way around.
type BoxLocator interface {
	Locate(p [3]float64) (nodeIndices [8]int, weights [8]float64, ok bool)
}

// ComputeBBW assigns every vertex a Deformable whose handle weights are
// the trilinear interpolation, from the containing voxel box's eight
// corner nodes, of nodeWeights (already solved by VoxelGrid.ComputeBBW
// against the QP oracle). Vertices outside the grid (ok==false) get a
// deformable bound only to handle 0 (the first support handle) with
// full weight, a degenerate-vertex fallback.
func (m *Mesh) ComputeBBW(handles *handle.Set, grid BoxLocator, nodeWeights [][]float64) {
	nh := handles.Len()
	m.Deform = make([]*deform.Deformable, len(m.V))
	parallel.For(len(m.V), func(i int) {
		d := deform.New(m.V[i], nh)
		nodes, w, ok := grid.Locate(m.V[i])
		if ok {
			for c := 0; c < 8; c++ {
				if w[c] == 0 {
					continue
				}
				row := nodeWeights[nodes[c]]
				for h := 0; h < nh && h < len(row); h++ {
					d.PushWeight(h, w[c]*row[h])
				}
			}
		} else if nh > 0 {
			d.PushWeight(0, 1)
		}
		d.NormalizeWeights()
		m.Deform[i] = d
	})
}
