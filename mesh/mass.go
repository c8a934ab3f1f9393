package mesh

import (
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/massint"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/parallel"
)

// MassAndCenterOfMass integrates the current pose's mass and centre of
// mass via the divergence theorem, summing per-face triangle
// contributions computed by a worker pool and reduced sequentially
// (the reduction itself is cheap relative to the per-triangle work,
// so it is not parallelised — only the per-index work needs to be
// race-free, not the reduction).
func (m *Mesh) MassAndCenterOfMass() (mass float64, com [3]float64) {
	accs := make([]massint.Accum, len(m.F))
	parallel.For(len(m.F), func(fi int) {
		f := m.F[fi]
		accs[fi].AddTriangle(m.Pose(f[0]), m.Pose(f[1]), m.Pose(f[2]))
	})
	var total massint.Accum
	for _, a := range accs {
		total.M += a.M
		total.C[0] += a.C[0]
		total.C[1] += a.C[1]
		total.C[2] += a.C[2]
	}
	return total.Mass(), total.CenterOfMass()
}

// MassGradients returns, for every vertex, the gradient of mass and the
// 3x3 Jacobian of the unnormalised moment sum wrt that vertex's
// position, accumulated over every face touching it.
func (m *Mesh) MassGradients() (dm [][3]float64, dc [][3][3]float64) {
	nv := len(m.V)
	dm = make([][3]float64, nv)
	dc = make([][3][3]float64, nv)
	for _, f := range m.F {
		p0, p1, p2 := m.Pose(f[0]), m.Pose(f[1]), m.Pose(f[2])
		g := massint.TriangleWithGrad(p0, p1, p2)
		for slot, v := range f {
			for a := 0; a < 3; a++ {
				dm[v][a] += g.DM[slot][a]
				for b := 0; b < 3; b++ {
					dc[v][a][b] += g.DC[slot][a][b]
				}
			}
		}
	}
	return
}
