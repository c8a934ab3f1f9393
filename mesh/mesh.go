// Package mesh implements the outer triangle mesh: adjacency, normals,
// bounding-box normalisation, per-vertex BBW skinning, and the
// as-rigid-as-possible Laplacian operator. Grounded on gofem's own
// inp.Mesh/Cell (vertex/cell adjacency bookkeeping) and its
// struct-of-slices layout.
package mesh

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/deform"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/parallel"
)

// ErrInvalidMesh is returned by New when the input triangle soup is not
// a closed 2-manifold: a directed edge with no opposite partner
// (non-closed) or a directed edge repeated twice (non-manifold).
var ErrInvalidMesh = chk.Err("mesh: surface is not closed and manifold")

// CornerThresholdDefault is the cosine of the crease angle above which
// two adjacent faces are considered smooth for corner-normal purposes.
const CornerThresholdDefault = 0.8 // ~37 degrees

// Mesh is a closed triangle mesh together with its vertex/face
// adjacency, normals, BBW skinning and Laplacian operator.
type Mesh struct {
	V [][3]float64 // rest-pose vertices, rescaled into the unit cube
	F [][3]int     // triangle faces, vertex indices into V

	VV [][]int // vertex-to-vertex adjacency (1-ring)
	VF [][]int // vertex-to-face adjacency

	FN [][3]float64    // unit face normals
	VN [][3]float64    // unit vertex normals
	CN [][3][3]float64 // per-face corner normals, CN[f][corner]

	Deform []*deform.Deformable // one per vertex, populated by ComputeBBW

	M  *la.Triplet  // Laplacian operator, 3Nv x 3Nv
	mc *la.CCMatrix // cached compressed-column form of M, built lazily by ApplyM/ApplyMt

	CornerThreshold float64
}

// New builds a Mesh from a triangle soup: validates closedness and
// manifoldness, builds adjacency, rescales into the unit cube, computes
// normals, and assembles the Laplacian.
func New(v [][3]float64, f [][3]int) (*Mesh, error) {
	m := &Mesh{V: append([][3]float64(nil), v...), F: append([][3]int(nil), f...), CornerThreshold: CornerThresholdDefault}
	if err := m.validateClosedManifold(); err != nil {
		return nil, err
	}
	m.buildAdjacency()
	m.rescaleToUnitCube()
	m.RecomputeNormals()
	m.buildLaplacian()
	return m, nil
}

// validateClosedManifold checks that every directed edge (a,b) of F has
// exactly one matching opposite directed edge (b,a), and that no
// directed edge occurs twice: a triangle pair sharing a vertex without
// a matching edge-partner is rejected as an invalid mesh.
func (m *Mesh) validateClosedManifold() error {
	type edge struct{ a, b int }
	seen := make(map[edge]int)
	for _, f := range m.F {
		for k := 0; k < 3; k++ {
			a, b := f[k], f[(k+1)%3]
			seen[edge{a, b}]++
		}
	}
	for e, n := range seen {
		if n > 1 {
			return chk.Err("mesh: non-manifold directed edge (%d,%d) repeated %d times: %v", e.a, e.b, n, ErrInvalidMesh)
		}
		if _, ok := seen[edge{e.b, e.a}]; !ok {
			return chk.Err("mesh: non-closed surface, edge (%d,%d) has no opposite partner: %v", e.a, e.b, ErrInvalidMesh)
		}
	}
	return nil
}

// buildAdjacency fills VV and VF from F.
func (m *Mesh) buildAdjacency() {
	n := len(m.V)
	m.VV = make([][]int, n)
	m.VF = make([][]int, n)
	seen := make([]map[int]bool, n)
	for i := range seen {
		seen[i] = make(map[int]bool)
	}
	for fi, f := range m.F {
		for k := 0; k < 3; k++ {
			v := f[k]
			m.VF[v] = append(m.VF[v], fi)
			for d := 1; d <= 2; d++ {
				o := f[(k+d)%3]
				if o != v && !seen[v][o] {
					seen[v][o] = true
					m.VV[v] = append(m.VV[v], o)
				}
			}
		}
	}
}

// rescaleToUnitCube centers V at (0.5,0.5,0.5) and scales it so the
// bounding box's largest extent is 0.95.
func (m *Mesh) rescaleToUnitCube() {
	if len(m.V) == 0 {
		return
	}
	bmin, bmax := m.V[0], m.V[0]
	for _, v := range m.V {
		for k := 0; k < 3; k++ {
			if v[k] < bmin[k] {
				bmin[k] = v[k]
			}
			if v[k] > bmax[k] {
				bmax[k] = v[k]
			}
		}
	}
	var center [3]float64
	maxExtent := 0.0
	for k := 0; k < 3; k++ {
		center[k] = 0.5 * (bmin[k] + bmax[k])
		if e := bmax[k] - bmin[k]; e > maxExtent {
			maxExtent = e
		}
	}
	if maxExtent <= 0 {
		return
	}
	s := 0.95 / maxExtent
	for i, v := range m.V {
		for k := 0; k < 3; k++ {
			m.V[i][k] = (v[k]-center[k])*s + 0.5
		}
	}
}

// Pose returns vertex i's current deformed position, falling back to
// its rest position before ComputeBBW/UpdatePoses has run.
func (m *Mesh) Pose(i int) [3]float64 {
	if m.Deform == nil || m.Deform[i] == nil {
		return m.V[i]
	}
	return m.Deform[i].Current
}

// UpdatePoses recomputes every vertex's current pose from its
// Deformable and the given handles, then recomputes normals. Pose
// updates run over a worker pool.
func (m *Mesh) UpdatePoses(handles *handle.Set) {
	if m.Deform == nil {
		return
	}
	parallel.For(len(m.Deform), func(i int) {
		m.Deform[i].ComputeCurrentPose(handles)
	})
	m.RecomputeNormals()
}

// RecomputeNormals recomputes face, vertex and corner normals from the
// current pose: face-normal, vertex-normal and corner-normal
// recomputation each run over a worker pool.
func (m *Mesh) RecomputeNormals() {
	nf := len(m.F)
	faceN := make([][3]float64, nf)
	faceNUnit := make([][3]float64, nf)
	parallel.For(nf, func(fi int) {
		f := m.F[fi]
		p0, p1, p2 := m.Pose(f[0]), m.Pose(f[1]), m.Pose(f[2])
		n := cross(sub(p1, p0), sub(p2, p0))
		faceN[fi] = n
		faceNUnit[fi] = normalize(n)
	})
	m.FN = faceNUnit

	nv := len(m.V)
	vn := make([][3]float64, nv)
	parallel.For(nv, func(vi int) {
		var acc [3]float64
		for _, fi := range m.VF[vi] {
			acc = add(acc, faceN[fi])
		}
		vn[vi] = normalize(acc)
	})
	m.VN = vn

	cn := make([][3][3]float64, nf)
	parallel.For(nf, func(fi int) {
		f := m.F[fi]
		var corners [3][3]float64
		for slot := 0; slot < 3; slot++ {
			v := f[slot]
			var acc [3]float64
			for _, fj := range m.VF[v] {
				if dot(faceNUnit[fi], faceNUnit[fj]) >= m.CornerThreshold {
					acc = add(acc, faceN[fj])
				}
			}
			corners[slot] = normalize(acc)
		}
		cn[fi] = corners
	})
	m.CN = cn
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func add(a, b [3]float64) [3]float64 { return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func dot(a, b [3]float64) float64    { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
func normalize(v [3]float64) [3]float64 {
	n := dot(v, v)
	if n <= 1e-30 {
		return v
	}
	n = math.Sqrt(n)
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}
