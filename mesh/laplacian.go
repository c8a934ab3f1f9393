package mesh

import "github.com/cpmech/gosl/la"

// buildLaplacian assembles the global rotation-invariant Laplacian
// operator M: for every vertex i with one-ring neighbours N(i), a
// 7-parameter local similarity transform
// (scale s, 3 skew/rotation parameters h, 3 translation parameters t)
// is least-squares fit to vertex i and its neighbours (matrix Aᵢ), and
// the same transform is applied to the differential coordinate δᵢ = vᵢ
// − mean(N(i)) with translation columns dropped (matrix Kᵢ). The row
// block Uᵢ = Kᵢ(AᵢᵀAᵢ)⁻¹Aᵢᵀ − Lᵢ is scattered into M at row block i and
// column blocks {i}∪N(i); it measures how far vertex i's differential
// coordinate departs from what the neighbourhood's best-fit similarity
// transform predicts, i.e. the as-rigid-as-possible residual. Ported
// from the classical Sorkine et al. Laplacian-surface-editing
// construction (no direct analogue in gofem; the small dense solves
// reuse gofem's shp package idiom of la.MatInv/la.MatMul on [][]float64
// scratch matrices).
func (m *Mesh) buildLaplacian() {
	n := len(m.V)
	nnz := 0
	for _, nbrs := range m.VV {
		nnz += 9 * (len(nbrs) + 1)
	}
	m.M = new(la.Triplet)
	m.M.Init(3*n, 3*n, nnz)

	for i := 0; i < n; i++ {
		nbrs := m.VV[i]
		k := len(nbrs)
		rows := 3 * (k + 1)

		// A: rows x 7, stacking the transform-row for each neighbour
		// then for vertex i itself (last block == index k).
		A := make([][]float64, rows)
		for r := range A {
			A[r] = make([]float64, 7)
		}
		verts := append(append([]int(nil), nbrs...), i)
		for b, v := range verts {
			p := m.V[v]
			transformRows(A[3*b:3*b+3], p)
		}

		AtA := mulAtA(A, rows, 7)
		AtAinv := make([][]float64, 7)
		for r := range AtAinv {
			AtAinv[r] = make([]float64, 7)
		}
		if _, err := la.MatInv(AtAinv, AtA, 1e-14); err != nil {
			// degenerate neighbourhood (near-collinear): fall back to
			// the identity residual, i.e. Uᵢ reduces to −Lᵢ.
			scatterIdentityRow(m.M, i, nbrs)
			continue
		}

		// δ_i = v_i - mean(neighbours)
		var mean [3]float64
		for _, v := range nbrs {
			mean = add(mean, m.V[v])
		}
		if k > 0 {
			mean = scale3(mean, 1/float64(k))
		}
		delta := sub(m.V[i], mean)

		K := make([][]float64, 3)
		for r := range K {
			K[r] = make([]float64, 7)
		}
		transformRows(K, delta)
		for r := 0; r < 3; r++ {
			K[r][4], K[r][5], K[r][6] = 0, 0, 0 // translation-free
		}

		// Uᵢ = K (AᵀA)⁻¹ Aᵀ - Lᵢ, a 3 x rows matrix.
		KAtAinv := mulMat(K, AtAinv, 3, 7, 7)
		AtT := transposeMat(A, rows, 7)
		U := mulMat(KAtAinv, AtT, 3, 7, rows)
		// subtract Lᵢ: identity block at the vertex-i column (index k),
		// −(1/k)·identity block at each neighbour column.
		for r := 0; r < 3; r++ {
			U[r][3*k+r] -= 1
			for b := 0; b < k; b++ {
				U[r][3*b+r] += 1 / float64(k)
			}
		}

		for r := 0; r < 3; r++ {
			for b, v := range verts {
				for c := 0; c < 3; c++ {
					val := U[r][3*b+c]
					if val != 0 {
						m.M.Put(3*i+r, 3*v+c, val)
					}
				}
			}
		}
	}

}

// ccMatrix lazily compresses M into CC form; every ApplyM/ApplyMt call
// after the first reuses it.
func (m *Mesh) ccMatrix() *la.CCMatrix {
	if m.mc == nil {
		m.mc = m.M.ToMatrix(nil)
	}
	return m.mc
}

// ApplyM returns M x, x having length 3*len(V).
func (m *Mesh) ApplyM(x []float64) []float64 {
	y := make([]float64, 3*len(m.V))
	la.SpMatVecMulAdd(y, 1, m.ccMatrix(), x)
	return y
}

// ApplyMt returns Mᵀ x, x having length 3*len(V).
func (m *Mesh) ApplyMt(x []float64) []float64 {
	y := make([]float64, 3*len(m.V))
	la.SpMatTrVecMulAdd(y, 1, m.ccMatrix(), x)
	return y
}

// ApplyMtM returns MᵀM x without ever materialising MᵀM, used by
// Optimizer's Laplacian-energy gradient.
func (m *Mesh) ApplyMtM(x []float64) []float64 {
	return m.ApplyMt(m.ApplyM(x))
}

// scatterIdentityRow writes −Lᵢ alone (−identity on vertex i's own
// column, (1/Nᵢ)·identity on each neighbour's) when the local
// similarity fit is degenerate.
func scatterIdentityRow(M *la.Triplet, i int, nbrs []int) {
	for r := 0; r < 3; r++ {
		M.Put(3*i+r, 3*i+r, -1)
		for _, v := range nbrs {
			M.Put(3*i+r, 3*v+r, 1/float64(len(nbrs)))
		}
	}
}

// transformRows fills the 3x7 block [x,0,z,-y,1,0,0; y,-z,0,x,0,1,0;
// z,y,-x,0,0,0,1] for point p into dst[0:3].
func transformRows(dst [][]float64, p [3]float64) {
	x, y, z := p[0], p[1], p[2]
	dst[0][0], dst[0][1], dst[0][2], dst[0][3], dst[0][4], dst[0][5], dst[0][6] = x, 0, z, -y, 1, 0, 0
	dst[1][0], dst[1][1], dst[1][2], dst[1][3], dst[1][4], dst[1][5], dst[1][6] = y, -z, 0, x, 0, 1, 0
	dst[2][0], dst[2][1], dst[2][2], dst[2][3], dst[2][4], dst[2][5], dst[2][6] = z, y, -x, 0, 0, 0, 1
}

func mulAtA(A [][]float64, rows, cols int) [][]float64 {
	out := make([][]float64, cols)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			s := 0.0
			for r := 0; r < rows; r++ {
				s += A[r][i] * A[r][j]
			}
			out[i][j] = s
		}
	}
	return out
}

func transposeMat(A [][]float64, rows, cols int) [][]float64 {
	out := make([][]float64, cols)
	for c := 0; c < cols; c++ {
		out[c] = make([]float64, rows)
		for r := 0; r < rows; r++ {
			out[c][r] = A[r][c]
		}
	}
	return out
}

func mulMat(A, B [][]float64, ra, ca, cb int) [][]float64 {
	out := make([][]float64, ra)
	for i := 0; i < ra; i++ {
		out[i] = make([]float64, cb)
		for j := 0; j < cb; j++ {
			s := 0.0
			for k := 0; k < ca; k++ {
				s += A[i][k] * B[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

func scale3(v [3]float64, s float64) [3]float64 { return [3]float64{v[0] * s, v[1] * s, v[2] * s} }
