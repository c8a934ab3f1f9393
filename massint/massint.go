// Package massint implements the divergence-theorem mass/center-of-mass
// integration shared by Mesh's outer surface, the InnerMesh quad
// surface, and VoxelGrid's per-box faces: every closed surface in this
// module is integrated triangle by triangle with the same accumulator.
package massint

// Accum holds the running mass and center-of-mass moment of a closed
// surface, in undivided (×6, ×24) form: callers divide M by 6 and C
// by 24 once all triangles are added.
type Accum struct {
	M float64
	C [3]float64
}

// AddTriangle accumulates the divergence-theorem contribution of one
// outward-oriented triangle (p0,p1,p2) into a.
func (a *Accum) AddTriangle(p0, p1, p2 [3]float64) {
	m, c, _, _, _ := triangleTerms(p0, p1, p2)
	a.M += m
	a.C[0] += c[0]
	a.C[1] += c[1]
	a.C[2] += c[2]
}

// Mass returns the accumulated mass, divided by 6.
func (a *Accum) Mass() float64 { return a.M / 6 }

// CenterOfMass returns (C/24)/Mass(); callers must call CenterOfMass only
// after Mass() is known to be non-zero.
func (a *Accum) CenterOfMass() [3]float64 {
	m := a.Mass()
	return [3]float64{a.C[0] / 24 / m, a.C[1] / 24 / m, a.C[2] / 24 / m}
}

// MomentSum returns C (undivided by 24); callers combine moments
// across multiple surfaces before dividing, as Optimizer does for the
// combined outer+inner mass and COM.
func (a *Accum) MomentSum() [3]float64 { return a.C }

// TriangleGrad is the per-triangle contribution to mass and
// center-of-mass together with their gradients wrt each of the three
// vertices, closed-form (not finite-differenced).
type TriangleGrad struct {
	M float64
	C [3]float64
	// DM[k] = ∇_{p_k} m, a 3-vector, k in {0,1,2}.
	DM [3][3]float64
	// DC[k] is ∂c/∂p_k, a 3x3 Jacobian: DC[k][a][b] = ∂c[a]/∂p_k[b].
	DC [3][3][3]float64
}

// TriangleWithGrad computes mass/COM and their closed-form gradients
// for one outward-oriented triangle.
func TriangleWithGrad(p0, p1, p2 [3]float64) TriangleGrad {
	m, c, n, f1, e := triangleTerms(p0, p1, p2)
	e1, e2, e3 := e[0], e[1], e[2]
	f2 := f2Of(f1, p0, p1, p2)

	var g TriangleGrad
	g.M = m
	g.C = c

	g.DM[0] = [3]float64{n[0], -f1[0] * e3[2], f1[0] * e3[1]}
	g.DM[1] = [3]float64{n[0], -f1[0] * e2[2], f1[0] * e2[1]}
	g.DM[2] = [3]float64{n[0], -f1[0] * e1[2], f1[0] * e1[1]}

	g.DC[0] = dcJacobian(n, f1, f2, p0, e3)
	g.DC[1] = dcJacobian(n, f1, f2, p1, e2)
	g.DC[2] = dcJacobian(n, f1, f2, p2, e1)

	return g
}

// dcJacobian builds ∂c/∂p_k for vertex p_k using the opposite edge e
// (e3 for p0, e2 for p1, e1 for p2), a closed-form derivative of the
// same divergence-theorem moment sum Mass/CenterOfMass compute.
func dcJacobian(n, f1, f2, p, e [3]float64) [3][3]float64 {
	var j [3][3]float64
	j[0][0] = n[0] * (f1[0] + p[0])
	j[0][1] = f2[1] * e[2]
	j[0][2] = -f2[2] * e[1]
	j[1][0] = -f2[0] * e[2]
	j[1][1] = n[1] * (f1[1] + p[1])
	j[1][2] = f2[2] * e[0]
	j[2][0] = f2[0] * e[1]
	j[2][1] = -f2[1] * e[0]
	j[2][2] = n[2] * (f1[2] + p[2])
	return j
}

// triangleTerms computes the shared quantities (m, c, n==-e1×e2, f1,
// and the three edges) for one triangle, used by both the
// gradient-free and gradient-bearing accumulators.
func triangleTerms(p0, p1, p2 [3]float64) (m float64, c [3]float64, n [3]float64, f1 [3]float64, edges [3][3]float64) {
	e1 := sub(p1, p0)
	e2 := sub(p0, p2)
	e3 := sub(p2, p1)
	n = neg(cross(e1, e2))
	f1 = add3(p0, p1, p2)
	f2 := f2Of(f1, p0, p1, p2)

	m = f1[0] * n[0]
	c = [3]float64{f2[0] * n[0], f2[1] * n[1], f2[2] * n[2]}
	edges = [3][3]float64{e1, e2, e3}
	return
}

func f2Of(f1, p0, p1, p2 [3]float64) [3]float64 {
	var f2 [3]float64
	for k := 0; k < 3; k++ {
		f2[k] = f1[k]*f1[k] - (p0[k]*p1[k] + p1[k]*p2[k] + p2[k]*p0[k])
	}
	return f2
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func add3(a, b, c [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0] + c[0], a[1] + b[1] + c[1], a[2] + b[2] + c[2]}
}

func neg(a [3]float64) [3]float64 { return [3]float64{-a[0], -a[1], -a[2]} }

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
