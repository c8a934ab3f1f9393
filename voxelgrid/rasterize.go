package voxelgrid

import "math"

// RasterizeConservative is a CPU scan-fill that classifies every box
// centre as inside/outside the mesh by casting a +x ray from the
// centre and counting triangle crossings (even/odd rule), grounded on
// the same divergence-theorem view of a closed mesh massint.Accum
// already relies on — a point is inside iff a ray from it crosses the
// boundary an odd number of times. A production rasteriser would do
// better on thin features and degenerate cases; this one only needs
// to produce a reasonable occupancy bitmap for tests and the CLI, not
// to match any particular GPU rasteriser bit-for-bit.
func RasterizeConservative(R int, v [][3]float64, f [][3]int) Occupancy {
	occ := make(Occupancy, R*R*R)
	cell := 1.0 / float64(R)
	for x := 0; x < R; x++ {
		for y := 0; y < R; y++ {
			for z := 0; z < R; z++ {
				c := [3]float64{
					(float64(x) + 0.5) * cell,
					(float64(y) + 0.5) * cell,
					(float64(z) + 0.5) * cell,
				}
				if insideMesh(c, v, f) {
					occ[x+y*R+z*R*R] = 1
				}
			}
		}
	}
	return occ
}

// insideMesh casts a ray from p in the +x direction and parity-counts
// triangle crossings via the Möller–Trumbore-style plane/edge test.
func insideMesh(p [3]float64, v [][3]float64, f [][3]int) bool {
	crossings := 0
	for _, tri := range f {
		a, b, c := v[tri[0]], v[tri[1]], v[tri[2]]
		if rayHitsTriangle(p, a, b, c) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// rayHitsTriangle tests whether the ray {p + t*(1,0,0) : t > 0} crosses
// triangle (a,b,c), using a 2-D (y,z) point-in-triangle test gated on
// the ray's x-intersection with the triangle's plane.
func rayHitsTriangle(p, a, b, c [3]float64) bool {
	normal := crossV(subV(b, a), subV(c, a))
	if math.Abs(normal[0]) < 1e-15 && math.Abs(normal[1]) < 1e-15 && math.Abs(normal[2]) < 1e-15 {
		return false // degenerate triangle
	}
	// does the (y,z) projection of the ray origin lie within the
	// triangle's (y,z) projection?
	u, w, ok := barycentricYZ(p, a, b, c)
	if !ok || u < 0 || w < 0 || u+w > 1 {
		return false
	}
	// x on the plane at this (y,z): solve plane equation for x.
	planeX := a[0] + u*(b[0]-a[0]) + w*(c[0]-a[0])
	return planeX > p[0]
}

// barycentricYZ solves p's (y,z) projection in terms of a's (y,z)
// projection plus the (b-a),(c-a) (y,z) edge vectors; ok is false if
// the projected triangle is degenerate (edges parallel in (y,z)).
func barycentricYZ(p, a, b, c [3]float64) (u, w float64, ok bool) {
	e1y, e1z := b[1]-a[1], b[2]-a[2]
	e2y, e2z := c[1]-a[1], c[2]-a[2]
	det := e1y*e2z - e2y*e1z
	if math.Abs(det) < 1e-18 {
		return 0, 0, false
	}
	py, pz := p[1]-a[1], p[2]-a[2]
	u = (py*e2z - e2y*pz) / det
	w = (e1y*pz - py*e1z) / det
	return u, w, true
}

func subV(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func crossV(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
