package voxelgrid

// hex8Shape evaluates the trilinear hexahedron corner weights at the
// natural coordinates {r,s,t}, each in [-1,1], following gofem's hex8
// isoparametric vertex numbering (corner 0 at r=s=t=-1, corner 6 at
// r=s=t=+1, winding as in shp.Hex8). Locate only needs the weights, not
// the derivatives fem assembly would use them for, so this keeps just
// that half of the original shape function.
func hex8Shape(S *[8]float64, r, s, t float64) {
	S[0] = (1.0 - r - s + r*s - t + s*t + r*t - r*s*t) / 8.0
	S[1] = (1.0 + r - s - r*s - t + s*t - r*t + r*s*t) / 8.0
	S[2] = (1.0 + r + s + r*s - t - s*t - r*t - r*s*t) / 8.0
	S[3] = (1.0 - r + s - r*s - t - s*t + r*t + r*s*t) / 8.0
	S[4] = (1.0 - r - s + r*s + t - s*t - r*t + r*s*t) / 8.0
	S[5] = (1.0 + r - s - r*s + t - s*t + r*t - r*s*t) / 8.0
	S[6] = (1.0 + r + s + r*s + t + s*t + r*t + r*s*t) / 8.0
	S[7] = (1.0 - r + s - r*s + t + s*t - r*t - r*s*t) / 8.0
}
