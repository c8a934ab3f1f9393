// Package meshio reads OFF meshes and writes ASCII STL. Only a small
// subset is supported: triangle OFF (no colour/normal payload) in,
// triangle or quad STL out.
package meshio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// ReadOFF parses an ASCII .off file into vertex and (triangle) face
// arrays, following readOFF.h's header/vertex/face loop. Comment lines
// ('#'-prefixed) are skipped; the NOFF vertex-normal variant is
// accepted but its normals are discarded since Mesh recomputes its own.
func ReadOFF(path string) (v [][3]float64, f [][3]int, err error) {
	b, err := utl.ReadFile(path)
	if err != nil {
		return nil, nil, chk.Err("meshio: cannot read %q: %v", path, err)
	}
	lines := splitNonEmpty(string(b))
	if len(lines) < 2 {
		return nil, nil, chk.Err("meshio: %q is too short to be an OFF file", path)
	}
	header := strings.Fields(lines[0])
	if len(header) == 0 || (header[0] != "OFF" && header[0] != "NOFF") {
		return nil, nil, chk.Err("meshio: %q's first line should be OFF or NOFF, not %q", path, lines[0])
	}
	hasNormals := header[0] == "NOFF"

	li := 1
	for li < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[li]), "#") {
		li++
	}
	if li >= len(lines) {
		return nil, nil, chk.Err("meshio: %q has no vertex/face count line", path)
	}
	counts := strings.Fields(lines[li])
	if len(counts) < 2 {
		return nil, nil, chk.Err("meshio: %q's count line %q is malformed", path, lines[li])
	}
	nv, err := strconv.Atoi(counts[0])
	if err != nil {
		return nil, nil, chk.Err("meshio: bad vertex count in %q: %v", path, err)
	}
	nf, err := strconv.Atoi(counts[1])
	if err != nil {
		return nil, nil, chk.Err("meshio: bad face count in %q: %v", path, err)
	}
	li++

	v = make([][3]float64, nv)
	for i := 0; i < nv; i++ {
		if li >= len(lines) {
			return nil, nil, chk.Err("meshio: %q ended before %d vertices were read", path, nv)
		}
		if strings.HasPrefix(strings.TrimSpace(lines[li]), "#") {
			li++
			i--
			continue
		}
		fields := strings.Fields(lines[li])
		need := 3
		if hasNormals {
			need = 6
		}
		if len(fields) < need {
			return nil, nil, chk.Err("meshio: bad vertex line %q in %q", lines[li], path)
		}
		for k := 0; k < 3; k++ {
			x, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, nil, chk.Err("meshio: bad vertex coordinate in %q: %v", path, err)
			}
			v[i][k] = x
		}
		li++
	}

	f = make([][3]int, nf)
	for i := 0; i < nf; i++ {
		if li >= len(lines) {
			return nil, nil, chk.Err("meshio: %q ended before %d faces were read", path, nf)
		}
		if strings.HasPrefix(strings.TrimSpace(lines[li]), "#") {
			li++
			i--
			continue
		}
		fields := strings.Fields(lines[li])
		if len(fields) < 1 {
			return nil, nil, chk.Err("meshio: bad face line %q in %q", lines[li], path)
		}
		valence, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, chk.Err("meshio: bad face valence in %q: %v", path, err)
		}
		if valence != 3 {
			return nil, nil, chk.Err("meshio: %q has a non-triangular face (valence %d); only triangle OFF is supported", path, valence)
		}
		if len(fields) < 4 {
			return nil, nil, chk.Err("meshio: bad face line %q in %q", lines[li], path)
		}
		for k := 0; k < 3; k++ {
			idx, err := strconv.Atoi(fields[1+k])
			if err != nil {
				return nil, nil, chk.Err("meshio: bad face index in %q: %v", path, err)
			}
			f[i][k] = idx
		}
		li++
	}
	return v, f, nil
}

func splitNonEmpty(s string) []string {
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	var out []string
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// WriteSTLTriangles writes a triangle mesh as ASCII STL (writeSTL.h's
// writeSTLforTriMesh), one "facet normal / outer loop / vertex*3 /
// endloop / endfacet" block per face.
func WriteSTLTriangles(dir, fname string, v [][3]float64, f [][3]int) {
	var sb strings.Builder
	sb.WriteString("solid MIS\n")
	for _, tri := range f {
		a, b, c := v[tri[0]], v[tri[1]], v[tri[2]]
		n := triNormal(a, b, c)
		writeFacet(&sb, n, a, b, c)
	}
	sb.WriteString("endsolid MIS\n")
	io.WriteFileSD(dir, fname, sb.String())
}

// WriteSTLQuads writes a quad mesh as ASCII STL (writeSTL.h's
// writeSTLforQuadMesh), splitting every quad (0,1,2,3) into triangles
// (0,1,2) and (2,3,0).
func WriteSTLQuads(dir, fname string, v [][3]float64, quads [][4]int) {
	var sb strings.Builder
	sb.WriteString("solid MIS\n")
	splits := [2][3]int{{0, 1, 2}, {2, 3, 0}}
	for _, q := range quads {
		for _, s := range splits {
			a, b, c := v[q[s[0]]], v[q[s[1]]], v[q[s[2]]]
			n := triNormal(a, b, c)
			writeFacet(&sb, n, a, b, c)
		}
	}
	sb.WriteString("endsolid MIS\n")
	io.WriteFileSD(dir, fname, sb.String())
}

func writeFacet(sb *strings.Builder, n, a, b, c [3]float64) {
	fmt.Fprintf(sb, "facet normal %.9g %.9g %.9g\n", n[0], n[1], n[2])
	sb.WriteString("   outer loop\n")
	fmt.Fprintf(sb, "      vertex %.9g %.9g %.9g\n", a[0], a[1], a[2])
	fmt.Fprintf(sb, "      vertex %.9g %.9g %.9g\n", b[0], b[1], b[2])
	fmt.Fprintf(sb, "      vertex %.9g %.9g %.9g\n", c[0], c[1], c[2])
	sb.WriteString("   endloop\n")
	sb.WriteString("endfacet\n")
}

func triNormal(a, b, c [3]float64) [3]float64 {
	u := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	w := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float64{
		u[1]*w[2] - u[2]*w[1],
		u[2]*w[0] - u[0]*w[2],
		u[0]*w[1] - u[1]*w[0],
	}
	mag := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
	if mag < 1e-30 {
		return n
	}
	inv := 1 / math.Sqrt(mag)
	return [3]float64{n[0] * inv, n[1] * inv, n[2] * inv}
}
