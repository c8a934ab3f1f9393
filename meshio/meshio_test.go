package meshio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

const tetOFF = `OFF
4 4 0
0 0 0
1 0 0
0 1 0
0 0 1
3 0 2 1
3 0 1 3
3 0 3 2
3 1 2 3
`

func Test_meshio01(tst *testing.T) {
	chk.PrintTitle("Test meshio01: ReadOFF parses a triangle OFF file")

	dir := tst.TempDir()
	path := filepath.Join(dir, "tet.off")
	if err := os.WriteFile(path, []byte(tetOFF), 0644); err != nil {
		tst.Fatalf("cannot write fixture: %v", err)
	}

	v, f, err := ReadOFF(path)
	if err != nil {
		tst.Fatalf("ReadOFF failed: %v", err)
	}
	if len(v) != 4 {
		tst.Errorf("len(v) = %d, want 4", len(v))
	}
	if len(f) != 4 {
		tst.Errorf("len(f) = %d, want 4", len(f))
	}
	utl.CheckScalar(tst, "v[1].x", 1e-12, v[1][0], 1)
	if f[0] != [3]int{0, 2, 1} {
		tst.Errorf("f[0] = %v, want {0,2,1}", f[0])
	}
}

func Test_meshio02(tst *testing.T) {
	chk.PrintTitle("Test meshio02: ReadOFF rejects a non-OFF header")

	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.off")
	os.WriteFile(path, []byte("NOTOFF\n0 0 0\n"), 0644)

	if _, _, err := ReadOFF(path); err == nil {
		tst.Errorf("expected an error for a malformed header")
	}
}

func Test_meshio03(tst *testing.T) {
	chk.PrintTitle("Test meshio03: ReadOFF rejects a non-triangular face")

	dir := tst.TempDir()
	path := filepath.Join(dir, "quad.off")
	os.WriteFile(path, []byte("OFF\n4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n"), 0644)

	if _, _, err := ReadOFF(path); err == nil {
		tst.Errorf("expected an error for a quad face")
	}
}

func Test_meshio04(tst *testing.T) {
	chk.PrintTitle("Test meshio04: WriteSTLTriangles emits one facet per face with a unit normal")

	v := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	f := [][3]int{{0, 1, 2}}
	dir := tst.TempDir()
	WriteSTLTriangles(dir, "out.stl", v, f)

	b, err := os.ReadFile(filepath.Join(dir, "out.stl"))
	if err != nil {
		tst.Fatalf("cannot read written STL: %v", err)
	}
	s := string(b)
	if !strings.HasPrefix(s, "solid MIS\n") || !strings.HasSuffix(s, "endsolid MIS\n") {
		tst.Errorf("STL missing solid/endsolid wrapper: %q", s)
	}
	if strings.Count(s, "facet normal") != 1 {
		tst.Errorf("expected exactly 1 facet, got %d", strings.Count(s, "facet normal"))
	}
	if strings.Count(s, "vertex") != 3 {
		tst.Errorf("expected exactly 3 vertex lines, got %d", strings.Count(s, "vertex"))
	}
	if !strings.Contains(s, "facet normal 0 0 1") {
		tst.Errorf("expected an outward +z unit normal, got: %q", s)
	}
}

func Test_meshio05(tst *testing.T) {
	chk.PrintTitle("Test meshio05: WriteSTLQuads splits each quad into 2 triangles")

	v := [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	quads := [][4]int{{0, 1, 2, 3}}
	dir := tst.TempDir()
	WriteSTLQuads(dir, "quad.stl", v, quads)

	b, err := os.ReadFile(filepath.Join(dir, "quad.stl"))
	if err != nil {
		tst.Fatalf("cannot read written STL: %v", err)
	}
	s := string(b)
	if strings.Count(s, "facet normal") != 2 {
		tst.Errorf("expected exactly 2 facets (one quad split in two), got %d", strings.Count(s, "facet normal"))
	}
}
