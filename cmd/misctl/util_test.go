package main

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

func Test_util01(tst *testing.T) {
	chk.PrintTitle("Test util01: dirOf/baseOf split a prefix into directory and file key")

	if got := dirOf("out/run1"); got != "out" {
		tst.Errorf("dirOf(\"out/run1\") = %q, want \"out\"", got)
	}
	if got := baseOf("out/run1"); got != "run1" {
		tst.Errorf("baseOf(\"out/run1\") = %q, want \"run1\"", got)
	}
	if got := dirOf("run1"); got != "." {
		tst.Errorf("dirOf(\"run1\") = %q, want \".\"", got)
	}
}

func Test_util02(tst *testing.T) {
	chk.PrintTitle("Test util02: parseInts parses a comma-separated int list")

	got, err := parseInts(" 1, 2,3 ")
	if err != nil {
		tst.Fatalf("parseInts failed: %v", err)
	}
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		tst.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			tst.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	empty, err := parseInts("  ")
	if err != nil || empty != nil {
		tst.Errorf("expected (nil, nil) for a blank string, got (%v, %v)", empty, err)
	}

	if _, err := parseInts("1,bogus"); err == nil {
		tst.Errorf("expected an error for a non-numeric entry")
	}
}

func Test_util03(tst *testing.T) {
	chk.PrintTitle("Test util03: parsePoint parses an \"x,y,z\" triple")

	p, err := parsePoint("0.5, -1, 2")
	if err != nil {
		tst.Fatalf("parsePoint failed: %v", err)
	}
	utl.CheckScalar(tst, "p.x", 1e-12, p[0], 0.5)
	utl.CheckScalar(tst, "p.y", 1e-12, p[1], -1)
	utl.CheckScalar(tst, "p.z", 1e-12, p[2], 2)

	if _, err := parsePoint("0,1"); err == nil {
		tst.Errorf("expected an error for a 2-component point")
	}
	if _, err := parsePoint("0,1,bogus"); err == nil {
		tst.Errorf("expected an error for a non-numeric component")
	}
}

func Test_util04(tst *testing.T) {
	chk.PrintTitle("Test util04: dist2 is squared Euclidean distance")

	d := dist2([3]float64{0, 0, 0}, [3]float64{3, 4, 0})
	utl.CheckScalar(tst, "dist2", 1e-12, d, 25)
}

func Test_util05(tst *testing.T) {
	chk.PrintTitle("Test util05: nearestNode picks the closest active grid node by rest position")

	R := 2
	g := voxelgrid.New(R)
	occ := make(voxelgrid.Occupancy, R*R*R)
	for i := range occ {
		occ[i] = 1
	}
	g.InitVoxels(occ, nil)
	g.InitStructure()

	ni := nearestNode(g, [3]float64{0.02, 0.02, 0.02})
	want := g.NodeRest[ni]
	utl.CheckScalar(tst, "nearest.x", 1e-12, want[0], 0)
	utl.CheckScalar(tst, "nearest.y", 1e-12, want[1], 0)
	utl.CheckScalar(tst, "nearest.z", 1e-12, want[2], 0)
}
