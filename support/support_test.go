package support

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func squarePolygon(half float64) [][3]float64 {
	return [][3]float64{
		{-half, 0, -half},
		{half, 0, -half},
		{half, 0, half},
		{-half, 0, half},
	}
}

func Test_support01(tst *testing.T) {
	chk.PrintTitle("Test support01: a centered COM is Stable on a square support polygon")

	p := NewPolygon(squarePolygon(0.5), [3]float64{0, -1, 0}, 0.1, 0.3)
	com := [3]float64{0, 1, 0}
	p.Retarget(com)
	utl.CheckScalar(tst, "target.x", 1e-12, p.Target()[0], 0)
	utl.CheckScalar(tst, "target.z", 1e-12, p.Target()[2], 0)
	if p.ToppleState(com) != Stable {
		tst.Errorf("expected Stable for a COM directly above the polygon centroid")
	}
}

func Test_support02(tst *testing.T) {
	chk.PrintTitle("Test support02: an off-center COM outside the polygon is OffSupport")

	p := NewPolygon(squarePolygon(0.5), [3]float64{0, -1, 0}, 0.1, 0.3)
	com := [3]float64{5, 1, 0}
	p.Retarget(com)
	if p.ToppleState(com) != OffSupport {
		tst.Errorf("expected OffSupport for a COM far outside the polygon's projection")
	}
}

func Test_support03(tst *testing.T) {
	chk.PrintTitle("Test support03: Retarget clamps into the shrunk stability zone")

	p := NewPolygon(squarePolygon(0.5), [3]float64{0, -1, 0}, 0.5, 0.3)
	// project to a point on the original polygon's edge; the shrunk
	// (50%) zone should clamp the target well inside x=0.5.
	p.Retarget([3]float64{0.5, 1, 0})
	if p.Target()[0] >= 0.5 {
		tst.Errorf("Target().x = %v, want < 0.5 (clamped into the shrunk zone)", p.Target()[0])
	}
}

func Test_support04(tst *testing.T) {
	chk.PrintTitle("Test support04: a suspension point is Stable only within its deviation angle")

	sp := NewSuspensionPoint([3]float64{0, 0, 0}, [3]float64{0, -1, 0}, 0.2)
	if sp.ToppleState([3]float64{0, -1, 0}) != Stable {
		tst.Errorf("expected Stable for a COM hanging straight down from the suspension point")
	}
	// deviate by more than 0.2 rad
	theta := 0.5
	com := [3]float64{math.Sin(theta), -math.Cos(theta), 0}
	if sp.ToppleState(com) != Unstable {
		tst.Errorf("expected Unstable for a %v rad deviation beyond the 0.2 rad objective", theta)
	}
}

func Test_support05(tst *testing.T) {
	chk.PrintTitle("Test support05: polyCentroid and Polygon/Centroid/Gravity/Standing accessors")

	verts := squarePolygon(1.0)
	p := NewPolygon(verts, [3]float64{0, -2, 0}, 0.1, 0.3)
	utl.CheckScalar(tst, "centroid.x", 1e-12, p.Centroid()[0], 0)
	utl.CheckScalar(tst, "centroid.y", 1e-12, p.Centroid()[1], 0)
	utl.CheckScalar(tst, "centroid.z", 1e-12, p.Centroid()[2], 0)
	if !p.Standing() {
		tst.Errorf("Polygon.Standing() should be true")
	}
	g := p.Gravity()
	utl.CheckScalar(tst, "|gravity|", 1e-12, g[0]*g[0]+g[1]*g[1]+g[2]*g[2], 1.0)

	sp := NewSuspensionPoint([3]float64{1, 2, 3}, [3]float64{0, -1, 0}, 0.2)
	if sp.Standing() {
		tst.Errorf("SuspensionPoint.Standing() should be false")
	}
}
