package handle

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_handle01(tst *testing.T) {
	chk.PrintTitle("Test handle01: support-then-user ordering and NbObj bookkeeping")

	s := New()
	s.AddSupport([3]float64{0, 0, 0}, []int{1, 2, 3}, false)
	s.AddSupport([3]float64{1, 1, 1}, []int{4}, true)
	s.AddUser([3]float64{0.5, 0.5, 0.5}, 5)

	if s.NbObj != 2 {
		tst.Errorf("NbObj = %d, want 2", s.NbObj)
	}
	if s.Len() != 3 {
		tst.Errorf("Len() = %d, want 3", s.Len())
	}
	if err := s.Validate(); err != nil {
		tst.Errorf("Validate failed on a well-formed set: %v", err)
	}
}

func Test_handle02(tst *testing.T) {
	chk.PrintTitle("Test handle02: locked support handles ignore Translate")

	s := New()
	s.AddSupport([3]float64{0, 0, 0}, []int{0}, false)
	s.Translate(0, [3]float64{1, 1, 1})
	h := s.Handles[0]
	if h.T != [3]float64{0, 0, 0} {
		tst.Errorf("locked handle translated: T = %v, want zero", h.T)
	}
}

func Test_handle03(tst *testing.T) {
	chk.PrintTitle("Test handle03: scale lock blocks Scale, clamp bounds [0.8,1.4]")

	s := New()
	s.AddSupport([3]float64{0, 0, 0}, []int{0}, true) // locked scale
	s.Scale(0, 0.1)
	if s.Handles[0].S != 1 {
		tst.Errorf("scale-locked handle scaled: S = %v, want 1", s.Handles[0].S)
	}

	s.AddUser([3]float64{0, 0, 0}, 1)
	s.SetS(1, 10) // far above sMax
	utl.CheckScalar(tst, "clamped high", 1e-12, s.Handles[1].S, sMax)
	s.SetS(1, -5) // far below sMin
	utl.CheckScalar(tst, "clamped low", 1e-12, s.Handles[1].S, sMin)
}

func Test_handle04(tst *testing.T) {
	chk.PrintTitle("Test handle04: SaveState/RestoreState round-trips (t,s)")

	s := New()
	s.AddUser([3]float64{0, 0, 0}, 0)
	s.SaveState()
	s.Translate(0, [3]float64{1, 2, 3})
	s.Scale(0, 0.1)
	s.RestoreState()
	h := s.Handles[0]
	if h.T != [3]float64{0, 0, 0} || h.S != 1 {
		tst.Errorf("RestoreState did not revert: T=%v S=%v", h.T, h.S)
	}
}

func Test_handle05(tst *testing.T) {
	chk.PrintTitle("Test handle05: Validate rejects a handle with no constraint nodes")

	s := New()
	s.AddUser([3]float64{0, 0, 0}, 0)
	s.Handles[0].NodeIndices = nil
	if err := s.Validate(); err == nil {
		tst.Errorf("expected Validate to reject a handle with no nodes")
	}
}

func Test_handle06(tst *testing.T) {
	chk.PrintTitle("Test handle06: Reset zeroes translation and unit-scales every handle")

	s := New()
	s.AddUser([3]float64{0, 0, 0}, 0)
	s.Translate(0, [3]float64{1, 1, 1})
	s.Scale(0, 0.2)
	s.Reset()
	h := s.Handles[0]
	if h.T != [3]float64{0, 0, 0} || h.S != 1 {
		tst.Errorf("Reset left T=%v S=%v", h.T, h.S)
	}
}
