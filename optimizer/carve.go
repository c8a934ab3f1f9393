package optimizer

import (
	"math"
	"sort"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/support"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

// BalanceByPlaneCarving implements the single-objective inner balancer:
// starting from all-filled, find the prefix (sorted by
// descending projection onto the COM-offset direction) of boxes beyond
// hullDepth whose removal minimises the projected COM energy, and carve
// exactly that prefix.
func BalanceByPlaneCarving(grid *voxelgrid.Grid, outerMass float64, outerCOM [3]float64, target support.Objective, hullDepth int) {
	grid.ClearCarving()

	hat := horizontalOffset(outerCOM, target.Target(), target.Gravity())
	n := normOf(hat)
	if n < 1e-12 {
		return // already centred; nothing to carve
	}
	d := scale3(hat, 1/n)

	type cand struct {
		box  int
		proj float64
		mass float64
		com  [3]float64
	}
	var cands []cand
	for k := 0; k < grid.NumBoxes; k++ {
		if grid.Depth[k] <= hullDepth {
			continue
		}
		mass, com := grid.BoxCenterOfMass(k)
		proj := dot3(sub3(com, target.Target()), d)
		if proj <= 0 {
			continue
		}
		cands = append(cands, cand{k, proj, mass, com})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].proj > cands[j].proj })

	var c2 [3]float64
	var mass2 float64
	bestIdx := -1
	bestEnergy := math.Inf(1)
	for i, c := range cands {
		mass2 -= c.mass
		c2 = addMomentRemoval(c2, c.mass, c.com)

		trialMass := outerMass + mass2
		if trialMass <= 0 {
			continue
		}
		var trialCOM [3]float64
		for k := 0; k < 3; k++ {
			trialCOM[k] = (outerCOM[k]*outerMass + c2[k]) / trialMass
		}
		trialHat := horizontalOffset(trialCOM, target.Target(), target.Gravity())
		energy := 0.5 * dot3(trialHat, trialHat)
		if energy < bestEnergy {
			bestEnergy = energy
			bestIdx = i
		}
	}

	for i := 0; i <= bestIdx && i < len(cands); i++ {
		grid.Filled[cands[i].box] = false
	}
}

// addMomentRemoval subtracts box mass*com's moment contribution from
// the running inner-candidate moment accumulator c2.
func addMomentRemoval(c2 [3]float64, mass float64, com [3]float64) [3]float64 {
	for k := 0; k < 3; k++ {
		c2[k] -= mass * com[k]
	}
	return c2
}

func normOf(v [3]float64) float64 { return math.Sqrt(dot3(v, v)) }

// BalanceByPlaneCarvingMulti implements the multi-objective variant:
// a candidate box must have positive signed distance
// under *both* gravities' offset directions; candidates are sorted by
// the sum of the two signed distances, and the carved prefix minimises
// the sum of the two objectives' ½‖ĉⱼ‖² energies.
func BalanceByPlaneCarvingMulti(grid *voxelgrid.Grid, outerMass float64, outerCOM [3]float64, targets []support.Objective, hullDepth int) {
	grid.ClearCarving()
	if len(targets) != 2 {
		return
	}
	hat0 := horizontalOffset(outerCOM, targets[0].Target(), targets[0].Gravity())
	hat1 := horizontalOffset(outerCOM, targets[1].Target(), targets[1].Gravity())
	n0, n1 := normOf(hat0), normOf(hat1)
	if n0 < 1e-12 || n1 < 1e-12 {
		return
	}
	d0 := scale3(hat0, 1/n0)
	d1 := scale3(hat1, 1/n1)

	type cand struct {
		box     int
		sumProj float64
		mass    float64
		com     [3]float64
	}
	var cands []cand
	for k := 0; k < grid.NumBoxes; k++ {
		if grid.Depth[k] <= hullDepth {
			continue
		}
		mass, com := grid.BoxCenterOfMass(k)
		p0 := dot3(sub3(com, targets[0].Target()), d0)
		p1 := dot3(sub3(com, targets[1].Target()), d1)
		if p0 <= 0 || p1 <= 0 {
			continue
		}
		cands = append(cands, cand{k, p0 + p1, mass, com})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].sumProj > cands[j].sumProj })

	var c2 [3]float64
	var mass2 float64
	bestIdx := -1
	bestEnergy := math.Inf(1)
	for i, c := range cands {
		mass2 -= c.mass
		c2 = addMomentRemoval(c2, c.mass, c.com)

		trialMass := outerMass + mass2
		if trialMass <= 0 {
			continue
		}
		var trialCOM [3]float64
		for k := 0; k < 3; k++ {
			trialCOM[k] = (outerCOM[k]*outerMass + c2[k]) / trialMass
		}
		e0 := 0.5 * dot3(horizontalOffset(trialCOM, targets[0].Target(), targets[0].Gravity()), horizontalOffset(trialCOM, targets[0].Target(), targets[0].Gravity()))
		e1 := 0.5 * dot3(horizontalOffset(trialCOM, targets[1].Target(), targets[1].Gravity()), horizontalOffset(trialCOM, targets[1].Target(), targets[1].Gravity()))
		energy := e0 + e1
		if energy < bestEnergy {
			bestEnergy = energy
			bestIdx = i
		}
	}

	for i := 0; i <= bestIdx && i < len(cands); i++ {
		grid.Filled[cands[i].box] = false
	}
}
