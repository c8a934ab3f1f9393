// Package deform holds the per-vertex and per-node skinning state shared
// by Mesh and VoxelGrid: a rest pose, a set of handle blend weights, and
// the current pose they combine to produce.
package deform

import "github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"

// Deformable is one node of the deformation space: a rest position, a
// vector of non-negative handle weights summing to one, and the pose
// that results from blending the handles' transforms by those weights.
// A Deformable never references a *handle.Set directly; weights are
// looked up by index and handles are passed in by the caller.
type Deformable struct {
	Rest    [3]float64 // rest pose r
	W       []float64  // handle weights, len == number of handles
	Current [3]float64 // current pose c
}

// New allocates a Deformable at the given rest position with nh handle
// weight slots, all initially zero, and its current pose starting at
// the rest position.
func New(rest [3]float64, nh int) *Deformable {
	return &Deformable{Rest: rest, W: make([]float64, nh), Current: rest}
}

// PushWeight accumulates a weight contribution for handle j (BBW solves
// one handle at a time and pushes its solution column in).
func (d *Deformable) PushWeight(j int, w float64) {
	if j >= len(d.W) {
		grown := make([]float64, j+1)
		copy(grown, d.W)
		d.W = grown
	}
	d.W[j] += w
}

// NormalizeWeights rescales W to sum to one. A Deformable with all-zero
// weights (never reached by BBW) is left untouched rather than divided
// by zero.
func (d *Deformable) NormalizeWeights() {
	sum := 0.0
	for _, w := range d.W {
		sum += w
	}
	if sum <= 0 {
		return
	}
	for i := range d.W {
		d.W[i] /= sum
	}
}

// ComputeCurrentPose sets Current = Σⱼ wⱼ·(sⱼ(Rest−rⱼ)+tⱼ).
func (d *Deformable) ComputeCurrentPose(handles *handle.Set) {
	var c [3]float64
	for j := 0; j < handles.Len() && j < len(d.W); j++ {
		if d.W[j] == 0 {
			continue
		}
		tv := handles.Transform(j, d.Rest)
		c[0] += d.W[j] * tv[0]
		c[1] += d.W[j] * tv[1]
		c[2] += d.W[j] * tv[2]
	}
	d.Current = c
}
