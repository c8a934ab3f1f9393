// Package driver implements the outer iteration loop 
// step/μ schedule, energy-decrease guard with snapshot/rollback, and
// convergence against the Support objectives. Grounded on gofem's own
// fem.Solver load-stepping loop (solver.go's "apply step, check
// residual, halve step or advance" control flow) and msolid.Driver's
// use of gosl/utl banners for per-iteration logging.
package driver

import (
	"github.com/cpmech/gosl/utl"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/innermesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/mesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/optimizer"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/support"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

// Config holds the driver's own schedule parameters, on
// top of optimizer.Config (μ, λ, step, hull depth, use-scaling) which
// the driver owns and mutates over the run.
type Config struct {
	StartStep       float64
	MinStepDecay    float64 // threshold below which μ decays instead of step
	MuDecay         float64 // default 0.05
	MuFloor         float64 // default 0.05
	InsufficientRel float64 // default -0.03, relative decrease threshold
	FixedMu         bool
}

// DefaultConfig returns the default outer-loop schedule constants.
func DefaultConfig() Config {
	return Config{
		StartStep:       1.0,
		MinStepDecay:    0.4,
		MuDecay:         0.05,
		MuFloor:         0.05,
		InsufficientRel: -0.03,
	}
}

// Result is what one Step call reports back to the caller.
type Result int

const (
	// ResultContinue means the driver made an attempt; call Step again.
	ResultContinue Result = iota
	// ResultDone means every objective reached support.Stable.
	ResultDone
	// ResultTerminated means the schedule exhausted itself with no
	// further progress possible.
	ResultTerminated
)

// Driver owns the full object graph and runs the
// outer iteration.
type Driver struct {
	Mesh       *mesh.Mesh
	Grid       *voxelgrid.Grid
	Handles    *handle.Set
	Inner      *innermesh.InnerMesh
	Opt        *optimizer.Optimizer
	Objectives []support.Objective

	Cfg    Config
	OptCfg optimizer.Config
}

// New wires a Driver around an already-voxelised, already-BBW'd object
// graph; Opt.Prepare must already have run.
func New(m *mesh.Mesh, grid *voxelgrid.Grid, handles *handle.Set, opt *optimizer.Optimizer, objectives []support.Objective, cfg Config, optCfg optimizer.Config) *Driver {
	return &Driver{
		Mesh: m, Grid: grid, Handles: handles, Opt: opt,
		Objectives: objectives, Cfg: cfg, OptCfg: optCfg,
		Inner: innermesh.Compute(grid),
	}
}

// Reset resets step, μ, handles, and forces a full re-balance.
func (d *Driver) Reset(optCfg optimizer.Config) {
	d.OptCfg = optCfg
	d.OptCfg.Step = d.Cfg.StartStep
	d.Handles.Reset()
	d.Grid.ClearCarving()
}

// Step runs one outer-iteration attempt.
func (d *Driver) Step() Result {
	before := d.measure()
	d.retarget(before)
	if d.allObjectivesMet(before) {
		return ResultDone
	}

	d.Handles.SaveState()
	eBefore := d.energyOf(before)

	d.applyAndRebalance(before)
	after := d.measure()
	d.retarget(after)
	eAfter := d.energyOf(after)

	if eAfter > eBefore {
		d.Handles.RestoreState()
		d.Grid.UpdatePoses(d.Handles)
		d.Mesh.UpdatePoses(d.Handles)
		d.Inner = innermesh.Compute(d.Grid)
		utl.PfRed("driver: energy increased (%.6g -> %.6g); rolled back\n", eBefore, eAfter)
		return ResultContinue
	}

	utl.Pfblue2("driver: step=%.3g mu=%.3g E: %.6g -> %.6g\n", d.OptCfg.Step, d.OptCfg.Mu, eBefore, eAfter)

	rel := (eAfter - eBefore) / eBefore
	if rel > d.Cfg.InsufficientRel {
		if d.OptCfg.Step > d.Cfg.MinStepDecay {
			d.OptCfg.Step *= 0.8
		} else if d.OptCfg.Mu > d.Cfg.MuFloor && !d.Cfg.FixedMu {
			d.OptCfg.Step = d.Cfg.StartStep
			d.OptCfg.Mu -= d.Cfg.MuDecay
		} else {
			utl.PfYel("driver: no further progress possible, terminating\n")
			return ResultTerminated
		}
	}
	return ResultContinue
}

// retarget recomputes every objective's Target() from the given state's
// combined COM (support.Objective.Retarget's documented contract).
func (d *Driver) retarget(st optimizer.State) {
	_, com := st.CombinedCOM()
	for _, obj := range d.Objectives {
		obj.Retarget(com)
	}
}

func (d *Driver) allObjectivesMet(st optimizer.State) bool {
	if len(d.Objectives) == 0 {
		return false
	}
	_, com := st.CombinedCOM()
	for _, obj := range d.Objectives {
		if obj.ToppleState(com) != support.Stable {
			return false
		}
	}
	return true
}

func (d *Driver) measure() optimizer.State {
	return optimizer.Measure(d.Mesh, d.Grid, d.Inner)
}

func (d *Driver) energyOf(st optimizer.State) float64 {
	mv := d.Mesh.ApplyM(flattenPoses(d.Mesh))
	return optimizer.Energy(st, d.OptCfg, d.Objectives, mv)
}

// applyAndRebalance applies one gradient step, updates poses, and
// plane-carves.
func (d *Driver) applyAndRebalance(st optimizer.State) {
	mv := d.Mesh.ApplyM(flattenPoses(d.Mesh))
	gradT, gradS := d.Opt.Gradient(st, d.OptCfg, d.Objectives, mv)
	optimizer.ApplyGradEnergy(d.Handles, d.OptCfg, gradT, gradS)

	d.Mesh.UpdatePoses(d.Handles)
	d.Grid.UpdatePoses(d.Handles)

	mass, com := st.CombinedCOM()
	switch len(d.Objectives) {
	case 1:
		optimizer.BalanceByPlaneCarving(d.Grid, mass, com, d.Objectives[0], d.OptCfg.HullDepth)
	case 2:
		optimizer.BalanceByPlaneCarvingMulti(d.Grid, mass, com, d.Objectives, d.OptCfg.HullDepth)
	}
	d.Inner = innermesh.Compute(d.Grid)
}

func flattenPoses(m *mesh.Mesh) []float64 {
	out := make([]float64, 3*len(m.V))
	for i := range m.V {
		p := m.Pose(i)
		out[3*i], out[3*i+1], out[3*i+2] = p[0], p[1], p[2]
	}
	return out
}
