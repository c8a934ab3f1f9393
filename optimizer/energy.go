package optimizer

import (
	"gonum.org/v1/gonum/mat"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/innermesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/mesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/support"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

// State is the per-iteration snapshot of mass/COM and their gradients
// Optimizer needs from Mesh and InnerMesh: each surface's own mass/COM
// (CombinedCOM blends the two) plus each surface's raw,
// undivided moment-sum gradients wrt its own vertex/node positions.
type State struct {
	MassO float64
	ComO  [3]float64
	DmO   [][3]float64    // per-vertex ∇mass (raw, undivided)
	DcO   [][3][3]float64 // per-vertex ∂(raw moment sum)/∂vertex

	MassI float64
	ComI  [3]float64
	DmI   [][3]float64
	DcI   [][3][3]float64
}

// Measure evaluates the current State from Mesh and InnerMesh, which
// must already reflect the current handle poses.
func Measure(m *mesh.Mesh, grid *voxelgrid.Grid, im *innermesh.InnerMesh) State {
	var st State
	st.MassO, st.ComO = m.MassAndCenterOfMass()
	st.DmO, st.DcO = m.MassGradients()
	st.MassI, st.ComI = im.MassAndCenterOfMass(grid)
	st.DmI, st.DcI = im.MassGradients(grid)
	return st
}

// CombinedCOM returns the combined outer+inner total mass and centre of
// mass.
func (s State) CombinedCOM() (mass float64, com [3]float64) {
	mass = s.MassO + s.MassI
	if mass <= 0 {
		return mass, com
	}
	for k := 0; k < 3; k++ {
		com[k] = (s.ComO[k]*s.MassO + s.ComI[k]*s.MassI) / mass
	}
	return mass, com
}

// Energy computes E = (1−μ)·Σⱼ E_C,j + μ·λ·E_L,
func Energy(s State, cfg Config, objectives []support.Objective, mv []float64) float64 {
	_, com := s.CombinedCOM()
	var ec float64
	for _, obj := range objectives {
		hat := horizontalOffset(com, obj.Target(), obj.Gravity())
		ec += 0.5 * dot3(hat, hat)
	}
	el := 0.5 * dot(mv, mv)
	return (1-cfg.Mu)*ec + cfg.Mu*cfg.Lambda*el
}

// Gradient returns ∂E/∂(every handle's Tx,Ty,Tz,S), in the same handle
// order as Prepare saw. mv is M·v_O (Mesh.ApplyM applied to the
// flattened current outer-vertex vector), reused from the caller's
// Energy computation so it is only computed once per iteration.
func (o *Optimizer) Gradient(s State, cfg Config, objectives []support.Objective, mv []float64) (gradT [3][]float64, gradS []float64) {
	mass, com := s.CombinedCOM()

	// Σⱼ ĉⱼ, accumulated once since every handle parameter's dc/dα
	// contracts against the same weighted sum.
	var sumHat [3]float64
	for _, obj := range objectives {
		hat := horizontalOffset(com, obj.Target(), obj.Gravity())
		sumHat = add3(sumHat, hat)
	}

	for a := 0; a < 3; a++ {
		gradT[a] = make([]float64, o.NH)
	}
	gradS = make([]float64, o.NH)

	for j := 0; j < o.NH; j++ {
		for a := 0; a < 3; a++ {
			dcdalpha := dcDAlpha(s, mass, com, colOf(o.DvOdT[a], j), colOf(o.DvIdT[a], j))
			dEC := dot3(sumHat, dcdalpha)
			dEL := dot(colOf(o.MMDvOdT[a], j), mv)
			gradT[a][j] = (1-cfg.Mu)*dEC + cfg.Mu*cfg.Lambda*dEL
		}
		if cfg.UseScaling {
			dcdalpha := dcDAlpha(s, mass, com, colOf(o.DvOdS, j), colOf(o.DvIdS, j))
			dEC := dot3(sumHat, dcdalpha)
			dEL := dot(colOf(o.MMDvOdS, j), mv)
			gradS[j] = (1-cfg.Mu)*dEC + cfg.Mu*cfg.Lambda*dEL
		}
	}
	return
}

// dcDAlpha implements 
//  dc/dα = (dc_O/24 − (COM/6)·dm_O)/m_total · dv_O/dα + (dc_I/24 − (COM/6)·dm_I)/m_total · dv_I/dα
func dcDAlpha(s State, mTotal float64, com [3]float64, dvO, dvI []float64) [3]float64 {
	var out [3]float64
	if mTotal <= 0 {
		return out
	}
	out = add3(out, contractSurface(s.DcO, s.DmO, com, dvO))
	out = add3(out, contractSurface(s.DcI, s.DmI, com, dvI))
	return scale3(out, 1/mTotal)
}

// contractSurface contracts one surface's per-vertex mass/moment
// gradients against a flattened 3N Jacobian column dv, producing
// (Σᵢ dcᵢ·dvᵢ)/24 − COM·(Σᵢ dmᵢ·dvᵢ)/6.
func contractSurface(dc [][3][3]float64, dm [][3]float64, com [3]float64, dv []float64) [3]float64 {
	var vecDC [3]float64
	var scalarDM float64
	n := len(dm)
	for i := 0; i < n; i++ {
		vi := [3]float64{dv[3*i], dv[3*i+1], dv[3*i+2]}
		scalarDM += dot3(dm[i], vi)
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				vecDC[a] += dc[i][a][b] * vi[b]
			}
		}
	}
	return sub3(scale3(vecDC, 1.0/24), scale3(com, scalarDM/6))
}

// ApplyGradEnergy steps every unlocked handle by −step·∇E, clamping
// scale via handles.Scale. Locked (support) handles are skipped
// entirely: they never translate or scale.
func ApplyGradEnergy(handles *handle.Set, cfg Config, gradT [3][]float64, gradS []float64) {
	for j := 0; j < handles.Len(); j++ {
		h := handles.Handles[j]
		if h.Locked {
			continue
		}
		dt := [3]float64{-cfg.Step * gradT[0][j], -cfg.Step * gradT[1][j], -cfg.Step * gradT[2][j]}
		handles.Translate(j, dt)
		if cfg.UseScaling && !h.LockScale {
			handles.Scale(j, -cfg.Step*gradS[j])
		}
	}
}

func colOf(D *mat.Dense, j int) []float64 {
	r, _ := D.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = D.At(i, j)
	}
	return out
}

func horizontalOffset(com, target, g [3]float64) [3]float64 {
	d := sub3(com, target)
	return sub3(d, scale3(g, dot3(d, g)))
}

func dot3(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func add3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}
func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}
func scale3(a [3]float64, s float64) [3]float64 { return [3]float64{a[0] * s, a[1] * s, a[2] * s} }

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
