// Package handle implements the set of deformation handles: system
// placed support handles plus user handles, each carrying a translation
// and a uniform scale, blended into vertex and voxel-node poses by BBW
// weights. The per-constraint bookkeeping mirrors gofem's
// fem.EssentialBcs (a handle's support rows are exactly an
// essential-constraint set).
package handle

import "github.com/cpmech/gosl/chk"

// scale clamp.
const (
	sMin = 0.8
	sMax = 1.4
)

// Handle is one control point: rest position, current translation and
// uniform scale, and lock flags. Transform acts as v ↦ s·(v−rest)+t.
type Handle struct {
	Rest      [3]float64
	T         [3]float64
	S         float64
	Locked    bool // translation locked (support handles)
	LockScale bool // scale locked (suspended support handles)

	// NodeIndices are the grid-node rows this handle constrains during
	// BBW: a support polygon's snapped vertices (possibly many) or a
	// single node for a suspension point / user handle.
	NodeIndices []int

	savedT [3]float64
	savedS float64
}

// Set is the ordered collection of handles; support handles (one per
// objective, nbObj of them) occupy indices [0, nbObj) and are laid out
// before user handles.
type Set struct {
	Handles []*Handle
	NbObj   int // number of leading support handles
}

// New builds an empty set; Add appends handles in support-then-user
// order, the caller being responsible for calling support handles
// first so NbObj can be recorded accurately.
func New() *Set {
	return &Set{}
}

// AddSupport appends a support handle (locked translation; scale locked
// too when suspended) and bumps NbObj.
func (s *Set) AddSupport(rest [3]float64, nodes []int, lockScale bool) *Handle {
	h := &Handle{Rest: rest, T: [3]float64{0, 0, 0}, S: 1, Locked: true, LockScale: lockScale, NodeIndices: nodes}
	s.Handles = append(s.Handles, h)
	s.NbObj++
	return h
}

// AddUser appends a user handle bound to a single grid node.
func (s *Set) AddUser(rest [3]float64, node int) *Handle {
	h := &Handle{Rest: rest, T: [3]float64{0, 0, 0}, S: 1, NodeIndices: []int{node}}
	s.Handles = append(s.Handles, h)
	return h
}

// Len returns the number of handles H = nbObj + |user handles|.
func (s *Set) Len() int { return len(s.Handles) }

// Transform applies handle j's similarity transform to v: s(v−r)+t.
func (s *Set) Transform(j int, v [3]float64) [3]float64 {
	h := s.Handles[j]
	return [3]float64{
		h.S*(v[0]-h.Rest[0]) + h.T[0],
		h.S*(v[1]-h.Rest[1]) + h.T[1],
		h.S*(v[2]-h.Rest[2]) + h.T[2],
	}
}

// GradScale returns ∂(transform)/∂s = v − r, used by Optimizer when
// assembling the scale Jacobian column.
func (s *Set) GradScale(j int, v [3]float64) [3]float64 {
	h := s.Handles[j]
	return [3]float64{v[0] - h.Rest[0], v[1] - h.Rest[1], v[2] - h.Rest[2]}
}

// Translate adds Δt to handle j's translation, unless locked.
func (s *Set) Translate(j int, dt [3]float64) {
	h := s.Handles[j]
	if h.Locked {
		return
	}
	h.T[0] += dt[0]
	h.T[1] += dt[1]
	h.T[2] += dt[2]
}

// Scale adds Δs to handle j's scale, clamped to [0.8,1.4], unless scale
// is locked.
func (s *Set) Scale(j int, ds float64) {
	h := s.Handles[j]
	if h.LockScale {
		return
	}
	h.S = clampScale(h.S + ds)
}

// SetT overwrites handle j's translation (ignores the lock, used for
// restoring snapshots or explicit resets).
func (s *Set) SetT(j int, t [3]float64) { s.Handles[j].T = t }

// SetS overwrites handle j's scale, clamped.
func (s *Set) SetS(j int, v float64) { s.Handles[j].S = clampScale(v) }

func clampScale(s float64) float64 {
	if s < sMin {
		return sMin
	}
	if s > sMax {
		return sMax
	}
	return s
}

// SaveState snapshots (t,s) for every handle.
func (s *Set) SaveState() {
	for _, h := range s.Handles {
		h.savedT = h.T
		h.savedS = h.S
	}
}

// RestoreState restores the last SaveState snapshot.
func (s *Set) RestoreState() {
	for _, h := range s.Handles {
		h.T = h.savedT
		h.S = h.savedS
	}
}

// Reset sets every handle back to the identity transform (T=0, S=1).
func (s *Set) Reset() {
	for _, h := range s.Handles {
		h.T = [3]float64{0, 0, 0}
		h.S = 1
	}
}

// Validate checks that every handle resolved to at least one node,
// returning a chk.Err listing the offending index otherwise (cmd/misctl
// snaps every handle to its nearest active node, so this is a final
// guard).
func (s *Set) Validate() error {
	for i, h := range s.Handles {
		if len(h.NodeIndices) == 0 {
			return chk.Err("handle %d has no constraint nodes", i)
		}
	}
	return nil
}
