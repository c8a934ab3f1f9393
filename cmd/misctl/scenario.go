package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/mesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/support"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

// scenario is the CLI's own thin stand-in for a scene-description
// collaborator: it builds a handle.Set and the matching
// []support.Objective the rest of the pipeline needs directly from CLI
// flags, separately from the `.mis` parameter stream config.Params
// parses into driver.Config/optimizer.Config.
type scenario struct {
	SupportVerts []int        // mesh vertex indices forming the standing contact polygon
	Gravity      [3]float64   // standing objective's gravity direction
	Shrink       float64      // stability-zone shrink fraction
	AngleObj     float64      // toppling-angle objective, radians
	Suspend      *[3]float64  // optional second objective: a suspension point
	SuspendAngle float64      // suspended objective's deviation-angle objective
	UserPoints   [][3]float64 // extra user handles, rest position in mesh space
}

// build snaps every standing polygon vertex and every user handle to
// its nearest grid node, in the order (standing, [suspended], user),
// and assembles the resulting handle.Set and matching objectives.
func (s scenario) build(m *mesh.Mesh, grid *voxelgrid.Grid) (*handle.Set, []support.Objective, error) {
	if len(s.SupportVerts) < 3 {
		return nil, nil, chk.Err("scenario: need at least 3 support vertices, got %d", len(s.SupportVerts))
	}
	hs := handle.New()
	var objectives []support.Objective

	verts := make([][3]float64, len(s.SupportVerts))
	for i, vi := range s.SupportVerts {
		if vi < 0 || vi >= len(m.V) {
			return nil, nil, chk.Err("scenario: support vertex index %d out of range (mesh has %d vertices)", vi, len(m.V))
		}
		verts[i] = m.V[vi]
	}
	polygon := support.NewPolygon(verts, s.Gravity, s.Shrink, s.AngleObj)
	objectives = append(objectives, polygon)

	nodes := make([]int, 0, len(verts))
	seen := make(map[int]bool)
	for _, v := range verts {
		ni := nearestNode(grid, v)
		if !seen[ni] {
			seen[ni] = true
			nodes = append(nodes, ni)
		}
	}
	hs.AddSupport(polygon.Centroid(), nodes, false)

	if s.Suspend != nil {
		sp := support.NewSuspensionPoint(*s.Suspend, s.Gravity, s.SuspendAngle)
		objectives = append(objectives, sp)
		hs.AddSupport(*s.Suspend, []int{nearestNode(grid, *s.Suspend)}, true)
	}

	for _, p := range s.UserPoints {
		hs.AddUser(p, nearestNode(grid, p))
	}

	if err := hs.Validate(); err != nil {
		return nil, nil, err
	}
	return hs, objectives, nil
}

// nearestNode returns the active grid node whose rest position is
// closest to p (Euclidean), a linear scan adequate at CLI scale.
func nearestNode(grid *voxelgrid.Grid, p [3]float64) int {
	best := 0
	bestD := dist2(grid.NodeRest[0], p)
	for i, n := range grid.NodeRest {
		if d := dist2(n, p); d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

func dist2(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

// parseInts parses a "1,2,3" flag value into a slice of ints.
func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("bad integer %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

// parsePoint parses a "x,y,z" flag value into a point.
func parsePoint(s string) ([3]float64, error) {
	var p [3]float64
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return p, fmt.Errorf("expected \"x,y,z\", got %q", s)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return p, fmt.Errorf("bad coordinate %q: %w", f, err)
		}
		p[i] = v
	}
	return p, nil
}
