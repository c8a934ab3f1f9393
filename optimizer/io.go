package optimizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/handle"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
)

// Export writes the `.opt` file  "balancing B\n" followed
// by B booleans (1=filled), then "handles H\n" followed by H lines
// "tx ty tz s".
func Export(dir, fnkey string, grid *voxelgrid.Grid, handles *handle.Set) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "balancing %d\n", grid.NumBoxes)
	for i, f := range grid.Filled {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if f {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "handles %d\n", handles.Len())
	for _, h := range handles.Handles {
		fmt.Fprintf(&sb, "%.17g %.17g %.17g %.17g\n", h.T[0], h.T[1], h.T[2], h.S)
	}
	io.WriteFileSD(dir, fnkey+".opt", sb.String())
	return nil
}

// Import reads back the `.opt` file Export writes, applying it to grid
// and handles in place; the two must already have the shapes (NumBoxes,
// handle count) the file was exported with.
func Import(path string, grid *voxelgrid.Grid, handles *handle.Set) error {
	b, err := utl.ReadFile(path)
	if err != nil {
		return chk.Err("optimizer: cannot read %q: %v", path, err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) < 2 {
		return chk.Err("optimizer: %q is too short to be a .opt file", path)
	}
	var nBoxes int
	if _, err := fmt.Sscanf(lines[0], "balancing %d", &nBoxes); err != nil {
		return chk.Err("optimizer: bad balancing header in %q: %v", path, err)
	}
	flags := strings.Fields(lines[1])
	if len(flags) != nBoxes {
		return chk.Err("optimizer: %q declares %d boxes but has %d fill flags", path, nBoxes, len(flags))
	}
	if len(grid.Filled) != nBoxes {
		return chk.Err("optimizer: grid has %d boxes, .opt file has %d", len(grid.Filled), nBoxes)
	}
	for i, f := range flags {
		grid.Filled[i] = f == "1"
	}

	var nHandles int
	if _, err := fmt.Sscanf(lines[2], "handles %d", &nHandles); err != nil {
		return chk.Err("optimizer: bad handles header in %q: %v", path, err)
	}
	if nHandles != handles.Len() {
		return chk.Err("optimizer: handle set has %d handles, .opt file has %d", handles.Len(), nHandles)
	}
	for j := 0; j < nHandles; j++ {
		fields := strings.Fields(lines[3+j])
		if len(fields) != 4 {
			return chk.Err("optimizer: handle line %d in %q does not have 4 fields", j, path)
		}
		var t [3]float64
		var s float64
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return chk.Err("optimizer: bad translation component in %q line %d: %v", path, j, err)
			}
			t[k] = v
		}
		sv, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return chk.Err("optimizer: bad scale in %q line %d: %v", path, j, err)
		}
		s = sv
		handles.SetT(j, t)
		handles.SetS(j, s)
	}
	return nil
}
