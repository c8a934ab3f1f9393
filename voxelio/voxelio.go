// Package voxelio persists the VoxelGrid text formats 
// the `.vox` box-index table and the `.bbw` per-node weight table.
// Grounded on gofem's inp.ReadMsh (gosl/utl.ReadFile + manual parsing
// rather than a generic table reader) and io.WriteFileSD, the same pair
// inp/t_read_test.go exercises for round-tripping a parsed database.
package voxelio

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// SaveVox writes boxIdx (length R³, x,y,z lexicographic, -1 for empty)
// to a whitespace-separated `.vox` file.
func SaveVox(dir, fnkey string, boxIdx []int32) error {
	var sb strings.Builder
	for i, v := range boxIdx {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	sb.WriteByte('\n')
	io.WriteFileSD(dir, fnkey+".vox", sb.String())
	return nil
}

// LoadVox reads a `.vox` file back into a boxIdx slice.
func LoadVox(path string) ([]int32, error) {
	b, err := utl.ReadFile(path)
	if err != nil {
		return nil, chk.Err("voxelio: cannot read %q: %v", path, err)
	}
	fields := strings.Fields(string(b))
	out := make([]int32, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, chk.Err("voxelio: %q is not a valid boxIdx entry at position %d", f, i)
		}
		out[i] = int32(v)
	}
	return out, nil
}

// SaveBBW writes one line per active node, H whitespace-separated
// weights summing to 1.
func SaveBBW(dir, fnkey string, weights [][]float64) error {
	var sb strings.Builder
	for _, row := range weights {
		for j, w := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(w, 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}
	io.WriteFileSD(dir, fnkey+".bbw", sb.String())
	return nil
}

// LoadBBW reads a `.bbw` file back into a [node][handle] weight table.
func LoadBBW(path string) ([][]float64, error) {
	b, err := utl.ReadFile(path)
	if err != nil {
		return nil, chk.Err("voxelio: cannot read %q: %v", path, err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	out := make([][]float64, 0, len(lines))
	for li, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, chk.Err("voxelio: bad weight %q at line %d col %d", f, li, j)
			}
			row[j] = v
		}
		out = append(out, row)
	}
	return out, nil
}
