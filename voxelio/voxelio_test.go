package voxelio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_voxelio01(tst *testing.T) {
	chk.PrintTitle("Test voxelio01: SaveVox/LoadVox round-trips a box-index lattice")

	boxIdx := []int32{-1, 0, 1, -1, 2, -1, 3, 4}
	dir := tst.TempDir()
	if err := SaveVox(dir, "grid", boxIdx); err != nil {
		tst.Fatalf("SaveVox failed: %v", err)
	}
	got, err := LoadVox(filepath.Join(dir, "grid.vox"))
	if err != nil {
		tst.Fatalf("LoadVox failed: %v", err)
	}
	if len(got) != len(boxIdx) {
		tst.Fatalf("len(got) = %d, want %d", len(got), len(boxIdx))
	}
	for i := range boxIdx {
		if got[i] != boxIdx[i] {
			tst.Errorf("boxIdx[%d] = %d, want %d", i, got[i], boxIdx[i])
		}
	}
}

func Test_voxelio02(tst *testing.T) {
	chk.PrintTitle("Test voxelio02: LoadVox rejects a non-numeric entry")

	dir := tst.TempDir()
	if err := SaveVox(dir, "grid", []int32{0, 1}); err != nil {
		tst.Fatalf("SaveVox failed: %v", err)
	}
	path := filepath.Join(dir, "grid.vox")
	if err := os.WriteFile(path, []byte("0 notAnInt\n"), 0644); err != nil {
		tst.Fatalf("cannot overwrite fixture: %v", err)
	}
	if _, err := LoadVox(path); err == nil {
		tst.Errorf("expected an error for a non-numeric boxIdx entry")
	}
}

func Test_voxelio03(tst *testing.T) {
	chk.PrintTitle("Test voxelio03: SaveBBW/LoadBBW round-trips a per-node weight table")

	weights := [][]float64{
		{1, 0, 0},
		{0.25, 0.75, 0},
		{0, 0, 1},
	}
	dir := tst.TempDir()
	if err := SaveBBW(dir, "w", weights); err != nil {
		tst.Fatalf("SaveBBW failed: %v", err)
	}
	got, err := LoadBBW(filepath.Join(dir, "w.bbw"))
	if err != nil {
		tst.Fatalf("LoadBBW failed: %v", err)
	}
	if len(got) != len(weights) {
		tst.Fatalf("len(got) = %d, want %d", len(got), len(weights))
	}
	for i, row := range weights {
		for j, w := range row {
			utl.CheckScalar(tst, "weight", 1e-12, got[i][j], w)
		}
	}
}
