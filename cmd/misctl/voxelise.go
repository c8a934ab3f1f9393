package main

import (
	"github.com/cpmech/gosl/utl"
	"github.com/spf13/cobra"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/mesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/meshio"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelio"
)

func newVoxeliseCmd() *cobra.Command {
	var resolution int
	cmd := &cobra.Command{
		Use:   "voxelise MESH.off OUT-PREFIX",
		Short: "Validate a closed mesh, rasterise it, and persist the voxel grid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			meshPath, outPrefix := args[0], args[1]

			v, f, err := meshio.ReadOFF(meshPath)
			if err != nil {
				return err
			}
			m, err := mesh.New(v, f)
			if err != nil {
				return err
			}
			utl.Pf("mesh: %d vertices, %d faces\n", len(m.V), len(m.F))

			occ := voxelgrid.RasterizeConservative(resolution, m.V, m.F)
			grid := voxelgrid.New(resolution)
			if err := grid.InitVoxels(occ, m.V); err != nil {
				return err
			}
			if err := grid.InitStructure(); err != nil {
				return err
			}
			utl.Pfgreen("voxelgrid: %d boxes, %d nodes, resolution %d\n", grid.NumBoxes, grid.NumNodes, resolution)

			return voxelio.SaveVox(dirOf(outPrefix), baseOf(outPrefix), grid.BoxIdx())
		},
	}
	cmd.Flags().IntVar(&resolution, "resolution", 32, "voxel grid resolution R")
	return cmd
}
