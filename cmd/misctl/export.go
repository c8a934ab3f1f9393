package main

import (
	"github.com/cpmech/gosl/utl"
	"github.com/spf13/cobra"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/innermesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/mesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/meshio"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/optimizer"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelio"
)

func newExportCmd() *cobra.Command {
	var resolution int
	var supportVertsFlag, gravityFlag, suspendFlag string
	var shrink, angleObj, suspendAngle float64
	var userFlags []string

	cmd := &cobra.Command{
		Use:   "export MESH.off VOX-PREFIX BBW-PREFIX OPT-PREFIX OUT-STL-PREFIX",
		Short: "Replay a persisted .opt result and write the outer/inner STL surfaces",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			meshPath, voxPrefix, bbwPrefix, optPrefix, outPrefix := args[0], args[1], args[2], args[3], args[4]

			v, f, err := meshio.ReadOFF(meshPath)
			if err != nil {
				return err
			}
			m, err := mesh.New(v, f)
			if err != nil {
				return err
			}

			boxIdx, err := voxelio.LoadVox(voxPrefix + ".vox")
			if err != nil {
				return err
			}
			grid := voxelgrid.New(resolution)
			grid.SetBoxIdx(boxIdx, countActive(boxIdx))
			if err := grid.InitStructure(); err != nil {
				return err
			}

			sc, err := parseScenario(supportVertsFlag, gravityFlag, shrink, angleObj, suspendFlag, suspendAngle, userFlags)
			if err != nil {
				return err
			}
			handles, _, err := sc.build(m, grid)
			if err != nil {
				return err
			}

			nodeWeights, err := voxelio.LoadBBW(bbwPrefix + ".bbw")
			if err != nil {
				return err
			}
			if err := grid.SetNodeWeights(nodeWeights); err != nil {
				return err
			}
			m.ComputeBBW(handles, grid, nodeWeights)

			if err := optimizer.Import(optPrefix+".opt", grid, handles); err != nil {
				return err
			}
			m.UpdatePoses(handles)
			grid.UpdatePoses(handles)

			meshio.WriteSTLTriangles(dirOf(outPrefix), baseOf(outPrefix)+"_outer.stl", posedVertices(m), m.F)
			im := innermesh.Compute(grid)
			meshio.WriteSTLQuads(dirOf(outPrefix), baseOf(outPrefix)+"_inner.stl", posedNodes(grid), im.Quads)
			utl.Pfgreen("export: wrote %s_outer.stl and %s_inner.stl\n", outPrefix, outPrefix)
			return nil
		},
	}
	cmd.Flags().IntVar(&resolution, "resolution", 32, "voxel grid resolution R (must match voxelise)")
	cmd.Flags().StringVar(&supportVertsFlag, "support-verts", "", "comma-separated mesh vertex indices forming the standing contact polygon")
	cmd.Flags().StringVar(&gravityFlag, "gravity", "0,-1,0", "gravity unit direction \"x,y,z\"")
	cmd.Flags().Float64Var(&shrink, "shrink", 0.1, "stability-zone shrink fraction")
	cmd.Flags().Float64Var(&angleObj, "angle-obj", 0.35, "toppling-angle objective, radians")
	cmd.Flags().StringVar(&suspendFlag, "suspend", "", "optional suspension point \"x,y,z\" for a second objective")
	cmd.Flags().Float64Var(&suspendAngle, "suspend-angle", 0.2, "suspended objective's deviation-angle objective, radians")
	cmd.Flags().StringArrayVar(&userFlags, "user", nil, "extra user handle rest position \"x,y,z\" (repeatable)")
	return cmd
}
