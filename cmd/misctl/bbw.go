package main

import (
	"github.com/cpmech/gosl/utl"
	"github.com/spf13/cobra"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/mesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/meshio"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/qp"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelio"
)

func newBBWCmd() *cobra.Command {
	var resolution int
	var supportVertsFlag, gravityFlag, suspendFlag string
	var shrink, angleObj, suspendAngle float64
	var userFlags []string

	cmd := &cobra.Command{
		Use:   "bbw MESH.off VOX-PREFIX OUT-PREFIX",
		Short: "Rebuild the voxel grid, bind handles, and solve bounded biharmonic weights",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			meshPath, voxPrefix, outPrefix := args[0], args[1], args[2]

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
			numBoxes := countActive(boxIdx)
			grid := voxelgrid.New(resolution)
			grid.SetBoxIdx(boxIdx, numBoxes)
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
			utl.Pf("handles: %d (%d support)\n", handles.Len(), handles.NbObj)

			oracle := qp.NewProjectedGradient()
			if err := grid.ComputeBBW(handles, oracle); err != nil {
				return err
			}
			m.ComputeBBW(handles, grid, grid.NodeWeights())
			utl.Pfgreen("bbw: solved weights for %d nodes, %d vertices\n", grid.NumNodes, len(m.V))

			return voxelio.SaveBBW(dirOf(outPrefix), baseOf(outPrefix), grid.NodeWeights())
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

func countActive(boxIdx []int32) int {
	max := int32(-1)
	for _, v := range boxIdx {
		if v > max {
			max = v
		}
	}
	return int(max + 1)
}

func parseScenario(supportVertsFlag, gravityFlag string, shrink, angleObj float64, suspendFlag string, suspendAngle float64, userFlags []string) (scenario, error) {
	var sc scenario
	verts, err := parseInts(supportVertsFlag)
	if err != nil {
		return sc, err
	}
	sc.SupportVerts = verts

	g, err := parsePoint(gravityFlag)
	if err != nil {
		return sc, err
	}
	sc.Gravity = g
	sc.Shrink = shrink
	sc.AngleObj = angleObj
	sc.SuspendAngle = suspendAngle

	if suspendFlag != "" {
		sp, err := parsePoint(suspendFlag)
		if err != nil {
			return sc, err
		}
		sc.Suspend = &sp
	}
	for _, uf := range userFlags {
		p, err := parsePoint(uf)
		if err != nil {
			return sc, err
		}
		sc.UserPoints = append(sc.UserPoints, p)
	}
	return sc, nil
}
