package main

import (
	"github.com/cpmech/gosl/utl"
	"github.com/spf13/cobra"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/config"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/driver"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/innermesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/mesh"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/meshio"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/optimizer"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelgrid"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/voxelio"
)

func newOptimizeCmd() *cobra.Command {
	var resolution, maxIters int
	var configPath string
	var supportVertsFlag, gravityFlag, suspendFlag string
	var shrink, angleObj, suspendAngle float64
	var userFlags []string

	cmd := &cobra.Command{
		Use:   "optimize MESH.off VOX-PREFIX BBW-PREFIX OUT-PREFIX",
		Short: "Run the balancing optimiser to convergence and persist the result",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			meshPath, voxPrefix, bbwPrefix, outPrefix := args[0], args[1], args[2], args[3]

			params := config.Default()
			if configPath != "" {
				var err error
				params, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

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
			handles, objectives, err := sc.build(m, grid)
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

			m.UpdatePoses(handles)
			grid.UpdatePoses(handles)

			opt := optimizer.New()
			opt.Prepare(m, grid, handles)

			drv := driver.New(m, grid, handles, opt, objectives, params.Driver, params.Optimizer)

			result := driver.ResultContinue
			iters := 0
			for ; iters < maxIters && result == driver.ResultContinue; iters++ {
				result = drv.Step()
			}
			switch result {
			case driver.ResultDone:
				utl.Pfgreen("optimize: converged after %d iterations\n", iters)
			case driver.ResultTerminated:
				utl.Pfyel("optimize: terminated after %d iterations (no further progress)\n", iters)
			default:
				utl.Pfyel("optimize: stopped at the %d-iteration cap\n", iters)
			}

			if err := optimizer.Export(dirOf(outPrefix), baseOf(outPrefix), grid, handles); err != nil {
				return err
			}

			outerDir, outerBase := dirOf(outPrefix), baseOf(outPrefix)+"_outer.stl"
			meshio.WriteSTLTriangles(outerDir, outerBase, posedVertices(m), m.F)
			im := innermesh.Compute(grid)
			meshio.WriteSTLQuads(outerDir, baseOf(outPrefix)+"_inner.stl", posedNodes(grid), im.Quads)
			return nil
		},
	}
	cmd.Flags().IntVar(&resolution, "resolution", 32, "voxel grid resolution R (must match voxelise)")
	cmd.Flags().IntVar(&maxIters, "max-iters", 400, "maximum outer-iteration attempts")
	cmd.Flags().StringVar(&configPath, "config", "", "optional .mis config file (see config.Load)")
	cmd.Flags().StringVar(&supportVertsFlag, "support-verts", "", "comma-separated mesh vertex indices forming the standing contact polygon")
	cmd.Flags().StringVar(&gravityFlag, "gravity", "0,-1,0", "gravity unit direction \"x,y,z\"")
	cmd.Flags().Float64Var(&shrink, "shrink", 0.1, "stability-zone shrink fraction")
	cmd.Flags().Float64Var(&angleObj, "angle-obj", 0.35, "toppling-angle objective, radians")
	cmd.Flags().StringVar(&suspendFlag, "suspend", "", "optional suspension point \"x,y,z\" for a second objective")
	cmd.Flags().Float64Var(&suspendAngle, "suspend-angle", 0.2, "suspended objective's deviation-angle objective, radians")
	cmd.Flags().StringArrayVar(&userFlags, "user", nil, "extra user handle rest position \"x,y,z\" (repeatable)")
	return cmd
}

func posedVertices(m *mesh.Mesh) [][3]float64 {
	out := make([][3]float64, len(m.V))
	for i := range m.V {
		out[i] = m.Pose(i)
	}
	return out
}

func posedNodes(g *voxelgrid.Grid) [][3]float64 {
	out := make([][3]float64, g.NumNodes)
	for i := 0; i < g.NumNodes; i++ {
		out[i] = g.NodePose(i)
	}
	return out
}
