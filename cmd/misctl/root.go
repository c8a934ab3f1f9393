package main

import "github.com/spf13/cobra"

// newRootCmd assembles the misctl command tree, following
// cmd.NewCLI's "build subcommands, AddCommand them all" shape.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "misctl",
		Short:         "Make It Stand: voxelise, weight, balance and export a standing mesh",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newVoxeliseCmd(),
		newBBWCmd(),
		newOptimizeCmd(),
		newExportCmd(),
	)
	return root
}
