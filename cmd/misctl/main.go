// Command misctl drives the "Make It Stand" pipeline end to end:
// voxelise a closed mesh, solve BBW weights, run the balancing
// optimiser, and export the result. A spf13/cobra multi-command CLI,
// the shape 7blacky7-ollama-reverse's cmd package uses throughout.
package main

import (
	"os"

	"github.com/cpmech/gosl/utl"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			utl.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()
	if err := newRootCmd().Execute(); err != nil {
		utl.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}
