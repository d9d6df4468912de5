package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msmohankumar/massview/version"
)

var rootCmd = &cobra.Command{
	Use:   "massview",
	Short: "Mass, volume and measurement analysis for 3D model files",
	Long: `massview analyzes triangulated 3D model files: bounding box, surface
area and volume in print units, mass estimates across a fixed material
catalog at a chosen infill percentage, and point-to-point measurements.
The serve command starts the interactive browser viewer.`,
	Version: version.GetVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
