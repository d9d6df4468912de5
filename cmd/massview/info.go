package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msmohankumar/massview/pkg/analysis"
	"github.com/msmohankumar/massview/pkg/stl"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display measurements of a model file",
	Long:  "Show file size, triangle count, bounding box, surface area and volume in print units (cm).",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]
	model, size := mustLoad(filename)

	metrics := analysis.ComputeMetrics(model, size)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Printf("  File Size:         %.2f KB\n", metrics.FileSizeKB)
	fmt.Printf("  Triangles:         %d\n", metrics.Triangles)
	fmt.Printf("  Vertices:          %d\n", metrics.VertexCount)
	fmt.Printf("  Bounding Box (cm): W: %.2f, D: %.2f, H: %.2f\n", metrics.WidthCM, metrics.DepthCM, metrics.HeightCM)
	fmt.Printf("  Surface Area:      %.4f cm²\n", metrics.SurfaceCM2)
	fmt.Printf("  Volume (solid):    %.4f cm³\n", metrics.VolumeCM3)
}

// mustLoad parses a model file or exits with an error, shared by the
// analysis subcommands
func mustLoad(filename string) (*stl.Model, int64) {
	info, err := os.Stat(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	model, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing model file: %v\n", err)
		os.Exit(1)
	}
	return model, info.Size()
}
