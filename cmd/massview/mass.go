package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msmohankumar/massview/pkg/analysis"
	"github.com/msmohankumar/massview/pkg/material"
)

var massInfillPercent int

var massCmd = &cobra.Command{
	Use:   "mass [file]",
	Short: "Estimate mass per material at an infill percentage",
	Long: `Print the mass estimate table: one row per catalog material, with mass
at the selected infill percentage and at 100%. Infill is a flat multiplier
on the full-solid mass.`,
	Args: cobra.ExactArgs(1),
	Run:  runMass,
}

func init() {
	rootCmd.AddCommand(massCmd)

	massCmd.Flags().IntVarP(&massInfillPercent, "infill", "i", 100, "Infill percentage (0-100)")
}

func runMass(cmd *cobra.Command, args []string) {
	filename := args[0]

	if massInfillPercent < 0 || massInfillPercent > 100 {
		fmt.Fprintf(os.Stderr, "Error: infill must be between 0 and 100, got %d\n", massInfillPercent)
		os.Exit(1)
	}

	model, size := mustLoad(filename)
	metrics := analysis.ComputeMetrics(model, size)

	rows, err := analysis.MassTable(metrics.VolumeCM3, float64(massInfillPercent)/100.0, material.Catalog())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Mass Estimates (volume: %.4f cm³, infill: %d%%)\n", metrics.VolumeCM3, massInfillPercent)
	fmt.Println("================================================")
	fmt.Printf("%-4s %-20s %-10s %-16s %-16s\n", "ID", "Material", "Density", "Mass @infill(g)", "Mass @100%(g)")
	for _, row := range rows {
		fmt.Printf("%-4d %-20s %-10.3f %-16.2f %-16.2f\n",
			row.ID, row.Material, row.Density, row.MassAtInfill, row.MassAtFull)
	}
}
