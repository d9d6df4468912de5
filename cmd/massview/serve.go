package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msmohankumar/massview/internal/app"
	"github.com/msmohankumar/massview/pkg/material"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [files...]",
	Short: "Start the interactive browser viewer",
	Long: `Serve the browser UI. Model files can be uploaded from the page; any
files given on the command line are preloaded. With --watch, preloaded
files are re-analyzed whenever they change on disk.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "Listen address")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Re-analyze preloaded files on change")
}

func runServe(cmd *cobra.Command, args []string) {
	server := app.New(serveAddr, material.Catalog())

	if err := server.Preload(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if serveWatch {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --watch requires at least one preloaded file")
			os.Exit(1)
		}
		if err := server.WatchPreloaded(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer server.Close()
	}

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
