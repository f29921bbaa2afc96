package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkaneko/qvox/version"
)

var rootCmd = &cobra.Command{
	Use:   "qvox",
	Short: "A CLI tool for viewing and inspecting volume images",
	Long: `qvox is a command-line tool for volumetric image data in MetaImage
(.mhd) format. It opens an interactive 3D viewer with non-destructive
region clipping and prints intensity statistics for scripted use.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
