package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tkaneko/qvox/pkg/analysis"
	"github.com/tkaneko/qvox/pkg/volume"
)

var infoHistogramBins int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a volume file",
	Long:  "Show grid geometry, world extent, and intensity statistics of a MetaImage volume.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	infoCmd.Flags().IntVar(&infoHistogramBins, "histogram", 0, "print an intensity histogram with the given number of bins")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	vol, err := volume.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing volume file: %v\n", err)
		os.Exit(1)
	}

	stats := analysis.Analyze(vol)
	min, max := vol.Geom.Bounds()

	fmt.Println("Volume File Information")
	fmt.Println("=======================")
	if vol.Name != "" {
		fmt.Printf("Name: %s\n", vol.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Grid:")
	fmt.Printf("  Dimensions: %d x %d x %d\n", vol.Geom.Dims[0], vol.Geom.Dims[1], vol.Geom.Dims[2])
	fmt.Printf("  Voxels: %d\n", vol.Geom.VoxelCount())
	fmt.Printf("  Spacing: %s\n", analysis.FormatVector(vol.Geom.Spacing))
	fmt.Printf("  Origin: %s\n\n", analysis.FormatVector(vol.Geom.Origin))

	fmt.Println("World Extent:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(max))
	fmt.Printf("  Center: %s\n", analysis.FormatVector(vol.Geom.Center()))
	fmt.Printf("  Size: %s\n\n", analysis.FormatVector(stats.Dimensions))

	fmt.Println("Intensity:")
	fmt.Printf("  Range: %s\n", analysis.FormatRange(stats.Min, stats.Max))
	fmt.Printf("  Mean: %.3f\n", stats.Mean)
	fmt.Printf("  StdDev: %.3f\n", stats.StdDev)
	fmt.Printf("  Non-zero: %d (%.1f%%)\n", stats.NonZero,
		100*float64(stats.NonZero)/float64(stats.VoxelCount))

	if infoHistogramBins > 0 {
		fmt.Println("\nHistogram:")
		printHistogram(analysis.ComputeHistogram(vol, infoHistogramBins))
	}
}

func printHistogram(h *analysis.Histogram) {
	peak := 0
	for _, c := range h.Counts {
		if c > peak {
			peak = c
		}
	}
	if peak == 0 {
		return
	}
	for i, c := range h.Counts {
		lo := float64(h.Min) + float64(i)*h.BinWidth
		bar := strings.Repeat("#", c*50/peak)
		fmt.Printf("  %8.1f | %-50s %d\n", lo, bar, c)
	}
}
