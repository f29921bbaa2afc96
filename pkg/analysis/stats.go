package analysis

import (
	"fmt"
	"math"

	"github.com/tkaneko/qvox/pkg/clip"
	"github.com/tkaneko/qvox/pkg/geometry"
	"github.com/tkaneko/qvox/pkg/volume"
)

// VolumeStats contains various measurements of a volume image
type VolumeStats struct {
	VoxelCount int
	Min        int16
	Max        int16
	Mean       float64
	StdDev     float64
	NonZero    int
	Dimensions geometry.Vector3
}

// Analyze performs comprehensive intensity analysis on a volume
func Analyze(vol *volume.Volume) *VolumeStats {
	return analyze(vol, nil)
}

// AnalyzeVisible computes the same statistics over the voxels the mask
// leaves visible. A nil mask is equivalent to Analyze.
func AnalyzeVisible(vol *volume.Volume, mask *clip.Mask) *VolumeStats {
	return analyze(vol, mask)
}

func analyze(vol *volume.Volume, mask *clip.Mask) *VolumeStats {
	min, max := vol.Geom.Bounds()
	result := &VolumeStats{
		Dimensions: max.Sub(min),
	}

	var hidden []byte
	if mask != nil {
		hidden = mask.Data()
	}

	var sum, sumSq float64
	first := true
	for i, v := range vol.Data {
		if hidden != nil && hidden[i] == clip.Hidden {
			continue
		}
		if first {
			result.Min, result.Max = v, v
			first = false
		}
		if v < result.Min {
			result.Min = v
		}
		if v > result.Max {
			result.Max = v
		}
		if v != 0 {
			result.NonZero++
		}
		f := float64(v)
		sum += f
		sumSq += f * f
		result.VoxelCount++
	}

	if result.VoxelCount > 0 {
		n := float64(result.VoxelCount)
		result.Mean = sum / n
		variance := sumSq/n - result.Mean*result.Mean
		if variance > 0 {
			result.StdDev = math.Sqrt(variance)
		}
	}
	return result
}

// Histogram is a fixed-bin intensity histogram over a value range
type Histogram struct {
	Min      int16
	Max      int16
	BinWidth float64
	Counts   []int
}

// ComputeHistogram bins the volume's intensities into the given number
// of equal-width bins spanning the volume's value range
func ComputeHistogram(vol *volume.Volume, bins int) *Histogram {
	if bins < 1 {
		bins = 1
	}
	lo, hi := vol.ValueRange()

	h := &Histogram{
		Min:    lo,
		Max:    hi,
		Counts: make([]int, bins),
	}
	span := float64(hi) - float64(lo)
	if span == 0 {
		h.BinWidth = 1
		h.Counts[0] = len(vol.Data)
		return h
	}
	h.BinWidth = span / float64(bins)

	for _, v := range vol.Data {
		bin := int(float64(v-lo) / h.BinWidth)
		if bin >= bins {
			bin = bins - 1
		}
		h.Counts[bin]++
	}
	return h
}

// Percentile returns the intensity below which the given fraction of
// voxels fall, estimated from the bin edges; p is clamped to [0, 1].
// Useful for picking display thresholds that skip background air.
func (h *Histogram) Percentile(p float64) int16 {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	if total == 0 {
		return h.Min
	}

	target := int(p * float64(total))
	cum := 0
	for i, c := range h.Counts {
		cum += c
		if cum >= target {
			edge := float64(h.Min) + float64(i+1)*h.BinWidth
			if edge > float64(h.Max) {
				return h.Max
			}
			return int16(edge)
		}
	}
	return h.Max
}

// FormatRange formats an intensity range for display
func FormatRange(min, max int16) string {
	return fmt.Sprintf("[%d, %d]", min, max)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
