package volume

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tkaneko/qvox/pkg/geometry"
)

// Parse reads a MetaImage (.mhd) volume and returns a Volume.
// Supported element types are MET_UCHAR and MET_SHORT; the pixel payload
// is either appended to the header (ElementDataFile = LOCAL) or read from
// the referenced raw file next to the header.
func Parse(filename string) (*Volume, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Header and embedded payload share one buffered reader: parsing the
	// header line by line must not read ahead past ElementDataFile, or the
	// LOCAL payload bytes would be lost in a discarded buffer.
	reader := bufio.NewReader(file)
	header, dataFile, err := parseHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header of %s: %w", filename, err)
	}

	var raw []byte
	if dataFile == "LOCAL" {
		raw, err = io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read local pixel data: %w", err)
		}
	} else {
		rawPath := dataFile
		if !filepath.IsAbs(rawPath) {
			rawPath = filepath.Join(filepath.Dir(filename), dataFile)
		}
		raw, err = os.ReadFile(rawPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read pixel data: %w", err)
		}
	}

	vol, err := decodePixels(header, raw)
	if err != nil {
		return nil, err
	}
	vol.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return vol, nil
}

// DataFile returns the resolved path of the raw pixel file a header
// refers to, or "" when the pixel data is embedded in the header itself
// (or the header cannot be read)
func DataFile(filename string) string {
	file, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer file.Close()

	_, dataFile, err := parseHeader(bufio.NewReader(file))
	if err != nil || dataFile == "LOCAL" {
		return ""
	}
	if !filepath.IsAbs(dataFile) {
		dataFile = filepath.Join(filepath.Dir(filename), dataFile)
	}
	return dataFile
}

// mhdHeader holds the subset of MetaImage keys the viewer needs
type mhdHeader struct {
	geom        Geometry
	elementType string
	msbOrder    bool
}

// parseHeader consumes "Key = Value" lines up to and including
// ElementDataFile, which is by convention the last header line. It reads
// exactly one line at a time so the reader is left positioned at the
// first payload byte for LOCAL volumes.
func parseHeader(r *bufio.Reader) (*mhdHeader, string, error) {
	header := &mhdHeader{
		geom: Geometry{
			Spacing: geometry.NewVector3(1, 1, 1),
		},
		elementType: "MET_SHORT",
	}
	dataFile := ""

	for {
		rawLine, readErr := r.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, "", readErr
		}

		line := strings.TrimSpace(rawLine)
		if line == "" {
			if readErr == io.EOF {
				return nil, "", fmt.Errorf("header has no ElementDataFile entry")
			}
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, "", fmt.Errorf("malformed header line %q", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "NDims":
			if value != "3" {
				return nil, "", fmt.Errorf("unsupported NDims %s, only 3D volumes are supported", value)
			}

		case "DimSize":
			dims, err := parseInts(value, 3)
			if err != nil {
				return nil, "", fmt.Errorf("invalid DimSize %q: %w", value, err)
			}
			header.geom.Dims = [3]int{dims[0], dims[1], dims[2]}

		case "ElementSpacing", "ElementSize":
			spacing, err := parseFloats(value, 3)
			if err != nil {
				return nil, "", fmt.Errorf("invalid %s %q: %w", key, value, err)
			}
			header.geom.Spacing = geometry.NewVector3(spacing[0], spacing[1], spacing[2])

		case "Offset", "Position", "Origin":
			origin, err := parseFloats(value, 3)
			if err != nil {
				return nil, "", fmt.Errorf("invalid %s %q: %w", key, value, err)
			}
			header.geom.Origin = geometry.NewVector3(origin[0], origin[1], origin[2])

		case "ElementType":
			header.elementType = value

		case "ElementByteOrderMSB", "BinaryDataByteOrderMSB":
			header.msbOrder = strings.EqualFold(value, "true")

		case "ElementDataFile":
			// Last header entry; pixel data follows in this stream or
			// lives in the referenced file.
			dataFile = value
			if err := header.geom.Validate(); err != nil {
				return nil, "", err
			}
			return header, dataFile, nil
		}

		if readErr == io.EOF {
			return nil, "", fmt.Errorf("header has no ElementDataFile entry")
		}
	}
}

// decodePixels converts the raw payload into a Volume according to the
// header's element type and byte order
func decodePixels(header *mhdHeader, raw []byte) (*Volume, error) {
	vol, err := New("", header.geom)
	if err != nil {
		return nil, err
	}
	count := header.geom.VoxelCount()

	switch header.elementType {
	case "MET_UCHAR":
		if len(raw) < count {
			return nil, fmt.Errorf("pixel data too short: have %d bytes, need %d", len(raw), count)
		}
		for i := 0; i < count; i++ {
			vol.Data[i] = int16(raw[i])
		}

	case "MET_SHORT":
		if len(raw) < count*2 {
			return nil, fmt.Errorf("pixel data too short: have %d bytes, need %d", len(raw), count*2)
		}
		for i := 0; i < count; i++ {
			lo, hi := raw[2*i], raw[2*i+1]
			if header.msbOrder {
				lo, hi = hi, lo
			}
			vol.Data[i] = int16(uint16(lo) | uint16(hi)<<8)
		}

	default:
		return nil, fmt.Errorf("unsupported ElementType %s", header.elementType)
	}

	return vol, nil
}

func parseInts(value string, n int) ([]int, error) {
	fields := strings.Fields(value)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(value string, n int) ([]float64, error) {
	fields := strings.Fields(value)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
