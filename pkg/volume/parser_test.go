package volume

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestParseUCharWithRawFile(t *testing.T) {
	dir := t.TempDir()

	raw := make([]byte, 2*2*2)
	for i := range raw {
		raw[i] = byte(i * 10)
	}
	writeFile(t, filepath.Join(dir, "tiny.raw"), raw)

	header := "NDims = 3\n" +
		"DimSize = 2 2 2\n" +
		"ElementSpacing = 0.5 0.5 1.0\n" +
		"Offset = -1 -1 0\n" +
		"ElementType = MET_UCHAR\n" +
		"ElementDataFile = tiny.raw\n"
	mhd := filepath.Join(dir, "tiny.mhd")
	writeFile(t, mhd, []byte(header))

	vol, err := Parse(mhd)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if vol.Name != "tiny" {
		t.Errorf("Parse name failed: expected tiny, got %s", vol.Name)
	}
	if vol.Geom.Dims != [3]int{2, 2, 2} {
		t.Errorf("Parse dims failed: got %v", vol.Geom.Dims)
	}
	if vol.Geom.Spacing.X != 0.5 || vol.Geom.Origin.X != -1 {
		t.Errorf("Parse geometry failed: spacing %v origin %v", vol.Geom.Spacing, vol.Geom.Origin)
	}
	for i := 0; i < 8; i++ {
		if vol.Data[i] != int16(i*10) {
			t.Errorf("Parse data failed at %d: expected %d, got %d", i, i*10, vol.Data[i])
		}
	}
}

func TestParseShortLocalData(t *testing.T) {
	dir := t.TempDir()

	header := "NDims = 3\n" +
		"DimSize = 2 1 1\n" +
		"ElementType = MET_SHORT\n" +
		"ElementDataFile = LOCAL\n"
	// -1 and 258, little endian
	payload := []byte{0xFF, 0xFF, 0x02, 0x01}
	mhd := filepath.Join(dir, "local.mhd")
	writeFile(t, mhd, append([]byte(header), payload...))

	vol, err := Parse(mhd)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if vol.Data[0] != -1 || vol.Data[1] != 258 {
		t.Errorf("Parse local data failed: got %v", vol.Data)
	}
}

func TestParseLocalPayloadNotConsumedByHeader(t *testing.T) {
	dir := t.TempDir()

	// Payload bytes follow the header directly and include 0x0A values;
	// header parsing must stop at ElementDataFile and leave every payload
	// byte for the pixel decoder.
	header := "NDims = 3\n" +
		"DimSize = 2 2 2\n" +
		"ElementType = MET_UCHAR\n" +
		"ElementDataFile = LOCAL\n"
	payload := []byte{0x0A, 1, 2, 0x0A, 4, 5, 6, 7}
	mhd := filepath.Join(dir, "inline.mhd")
	writeFile(t, mhd, append([]byte(header), payload...))

	vol, err := Parse(mhd)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for i, want := range payload {
		if vol.Data[i] != int16(want) {
			t.Errorf("Parse payload failed at %d: expected %d, got %d", i, want, vol.Data[i])
		}
	}
}

func TestParseShortBigEndian(t *testing.T) {
	dir := t.TempDir()

	header := "NDims = 3\n" +
		"DimSize = 1 1 1\n" +
		"ElementType = MET_SHORT\n" +
		"ElementByteOrderMSB = True\n" +
		"ElementDataFile = LOCAL\n"
	payload := []byte{0x01, 0x02} // 258 big endian
	mhd := filepath.Join(dir, "be.mhd")
	writeFile(t, mhd, append([]byte(header), payload...))

	vol, err := Parse(mhd)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if vol.Data[0] != 258 {
		t.Errorf("Parse big-endian failed: expected 258, got %d", vol.Data[0])
	}
}

func TestDataFile(t *testing.T) {
	dir := t.TempDir()

	external := "NDims = 3\nDimSize = 1 1 1\nElementType = MET_UCHAR\nElementDataFile = tiny.raw\n"
	extPath := filepath.Join(dir, "ext.mhd")
	writeFile(t, extPath, []byte(external))

	want := filepath.Join(dir, "tiny.raw")
	if got := DataFile(extPath); got != want {
		t.Errorf("DataFile failed: expected %s, got %s", want, got)
	}

	local := "NDims = 3\nDimSize = 1 1 1\nElementType = MET_UCHAR\nElementDataFile = LOCAL\n"
	localPath := filepath.Join(dir, "local.mhd")
	writeFile(t, localPath, append([]byte(local), 0))

	if got := DataFile(localPath); got != "" {
		t.Errorf("DataFile local failed: expected empty path, got %s", got)
	}

	if got := DataFile(filepath.Join(dir, "missing.mhd")); got != "" {
		t.Errorf("DataFile missing failed: expected empty path, got %s", got)
	}
}

func TestParseErrors(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name   string
		header string
	}{
		{"wrong ndims", "NDims = 2\nDimSize = 2 2 2\nElementDataFile = LOCAL\n"},
		{"missing data file", "NDims = 3\nDimSize = 2 2 2\n"},
		{"unknown element type", "NDims = 3\nDimSize = 1 1 1\nElementType = MET_FLOAT\nElementDataFile = LOCAL\n"},
		{"short payload", "NDims = 3\nDimSize = 4 4 4\nElementType = MET_UCHAR\nElementDataFile = LOCAL\n"},
	}

	for _, tc := range cases {
		path := filepath.Join(dir, "bad.mhd")
		writeFile(t, path, []byte(tc.header))
		if _, err := Parse(path); err == nil {
			t.Errorf("Parse %s: expected error, got nil", tc.name)
		}
	}
}
