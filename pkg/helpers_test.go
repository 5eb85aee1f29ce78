package pkg

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hansbonini/c1541tools/pkg/cbm"
)

var testDiskID = cbm.DiskID{0x31, 0x41}

// testD64 builds a D64 image of the given track count where every sector
// holds distinct data and the BAM carries testDiskID
func testD64(tracks int) []byte {
	data := make([]byte, cbm.TrackOffset(tracks+1))
	for i := range data {
		data[i] = byte(i*7 + i/cbm.SectorSize)
	}
	data[diskIDOffset] = testDiskID[0]
	data[diskIDOffset+1] = testDiskID[1]
	return data
}

// rawG64 assembles a G64 file by hand: the header tables followed by body,
// which starts right after the speed offset table
func rawG64(t *testing.T, maxLength uint16, offsets, speeds []uint32, body []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	out.WriteString(G64Magic)
	out.WriteByte(byte(len(offsets)))
	for _, value := range []interface{}{maxLength, offsets, speeds} {
		if err := binary.Write(&out, binary.LittleEndian, value); err != nil {
			t.Fatalf("binary.Write() failed: %v", err)
		}
	}
	out.Write(body)
	return out.Bytes()
}

// g64BodyOffset returns where rawG64 places its body for count tracks
func g64BodyOffset(count int) uint32 {
	return uint32(g64HeaderSize + 8*count)
}

// writeTempFile stores data under name in a test directory
func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}
	return path
}

// findWarning returns the first warning containing fragment
func findWarning(warnings []Warning, fragment string) (Warning, bool) {
	for _, w := range warnings {
		if strings.Contains(w.Message, fragment) {
			return w, true
		}
	}
	return Warning{}, false
}
