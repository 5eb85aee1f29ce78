package cbm

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeTrack_Length(t *testing.T) {
	for _, track := range []int{1, 17, 18, 24, 25, 30, 31, 35, 40, 42} {
		zone, _ := ZoneForTrack(track)
		encoded, err := EncodeTrack(track, testDiskID, testPayloads(track, zone.Sectors))
		if err != nil {
			t.Fatalf("EncodeTrack(%d) failed: %v", track, err)
		}
		if len(encoded) != zone.TrackLength {
			t.Errorf("EncodeTrack(%d) length = %d, want %d", track, len(encoded), zone.TrackLength)
		}
		if !bytes.HasPrefix(encoded, bytes.Repeat([]byte{SyncByte}, SyncLength)) {
			t.Errorf("EncodeTrack(%d) does not start with a sync mark", track)
		}
		if encoded[len(encoded)-1] != GapByte {
			t.Errorf("EncodeTrack(%d) does not end with gap bytes", track)
		}
	}
}

func TestEncodeTrack_Layout(t *testing.T) {
	payloads := testPayloads(18, 19)
	encoded, err := EncodeTrack(18, testDiskID, payloads)
	if err != nil {
		t.Fatalf("EncodeTrack() failed: %v", err)
	}

	chunks, ok := SplitOnSync(ToBits(encoded))
	if !ok {
		t.Fatal("encoded track has no sync mark")
	}
	if len(chunks) != 2*len(payloads) {
		t.Fatalf("encoded track has %d blocks, want %d", len(chunks), 2*len(payloads))
	}

	header := DecodeGCR(ToBytes(chunks[2]))
	expected := []byte{HeaderMarker, 1 ^ 18 ^ 0x41 ^ 0x42, 1, 18, 0x41, 0x42, HeaderPadByte, HeaderPadByte}
	if !bytes.Equal(header[:8], expected) {
		t.Errorf("header of sector 1 = % X, want % X", header[:8], expected)
	}

	data := DecodeGCR(ToBytes(chunks[3]))
	if data[0] != DataMarker {
		t.Errorf("data block marker = %02X, want %02X", data[0], DataMarker)
	}
	if !bytes.Equal(data[1:1+SectorSize], payloads[1]) {
		t.Error("data block payload differs from sector 1")
	}
	if data[1+SectorSize] != Checksum(payloads[1]) {
		t.Errorf("data block checksum = %02X, want %02X", data[1+SectorSize], Checksum(payloads[1]))
	}
}

func TestEncodeTrack_PartialTrack(t *testing.T) {
	encoded, err := EncodeTrack(35, testDiskID, testPayloads(35, 3))
	if err != nil {
		t.Fatalf("EncodeTrack() failed: %v", err)
	}
	if len(encoded) != 6250 {
		t.Errorf("partial track length = %d, want 6250", len(encoded))
	}
}

func TestEncodeTrack_Errors(t *testing.T) {
	tests := []struct {
		name    string
		track   int
		sectors [][]byte
		want    error
	}{
		{"track zero", 0, nil, ErrInvalidTrack},
		{"track 43", 43, nil, ErrInvalidTrack},
		{"too many sectors", 31, testPayloads(31, 18), ErrTooManySectors},
		{"short payload", 1, [][]byte{make([]byte, 255)}, ErrInvalidSectorSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeTrack(tt.track, testDiskID, tt.sectors)
			if !errors.Is(err, tt.want) {
				t.Errorf("EncodeTrack() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestChecksum(t *testing.T) {
	if Checksum(nil) != 0 {
		t.Error("Checksum(nil) should be 0")
	}
	if sum := Checksum([]byte{0x12, 0x34, 0x56}); sum != 0x12^0x34^0x56 {
		t.Errorf("Checksum() = %02X, want %02X", sum, 0x12^0x34^0x56)
	}
}

func TestDiskID_String(t *testing.T) {
	if s := (DiskID{0x41, 0x0F}).String(); s != "410F" {
		t.Errorf("DiskID.String() = %q, want %q", s, "410F")
	}
}
