package cbm

import (
	"bytes"
	"errors"
	"fmt"
)

// Track encoding errors
var (
	ErrInvalidTrack      = errors.New("invalid track number")
	ErrTooManySectors    = errors.New("more sectors than the track holds")
	ErrInvalidSectorSize = errors.New("sector payload must be 256 bytes")
)

// DiskID is the two-byte identifier written into every block header
type DiskID [2]byte

// String renders the id the way it appears in a directory listing
func (id DiskID) String() string {
	return fmt.Sprintf("%02X%02X", id[0], id[1])
}

// EncodeTrack synthesizes one revolution of GCR data for a logical track
// from its sector payloads, in sector order. Each sector is laid out as
//
//	sync, header block, gap, sync, data block, post-data gap
//
// and the track is filled with gap bytes up to its nominal length.
// A track may hold fewer sectors than its zone allows.
func EncodeTrack(track int, id DiskID, sectors [][]byte) ([]byte, error) {
	zone, ok := ZoneForTrack(track)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrack, track)
	}
	if len(sectors) > zone.Sectors {
		return nil, fmt.Errorf("%w: track %d has %d sectors, got %d", ErrTooManySectors, track, zone.Sectors, len(sectors))
	}

	var out bytes.Buffer
	out.Grow(zone.TrackLength)
	for sector, payload := range sectors {
		if len(payload) != SectorSize {
			return nil, fmt.Errorf("%w: track %d sector %d has %d bytes", ErrInvalidSectorSize, track, sector, len(payload))
		}

		header, err := EncodeGCR(blockHeader(track, sector, id))
		if err != nil {
			return nil, err
		}
		data, err := EncodeGCR(dataBlock(payload))
		if err != nil {
			return nil, err
		}

		out.Write(bytes.Repeat([]byte{SyncByte}, SyncLength))
		out.Write(header)
		out.Write(bytes.Repeat([]byte{GapByte}, HeaderGap))
		out.Write(bytes.Repeat([]byte{SyncByte}, SyncLength))
		out.Write(data)
		out.Write(bytes.Repeat([]byte{GapByte}, zone.PostDataGap))
	}

	if out.Len() < zone.TrackLength {
		out.Write(bytes.Repeat([]byte{GapByte}, zone.TrackLength-out.Len()))
	}
	return out.Bytes(), nil
}

// blockHeader builds the 8-byte header preceding each sector
func blockHeader(track, sector int, id DiskID) []byte {
	t, s := byte(track), byte(sector)
	return []byte{
		HeaderMarker,
		s ^ t ^ id[0] ^ id[1],
		s,
		t,
		id[0],
		id[1],
		HeaderPadByte,
		HeaderPadByte,
	}
}

// dataBlock builds the 260-byte data block for a sector payload
func dataBlock(payload []byte) []byte {
	block := make([]byte, 0, dataLength)
	block = append(block, DataMarker)
	block = append(block, payload...)
	block = append(block, Checksum(payload), 0x00, 0x00)
	return block
}

// Checksum returns the XOR of all bytes in data
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}
