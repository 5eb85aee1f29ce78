package cbm

import (
	"bytes"
	"testing"
)

var testDiskID = DiskID{0x41, 0x42}

// testPayloads returns deterministic, distinct payloads for a track
func testPayloads(track, count int) [][]byte {
	payloads := make([][]byte, count)
	for sector := range payloads {
		payload := make([]byte, SectorSize)
		for i := range payload {
			payload[i] = byte(track*31 + sector*7 + i*13)
		}
		payloads[sector] = payload
	}
	return payloads
}

// sectorBlocks returns alternating header and data blocks for payloads
func sectorBlocks(track int, id DiskID, payloads [][]byte) [][]byte {
	blocks := make([][]byte, 0, len(payloads)*2)
	for sector, payload := range payloads {
		blocks = append(blocks, blockHeader(track, sector, id), dataBlock(payload))
	}
	return blocks
}

// buildTrack writes each block behind its own sync mark, followed by a gap
func buildTrack(t *testing.T, blocks ...[]byte) []byte {
	t.Helper()
	var out bytes.Buffer
	for _, block := range blocks {
		gcr, err := EncodeGCR(block)
		if err != nil {
			t.Fatalf("EncodeGCR() failed: %v", err)
		}
		out.Write(bytes.Repeat([]byte{SyncByte}, SyncLength))
		out.Write(gcr)
		out.Write(bytes.Repeat([]byte{GapByte}, HeaderGap))
	}
	return out.Bytes()
}

// sector returns the payload of one sector of a decoded track, nil when out of range
func (t *DecodedTrack) sector(n int) []byte {
	start := n * SectorSize
	if n < 0 || start+SectorSize > len(t.Data) {
		return nil
	}
	return t.Data[start : start+SectorSize]
}

// zeroSectors lists the sectors of a decoded track that are all zero
func zeroSectors(track *DecodedTrack) []int {
	var zeros []int
	empty := make([]byte, SectorSize)
	for sector := 0; sector*SectorSize < len(track.Data); sector++ {
		if bytes.Equal(track.sector(sector), empty) {
			zeros = append(zeros, sector)
		}
	}
	return zeros
}

// hasWarning reports whether any warning contains fragment
func hasWarning(track *DecodedTrack, fragment string) bool {
	for _, w := range track.Warnings {
		if bytes.Contains([]byte(w), []byte(fragment)) {
			return true
		}
	}
	return false
}
