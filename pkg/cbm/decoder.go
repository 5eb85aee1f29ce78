package cbm

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/hansbonini/c1541tools/pkg/common"
)

// DecodedTrack holds the sectors recovered from one half-track
type DecodedTrack struct {
	HalfTrack int      // Half-track index the flux came from
	Track     int      // Logical track (1-based)
	Data      []byte   // Sector payloads in sector order, zero-filled where missing
	DiskID    DiskID   // Disk id of the kept sectors
	Recovered int      // Sectors recovered from the flux
	Warnings  []string // Structural problems found while decoding
}

// blockHeaderInfo is the part of a block header the decoder acts on
type blockHeaderInfo struct {
	sector int
	id     DiskID
}

// idBucket groups the sectors carrying the same disk id. Gaps of a
// reformatted disk can still hold blocks from the previous format.
type idBucket struct {
	id      DiskID
	sectors map[int][]byte
}

// trackDecoder carries the state of a single DecodeTrack call
type trackDecoder struct {
	result  *DecodedTrack
	zone    Zone
	buckets []*idBucket
}

// DecodeTrack recovers the logical sectors of a half-track from its raw GCR
// flux. The capture may start anywhere in the revolution, be padded with
// trailing zeros, and contain corrupt or stale blocks. Problems never abort
// decoding: they are recorded as warnings and the affected sector (or, when
// nothing usable is found, the whole track) is zero-filled.
func DecodeTrack(halfTrack int, raw []byte) *DecodedTrack {
	d := &trackDecoder{
		result: &DecodedTrack{
			HalfTrack: halfTrack,
			Track:     HalfTrackToTrack(halfTrack),
		},
	}
	zone, ok := ZoneForHalfTrack(halfTrack)
	if !ok {
		d.warn("Half track %d: outside of the %d addressable half-tracks", halfTrack, MaxHalfTracks)
		return d.result
	}
	d.zone = zone

	chunks, ok := SplitOnSync(ToBits(bytes.TrimRight(raw, "\x00")))
	if !ok {
		d.warn(common.WarnNoSyncMark, halfTrack)
		return d.empty()
	}
	common.LogDebug(common.DebugSyncMarksFound, halfTrack, len(chunks))

	blocks := make([][]byte, 0, len(chunks))
	for _, chunk := range chunks {
		blocks = append(blocks, DecodeGCR(ToBytes(chunk)))
	}

	// A data block ahead of every header belongs to the last header of the
	// revolution; move it there so pairs stay adjacent.
	if len(blocks) > 1 && len(blocks[0]) > 0 && blocks[0][0] == DataMarker {
		blocks = append(blocks[1:], blocks[0])
		common.LogDebug(common.DebugWrapAroundChunk, halfTrack)
	}

	d.collect(blocks)

	best := d.bestBucket()
	if best == nil {
		d.warn(common.WarnNoValidBlock, halfTrack)
		return d.empty()
	}
	return d.assemble(best)
}

// collect walks the decoded blocks as (header, data) pairs and files every
// sector that passes validation under its disk id
func (d *trackDecoder) collect(blocks [][]byte) {
	halfTrack := d.result.HalfTrack
	for i := 0; i < len(blocks); i++ {
		header, ok := d.parseHeader(blocks[i])
		if !ok {
			continue
		}

		// Only consume the next block when it is a data block: anything else
		// may be the header of the following sector.
		if i+1 >= len(blocks) || len(blocks[i+1]) == 0 || blocks[i+1][0] != DataMarker {
			d.warn(common.WarnMissingDataBlock, halfTrack, header.sector)
			continue
		}
		i++
		block := blocks[i]
		if len(block) < minDataBytes {
			d.warn(common.WarnNotADataBlock, halfTrack, header.sector)
			continue
		}

		payload := block[1 : 1+SectorSize]
		stored := block[1+SectorSize]
		if computed := Checksum(payload); computed != stored {
			d.warn(common.WarnBadDataChecksum, halfTrack, header.sector, stored, computed)
			continue
		}

		bucket := d.bucket(header.id)
		if _, seen := bucket.sectors[header.sector]; seen {
			d.warn(common.WarnAliasedSector, halfTrack, header.sector)
			continue
		}
		bucket.sectors[header.sector] = append([]byte(nil), payload...)
	}
}

// parseHeader validates a block header. Only the first six bytes matter:
// the 0x0F pad and the gap that follows (which decodes as 0x0F too) are
// ignored, without eating into a disk id that itself ends in 0x0F.
func (d *trackDecoder) parseHeader(block []byte) (blockHeaderInfo, bool) {
	halfTrack := d.result.HalfTrack
	if len(block) < minHeaderBytes || block[0] != HeaderMarker {
		d.warn(common.WarnNotABlockHeader, halfTrack, preview(block))
		return blockHeaderInfo{}, false
	}

	checksum, sector, track, id1, id2 := block[1], block[2], block[3], block[4], block[5]
	if checksum != sector^track^id1^id2 {
		d.warn(common.WarnBadHeaderChecksum, halfTrack, checksum, sector, track, id1, id2)
		return blockHeaderInfo{}, false
	}
	if int(track) != d.result.Track {
		d.warn(common.WarnWrongTrack, halfTrack, track)
		return blockHeaderInfo{}, false
	}

	return blockHeaderInfo{
		sector: int(sector),
		id:     DiskID{id1, id2},
	}, true
}

// bucket returns the bucket for id, creating it in first-seen order
func (d *trackDecoder) bucket(id DiskID) *idBucket {
	for _, b := range d.buckets {
		if b.id == id {
			return b
		}
	}
	b := &idBucket{id: id, sectors: make(map[int][]byte)}
	d.buckets = append(d.buckets, b)
	return b
}

// bestBucket picks the disk id with the most sectors; on a tie the id seen
// first on the track wins
func (d *trackDecoder) bestBucket() *idBucket {
	var best *idBucket
	for _, b := range d.buckets {
		if best == nil || len(b.sectors) > len(best.sectors) {
			best = b
		}
	}
	if best == nil || len(best.sectors) == 0 {
		return nil
	}

	common.LogDebug(common.DebugDiskIDBuckets, d.result.HalfTrack, len(d.buckets), best.id.String(), len(best.sectors))
	for _, b := range d.buckets {
		if b != best {
			d.warn(common.WarnStaleDiskID, d.result.HalfTrack, len(b.sectors), b.id.String())
		}
	}
	return best
}

// assemble lays the kept sectors out in sector order
func (d *trackDecoder) assemble(best *idBucket) *DecodedTrack {
	halfTrack := d.result.HalfTrack
	d.result.DiskID = best.id
	d.result.Data = make([]byte, d.zone.Sectors*SectorSize)

	for sector := 0; sector < d.zone.Sectors; sector++ {
		payload, ok := best.sectors[sector]
		if !ok {
			d.warn(common.WarnMissingSector, halfTrack, sector)
			continue
		}
		copy(d.result.Data[sector*SectorSize:], payload)
		d.result.Recovered++
	}

	extra := make([]int, 0)
	for sector := range best.sectors {
		if sector >= d.zone.Sectors {
			extra = append(extra, sector)
		}
	}
	sort.Ints(extra)
	for _, sector := range extra {
		d.warn(common.WarnSectorOutOfRange, halfTrack, sector, d.zone.Sectors, d.result.Track)
	}

	return d.result
}

// empty zero-fills the whole track
func (d *trackDecoder) empty() *DecodedTrack {
	d.result.Data = make([]byte, d.zone.Sectors*SectorSize)
	return d.result
}

func (d *trackDecoder) warn(message string, args ...interface{}) {
	d.result.Warnings = append(d.result.Warnings, fmt.Sprintf(message, args...))
	common.LogWarn(message, args...)
}

// preview shortens a block for log output
func preview(block []byte) []byte {
	if len(block) > 8 {
		return block[:8]
	}
	return block
}
