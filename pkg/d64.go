// Package pkg provides functionality for converting Commodore 1541 disk images.
// This file contains the D64 sector image format: reading synthesizes GCR
// tracks, writing recovers sectors from GCR tracks.
package pkg

import (
	"fmt"
	"io"
	"runtime"

	"github.com/hansbonini/c1541tools/pkg/cbm"
	"github.com/hansbonini/c1541tools/pkg/common"
	"golang.org/x/sync/errgroup"
)

// diskIDOffset is the position of the disk id inside the BAM sector (track 18, sector 0)
var diskIDOffset = cbm.TrackOffset(18) + 0xA2

// d64ErrorInfoSizes maps images carrying one error byte per sector to
// their sector data size
var d64ErrorInfoSizes = map[int]int{
	174848 + 683: 174848, // 35 tracks
	196608 + 768: 196608, // 40 tracks
	205312 + 802: 205312, // 42 tracks
}

// D64Format reads and writes D64 sector images
type D64Format struct {
	Jobs int // Tracks encoded or decoded in parallel
}

// NewD64Format creates a D64 format handler running up to jobs track workers
func NewD64Format(jobs int) *D64Format {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	return &D64Format{Jobs: jobs}
}

// Name returns the format name
func (f *D64Format) Name() string {
	return "D64"
}

// Read encodes every sector of a D64 image into GCR half-tracks. A trailing
// partial track is encoded with the whole sectors it has.
func (f *D64Format) Read(data []byte, diag *Diagnostics) (*DiskImage, error) {
	if len(data) < diskIDOffset+2 {
		return nil, fmt.Errorf("%w: D64 of %d bytes has no BAM sector", ErrImageTooSmall, len(data))
	}
	if size, ok := d64ErrorInfoSizes[len(data)]; ok {
		common.LogDebug(common.DebugErrorInfo, len(data)-size)
		data = data[:size]
	}

	id := cbm.DiskID{data[diskIDOffset], data[diskIDOffset+1]}
	common.LogDebug(common.DebugDiskID, id[0], id[1])

	var tracks [][][]byte
	for track := 1; track <= cbm.MaxTracks; track++ {
		offset := cbm.TrackOffset(track)
		available := (len(data) - offset) / cbm.SectorSize
		if available <= 0 {
			break
		}
		count := cbm.SectorsPerTrack(track)
		if available < count {
			diag.Warn(cbm.TrackToHalfTrack(track), common.WarnPartialTrack, track, available, count)
			count = available
		}
		sectors := make([][]byte, count)
		for sector := range sectors {
			start := offset + sector*cbm.SectorSize
			sectors[sector] = data[start : start+cbm.SectorSize]
		}
		tracks = append(tracks, sectors)
	}

	encoded := make([][]byte, len(tracks))
	g := new(errgroup.Group)
	g.SetLimit(f.Jobs)
	for i, sectors := range tracks {
		g.Go(func() error {
			track := i + 1
			gcr, err := cbm.EncodeTrack(track, id, sectors)
			if err != nil {
				return common.FormatErrorString(common.ErrFailedToEncodeTrack, "track %d: %w", track, err)
			}
			common.LogDebug(common.DebugTrackEncoded, track, len(sectors), len(gcr))
			encoded[i] = gcr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	image := NewDiskImage()
	for i, gcr := range encoded {
		if err := image.Set(cbm.TrackToHalfTrack(i+1), gcr); err != nil {
			return nil, err
		}
	}
	return image, nil
}

// Write decodes each even half-track into its sectors and writes them in
// track order. Odd half-tracks have no place in a D64 and are skipped; a
// missing track below the last present one is zero-filled so the layout
// stays aligned.
func (f *D64Format) Write(writer io.Writer, image *DiskImage, diag *Diagnostics) error {
	for _, halfTrack := range image.HalfTracks() {
		if halfTrack%2 != 0 {
			common.LogDebug(common.DebugOddHalfTrack, halfTrack)
		}
	}

	decoded, err := f.DecodeTracks(image)
	if err != nil {
		return err
	}

	for i, track := range decoded {
		halfTrack := cbm.TrackToHalfTrack(i + 1)
		var sectors []byte
		if track == nil {
			diag.Warn(halfTrack, common.WarnMissingTrack, halfTrack, i+1)
			sectors = make([]byte, cbm.SectorsPerTrack(i+1)*cbm.SectorSize)
		} else {
			diag.Add(halfTrack, track.Warnings...)
			sectors = track.Data
		}
		if _, err := writer.Write(sectors); err != nil {
			return common.FormatError(common.ErrFailedToWriteOutput, err)
		}
	}
	return nil
}

// DecodeTracks decodes tracks 1 up to the last present even half-track.
// The result is indexed by track-1 and holds nil for absent tracks.
func (f *D64Format) DecodeTracks(image *DiskImage) ([]*cbm.DecodedTrack, error) {
	decoded := make([]*cbm.DecodedTrack, image.LastTrack())
	g := new(errgroup.Group)
	g.SetLimit(f.Jobs)
	for i := range decoded {
		raw, ok := image.Get(cbm.TrackToHalfTrack(i + 1))
		if !ok {
			continue
		}
		g.Go(func() error {
			decoded[i] = cbm.DecodeTrack(cbm.TrackToHalfTrack(i+1), raw)
			return nil
		})
	}
	return decoded, g.Wait()
}
