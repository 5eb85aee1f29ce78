// Package pkg provides functionality for converting Commodore 1541 disk images.
// This file contains the I64 container: fixed-size raw half-track slots.
package pkg

import (
	"fmt"
	"io"

	"github.com/hansbonini/c1541tools/pkg/cbm"
	"github.com/hansbonini/c1541tools/pkg/common"
)

// I64SlotSize is the size of one half-track slot
const I64SlotSize = 0x2000

// I64Format reads and writes I64 images
type I64Format struct{}

// NewI64Format creates an I64 format handler
func NewI64Format() *I64Format {
	return &I64Format{}
}

// Name returns the format name
func (f *I64Format) Name() string {
	return "I64"
}

// Read splits the image into slots. An all-zero slot is an unformatted
// half-track, a short trailing slot ends the image, and every other slot is
// cut down to the usable length of its zone.
func (f *I64Format) Read(data []byte, diag *Diagnostics) (*DiskImage, error) {
	image := NewDiskImage()
	for halfTrack := 0; (halfTrack+1)*I64SlotSize <= len(data); halfTrack++ {
		slot := data[halfTrack*I64SlotSize : (halfTrack+1)*I64SlotSize]
		if common.IsZero(slot) {
			continue
		}
		zone, ok := cbm.ZoneForHalfTrack(halfTrack)
		if !ok {
			return nil, fmt.Errorf("%w: I64 slot %d holds data", ErrTooManyHalfTracks, halfTrack)
		}
		track := slot[:zone.TrackLength]
		if err := image.Set(halfTrack, track); err != nil {
			return nil, err
		}
		common.LogDebug(common.DebugI64SlotRead, halfTrack, len(track))
	}
	return image, nil
}

// Write emits all 84 slots, zero-padded
func (f *I64Format) Write(writer io.Writer, image *DiskImage, diag *Diagnostics) error {
	for halfTrack := 0; halfTrack < cbm.MaxHalfTracks; halfTrack++ {
		slot := make([]byte, I64SlotSize)
		if track, ok := image.Get(halfTrack); ok {
			zone, _ := cbm.ZoneForHalfTrack(halfTrack)
			if len(track) > zone.TrackLength {
				return fmt.Errorf("%w: half track %d is %d bytes, I64 zone allows %d",
					ErrTrackTooLong, halfTrack, len(track), zone.TrackLength)
			}
			copy(slot, track)
		}
		if _, err := writer.Write(slot); err != nil {
			return common.FormatError(common.ErrFailedToWriteOutput, err)
		}
	}
	return nil
}
