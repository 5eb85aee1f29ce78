package pkg

import (
	"fmt"
	"io"
	"sort"

	"github.com/hansbonini/c1541tools/pkg/cbm"
)

// DiskImage maps half-track indexes (0..83) to one revolution of raw GCR
// data. It is the interchange model between container readers and writers:
// a half-track that is not present is unformatted.
type DiskImage struct {
	halfTracks map[int][]byte
}

// NewDiskImage creates an empty disk image
func NewDiskImage() *DiskImage {
	return &DiskImage{halfTracks: make(map[int][]byte)}
}

// Set stores the GCR data of a half-track. Empty data removes the half-track.
func (d *DiskImage) Set(halfTrack int, data []byte) error {
	if halfTrack < 0 || halfTrack >= cbm.MaxHalfTracks {
		return fmt.Errorf("%w: %d", ErrInvalidHalfTrack, halfTrack)
	}
	if len(data) == 0 {
		delete(d.halfTracks, halfTrack)
		return nil
	}
	d.halfTracks[halfTrack] = data
	return nil
}

// Get returns the GCR data of a half-track
func (d *DiskImage) Get(halfTrack int) ([]byte, bool) {
	data, ok := d.halfTracks[halfTrack]
	return data, ok
}

// HalfTracks returns the present half-track indexes in ascending order
func (d *DiskImage) HalfTracks() []int {
	indexes := make([]int, 0, len(d.halfTracks))
	for halfTrack := range d.halfTracks {
		indexes = append(indexes, halfTrack)
	}
	sort.Ints(indexes)
	return indexes
}

// Len returns the number of present half-tracks
func (d *DiskImage) Len() int {
	return len(d.halfTracks)
}

// LastTrack returns the highest logical track stored on an even half-track,
// or 0 when there is none
func (d *DiskImage) LastTrack() int {
	last := 0
	for halfTrack := range d.halfTracks {
		if halfTrack%2 == 0 && cbm.HalfTrackToTrack(halfTrack) > last {
			last = cbm.HalfTrackToTrack(halfTrack)
		}
	}
	return last
}

// ImageReader parses a complete container image into a DiskImage
type ImageReader interface {
	Read(data []byte, diag *Diagnostics) (*DiskImage, error)
}

// ImageWriter serializes a DiskImage into a container image
type ImageWriter interface {
	Write(writer io.Writer, image *DiskImage, diag *Diagnostics) error
}

// ImageFormat combines reader and writer for one container type
type ImageFormat interface {
	ImageReader
	ImageWriter
	Name() string
}
