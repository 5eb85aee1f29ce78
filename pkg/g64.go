// Package pkg provides functionality for converting Commodore 1541 disk images.
// This file contains the G64 container: GCR half-tracks with per-track
// length and speed information.
package pkg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hansbonini/c1541tools/pkg/cbm"
	"github.com/hansbonini/c1541tools/pkg/common"
)

// G64 layout constants
const (
	G64Magic          = "GCR-1541\x00"
	G64TrackCount     = cbm.MaxHalfTracks // Half-track slots written
	G64MaxTrackLength = 7928              // Track slot size written, excluding the length word
	g64HeaderSize     = len(G64Magic) + 3 // Magic + track count + max track length
)

// G64Header represents the fixed part of a G64 file
type G64Header struct {
	TrackCount     uint8
	MaxTrackLength uint16
	TrackOffsets   []uint32 // Offset of each half-track's length word, 0 when absent
	SpeedOffsets   []uint32 // Zone speed (0..3) or offset of a per-byte speed table
}

// G64Format reads and writes G64 images
type G64Format struct{}

// NewG64Format creates a G64 format handler
func NewG64Format() *G64Format {
	return &G64Format{}
}

// Name returns the format name
func (f *G64Format) Name() string {
	return "G64"
}

// Read parses a G64 image. Speed information is only checked against the
// standard zone speed; a mismatch is reported as a warning.
func (f *G64Format) Read(data []byte, diag *Diagnostics) (*DiskImage, error) {
	reader := bytes.NewReader(data)
	header, err := f.readHeader(reader)
	if err != nil {
		return nil, err
	}
	if int(header.TrackCount) > cbm.MaxHalfTracks {
		return nil, fmt.Errorf("%w: G64 declares %d tracks, at most %d supported",
			ErrTooManyHalfTracks, header.TrackCount, cbm.MaxHalfTracks)
	}

	image := NewDiskImage()
	for halfTrack, offset := range header.TrackOffsets {
		if offset == 0 {
			continue
		}
		track, err := f.readTrack(reader, len(data), halfTrack, offset, header.MaxTrackLength)
		if err != nil {
			return nil, err
		}
		if err := image.Set(halfTrack, track); err != nil {
			return nil, err
		}
		common.LogDebug(common.DebugG64TrackRead, halfTrack, len(track), offset, header.SpeedOffsets[halfTrack])
	}

	for halfTrack, speedOffset := range header.SpeedOffsets {
		track, ok := image.Get(halfTrack)
		if !ok {
			continue
		}
		if err := f.checkSpeed(data, halfTrack, len(track), speedOffset, diag); err != nil {
			return nil, err
		}
	}
	return image, nil
}

// readHeader reads the magic, the track count, the max track length and
// both offset tables
func (f *G64Format) readHeader(reader io.Reader) (*G64Header, error) {
	magic, err := common.ReadBytes(reader, len(G64Magic))
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadG64Header, err)
	}
	if err := common.ValidateMagic(magic, G64Magic); err != nil {
		return nil, common.FormatError(common.ErrFailedToReadG64Header, err)
	}

	header := &G64Header{}
	if header.TrackCount, err = common.ReadUint8(reader); err != nil {
		return nil, common.FormatError(common.ErrFailedToReadG64Header, err)
	}
	if header.MaxTrackLength, err = common.ReadUint16LE(reader); err != nil {
		return nil, common.FormatError(common.ErrFailedToReadG64Header, err)
	}

	header.TrackOffsets = make([]uint32, header.TrackCount)
	header.SpeedOffsets = make([]uint32, header.TrackCount)
	for _, table := range [][]uint32{header.TrackOffsets, header.SpeedOffsets} {
		for i := range table {
			if table[i], err = common.ReadUint32LE(reader); err != nil {
				return nil, common.FormatError(common.ErrFailedToReadG64Offsets, err)
			}
		}
	}
	return header, nil
}

// readTrack reads the length-prefixed data of one half-track
func (f *G64Format) readTrack(reader io.ReadSeeker, size, halfTrack int, offset uint32, maxLength uint16) ([]byte, error) {
	start, err := common.SafeUint32ToInt(offset, size)
	if err != nil {
		return nil, fmt.Errorf("%w: half track %d data: %v", ErrInvalidOffset, halfTrack, err)
	}
	if _, err := reader.Seek(int64(start), io.SeekStart); err != nil {
		return nil, common.FormatError(common.ErrFailedToReadG64Track, err)
	}

	length, err := common.ReadUint16LE(reader)
	if err != nil {
		return nil, common.FormatErrorString(common.ErrFailedToReadG64Track, "half track %d: %w", halfTrack, err)
	}
	if length > maxLength {
		return nil, fmt.Errorf("%w: half track %d is %d bytes, header allows %d",
			ErrTrackTooLong, halfTrack, length, maxLength)
	}

	track, err := common.ReadBytes(reader, int(length))
	if err != nil {
		return nil, common.FormatErrorString(common.ErrFailedToReadG64Track, "half track %d: %w", halfTrack, err)
	}
	return track, nil
}

// checkSpeed compares a half-track's speed information with its zone.
// Offsets 0..3 are a speed for the whole track; anything larger points to a
// table holding 2 bits per data byte, most significant pair first.
func (f *G64Format) checkSpeed(data []byte, halfTrack, length int, speedOffset uint32, diag *Diagnostics) error {
	zone, ok := cbm.ZoneForHalfTrack(halfTrack)
	if !ok {
		return nil
	}
	expected := zone.Speed

	if speedOffset <= 3 {
		if int(speedOffset) != expected {
			diag.Warn(halfTrack, common.WarnTrackSpeed, halfTrack, speedOffset, expected)
		}
		return nil
	}

	start, err := common.SafeUint32ToInt(speedOffset, len(data))
	if err != nil {
		return fmt.Errorf("%w: half track %d speed table: %v", ErrInvalidOffset, halfTrack, err)
	}
	tableLength := (length + 3) / 4
	if start+tableLength > len(data) {
		return common.FormatErrorString(common.ErrFailedToReadG64Speed, "half track %d: %w", halfTrack, io.ErrUnexpectedEOF)
	}
	table := data[start : start+tableLength]

	mismatches, first, firstSpeed := 0, 0, 0
	for i := 0; i < length; i++ {
		speed := int(table[i/4]>>(6-2*(i%4))) & 0x3
		if speed == expected {
			continue
		}
		if mismatches == 0 {
			first, firstSpeed = i, speed
		}
		mismatches++
	}
	if mismatches > 0 {
		diag.Warn(halfTrack, common.WarnTrackByteSpeed, halfTrack, mismatches, first, firstSpeed, expected)
	}
	return nil
}

// Write serializes every half-track into a fixed-size slot padded with gap
// bytes. Present half-tracks get their zone speed; absent ones get 0.
func (f *G64Format) Write(writer io.Writer, image *DiskImage, diag *Diagnostics) error {
	if image.Len() > G64TrackCount {
		return fmt.Errorf("%w: %d half-tracks, G64 holds %d", ErrTooManyHalfTracks, image.Len(), G64TrackCount)
	}

	trackCount, err := common.SafeIntToUint8(G64TrackCount)
	if err != nil {
		return common.FormatError(common.ErrFailedToWriteOutput, err)
	}
	header := &G64Header{
		TrackCount:     trackCount,
		MaxTrackLength: G64MaxTrackLength,
		TrackOffsets:   make([]uint32, trackCount),
		SpeedOffsets:   make([]uint32, trackCount),
	}

	next := g64HeaderSize + 2*4*G64TrackCount
	for _, halfTrack := range image.HalfTracks() {
		track, _ := image.Get(halfTrack)
		if len(track) > G64MaxTrackLength {
			return fmt.Errorf("%w: half track %d is %d bytes, G64 slots hold %d",
				ErrTrackTooLong, halfTrack, len(track), G64MaxTrackLength)
		}
		offset, err := common.SafeIntToUint32(next)
		if err != nil {
			return common.FormatError(common.ErrFailedToWriteOutput, err)
		}
		zone, _ := cbm.ZoneForHalfTrack(halfTrack)
		header.TrackOffsets[halfTrack] = offset
		header.SpeedOffsets[halfTrack] = uint32(zone.Speed)
		next += 2 + G64MaxTrackLength
	}

	if err := f.writeHeader(writer, header); err != nil {
		return common.FormatError(common.ErrFailedToWriteOutput, err)
	}

	for _, halfTrack := range image.HalfTracks() {
		track, _ := image.Get(halfTrack)
		if err := f.writeTrack(writer, track); err != nil {
			return common.FormatErrorString(common.ErrFailedToWriteOutput, "half track %d: %w", halfTrack, err)
		}
	}
	return nil
}

// writeHeader writes the magic, the track count, the max track length and
// both offset tables
func (f *G64Format) writeHeader(writer io.Writer, header *G64Header) error {
	if _, err := io.WriteString(writer, G64Magic); err != nil {
		return err
	}
	if err := binary.Write(writer, binary.LittleEndian, header.TrackCount); err != nil {
		return err
	}
	if err := binary.Write(writer, binary.LittleEndian, header.MaxTrackLength); err != nil {
		return err
	}
	if err := binary.Write(writer, binary.LittleEndian, header.TrackOffsets); err != nil {
		return err
	}
	return binary.Write(writer, binary.LittleEndian, header.SpeedOffsets)
}

// writeTrack writes one length-prefixed track slot. Padding uses the gap
// byte since it is valid GCR that is already present after every sector.
func (f *G64Format) writeTrack(writer io.Writer, track []byte) error {
	length, err := common.SafeIntToUint16(len(track))
	if err != nil {
		return err
	}
	if err := binary.Write(writer, binary.LittleEndian, length); err != nil {
		return err
	}
	if _, err := writer.Write(track); err != nil {
		return err
	}
	_, err = writer.Write(bytes.Repeat([]byte{cbm.GapByte}, G64MaxTrackLength-len(track)))
	return err
}
