// Package cbm provides Commodore 1541-specific structures and functionality.
// This file contains the GCR (Group Code Recording) codec used on the
// 1541 disk surface.
package cbm

import (
	"errors"
	"fmt"
)

// ErrGCRFraming is returned when an encode input does not end on a byte boundary
var ErrGCRFraming = errors.New("GCR input length must be a multiple of 4 bytes")

// gcrCodes maps each nibble to its 5-bit code. No code holds more than
// two consecutive zero bits, so the drive can recover its clock from data.
var gcrCodes = [16]byte{
	0x0A, 0x0B, 0x12, 0x13,
	0x0E, 0x0F, 0x16, 0x17,
	0x09, 0x19, 0x1A, 0x1B,
	0x0D, 0x1D, 0x1E, 0x15,
}

// gcrNibbles is the reverse of gcrCodes; invalid codes map to 0.
var gcrNibbles = func() [32]byte {
	var table [32]byte
	for nibble, code := range gcrCodes {
		table[code] = byte(nibble)
	}
	return table
}()

// EncodeGCR converts data bytes into GCR flux bytes. Every 4 input bytes
// produce 5 output bytes.
func EncodeGCR(data []byte) ([]byte, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrGCRFraming, len(data))
	}

	result := make([]byte, 0, len(data)*5/4)
	var acc uint32
	bits := 0
	for _, b := range data {
		acc = acc<<10 | uint32(gcrCodes[b>>4])<<5 | uint32(gcrCodes[b&0x0F])
		bits += 10
		for bits >= 8 {
			bits -= 8
			result = append(result, byte(acc>>bits))
		}
		acc &= 1<<bits - 1
	}
	return result, nil
}

// DecodeGCR converts GCR flux bytes back into data bytes. A 5-bit pattern
// outside the code table decodes as nibble 0 and trailing bits that do not
// fill a 10-bit group are dropped.
func DecodeGCR(gcr []byte) []byte {
	result := make([]byte, 0, len(gcr)*4/5)
	var acc uint32
	bits := 0
	for _, b := range gcr {
		acc = acc<<8 | uint32(b)
		bits += 8
		if bits >= 10 {
			bits -= 10
			high := gcrNibbles[(acc>>(bits+5))&0x1F]
			low := gcrNibbles[(acc>>bits)&0x1F]
			result = append(result, high<<4|low)
		}
		acc &= 1<<bits - 1
	}
	return result
}
