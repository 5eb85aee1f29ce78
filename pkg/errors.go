package pkg

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrOutputExists      = errors.New("output file already exists")
	ErrInvalidHalfTrack  = errors.New("invalid half-track number")
	ErrImageTooSmall     = errors.New("image too small")
	ErrTrackTooLong      = errors.New("track data too long")
	ErrTooManyHalfTracks = errors.New("too many half-tracks")
	ErrInvalidOffset     = errors.New("offset outside of image")
)
