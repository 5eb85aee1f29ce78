package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Error messages
const (
	ErrFailedToReadInput        = "failed to read input image"
	ErrFailedToParseInput       = "failed to parse input image"
	ErrFailedToCreateOutputFile = "failed to create output file"
	ErrFailedToWriteOutput      = "failed to write output image"
	ErrFailedToCloseOutput      = "failed to close output file"
	ErrFailedToWriteReport      = "failed to write conversion report"
	ErrFailedToReadG64Header    = "failed to read G64 header"
	ErrFailedToReadG64Offsets   = "failed to read G64 offset table"
	ErrFailedToReadG64Track     = "failed to read G64 track"
	ErrFailedToReadG64Speed     = "failed to read G64 speed table"
	ErrFailedToEncodeTrack      = "failed to encode track"
	ErrFailedToRemovePartial    = "failed to remove partial output"
)

// Info messages
const (
	InfoConverting     = "Converting %s (%s) -> %s (%s)"
	InfoHalfTracksRead = "Read %d half-tracks from %s image"
	InfoConversionDone = "Conversion finished with %d warning(s)"
	InfoReportWritten  = "Conversion report written to: %s"
	InfoPartialRemoved = "Removed partial output file: %s"
)

// Debug messages
const (
	DebugSyncMarksFound  = "Half track %d: %d chunk(s) between sync marks"
	DebugWrapAroundChunk = "Half track %d: leading data block moved behind last header"
	DebugDiskIDBuckets   = "Half track %d: %d disk id bucket(s), keeping %q with %d sector(s)"
	DebugOddHalfTrack    = "Half track %d: odd half-track has no D64 representation, skipping"
	DebugTrackEncoded    = "Track %d: %d sector(s) encoded into %d GCR bytes"
	DebugG64TrackRead    = "Half track %d: %d bytes at offset 0x%X, speed offset %d"
	DebugI64SlotRead     = "Half track %d: %d usable bytes"
	DebugDiskID          = "Disk ID: %02X %02X"
	DebugErrorInfo       = "Ignoring %d bytes of per-sector error info"
)

// Warning messages
const (
	WarnNoSyncMark        = "Half track %d: no sync mark, assuming empty"
	WarnNotABlockHeader   = "Half track %d: not a (complete) block header: % X"
	WarnBadHeaderChecksum = "Half track %d: bad header checksum: %02X != %02X ^ %02X ^ %02X ^ %02X"
	WarnWrongTrack        = "Half track %d: got a block claiming to be from track %d"
	WarnNotADataBlock     = "Half track %d: not a (complete) data block after header of sector %d"
	WarnMissingDataBlock  = "Half track %d: header of sector %d is not followed by a data block"
	WarnBadDataChecksum   = "Half track %d: bad data checksum in sector %d: %02X != %02X"
	WarnNoValidBlock      = "Half track %d: no valid block found, assuming empty"
	WarnAliasedSector     = "Half track %d: sector %d found more than once, keeping first occurrence"
	WarnSectorOutOfRange  = "Half track %d: sector %d is beyond the %d sectors of track %d"
	WarnMissingSector     = "Half track %d: sector %d not found, filling with zeros"
	WarnStaleDiskID       = "Half track %d: dropped %d sector(s) from stale disk id %q"
	WarnMissingTrack      = "Half track %d: track %d is absent, filling with zeros"
	WarnTrackSpeed        = "Half track %d: track at speed %d instead of %d"
	WarnTrackByteSpeed    = "Half track %d: %d byte(s) at non-standard speed (first at byte %d: %d instead of %d)"
	WarnPartialTrack      = "Track %d: only %d of %d sectors present in image"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}
