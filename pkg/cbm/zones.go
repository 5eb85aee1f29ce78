package cbm

// Disk geometry constants for the 1541
const (
	MaxTracks      = 42             // Highest logical track a 1541 head can reach
	MaxHalfTracks  = MaxTracks * 2  // Addressable head positions
	SectorSize     = 256            // Payload bytes per sector
	HeaderMarker   = 0x08           // First byte of a block header
	DataMarker     = 0x07           // First byte of a data block
	HeaderPadByte  = 0x0F           // Pads a header to a multiple of 4 bytes
	GapByte        = 0x55           // Gap and track filler byte
	SyncByte       = 0xFF           // Sync byte written by the drive
	SyncLength     = 5              // Sync bytes before each block
	HeaderGap      = 9              // Gap bytes between header and data block
	dataLength     = SectorSize + 4 // Marker + payload + checksum + 2 pad bytes
	minHeaderBytes = 6              // Marker, checksum, sector, track, id1, id2
	minDataBytes   = SectorSize + 2 // Marker + payload + checksum
)

// Zone describes a contiguous range of tracks recorded at the same bit rate
type Zone struct {
	FirstTrack  int // First logical track of the zone (1-based)
	LastTrack   int // Last logical track of the zone (1-based)
	Sectors     int // Sectors per track
	TrackLength int // Nominal GCR bytes per revolution
	PostDataGap int // Gap bytes written after each data block
	Speed       int // G64 speed zone value (0..3)
}

// zones is indexed from the outermost zone inwards
var zones = [4]Zone{
	{FirstTrack: 1, LastTrack: 17, Sectors: 21, TrackLength: 7692, PostDataGap: 8, Speed: 3},
	{FirstTrack: 18, LastTrack: 24, Sectors: 19, TrackLength: 7142, PostDataGap: 17, Speed: 2},
	{FirstTrack: 25, LastTrack: 30, Sectors: 18, TrackLength: 6666, PostDataGap: 12, Speed: 1},
	{FirstTrack: 31, LastTrack: MaxTracks, Sectors: 17, TrackLength: 6250, PostDataGap: 9, Speed: 0},
}

// ZoneForTrack returns the zone of a 1-based logical track
func ZoneForTrack(track int) (Zone, bool) {
	for _, z := range zones {
		if track >= z.FirstTrack && track <= z.LastTrack {
			return z, true
		}
	}
	return Zone{}, false
}

// ZoneForHalfTrack returns the zone a half-track index (0..83) belongs to.
// Odd half-tracks share the zone of the track just below them.
func ZoneForHalfTrack(halfTrack int) (Zone, bool) {
	if halfTrack < 0 || halfTrack >= MaxHalfTracks {
		return Zone{}, false
	}
	return ZoneForTrack(HalfTrackToTrack(halfTrack))
}

// HalfTrackToTrack converts a half-track index to its 1-based logical track
func HalfTrackToTrack(halfTrack int) int {
	return halfTrack/2 + 1
}

// TrackToHalfTrack converts a 1-based logical track to its half-track index
func TrackToHalfTrack(track int) int {
	return (track - 1) * 2
}

// SectorsPerTrack returns the sector count of a logical track, 0 when out of range
func SectorsPerTrack(track int) int {
	z, ok := ZoneForTrack(track)
	if !ok {
		return 0
	}
	return z.Sectors
}

// TrackOffset returns the byte offset of a track's first sector in a D64 image
func TrackOffset(track int) int {
	offset := 0
	for t := 1; t < track; t++ {
		offset += SectorsPerTrack(t) * SectorSize
	}
	return offset
}
