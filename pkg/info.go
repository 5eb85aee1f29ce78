package pkg

import (
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/c1541tools/pkg/cbm"
	"github.com/hansbonini/c1541tools/pkg/common"
	"gopkg.in/yaml.v3"
)

// HalfTrackSummary describes one present half-track
type HalfTrackSummary struct {
	HalfTrack int    `yaml:"half_track"`
	Track     string `yaml:"track"`
	Length    int    `yaml:"length"`
	Speed     int    `yaml:"zone_speed"`
	Sectors   int    `yaml:"sectors,omitempty"`   // Sectors per track in the zone, even half-tracks only
	Recovered int    `yaml:"recovered,omitempty"` // Sectors the decoder recovered
	DiskID    string `yaml:"disk_id,omitempty"`
}

// ImageSummary describes the content of an image file
type ImageSummary struct {
	Path       string             `yaml:"path"`
	Format     string             `yaml:"format"`
	DiskID     string             `yaml:"disk_id,omitempty"`
	HalfTracks []HalfTrackSummary `yaml:"half_tracks"`
	Warnings   []Warning          `yaml:"warnings,omitempty"`
}

// Inspect reads an image and decodes every even half-track to report what
// it holds. Nothing is written.
func Inspect(path string) (*ImageSummary, error) {
	jobs := DefaultConvertOptions().Jobs
	format, err := FormatForPath(path, jobs)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadInput, err)
	}

	diag := NewDiagnostics()
	image, err := format.Read(data, diag)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToParseInput, err)
	}

	decoded, err := NewD64Format(jobs).DecodeTracks(image)
	if err != nil {
		return nil, err
	}

	summary := &ImageSummary{
		Path:       path,
		Format:     format.Name(),
		HalfTracks: make([]HalfTrackSummary, 0, image.Len()),
	}
	for _, halfTrack := range image.HalfTracks() {
		raw, _ := image.Get(halfTrack)
		zone, _ := cbm.ZoneForHalfTrack(halfTrack)
		entry := HalfTrackSummary{
			HalfTrack: halfTrack,
			Track:     trackLabel(halfTrack),
			Length:    len(raw),
			Speed:     zone.Speed,
		}
		if halfTrack%2 == 0 {
			track := decoded[cbm.HalfTrackToTrack(halfTrack)-1]
			entry.Sectors = zone.Sectors
			entry.Recovered = track.Recovered
			if track.Recovered > 0 {
				entry.DiskID = track.DiskID.String()
			}
			diag.Add(halfTrack, track.Warnings...)
		}
		summary.HalfTracks = append(summary.HalfTracks, entry)
	}

	if len(decoded) >= 18 && decoded[17] != nil && decoded[17].Recovered > 0 {
		summary.DiskID = decoded[17].DiskID.String()
	}
	summary.Warnings = diag.Warnings()
	return summary, nil
}

// WriteYAML encodes the summary as YAML
func (s *ImageSummary) WriteYAML(writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// trackLabel names a half-track the way drive monitors do: "18" or "18.5"
func trackLabel(halfTrack int) string {
	track := cbm.HalfTrackToTrack(halfTrack)
	if halfTrack%2 != 0 {
		return fmt.Sprintf("%d.5", track)
	}
	return fmt.Sprintf("%d", track)
}
