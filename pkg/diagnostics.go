package pkg

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hansbonini/c1541tools/pkg/cbm"
	"github.com/hansbonini/c1541tools/pkg/common"
)

// Warning is a recoverable problem found while reading or writing an image
type Warning struct {
	HalfTrack int    `yaml:"half_track"`
	Track     int    `yaml:"track"`
	Message   string `yaml:"message"`
}

// Diagnostics collects warnings from concurrent track workers. A nil
// *Diagnostics only logs.
type Diagnostics struct {
	mu       sync.Mutex
	warnings []Warning
}

// NewDiagnostics creates an empty warning collector
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Warn logs a warning and records it against a half-track
func (d *Diagnostics) Warn(halfTrack int, message string, args ...interface{}) {
	common.LogWarn(message, args...)
	d.Add(halfTrack, fmt.Sprintf(message, args...))
}

// Add records messages that were already logged
func (d *Diagnostics) Add(halfTrack int, messages ...string) {
	if d == nil || len(messages) == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, message := range messages {
		d.warnings = append(d.warnings, Warning{
			HalfTrack: halfTrack,
			Track:     cbm.HalfTrackToTrack(halfTrack),
			Message:   message,
		})
	}
}

// Warnings returns the recorded warnings ordered by half-track, keeping the
// order in which each half-track reported them
func (d *Diagnostics) Warnings() []Warning {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	warnings := append([]Warning(nil), d.warnings...)
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].HalfTrack < warnings[j].HalfTrack
	})
	return warnings
}

// Count returns the number of recorded warnings
func (d *Diagnostics) Count() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.warnings)
}
