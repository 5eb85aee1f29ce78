// Package pkg provides tests for types and data structures
package pkg

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestImageFormat_Interface(t *testing.T) {
	// Test that all container formats implement the interface
	var _ ImageFormat = &D64Format{}
	var _ ImageFormat = &G64Format{}
	var _ ImageFormat = &I64Format{}
}

func TestDiskImage_Set(t *testing.T) {
	tests := []struct {
		name      string
		halfTrack int
		wantErr   bool
	}{
		{"first half-track", 0, false},
		{"last half-track", 83, false},
		{"negative", -1, true},
		{"past the end", 84, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image := NewDiskImage()
			err := image.Set(tt.halfTrack, []byte{0x55})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%d) error = %v, wantErr %v", tt.halfTrack, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidHalfTrack) {
				t.Errorf("Set(%d) error = %v, want %v", tt.halfTrack, err, ErrInvalidHalfTrack)
			}
			if _, ok := image.Get(tt.halfTrack); ok == tt.wantErr {
				t.Errorf("Get(%d) present = %v", tt.halfTrack, ok)
			}
		})
	}
}

func TestDiskImage_EmptyDataRemoves(t *testing.T) {
	image := NewDiskImage()
	_ = image.Set(4, []byte{0x55})
	if err := image.Set(4, nil); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if image.Len() != 0 {
		t.Errorf("Len() = %d after removal, want 0", image.Len())
	}
}

func TestDiskImage_HalfTracksAndLastTrack(t *testing.T) {
	image := NewDiskImage()
	for _, halfTrack := range []int{40, 3, 0, 69, 12} {
		_ = image.Set(halfTrack, []byte{0x55})
	}

	if got, want := image.HalfTracks(), []int{0, 3, 12, 40, 69}; !reflect.DeepEqual(got, want) {
		t.Errorf("HalfTracks() = %v, want %v", got, want)
	}
	if got := image.LastTrack(); got != 21 {
		t.Errorf("LastTrack() = %d, want 21", got)
	}
	if got := NewDiskImage().LastTrack(); got != 0 {
		t.Errorf("LastTrack() of empty image = %d, want 0", got)
	}
}

func TestDiagnostics(t *testing.T) {
	diag := NewDiagnostics()
	diag.Warn(10, "Half track %d: first", 10)
	diag.Add(2, "second", "third")
	diag.Add(10)

	want := []Warning{
		{HalfTrack: 2, Track: 2, Message: "second"},
		{HalfTrack: 2, Track: 2, Message: "third"},
		{HalfTrack: 10, Track: 6, Message: "Half track 10: first"},
	}
	if got := diag.Warnings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Warnings() = %v, want %v", got, want)
	}
	if diag.Count() != 3 {
		t.Errorf("Count() = %d, want 3", diag.Count())
	}
}

func TestDiagnostics_Nil(t *testing.T) {
	var diag *Diagnostics
	diag.Warn(0, "logged only")
	diag.Add(0, "dropped")
	if diag.Count() != 0 || diag.Warnings() != nil {
		t.Errorf("nil Diagnostics recorded warnings")
	}
}

func TestDiagnostics_Concurrent(t *testing.T) {
	diag := NewDiagnostics()
	var wg sync.WaitGroup
	for halfTrack := 0; halfTrack < 84; halfTrack++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			diag.Add(halfTrack, "a", "b")
		}()
	}
	wg.Wait()

	warnings := diag.Warnings()
	if len(warnings) != 168 {
		t.Fatalf("got %d warnings, want 168", len(warnings))
	}
	for i, w := range warnings {
		if w.HalfTrack != i/2 {
			t.Fatalf("warning %d on half track %d, want %d", i, w.HalfTrack, i/2)
		}
	}
}
