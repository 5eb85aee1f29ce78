// Package pkg provides functionality for converting Commodore 1541 disk images.
// This file contains the conversion driver that picks container formats by
// file extension and moves half-tracks from one to the other.
package pkg

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hansbonini/c1541tools/pkg/common"
)

// ConvertOptions controls a conversion
type ConvertOptions struct {
	Jobs int // Parallel track workers for D64 encode/decode
}

// DefaultConvertOptions returns one worker per CPU
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{Jobs: runtime.NumCPU()}
}

// FormatForPath selects the image format from a file extension, ignoring case
func FormatForPath(path string, jobs int) (ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".d64":
		return NewD64Format(jobs), nil
	case ".g64":
		return NewG64Format(), nil
	case ".i64":
		return NewI64Format(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Converter converts between D64, G64 and I64 images
type Converter struct {
	options ConvertOptions
}

// NewConverter creates a new converter instance
func NewConverter(options ConvertOptions) *Converter {
	if options.Jobs < 1 {
		options.Jobs = runtime.NumCPU()
	}
	return &Converter{options: options}
}

// Convert reads inputPath and writes its content to outputPath in the
// format implied by each extension. An existing output file is never
// overwritten, and the output is removed again if the conversion fails.
func (c *Converter) Convert(inputPath, outputPath string) (*Report, error) {
	reader, err := FormatForPath(inputPath, c.options.Jobs)
	if err != nil {
		return nil, err
	}
	writer, err := FormatForPath(outputPath, c.options.Jobs)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(outputPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, outputPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}

	common.LogInfo(common.InfoConverting, inputPath, reader.Name(), outputPath, writer.Name())

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadInput, err)
	}

	diag := NewDiagnostics()
	image, err := reader.Read(data, diag)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToParseInput, err)
	}
	common.LogInfo(common.InfoHalfTracksRead, image.Len(), reader.Name())

	if err := c.writeImage(outputPath, writer, image, diag); err != nil {
		return nil, err
	}

	common.LogInfo(common.InfoConversionDone, diag.Count())
	return &Report{
		Input:        inputPath,
		InputFormat:  reader.Name(),
		Output:       outputPath,
		OutputFormat: writer.Name(),
		HalfTracks:   image.Len(),
		Warnings:     diag.Warnings(),
	}, nil
}

// Convert runs a single conversion with a new Converter
func Convert(inputPath, outputPath string, options ConvertOptions) (*Report, error) {
	return NewConverter(options).Convert(inputPath, outputPath)
}

// writeImage creates the output exclusively and removes it on any failure
func (c *Converter) writeImage(outputPath string, format ImageWriter, image *DiskImage, diag *Diagnostics) (err error) {
	file, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, outputPath)
		}
		return common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}

	defer func() {
		if err == nil {
			return
		}
		file.Close()
		if removeErr := os.Remove(outputPath); removeErr != nil {
			common.LogError("%s: %v", common.ErrFailedToRemovePartial, removeErr)
			return
		}
		common.LogInfo(common.InfoPartialRemoved, outputPath)
	}()

	buffered := bufio.NewWriter(file)
	if err = format.Write(buffered, image, diag); err != nil {
		return err
	}
	if err = buffered.Flush(); err != nil {
		return common.FormatError(common.ErrFailedToWriteOutput, err)
	}
	if err = file.Close(); err != nil {
		return common.FormatError(common.ErrFailedToCloseOutput, err)
	}
	return nil
}
