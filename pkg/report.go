package pkg

import (
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/c1541tools/pkg/common"
	"gopkg.in/yaml.v3"
)

// Report summarizes one conversion
type Report struct {
	Input        string    `yaml:"input"`
	InputFormat  string    `yaml:"input_format"`
	Output       string    `yaml:"output"`
	OutputFormat string    `yaml:"output_format"`
	HalfTracks   int       `yaml:"half_tracks"`
	Warnings     []Warning `yaml:"warnings,omitempty"`
}

// WriteYAML encodes the report as YAML
func (r *Report) WriteYAML(writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteReport saves a conversion report as a YAML file
func WriteReport(report *Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return common.FormatError(common.ErrFailedToWriteReport, err)
	}

	if err := report.WriteYAML(file); err != nil {
		file.Close()
		return common.FormatError(common.ErrFailedToWriteReport, err)
	}
	if err := file.Close(); err != nil {
		return common.FormatError(common.ErrFailedToWriteReport, err)
	}

	common.LogInfo(common.InfoReportWritten, path)
	return nil
}
