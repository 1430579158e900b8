// Package exchange reads and writes the portable export document for
// measurements and boxes.
package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is written to every exported document.
const SchemaVersion = 1

// TimeLayout is the timestamp format of every time field; values are UTC.
const TimeLayout = "2006-01-02T15:04:05Z"

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected json or yaml)", s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document is the top-level export structure.
type Document struct {
	Version      int                 `json:"version" yaml:"version"`
	ExportedAt   string              `json:"exported_at" yaml:"exported_at"`
	Measurements []MeasurementRecord `json:"measurements" yaml:"measurements"`
	Boxes        []BoxRecord         `json:"boxes" yaml:"boxes"`
}

// MeasurementRecord is one measurement in the document.
type MeasurementRecord struct {
	ID     string      `json:"id" yaml:"id"`
	Label  string      `json:"label" yaml:"label"`
	Detail string      `json:"detail,omitempty" yaml:"detail,omitempty"`
	Start  string      `json:"start" yaml:"start"`
	End    string      `json:"end" yaml:"end"`
	Color  ColorRecord `json:"color" yaml:"color"`
}

// ColorRecord holds RGB channels in [0,1].
type ColorRecord struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

// BoxRecord is one completed box in the document.
type BoxRecord struct {
	ID          string `json:"id" yaml:"id"`
	Start       string `json:"start" yaml:"start"`
	WorkMinutes int    `json:"work_minutes" yaml:"work_minutes"`
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}

// Decode reads a document in the given format from r.
func Decode(r io.Reader, f Format) (*Document, error) {
	var doc Document
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	}
	return &doc, nil
}

// LoadDocument reads and parses the file at path, choosing the format from
// its extension.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	defer f.Close()
	return Decode(f, FormatForPath(path))
}
