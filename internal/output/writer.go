// Package output serializes pool collections for the CLI. The JSON
// form always emits a top-level array, matching the persisted
// collection contract.
package output

import (
	"fmt"
	"io"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer serializes pool records.
type Writer interface {
	// Write outputs a single record.
	Write(rec schedule.Record) error

	// WriteAll outputs a full collection.
	WriteAll(recs []schedule.Record) error

	// Flush ensures all data is written.
	Flush() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
