package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// YAMLWriter buffers records and writes them as one YAML sequence.
type YAMLWriter struct {
	w     *bufio.Writer
	items []schedule.Record
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]schedule.Record, 0),
	}
}

// Write buffers a single record.
func (w *YAMLWriter) Write(rec schedule.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers a full collection.
func (w *YAMLWriter) WriteAll(recs []schedule.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as a YAML sequence.
func (w *YAMLWriter) Flush() error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(w.items); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}
