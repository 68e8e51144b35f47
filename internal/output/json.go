package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// JSONWriter buffers records and writes them as one pretty-printed
// JSON array. A single record still serializes as a one-element array
// so consumers can always expect array shape.
type JSONWriter struct {
	w     *bufio.Writer
	items []schedule.Record
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     bufio.NewWriter(w),
		items: make([]schedule.Record, 0),
	}
}

// Write buffers a single record.
func (w *JSONWriter) Write(rec schedule.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers a full collection.
func (w *JSONWriter) WriteAll(recs []schedule.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as a JSON array.
func (w *JSONWriter) Flush() error {
	out, err := json.MarshalIndent(w.items, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// JSONLWriter writes newline-delimited JSON, one record per line.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: bufio.NewWriter(w)}
}

// Write writes a single record as a JSON line.
func (w *JSONLWriter) Write(rec schedule.Record) error {
	out, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return nil
}

// WriteAll writes all records as JSON lines.
func (w *JSONLWriter) WriteAll(recs []schedule.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}
