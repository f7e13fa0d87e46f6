// Package output formats replay reports as text or JSON.
package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/replay"
)

// ReportWriter is the interface for writing replay reports to output.
// Different implementations handle different output formats (text, JSON).
type ReportWriter interface {
	// WriteReport writes a single report to the output.
	WriteReport(r *replay.Report) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewWriter returns the writer selected by cfg.
func NewWriter(w io.Writer, cfg *config.OutputConfig) ReportWriter {
	if cfg.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes reports as readable text. It writes immediately.
type TextWriter struct {
	w       io.Writer
	cfg     *config.OutputConfig
	palette palette
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	return &TextWriter{
		w:       w,
		cfg:     cfg,
		palette: newPalette(cfg.Colour),
	}
}

// WriteReport writes a report in text form.
func (tw *TextWriter) WriteReport(r *replay.Report) error {
	return writeText(tw.w, r, tw.cfg, tw.palette)
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes reports in JSON format.
// It buffers reports and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	cfg     *config.OutputConfig
	reports []*replay.Report
	single  bool // If true, write each report immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches reports and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{
		w:       w,
		cfg:     cfg,
		reports: make([]*replay.Report, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each report immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteReport buffers a report for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteReport(r *replay.Report) error {
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(ReportToJSON(r, jw.cfg))
	}

	jw.reports = append(jw.reports, r)
	return nil
}

// Flush writes all buffered reports as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.reports) == 0 {
		return nil
	}

	out := &JSONOutput{
		Reports: make([]*JSONReport, 0, len(jw.reports)),
	}
	for _, r := range jw.reports {
		out.Reports = append(out.Reports, ReportToJSON(r, jw.cfg))
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(out)

	// Clear buffer after writing
	jw.reports = jw.reports[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
