package report

import (
	"Go2FlowTag/internal/errors"
	"Go2FlowTag/internal/model"
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Render writes the two report tables for counts to w, rows sorted by key.
func Render(w io.Writer, counts *model.Counts) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Tag Counts:")
	fmt.Fprintln(bw, "Tag,Count")
	for _, row := range counts.SortedTags() {
		fmt.Fprintf(bw, "%s,%d\n", row.Tag, row.Count)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Port/Protocol Combination Counts:")
	fmt.Fprintln(bw, "Port,Protocol,Count")
	for _, row := range counts.SortedPortProtocols() {
		fmt.Fprintf(bw, "%s,%s,%d\n", row.Port, row.Protocol, row.Count)
	}

	return bw.Flush()
}

// TextWriter writes the plain-text report to a single file, replacing any
// previous contents.
type TextWriter struct {
	path string
}

// NewTextWriter creates a new text report writer for path.
func NewTextWriter(path string) model.Writer {
	return &TextWriter{path: path}
}

// Name returns the writer type.
func (w *TextWriter) Name() string {
	return "text"
}

// Write renders counts into the report file. A failed write may leave a
// partially written file behind.
func (w *TextWriter) Write(_ context.Context, counts *model.Counts, _ string) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return errors.Wrap(err, errors.KindUnavailable, "failed to create report directory")
	}

	file, err := os.Create(w.path)
	if err != nil {
		return errors.Wrap(err, errors.KindUnavailable, fmt.Sprintf("failed to create report file '%s'", w.path))
	}
	defer file.Close()

	if err := Render(file, counts); err != nil {
		return errors.Wrap(err, errors.KindUnavailable, "failed to write report")
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(err, errors.KindUnavailable, "failed to close report file")
	}

	log.Printf("Wrote %d tag rows and %d port/protocol rows to %s", len(counts.Tags), len(counts.PortProtocols), w.path)
	return nil
}
