// Package report writes time sheet entries to CSV or XLSX files.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeffrom/logit/config"
	"github.com/jeffrom/logit/model"
)

// Stdout is the output path meaning the terminal's stdout.
const Stdout = "-"

// Writer writes a complete report.
type Writer interface {
	WriteEntries(w io.Writer, f *Formatter, entries []*model.Entry) error
}

// Output is an opened report destination.
type Output struct {
	Path   string
	Format string

	w      io.Writer
	file   *os.File
	writer Writer
}

// ResolveFormat returns format, or the format implied by path's extension.
func ResolveFormat(path, format string) string {
	if format != "" {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return "xlsx"
	}
	return "csv"
}

// Open creates the output right away, so an unwritable path is reported
// before any work is done.
func Open(cfg config.Config, path, format string) (*Output, error) {
	format = ResolveFormat(path, format)
	var writer Writer
	switch format {
	case "csv":
		writer = CSV{}
	case "xlsx":
		writer = XLSX{}
	default:
		return nil, fmt.Errorf("report: unknown format %q", format)
	}

	out := &Output{Path: path, Format: format, writer: writer}
	if path == Stdout {
		if format == "xlsx" && cfg.Term.StdoutIsTerminal() {
			return nil, errors.New("report: refusing to write xlsx to a terminal")
		}
		out.w = cfg.Term.Stdout
		return out, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: can't write output: %w", err)
	}
	out.file = f
	out.w = f
	return out, nil
}

// Write writes the header and one row per entry, in the order given.
func (o *Output) Write(f *Formatter, entries []*model.Entry) error {
	if err := o.writer.WriteEntries(o.w, f, entries); err != nil {
		return fmt.Errorf("report: failed to write %s: %w", o.Path, err)
	}
	return nil
}

func (o *Output) Close() error {
	if o.file == nil {
		return nil
	}
	err := o.file.Close()
	o.file = nil
	return err
}
