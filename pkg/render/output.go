package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"l14tables/pkg/css"
	"l14tables/pkg/layout"
	"l14tables/pkg/text"
)

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath picks the format from the file extension, falling back to
// fallback when the path has none.
func FormatFromPath(path string, fallback Format) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return fallback, nil
	}
	return ParseFormat(ext)
}

// Options configures Write.
type Options struct {
	Width, Height int
	Background    css.Color
	BaseDir       string // for relative background images
	Measurer      *text.Measurer // the one layout measured with; nil for the default
	Logger        *zap.Logger
}

// Write renders the tables in the given format to w.
func Write(w io.Writer, tables []*layout.Table, format Format, opts Options) error {
	switch format {
	case FormatPNG:
		r := NewRenderer(opts.Width, opts.Height)
		r.SetBaseDir(opts.BaseDir)
		r.SetLogger(opts.Logger)
		r.SetMeasurer(opts.Measurer)
		r.Render(tables, opts.Background)
		return r.EncodePNG(w)
	case FormatPDF:
		d := NewPDFDevice(float64(opts.Width), float64(opts.Height))
		d.SetBaseDir(opts.BaseDir)
		d.SetLogger(opts.Logger)
		if opts.Measurer != nil {
			d.SetFonts(opts.Measurer.Fonts())
		}
		d.Render(tables, opts.Background)
		return d.WritePDF(w)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
