// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"fmt"
	"io"
)

// A Format selects an output format.
type Format int

const (
	PNG       Format = iota // PNG image
	GIF                     // GIF image
	SVG                     // SVG document
	Path                    // SVG path data
	EPS                     // Encapsulated PostScript
	PBM                     // netpbm bitmap
	HTMLDiv                 // HTML boxes
	HTMLTable               // HTML table
	ASCII                   // text
	UTF8                    // Unicode half blocks
	PNGURI                  // PNG data URI
	GIFURI                  // GIF data URI
	SVGURI                  // SVG data URI
)

var formatNames = []string{
	"png", "gif", "svg", "path", "eps", "pbm", "div", "table",
	"ascii", "utf8", "png-uri", "gif-uri", "svg-uri",
}

func (r Format) String() string {
	if 0 <= r && int(r) < len(formatNames) {
		return formatNames[r]
	}
	return fmt.Sprintf("Format(%d)", int(r))
}

// Formats returns the names of all formats.
func Formats() []string {
	return append([]string(nil), formatNames...)
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	for i, v := range formatNames {
		if s == v {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: output format %q", ErrArgs, s)
}

// Render writes s to w in the format opts.Render.  Path and data
// URIs are followed by a newline.
func (s *Symbol) Render(w io.Writer, opts Options) error {
	switch opts.Render {
	case PNG:
		return s.PNG(w, opts)
	case GIF:
		return s.GIF(w, opts)
	case SVG:
		return s.SVG(w, opts)
	case Path:
		_, err := fmt.Fprintln(w, s.Path(opts))
		return err
	case EPS:
		return s.EPS(w, opts)
	case PBM:
		return s.PBM(w, opts)
	case HTMLDiv:
		return s.HTMLDiv(w, opts)
	case HTMLTable:
		return s.HTMLTable(w, opts)
	case ASCII:
		return s.ASCII(w, opts)
	case UTF8:
		return s.UTF8(w, opts)
	case PNGURI, GIFURI, SVGURI:
		uri, err := s.DataURI(opts.Render-PNGURI+PNG, opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, uri)
		return err
	}
	return fmt.Errorf("%w: %s", ErrArgs, opts.Render)
}

// Render encodes text and writes it to w in the format opts.Render.
func Render(w io.Writer, text string, opts Options) error {
	s, err := Encode(text, opts)
	if err != nil {
		return err
	}
	return s.Render(w, opts)
}
