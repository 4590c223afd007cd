// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qrsym encodes text as QR codes and renders them.

Encode chooses the segment modes and the smallest version that holds
the text and returns a Symbol.  A Symbol renders itself as a raster
image (PNG, GIF, PBM), a vector path (SVG, EPS), HTML markup, text or
a data URI.  Render does both in one call.
*/
package qrsym // import "github.com/unixdj/qrsym"

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/unixdj/qrsym/coding"
	"github.com/unixdj/qrsym/split"
)

// Errors.
var (
	ErrArgs        = errors.New("qr: invalid arguments")
	ErrCapacity    = coding.ErrCapacity
	ErrCharacter   = coding.ErrCharacter
	ErrUnsupported = coding.ErrUnsupported
	ErrLevel       = coding.ErrLevel
	ErrVersion     = coding.ErrVersion
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

const (
	L = coding.L // 7% of codewords recoverable
	M = coding.M // 15%
	Q = coding.Q // 25%
	H = coding.H // 30%
)

// A DataMode selects how text is split into segments.
type DataMode int

const (
	Auto         DataMode = iota // cheapest mix of all modes
	Numeric                      // numeric mode only
	Alphanumeric                 // alphanumeric mode only
	Byte                         // byte mode only
	Kanji                        // kanji mode only
)

var dataModeNames = []string{"auto", "numeric", "alphanumeric", "byte", "kanji"}

func (m DataMode) String() string {
	if 0 <= m && int(m) < len(dataModeNames) {
		return dataModeNames[m]
	}
	return fmt.Sprintf("DataMode(%d)", int(m))
}

// ParseDataMode returns the DataMode named s.
func ParseDataMode(s string) (DataMode, error) {
	for i, v := range dataModeNames {
		if s == v {
			return DataMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: data mode %q", ErrArgs, s)
}

// An OverlayMode selects what is drawn over a raster symbol.
type OverlayMode int

const (
	OverlayNone       OverlayMode = iota
	OverlayLabelStrip             // label, blanking full-width rows
	OverlayLabelBox               // label, blanking its box
	OverlayImageStrip             // image, blanking full-width rows
	OverlayImageBox               // image, blanking its box
)

// Options controls encoding and rendering.
type Options struct {
	Render     Format         // output of Render
	MinVersion coding.Version // smallest version to try
	MaxVersion coding.Version // largest version to try
	Level      Level          // error correction level
	DataMode   DataMode       // segment modes
	NoKanji    bool           // no kanji mode in Auto

	Size       int         // pixels per module; characters for ASCII
	Quiet      int         // quiet zone width in modules
	Fill       color.Color // dark module colour
	Background color.Color // light module colour, nil is transparent
	Pattern    image.Image // tiled into dark modules instead of Fill
	Radius     float64     // corner radius in modules, 0 to 0.5
	Reverse    bool        // swap dark and light in text, PBM and EPS output

	// Overlay.  MSize, MPosX and MPosY are fractions of the symbol
	// size: the overlay height and its position in the free space.
	Mode      OverlayMode
	Label     string
	FontName  string  // TrueType font file; a basic bitmap font if empty
	FontSize  float64 // points to load FontName at
	FontColor color.Color
	Image     image.Image
	MSize     float64
	MPosX     float64
	MPosY     float64
}

// DefaultOptions returns the default options: PNG output, versions
// 1 to 40, level L, automatic modes, 4 pixels per module, a 4 module
// quiet zone, black on white, a 32 point font, overlay geometry
// 0.1, 0.5, 0.5.
func DefaultOptions() Options {
	return Options{
		Render:     PNG,
		MinVersion: coding.MinVersion,
		MaxVersion: coding.MaxVersion,
		Level:      L,
		Size:       4,
		Quiet:      4,
		Fill:       color.Black,
		Background: color.White,
		FontSize:   32,
		FontColor:  color.Black,
		MSize:      0.1,
		MPosX:      0.5,
		MPosY:      0.5,
	}
}

// splitter returns a Splitter for text according to o.DataMode.
func (o *Options) splitter(text string) (split.Splitter, error) {
	switch o.DataMode {
	case Auto:
		return split.String{Text: text, NoKanji: o.NoKanji}, nil
	case Numeric, Alphanumeric, Byte, Kanji:
		return split.Mode{Mode: coding.Mode(o.DataMode - 1), Text: text}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrArgs, o.DataMode)
}

// versions returns the version bounds, zero meaning the full range.
func (o *Options) versions() (min, max coding.Version) {
	min, max = o.MinVersion, o.MaxVersion
	if min == 0 {
		min = coding.MinVersion
	}
	if max == 0 {
		max = coding.MaxVersion
	}
	return min, max
}

// A Symbol is an encoded QR code.
type Symbol struct {
	coding.Code
	Segments []coding.Segment // encoded data
}

// Encode encodes text using the smallest version between
// opts.MinVersion and opts.MaxVersion that holds it at level
// opts.Level.  Zero version bounds mean 1 and 40.
func Encode(text string, opts Options) (*Symbol, error) {
	sp, err := opts.splitter(text)
	if err != nil {
		return nil, err
	}
	min, max := opts.versions()
	segs, v, err := split.Fit(sp, opts.Level, min, max)
	if err != nil {
		return nil, err
	}
	c, err := coding.Encode(v, opts.Level, segs...)
	if err != nil {
		return nil, err
	}
	return &Symbol{Code: *c, Segments: segs}, nil
}

// EncodeAll encodes texts in parallel and returns the symbols in the
// same order.  If any text fails to encode, EncodeAll returns the
// first error.
func EncodeAll(texts []string, opts Options) ([]*Symbol, error) {
	syms := make([]*Symbol, len(texts))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			s, err := Encode(text, opts)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			syms[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return syms, nil
}

// dark reports whether the module at column x, row y is dark, taking
// rev into account.  Modules outside the symbol are light.
func (s *Symbol) dark(x, y int, rev bool) bool {
	return s.Black(x, y) != rev
}

// Image returns an image of s with opts.Size pixels per module and a
// quiet zone of opts.Quiet modules, coloured opts.Fill on
// opts.Background.  Image disregards the other rendering options.
func (s *Symbol) Image(opts Options) (image.Image, error) {
	if err := opts.checkScale(); err != nil {
		return nil, err
	}
	return &codeImage{s, opts.Size, opts.Quiet, palette(opts)}, nil
}

// palette returns the light and dark colours.
func palette(opts Options) color.Palette {
	p := color.Palette{color.Transparent, color.Black}
	if opts.Background != nil {
		p[0] = opts.Background
	}
	if opts.Fill != nil {
		p[1] = opts.Fill
	}
	return p
}

// codeImage implements image.Image.
type codeImage struct {
	*Symbol
	scale, quiet int
	palette      color.Palette
}

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + 2*c.quiet) * c.scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if c.Black(x/c.scale-c.quiet, y/c.scale-c.quiet) {
		return c.palette[1]
	}
	return c.palette[0]
}

func (c *codeImage) ColorModel() color.Model { return c.palette }
