// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	overlayPad  = 0.01 // blank margin around the overlay
	labelAscent = 0.75 // baseline position in the label height
)

// checkScale validates the module size and the quiet zone.
func (o *Options) checkScale() error {
	if o.Size < 1 || o.Quiet < 0 {
		return fmt.Errorf("%w: size %d, quiet zone %d", ErrArgs,
			o.Size, o.Quiet)
	}
	return nil
}

// checkRender validates the rendering options.
func (o *Options) checkRender() error {
	if err := o.checkScale(); err != nil {
		return err
	}
	switch {
	case o.Mode < OverlayNone || o.Mode > OverlayImageBox:
		return fmt.Errorf("%w: overlay mode %d", ErrArgs, o.Mode)
	case o.Mode == OverlayNone:
		return nil
	case o.MSize <= 0 || o.MSize > 1 ||
		o.MPosX < 0 || o.MPosX > 1 || o.MPosY < 0 || o.MPosY > 1:
		return fmt.Errorf("%w: overlay geometry %g, %g, %g", ErrArgs,
			o.MSize, o.MPosX, o.MPosY)
	case o.Mode <= OverlayLabelBox && o.Label == "":
		return fmt.Errorf("%w: empty label", ErrArgs)
	case o.Mode >= OverlayImageStrip && o.Image == nil:
		return fmt.Errorf("%w: no overlay image", ErrArgs)
	}
	return nil
}

// PixelSize returns the side of the raster image of s in pixels.
func (s *Symbol) PixelSize(opts Options) int {
	return (s.Size + 2*opts.Quiet) * opts.Size
}

// overlay is the overlay rectangle as fractions of the symbol size.
type overlay struct {
	l, t, w, h float64
}

// blanks reports whether the module at column x, row y of an n by n
// symbol is hidden by the overlay in mode m.
func (r *overlay) blanks(x, y, n int, m OverlayMode) bool {
	f := float64(n)
	l, t := (r.l-overlayPad)*f, (r.t-overlayPad)*f
	rt, b := (r.l+r.w+overlayPad)*f, (r.t+r.h+overlayPad)*f
	if t >= float64(y+1) || float64(y) >= b {
		return false
	}
	if m == OverlayLabelStrip || m == OverlayImageStrip {
		return true
	}
	return l < float64(x+1) && float64(x) < rt
}

// layout sets up the label font on dc and returns the overlay
// rectangle, with the label width measured in the current face.
func layout(dc *gg.Context, opts *Options) (overlay, error) {
	r := overlay{h: opts.MSize}
	switch opts.Mode {
	case OverlayLabelStrip, OverlayLabelBox:
		if opts.FontName != "" {
			if err := dc.LoadFontFace(opts.FontName,
				opts.FontSize); err != nil {
				return r, err
			}
		}
		w, h := dc.MeasureString(opts.Label)
		r.w = r.h * w / h
	case OverlayImageStrip, OverlayImageBox:
		b := opts.Image.Bounds()
		r.w = r.h * float64(b.Dx()) / float64(b.Dy())
	}
	if r.w > 1 {
		r.h /= r.w
		r.w = 1
	}
	r.l = (1 - r.w) * opts.MPosX
	r.t = (1 - r.h) * opts.MPosY
	return r, nil
}

// DrawContext draws s on dc with its top left corner, quiet zone
// included, at x, y.
func (s *Symbol) DrawContext(dc *gg.Context, x, y float64, opts Options) error {
	if err := opts.checkRender(); err != nil {
		return err
	}
	ov, err := layout(dc, &opts)
	if err != nil {
		return err
	}
	n := s.Size
	size := float64(opts.Size)
	side := float64(s.PixelSize(opts))
	if opts.Background != nil {
		dc.SetColor(opts.Background)
		dc.DrawRectangle(x, y, side, side)
		dc.Fill()
	}

	dark := s.Black
	if opts.Mode != OverlayNone {
		dark = func(c, r int) bool {
			return !ov.blanks(c, r, n, opts.Mode) && s.Black(c, r)
		}
	}
	rad := min(max(opts.Radius, 0), 0.5) * size
	ox, oy := x+float64(opts.Quiet)*size, y+float64(opts.Quiet)*size
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			l, t := ox+float64(i)*size, oy+float64(j)*size
			if rad == 0 {
				if dark(i, j) {
					dc.DrawRectangle(l, t, size, size)
				}
				continue
			}
			north, south := dark(i, j-1), dark(i, j+1)
			west, east := dark(i-1, j), dark(i+1, j)
			if dark(i, j) {
				darkModule(dc, l, t, l+size, t+size, rad,
					!north && !west, !north && !east,
					!south && !east, !south && !west)
			} else {
				lightModule(dc, l, t, l+size, t+size, rad,
					north && west && dark(i-1, j-1),
					north && east && dark(i+1, j-1),
					south && east && dark(i+1, j+1),
					south && west && dark(i-1, j+1))
			}
		}
	}
	if opts.Pattern != nil {
		dc.SetFillStyle(gg.NewSurfacePattern(opts.Pattern, gg.RepeatBoth))
	} else if opts.Fill != nil {
		dc.SetColor(opts.Fill)
	} else {
		dc.SetColor(color.Black)
	}
	dc.Fill()

	d := float64(n) * size
	switch opts.Mode {
	case OverlayLabelStrip, OverlayLabelBox:
		fc := opts.FontColor
		if fc == nil {
			fc = color.Black
		}
		_, h := dc.MeasureString(opts.Label)
		f := ov.h * d / h
		dc.Push()
		dc.Translate(ox+ov.l*d, oy+ov.t*d)
		dc.Scale(f, f)
		dc.SetColor(fc)
		dc.DrawStringAnchored(opts.Label, 0, 0, 0, labelAscent)
		dc.Pop()
	case OverlayImageStrip, OverlayImageBox:
		w := max(int(math.Round(ov.w*d)), 1)
		h := max(int(math.Round(ov.h*d)), 1)
		im := imaging.Fit(opts.Image, w, h, imaging.Lanczos)
		dc.DrawImage(im, int(math.Round(ox+ov.l*d)),
			int(math.Round(oy+ov.t*d)))
	}
	return nil
}

// darkModule adds a module to the path, rounding the flagged corners.
func darkModule(dc *gg.Context, l, t, r, b, rad float64, nw, ne, se, sw bool) {
	if nw {
		dc.MoveTo(l, t+rad)
		dc.QuadraticTo(l, t, l+rad, t)
	} else {
		dc.MoveTo(l, t)
	}
	if ne {
		dc.LineTo(r-rad, t)
		dc.QuadraticTo(r, t, r, t+rad)
	} else {
		dc.LineTo(r, t)
	}
	if se {
		dc.LineTo(r, b-rad)
		dc.QuadraticTo(r, b, r-rad, b)
	} else {
		dc.LineTo(r, b)
	}
	if sw {
		dc.LineTo(l+rad, b)
		dc.QuadraticTo(l, b, l, b-rad)
	} else {
		dc.LineTo(l, b)
	}
	dc.ClosePath()
}

// lightModule adds a fillet to the path at each flagged corner of a
// light module, joining the dark modules around it.
func lightModule(dc *gg.Context, l, t, r, b, rad float64, nw, ne, se, sw bool) {
	fillet := func(x, y, dx, dy float64) {
		dc.MoveTo(x, y+dy)
		dc.LineTo(x, y)
		dc.LineTo(x+dx, y)
		dc.QuadraticTo(x, y, x, y+dy)
		dc.ClosePath()
	}
	if nw {
		fillet(l, t, rad, rad)
	}
	if ne {
		fillet(r, t, -rad, rad)
	}
	if se {
		fillet(r, b, -rad, -rad)
	}
	if sw {
		fillet(l, b, rad, -rad)
	}
}

// Raster draws s on a new image.
func (s *Symbol) Raster(opts Options) (image.Image, error) {
	dc, err := s.raster(opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (s *Symbol) raster(opts Options) (*gg.Context, error) {
	if err := opts.checkRender(); err != nil {
		return nil, err
	}
	d := s.PixelSize(opts)
	dc := gg.NewContext(d, d)
	if err := s.DrawContext(dc, 0, 0, opts); err != nil {
		return nil, err
	}
	return dc, nil
}

// PNG writes the raster image of s to w in PNG format.
func (s *Symbol) PNG(w io.Writer, opts Options) error {
	dc, err := s.raster(opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}
