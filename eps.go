// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
)

// EPS writes an Encapsulated PostScript document displaying s,
// centred on a letter size page, to w.  Modules are opts.Size points
// wide.  Each row is drawn as runs of dark modules.  Reverse swaps
// the colours, a nil Background being white.
func (s *Symbol) EPS(w io.Writer, opts Options) error {
	if err := opts.checkScale(); err != nil {
		return err
	}
	const midx, midy = 306, 396
	siz := s.Size
	scale := opts.Size
	bord := opts.Quiet
	xorig := (midx*2 - (siz+2*bord)*scale) / 2
	yorig := (midy*2 - (siz+2*bord)*scale) / 2
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: qrsym https://github.com/unixdj/qrsym
%%%%Title: QR Code %s-%s
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		s.Version, s.Level,
		xorig-1, yorig-1, midx*2-xorig, midy*2-yorig,
		midx-float64(siz*scale)/2, midy+float64((siz-1)*scale)/2-1,
		scale)
	fg, bg := opts.Fill, opts.Background
	if fg == nil {
		fg = color.Black
	}
	if opts.Reverse {
		if bg == nil {
			bg = color.White
		}
		fg, bg = bg, fg
	}
	if bg != nil {
		fmt.Fprintf(b, `gsave
newpath %d %d moveto
%d dup neg scale
%s setrgbcolor
1 0 rlineto stroke
grestore
`,
			-bord, siz/2, siz+2*bord, psColor(bg))
	}
	fmt.Fprintf(b, "%s setrgbcolor\nnewpath 0 0 moveto\n", psColor(fg))
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; {
			start := x
			for x < siz && !s.Black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			dark := x
			for x < siz && s.Black(x, y) {
				x++
			}
			fmt.Fprintf(b, "%d %d p ", x-dark, dark-start)
		}
		fmt.Fprintln(b, "r")
	}
	io.WriteString(b, "stroke grestore\nend\n%%Trailer\n")
	return b.Flush()
}

// psColor returns c as PostScript RGB operands.
func psColor(c color.Color) string {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return fmt.Sprintf("%.3g %.3g %.3g",
		float64(n.R)/0xffff, float64(n.G)/0xffff, float64(n.B)/0xffff)
}
