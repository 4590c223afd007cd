// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Path returns an SVG path outlining the dark modules of s, one
// square subpath per module, in module units with the quiet zone of
// opts.Quiet modules to the top and left.
func (s *Symbol) Path(opts Options) string {
	var b strings.Builder
	q := opts.Quiet
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			if s.Black(x, y) {
				b.WriteByte('M')
				b.WriteString(strconv.Itoa(x + q))
				b.WriteByte(' ')
				b.WriteString(strconv.Itoa(y + q))
				b.WriteString("h1v1h-1Z")
			}
		}
	}
	return b.String()
}

// SVG writes an SVG document displaying s to w.  The document is
// opts.Size pixels per module, filled with opts.Fill on
// opts.Background.  Pattern, Radius and the overlay are disregarded.
func (s *Symbol) SVG(w io.Writer, opts Options) error {
	if err := opts.checkScale(); err != nil {
		return err
	}
	n := s.Size + 2*opts.Quiet
	d := s.PixelSize(opts)
	fill := opts.Fill
	if fill == nil {
		fill = color.Black
	}
	b := bufio.NewWriter(w)
	c := svg.New(b)
	c.Start(d, d, fmt.Sprintf(`viewBox="0 0 %d %d"`, n, n),
		`shape-rendering="crispEdges"`)
	if opts.Background != nil {
		c.Rect(0, 0, n, n, `fill="`+cssColor(opts.Background)+`"`)
	}
	c.Path(s.Path(opts), `fill="`+cssColor(fill)+`"`)
	c.End()
	return b.Flush()
}
