// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"io"
	"strings"
)

// ASCII writes s to w as lines of text, '#' for dark and ' ' for
// light modules, with the quiet zone.  Each module is two characters
// wide, or one if opts.Size is 1.  Reverse swaps the characters.
func (s *Symbol) ASCII(w io.Writer, opts Options) error {
	if err := opts.checkScale(); err != nil {
		return err
	}
	width := 2
	if opts.Size == 1 {
		width = 1
	}
	bord := opts.Quiet
	pix := s.Size + 2*bord
	b := make([]byte, 0, (pix*width+1)*pix)
	for y := -bord; y < s.Size+bord; y++ {
		for x := -bord; x < s.Size+bord; x++ {
			p := byte(' ')
			if s.dark(x, y, opts.Reverse) {
				p = '#'
			}
			for i := 0; i < width; i++ {
				b = append(b, p)
			}
		}
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}

var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// UTF8 writes s to w as lines of Unicode half blocks, each character
// showing two modules stacked vertically, with the quiet zone.
// The block glyphs draw dark modules, or light modules with Reverse,
// which suits light text on a dark terminal.
func (s *Symbol) UTF8(w io.Writer, opts Options) error {
	if err := opts.checkScale(); err != nil {
		return err
	}
	bord := opts.Quiet
	var b strings.Builder
	b.Grow((s.Size + 2*bord + 1) * (s.Size + 2*bord + 1) / 2 * 3)
	for y := -bord; y < s.Size+bord; y += 2 {
		for x := -bord; x < s.Size+bord; x++ {
			var i int
			if s.dark(x, y, opts.Reverse) {
				i |= 1
			}
			if y+1 < s.Size+bord && s.dark(x, y+1, opts.Reverse) {
				i |= 2
			}
			b.WriteString(halfBlocks[i])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
