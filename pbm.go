// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"bufio"
	"io"
	"strconv"
)

// PBM writes a Portable Bit Map image displaying s to w, for use
// with netpbm.  PBM disregards colours; Reverse inverts the image.
func (s *Symbol) PBM(w io.Writer, opts Options) error {
	if err := opts.checkScale(); err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	scale := opts.Size
	bord := opts.Quiet
	length := s.PixelSize(opts)
	ls := strconv.Itoa(length)
	b.WriteString("P4\n" + ls + " " + ls + "\n")
	row := make([]byte, (length+7)/8)
	for y := -bord; y < s.Size+bord; y++ {
		clear(row)
		for x := -bord; x < s.Size+bord; x++ {
			if !s.dark(x, y, opts.Reverse) {
				continue
			}
			for p := (x + bord) * scale; p < (x+bord+1)*scale; p++ {
				row[p>>3] |= 0x80 >> (p & 7)
			}
		}
		for i := 0; i < scale; i++ {
			b.Write(row)
		}
	}
	return b.Flush()
}
