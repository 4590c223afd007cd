// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
)

const (
	gifLitWidth = 2         // LZW minimum code size
	gifMaxCode  = 1<<12 - 1 // largest LZW code
	gifClear    = 1 << gifLitWidth
	gifEOF      = gifClear + 1
	gifMaxBlock = 255
)

// GIF writes the raster image of s to w as a GIF89a image with a two
// colour table: opts.Background at index 0 and opts.Fill at index 1.
// A nil Background is transparent.  Pattern, Radius and the overlay
// are disregarded.
func (s *Symbol) GIF(w io.Writer, opts Options) error {
	if err := opts.checkScale(); err != nil {
		return err
	}
	d := s.PixelSize(opts)
	if d > 0xffff {
		return fmt.Errorf("%w: GIF size %d", ErrArgs, d)
	}
	b := bufio.NewWriter(w)
	pal := palette(opts)
	if opts.Background == nil {
		pal[0] = color.White
	}

	// Header, logical screen descriptor, global colour table.
	b.WriteString("GIF89a")
	var hdr [7]byte
	binary.LittleEndian.PutUint16(hdr[0:], uint16(d))
	binary.LittleEndian.PutUint16(hdr[2:], uint16(d))
	hdr[4] = 0x80 // global table of 2 entries
	b.Write(hdr[:])
	for _, c := range pal {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		b.Write([]byte{n.R, n.G, n.B})
	}

	// Graphic control extension.
	if opts.Background == nil {
		b.Write([]byte{0x21, 0xf9, 4, 0x01, 0, 0, 0, 0})
	}

	// Image descriptor.
	var desc [10]byte
	desc[0] = 0x2c
	binary.LittleEndian.PutUint16(desc[5:], uint16(d))
	binary.LittleEndian.PutUint16(desc[7:], uint16(d))
	b.Write(desc[:])

	b.WriteByte(gifLitWidth)
	e := newLZW(&blockWriter{w: b})
	scale, q := opts.Size, opts.Quiet
	row := make([]byte, d)
	for y := 0; y < d; y++ {
		for x := range row {
			row[x] = 0
			if s.Black(x/scale-q, y/scale-q) {
				row[x] = 1
			}
		}
		e.write(row)
	}
	e.close()
	b.WriteByte(0x3b)
	return b.Flush()
}

// blockWriter splits data into sub-blocks.
type blockWriter struct {
	w   *bufio.Writer
	buf [gifMaxBlock]byte
	n   int
}

func (b *blockWriter) writeByte(c byte) {
	b.buf[b.n] = c
	b.n++
	if b.n == gifMaxBlock {
		b.flush()
	}
}

func (b *blockWriter) flush() {
	if b.n == 0 {
		return
	}
	b.w.WriteByte(byte(b.n))
	b.w.Write(b.buf[:b.n])
	b.n = 0
}

// close flushes the last sub-block and writes the terminator.
func (b *blockWriter) close() {
	b.flush()
	b.w.WriteByte(0)
}

// lzw is a GIF variable width LZW encoder writing codes LSB first.
type lzw struct {
	b        *blockWriter
	bits     uint32
	nbits    uint
	width    uint
	hi       uint32 // last code assigned
	overflow uint32 // 1 << width
	code     uint32 // current prefix, or gifMaxCode+1 before input
	table    map[uint32]uint32
}

func newLZW(b *blockWriter) *lzw {
	e := &lzw{b: b, code: gifMaxCode + 1, width: gifLitWidth + 1}
	e.reset()
	return e
}

// reset emits a clear code and starts a new table.
func (e *lzw) reset() {
	e.emit(gifClear)
	e.width = gifLitWidth + 1
	e.hi = gifEOF
	e.overflow = 1 << e.width
	e.table = make(map[uint32]uint32)
}

func (e *lzw) emit(code uint32) {
	e.bits |= code << e.nbits
	e.nbits += e.width
	for e.nbits >= 8 {
		e.b.writeByte(byte(e.bits))
		e.bits >>= 8
		e.nbits -= 8
	}
}

// incHi assigns the next code and reports false if the table was
// reset.
func (e *lzw) incHi() bool {
	e.hi++
	if e.hi == e.overflow {
		e.width++
		e.overflow <<= 1
	}
	if e.hi == gifMaxCode {
		e.reset()
		return false
	}
	return true
}

func (e *lzw) write(p []byte) {
	for _, c := range p {
		lit := uint32(c)
		if e.code > gifMaxCode {
			e.code = lit
			continue
		}
		key := e.code<<8 | lit
		if code, ok := e.table[key]; ok {
			e.code = code
			continue
		}
		e.emit(e.code)
		e.code = lit
		if e.incHi() {
			e.table[key] = e.hi
		}
	}
}

// close emits the pending code and the end code, and ends the data.
func (e *lzw) close() {
	if e.code <= gifMaxCode {
		e.emit(e.code)
		e.incHi()
	}
	e.emit(gifEOF)
	if e.nbits > 0 {
		e.b.writeByte(byte(e.bits))
	}
	e.b.close()
}
