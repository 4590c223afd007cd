// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Code is a finished QR symbol: a square grid of dark and light
// modules.
type Code struct {
	Bitmap  []byte  // 1 is dark, 0 is light
	Size    int     // number of modules on a side
	Stride  int     // number of bytes per row
	Version Version // version
	Level   Level   // error correction level
	Mask    int     // chosen mask pattern
	Scores  [8]int  // penalty score of each mask
}

// Black reports whether the module at column x, row y is dark.
// Modules outside the symbol are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

func (c *Code) set(r, col int, dark bool) {
	b := &c.Bitmap[r*c.Stride+col/8]
	if dark {
		*b |= 1 << uint(7&^col)
	} else {
		*b &^= 1 << uint(7&^col)
	}
}

// finish builds the code from the placed grid g: applies mask k to
// the data modules and writes format and version information and the
// dark module.
func (p *Plan) finish(g []Module, l Level, k int) *Code {
	siz := p.Size
	stride := (siz + 7) >> 3
	c := &Code{
		Bitmap:  make([]byte, siz*stride),
		Size:    siz,
		Stride:  stride,
		Version: p.Version,
		Level:   l,
		Mask:    k,
	}
	f := maskFunc[k]
	for off, v := range g {
		r, col := off/siz, off%siz
		c.set(r, col, v == Dark != (p.Grid[off] == Unset && f(r, col)))
	}

	fb := FormatBits(l, k)
	for i := 0; i < 15; i++ {
		dark := fb>>i&1 != 0
		r1, c1, r2, c2 := formatPos(i, siz)
		c.set(r1, c1, dark)
		c.set(r2, c2, dark)
	}
	if p.Version >= 7 {
		vb := VersionBits(p.Version)
		for n := 0; n < 18; n++ {
			dark := vb>>n&1 != 0
			i, j := n/3, n%3
			c.set(siz-11+j, i, dark)
			c.set(i, siz-11+j, dark)
		}
	}
	c.set(siz-8, 8, true)
	return c
}

// Encoder encodes a QR code.
type Encoder struct {
	p *Plan
	l Level
	b *Bits
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	if !level.IsValid() {
		return nil, ErrLevel
	}
	p, err := NewPlan(version)
	if err != nil {
		return nil, err
	}
	return &Encoder{p: p, l: level, b: NewBits(version)}, nil
}

// Write adds segments to e.  Write returns a *CapacityError if the
// data written so far does not fit in the code.
func (e *Encoder) Write(text ...Segment) error {
	v := e.p.Version
	class := v.SizeClass()
	for _, t := range text {
		if err := t.Encode(e.b, class); err != nil {
			return err
		}
	}
	if n := v.DataBits(e.l); e.b.Bits() > n {
		return &CapacityError{Bits: e.b.Bits(), Capacity: n,
			Version: v, Level: e.l}
	}
	return nil
}

// Reset discards the data written to e.
func (e *Encoder) Reset() { e.b.Reset() }

// Data returns the padded data codewords, without error correction.
func (e *Encoder) Data() ([]byte, error) {
	if err := e.b.Pad(e.p.Version, e.l); err != nil {
		return nil, err
	}
	return e.b.Bytes(), nil
}

// Code returns a QR code containing data written to e.
func (e *Encoder) Code() (*Code, error) {
	data, err := e.Data()
	if err != nil {
		return nil, err
	}
	g := e.p.Place(Codewords(data, e.p.Version, e.l))
	best, scores := e.p.chooseMask(g)
	c := e.p.finish(g, e.l, best)
	c.Scores = scores
	return c, nil
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(text ...Segment) (*Code, error) {
	if err := e.Write(text...); err != nil {
		return nil, err
	}
	return e.Code()
}

// Encode encodes text using an Encoder with the given version and level.
func Encode(version Version, level Level, text ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(text...)
}
