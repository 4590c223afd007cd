// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon error correction coding.
package gf256 // import "github.com/unixdj/qrsym/gf256"

import (
	"strconv"
	"sync"
)

// A Field represents an instance of GF(256) defined by a specific
// polynomial.  A Field is immutable once created, apart from the
// generator polynomials which are computed once on first use.
type Field struct {
	log [256]byte // log[0] is unused, set to 255
	exp [510]byte // exp[i] == exp[i+255]

	// Reed-Solomon generator polynomials, indexed by degree.
	gen [256]struct {
		once sync.Once
		log  []byte // coefficients as logarithms, highest first
	}
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// NewField panics if α does not generate all 255 non-zero elements
// of the field defined by poly.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}
	f := new(Field)
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator " + strconv.Itoa(α) +
				" for polynomial " + strconv.Itoa(poly))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.log[0] = 255
	return f
}

// mul returns the product x*y mod poly, a GF(256) multiplication
// without tables.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-int(f.log[x])]
}

// Gen returns the Reed-Solomon generator polynomial of degree d,
// the product of (x - α^i) for i in [0, d), as coefficients from the
// highest degree (always 1) down.  The polynomial is computed once per
// field and degree; the returned slice is a copy.
func (f *Field) Gen(d int) []byte {
	lg := f.genLog(d)
	p := make([]byte, len(lg))
	for i, v := range lg {
		if v != 255 {
			p[i] = f.exp[v]
		}
	}
	return p
}

// genLog returns the generator polynomial of degree d with
// coefficients stored as logarithms, 255 standing for log(0).
func (f *Field) genLog(d int) []byte {
	if d < 0 || d >= len(f.gen) {
		panic("gf256: invalid generator degree: " + strconv.Itoa(d))
	}
	g := &f.gen[d]
	g.once.Do(func() {
		p := make([]byte, 1, d+1)
		p[0] = 1
		for i := 0; i < d; i++ {
			// p *= x + α^i
			a := f.exp[i]
			p = append(p, 0)
			for j := len(p) - 1; j > 0; j-- {
				p[j] ^= f.Mul(p[j-1], a)
			}
		}
		for i, v := range p {
			p[i] = f.log[v]
		}
		g.log = p
	})
	return g.log
}

// An RSEncoder implements Reed-Solomon encoding over a given field
// using a given number of error correction bytes.  An RSEncoder keeps
// a scratch buffer and must not be used concurrently.
type RSEncoder struct {
	f    *Field
	c    int
	lgen []byte // generator coefficients as logarithms, leading 1 dropped
	p    []byte // scratch
}

// NewRSEncoder returns a new Reed-Solomon encoder over the given field
// and number of error correction bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	return &RSEncoder{f: f, c: c, lgen: f.genLog(c)[1:]}
}

// ECC writes to check the error correction bytes for data using the
// given Reed-Solomon parameters: the remainder of data·x^c divided by
// the generator polynomial.  len(check) must be at least c.
func (rs *RSEncoder) ECC(data, check []byte) {
	if len(check) < rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}
	n := len(data) + rs.c
	if cap(rs.p) < n {
		rs.p = make([]byte, n)
	}
	p := rs.p[:n]
	copy(p, data)
	clear(p[len(data):])

	// Long division by a monic divisor: for each leading term c,
	// subtract c·gen, stepping one term down each time.
	f := rs.f
	for i := range data {
		c := p[i]
		if c == 0 {
			continue
		}
		q := p[i+1:]
		exp := f.exp[f.log[c]:]
		for j, lg := range rs.lgen {
			if lg != 255 {
				q[j] ^= exp[lg]
			}
		}
	}
	copy(check, p[len(data):])
}
