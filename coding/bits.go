// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Bits is a bit buffer written most significant bit first.
// Its length in bits is tracked separately from its length in bytes.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for a QR code of the
// given version.
func NewBits(v Version) *Bits {
	return &Bits{b: make([]byte, 0, v.TotalBytes())}
}

// Reset empties b.
func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written to b.
func (b *Bits) Bits() int { return b.nbit }

// Bytes returns the contents of b.  It panics if b does not end on
// a byte boundary.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the low nbit bits of v to b, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	for nbit > 0 {
		if b.nbit&7 == 0 {
			b.b = append(b.b, 0)
		}
		free := 8 - b.nbit&7
		n := min(free, nbit)
		nbit -= n
		b.b[len(b.b)-1] |= byte(v>>nbit&(1<<n-1)) << (free - n)
		b.nbit += n
	}
}

// Pad adds the terminator and padding to b for the given version and
// level: a 4-bit terminator if there is room for it, zero bits up to a
// byte boundary, then alternating 0xec and 0x11 bytes up to the data
// capacity.  Pad returns a *CapacityError if b holds more bits than
// the code can store.  Padding a padded buffer does nothing.
func (b *Bits) Pad(v Version, l Level) error {
	n := v.DataBits(l)
	if b.nbit > n {
		return &CapacityError{Bits: b.nbit, Capacity: n, Version: v, Level: l}
	}
	if n-b.nbit >= 4 {
		b.Write(0, 4)
	}
	b.Write(0, -b.nbit&7)
	for pad := byte(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
		b.nbit += 8
	}
	return nil
}
