// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: capacity
// tables, segment encoding, error correction, module placement and
// masking.
package coding // import "github.com/unixdj/qrsym/coding"

import (
	"errors"
	"strconv"

	"github.com/unixdj/qrsym/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// Versions run from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// IsValid reports whether v is a QR version.
func (v Version) IsValid() bool { return MinVersion <= v && v <= MaxVersion }

// QR version size classes.  The width of the character count
// indicator depends on the size class.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// ClassMax returns the largest version in size class class.
func ClassMax(class int) Version {
	return [3]Version{9, 26, 40}[class]
}

// Size returns the number of modules on a side of a code of version v.
func (v Version) Size() int { return int(v)*4 + 17 }

// TotalBytes returns the number of codewords, data and error
// correction, in a code of version v.
func (v Version) TotalBytes() int { return vtab[v].bytes }

// RemainderBits returns the number of modules left over after
// placing all codewords in a code of version v.
func (v Version) RemainderBits() int { return vtab[v].rem }

// ECBytes returns the number of error correction codewords
// in a code of version v at level l.
func (v Version) ECBytes(l Level) int {
	lev := vtab[v].level[l]
	return lev.nblock * lev.check
}

// DataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	return v.TotalBytes() - v.ECBytes(l)
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// A Block describes a Reed-Solomon block: Total codewords,
// of which Data are data codewords.
type Block struct {
	Total int
	Data  int
}

// Blocks returns the Reed-Solomon blocks of a code with version v
// and level l.  Blocks in group 1 precede the blocks in group 2, which
// carry one more data codeword each.
func (v Version) Blocks(l Level) []Block {
	lev := vtab[v].level[l]
	nd := v.DataBytes(l)
	db := nd / lev.nblock
	normal := (db+1)*lev.nblock - nd // blocks in group 1
	b := make([]Block, lev.nblock)
	for i := range b {
		if i == normal {
			db++
		}
		b[i] = Block{db + lev.check, db}
	}
	return b
}

// Alignment returns the row and column coordinates of alignment
// pattern centres for version v, in ascending order.  Version 1 has
// none.
func (v Version) Alignment() []int {
	vt := &vtab[v]
	if vt.apos == 0 {
		return nil
	}
	if vt.apos2 == 0 {
		return []int{6, vt.apos}
	}
	pos := []int{6}
	stride := vt.apos2 - vt.apos
	for x := vt.apos; x <= v.Size()-7; x += stride {
		pos = append(pos, x)
	}
	return pos
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 7% of codewords recoverable
	M              // 15%
	Q              // 25%
	H              // 30%
)

func (l Level) String() string {
	if l.IsValid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is a QR error correction level.
func (l Level) IsValid() bool { return L <= l && l <= H }

// Bits returns the 2-bit level indicator used in format information:
// L=01, M=00, Q=11, H=10.
func (l Level) Bits() int { return int(l) ^ 1 }

// A version describes metadata associated with a version.
type version struct {
	apos  int // first alignment pattern centre beyond 6
	apos2 int // second alignment pattern centre, 0 if none
	bytes int // total codewords
	rem   int // remainder bits
	level [4]level
}

type level struct {
	nblock int // number of blocks
	check  int // error correction codewords per block
}
