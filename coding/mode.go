// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

var (
	ErrCapacity    = errors.New("qr: code length overflow")
	ErrCharacter   = errors.New("qr: unsupported character")
	ErrUnsupported = errors.New("qr: unsupported feature")
)

// A Mode is a QR segment encoding mode.
type Mode int

// Encoding modes.
const (
	Numeric      Mode = iota // digits, 3 per 10 bits
	Alphanumeric             // digits, upper case, " $%*+-./:", 2 per 11 bits
	Byte                     // bytes, 8 bits each
	Kanji                    // Shift JIS double-byte characters, 13 bits each
	Modes                    // number of modes
)

var modeNames = [Modes]string{"numeric", "alphanumeric", "byte", "kanji"}

func (m Mode) String() string {
	if m.IsValid() {
		return modeNames[m]
	}
	return strconv.Itoa(int(m))
}

// IsValid reports whether m is one of the four encoding modes.
func (m Mode) IsValid() bool { return Numeric <= m && m < Modes }

// Indicator returns the 4-bit mode indicator.
func (m Mode) Indicator() uint32 { return 1 << m }

// countLength lists lengths of the character count field in the
// three size classes.
var countLength = [Modes][3]byte{
	Numeric:      {10, 12, 14},
	Alphanumeric: {9, 11, 13},
	Byte:         {8, 16, 16},
	Kanji:        {8, 10, 12},
}

// CountBits returns the width of the character count indicator for
// mode m in size class class.
func (m Mode) CountBits(class int) int { return int(countLength[m][class]) }

// DataLength returns the number of bits taken by n characters
// encoded in mode m, excluding the header.  For Byte, n counts
// bytes; for Kanji, double-byte characters.
func (m Mode) DataLength(n int) int {
	switch m {
	case Numeric:
		return (10*n + 2) / 3
	case Alphanumeric:
		return (11*n + 1) / 2
	case Byte:
		return 8 * n
	case Kanji:
		return 13 * n
	}
	panic("qr: invalid mode " + m.String())
}

// Length returns the encoded length in bits, including the header, of
// n characters in mode m at size class class.
func (m Mode) Length(n, class int) int {
	return 4 + m.CountBits(class) + m.DataLength(n)
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table, indexed by character & 0x3f.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 8, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsDigit reports whether r is encodable in numeric mode.
func IsDigit(r rune) bool { return uint32(r-'0') < 10 }

// IsAlphanumeric reports whether r is encodable in alphanumeric mode.
func IsAlphanumeric(r rune) bool {
	return uint32(r-' ') < 64 && alphamask>>(r-' ')&1 != 0
}

// kanjiCharset is the double-byte charset used for kanji mode.
// It is nil if kanji support is not compiled in.
var kanjiCharset encoding.Encoding

// KanjiSupported reports whether kanji mode is available.
func KanjiSupported() bool { return kanjiCharset != nil }

// kanjiCode returns the Shift JIS code of r and whether r is encodable
// in QR kanji mode: 0x8140-0x9ffc or 0xe040-0xebbf.
func kanjiCode(e *encoding.Encoder, r rune) (uint16, bool) {
	if r < 0x80 || r == utf8.RuneError {
		return 0, false
	}
	s, err := e.String(string(r))
	if err != nil || len(s) != 2 {
		return 0, false
	}
	c := uint16(s[0])<<8 | uint16(s[1])
	return c, 0x8140 <= c && c <= 0x9ffc || 0xe040 <= c && c <= 0xebbf
}

// IsKanji reports whether r is encodable in kanji mode.  IsKanji
// returns false if kanji mode is not supported.
func IsKanji(r rune) bool {
	if kanjiCharset == nil || r < 0x80 {
		return false
	}
	_, ok := kanjiCode(kanjiCharset.NewEncoder(), r)
	return ok
}

// A Segment is a run of data encoded in a single mode.
// Segments are immutable.
type Segment struct {
	mode  Mode
	data  []byte
	count int // character count
}

// CharError reports a character that is not encodable in a mode.
type CharError struct {
	Mode Mode   // segment mode
	Text string // segment text
	Char rune   // offending character
}

func (e *CharError) Error() string {
	return fmt.Sprintf("qr: non-%s character %q in %#q", e.Mode, e.Char, e.Text)
}

func (e *CharError) Unwrap() error { return ErrCharacter }

// NewNumeric returns a numeric mode segment for s.
func NewNumeric(s string) (Segment, error) {
	for _, r := range s {
		if !IsDigit(r) {
			return Segment{}, &CharError{Numeric, s, r}
		}
	}
	return Segment{Numeric, []byte(s), len(s)}, nil
}

// NewAlphanumeric returns an alphanumeric mode segment for s.
func NewAlphanumeric(s string) (Segment, error) {
	for _, r := range s {
		if !IsAlphanumeric(r) {
			return Segment{}, &CharError{Alphanumeric, s, r}
		}
	}
	return Segment{Alphanumeric, []byte(s), len(s)}, nil
}

// NewByte returns a byte mode segment holding the bytes of s.
// Text is encoded as is, normally as UTF-8.
func NewByte(s string) Segment {
	return Segment{Byte, []byte(s), len(s)}
}

// NewKanji returns a kanji mode segment for s, transcoded to
// Shift JIS.  NewKanji returns ErrUnsupported if kanji mode is not
// supported.
func NewKanji(s string) (Segment, error) {
	if kanjiCharset == nil {
		return Segment{}, ErrUnsupported
	}
	e := kanjiCharset.NewEncoder()
	data := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := kanjiCode(e, r)
		if !ok {
			return Segment{}, &CharError{Kanji, s, r}
		}
		data = append(data, byte(c>>8), byte(c))
	}
	return Segment{Kanji, data, len(data) / 2}, nil
}

// NewSegment returns a segment for s in mode m.
func NewSegment(m Mode, s string) (Segment, error) {
	switch m {
	case Numeric:
		return NewNumeric(s)
	case Alphanumeric:
		return NewAlphanumeric(s)
	case Byte:
		return NewByte(s), nil
	case Kanji:
		return NewKanji(s)
	}
	return Segment{}, fmt.Errorf("qr: invalid mode %s", m)
}

// Mode returns the encoding mode of seg.
func (seg Segment) Mode() Mode { return seg.mode }

// Data returns a copy of the segment data: ASCII digits or
// characters, bytes, or Shift JIS character pairs.
func (seg Segment) Data() []byte { return append([]byte(nil), seg.data...) }

// Count returns the character count of seg.
func (seg Segment) Count() int { return seg.count }

// Length returns the encoded length of seg in bits at size class
// class, including the header.
func (seg Segment) Length(class int) int {
	return seg.mode.Length(seg.count, class)
}

// Encode writes seg encoded for the given size class to b.
// Encode returns a *CapacityError if the character count does not fit
// in the count indicator.
func (seg Segment) Encode(b *Bits, class int) error {
	m := seg.mode
	if !m.IsValid() {
		return fmt.Errorf("qr: invalid mode %s", m)
	}
	cb := m.CountBits(class)
	if seg.count >= 1<<cb {
		return &CapacityError{Bits: seg.Length(class), Capacity: -1,
			Version: ClassMax(class)}
	}
	b.Write(m.Indicator(), 4)
	b.Write(uint32(seg.count), cb)
	d := seg.data
	switch m {
	case Numeric:
		for ; len(d) >= 3; d = d[3:] {
			b.Write(uint32(d[0]-'0')*100+uint32(d[1]-'0')*10+
				uint32(d[2]-'0'), 10)
		}
		switch len(d) {
		case 2:
			b.Write(uint32(d[0]-'0')*10+uint32(d[1]-'0'), 7)
		case 1:
			b.Write(uint32(d[0]-'0'), 4)
		}
	case Alphanumeric:
		for ; len(d) >= 2; d = d[2:] {
			b.Write(uint32(alpha[d[0]&0x3f])*45+
				uint32(alpha[d[1]&0x3f]), 11)
		}
		if len(d) == 1 {
			b.Write(uint32(alpha[d[0]&0x3f]), 6)
		}
	case Byte:
		for _, c := range d {
			b.Write(uint32(c), 8)
		}
	case Kanji:
		for ; len(d) >= 2; d = d[2:] {
			c := uint32(d[0])<<8 | uint32(d[1])
			if c >= 0xe040 {
				c -= 0xc140
			} else {
				c -= 0x8140
			}
			b.Write(c>>8*0xc0+c&0xff, 13)
		}
	}
	return nil
}

// CapacityError reports data that does not fit in a code.
type CapacityError struct {
	Bits     int     // encoded length in bits
	Capacity int     // data capacity in bits, -1 if a count overflowed
	Version  Version // code version
	Level    Level   // error correction level
}

func (e *CapacityError) Error() string {
	if e.Capacity < 0 {
		return fmt.Sprintf("qr: code length overflow: character count "+
			"too large for version %s", e.Version)
	}
	return fmt.Sprintf("qr: code length overflow: %d bits in %d-bit "+
		"code %s-%s", e.Bits, e.Capacity, e.Version, e.Level)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }
