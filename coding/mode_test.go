// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrsym/coding"
)

// bitString returns the bits of b as a string of 0s and 1s.
// b need not end on a byte boundary.
func bitString(b *coding.Bits) string {
	var sb strings.Builder
	c := *b
	c.Write(0, -b.Bits()&7)
	buf := c.Bytes()
	for i := 0; i < b.Bits(); i++ {
		sb.WriteByte('0' + buf[i/8]>>(7-i%8)&1)
	}
	return sb.String()
}

func TestBitStringUnaligned(t *testing.T) {
	t.Parallel()
	b := coding.NewBits(1)
	b.Write(0b101, 3)
	assert.Equal(t, "101", bitString(b))
	assert.Equal(t, 3, b.Bits())
	b.Write(0b1, 1)
	assert.Equal(t, "1011", bitString(b))
	b.Write(0b1111, 4)
	assert.Equal(t, []byte{0b1011_1111}, b.Bytes())
}

func TestBitsWrite(t *testing.T) {
	t.Parallel()
	b := coding.NewBits(1)
	b.Write(0b101, 3)
	b.Write(0xffff_0001, 1)
	b.Write(0, 0)
	b.Write(0x3ff, 12)
	assert.Equal(t, 16, b.Bits())
	assert.Equal(t, []byte{0b1011_0011, 0xff}, b.Bytes())

	b.Write(1, 1)
	assert.Equal(t, 17, b.Bits())
	assert.Panics(t, func() { b.Bytes() })
	b.Reset()
	assert.Equal(t, 0, b.Bits())
	assert.Empty(t, b.Bytes())
}

func TestSegmentEncode(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		mode  coding.Mode
		text  string
		class int
		want  string
	}{
		{coding.Numeric, "12345670", coding.Class0,
			"0001" + "0000001000" + "0001111011" + "0111001000" + "1000110"},
		{coding.Numeric, "1", coding.Class1,
			"0001" + "000000000001" + "0001"},
		{coding.Alphanumeric, "AC-42", coding.Class0,
			"0010" + "000000101" + "00111001110" + "11100111001" + "000010"},
		{coding.Byte, "a", coding.Class2,
			"0100" + "0000000000000001" + "01100001"},
		{coding.Kanji, "点茗", coding.Class0,
			"1000" + "00000010" + "0110110011111" + "1101010101010"},
	} {
		name := fmt.Sprintf("%s %q", tt.mode, tt.text)
		seg, err := coding.NewSegment(tt.mode, tt.text)
		require.NoError(t, err, name)
		b := coding.NewBits(1)
		require.NoError(t, seg.Encode(b, tt.class), name)
		assert.Equal(t, tt.want, bitString(b), name)
		assert.Equal(t, len(tt.want), seg.Length(tt.class), name)
		assert.Equal(t, tt.mode, seg.Mode(), name)
	}
}

func TestNumericDataLength(t *testing.T) {
	t.Parallel()
	seg, err := coding.NewNumeric("12345670")
	require.NoError(t, err)
	assert.Equal(t, 27, coding.Numeric.DataLength(seg.Count()))
	assert.Equal(t, 4+10+27, seg.Length(coding.Class0))
}

func TestCharError(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		mode coding.Mode
		text string
		char rune
	}{
		{coding.Numeric, "12a", 'a'},
		{coding.Numeric, "1 2", ' '},
		{coding.Alphanumeric, "ABc", 'c'},
		{coding.Alphanumeric, "A#", '#'},
		{coding.Kanji, "点A", 'A'},
		{coding.Kanji, "点ｱ", 'ｱ'}, // single-byte katakana
	} {
		_, err := coding.NewSegment(tt.mode, tt.text)
		require.Error(t, err, tt.text)
		assert.True(t, errors.Is(err, coding.ErrCharacter), tt.text)
		var ce *coding.CharError
		require.True(t, errors.As(err, &ce), tt.text)
		assert.Equal(t, tt.char, ce.Char, tt.text)
		assert.Equal(t, tt.mode, ce.Mode, tt.text)
	}
	_, err := coding.NewSegment(coding.Modes, "x")
	assert.Error(t, err)
}

func TestModeClasses(t *testing.T) {
	t.Parallel()
	assert.True(t, coding.IsDigit('7'))
	assert.False(t, coding.IsDigit('A'))
	for _, r := range "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:" {
		assert.True(t, coding.IsAlphanumeric(r), "%q", r)
	}
	for _, r := range "abz@[#!\x00À" {
		assert.False(t, coding.IsAlphanumeric(r), "%q", r)
	}
	assert.True(t, coding.IsKanji('点'))
	assert.True(t, coding.IsKanji('茗'))
	assert.False(t, coding.IsKanji('A'))
	assert.False(t, coding.IsKanji('é'))
	assert.Equal(t, uint32(8), coding.Kanji.Indicator())
	assert.Equal(t, 12, coding.Kanji.CountBits(coding.Class2))
}

func TestSegmentData(t *testing.T) {
	t.Parallel()
	seg, err := coding.NewKanji("点")
	require.NoError(t, err)
	d := seg.Data()
	assert.Equal(t, []byte{0x93, 0x5f}, d)
	d[0] = 0
	assert.Equal(t, []byte{0x93, 0x5f}, seg.Data())
	assert.Equal(t, 1, seg.Count())
}

func TestCountOverflow(t *testing.T) {
	t.Parallel()
	seg := coding.NewByte(strings.Repeat("x", 256))
	err := seg.Encode(coding.NewBits(9), coding.Class0)
	assert.ErrorIs(t, err, coding.ErrCapacity)
	assert.NoError(t, seg.Encode(coding.NewBits(10), coding.Class1))
}
