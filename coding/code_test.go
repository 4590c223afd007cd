// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrsym/coding"
)

func helloWorld(t *testing.T) coding.Segment {
	seg, err := coding.NewAlphanumeric("HELLO WORLD")
	require.NoError(t, err)
	return seg
}

func TestData(t *testing.T) {
	t.Parallel()
	e, err := coding.NewEncoder(1, coding.M)
	require.NoError(t, err)
	require.NoError(t, e.Write(helloWorld(t)))
	data, err := e.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		32, 91, 11, 120, 209, 114, 220, 77, 67, 64,
		236, 17, 236, 17, 236, 17,
	}, data)

	// Padding is idempotent.
	again, err := e.Data()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestPadTerminator(t *testing.T) {
	t.Parallel()
	// 1-H holds 72 bits.  70 bits leave no room for a full terminator.
	b := coding.NewBits(1)
	b.Write(0x3ff, 10)
	b.Write(0, 60)
	require.NoError(t, b.Pad(1, coding.H))
	assert.Equal(t, 72, b.Bits())
	assert.Len(t, b.Bytes(), 9)

	b.Reset()
	b.Write(1, 1)
	require.NoError(t, b.Pad(1, coding.H))
	assert.Equal(t, []byte{0x80, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11},
		b.Bytes())
}

func TestCodewords(t *testing.T) {
	t.Parallel()
	data := []byte{
		32, 91, 11, 120, 209, 114, 220, 77, 67, 64,
		236, 17, 236, 17, 236, 17,
	}
	cw := coding.Codewords(data, 1, coding.M)
	assert.Equal(t, data, cw[:16])
	assert.Equal(t, []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}, cw[16:])
	assert.Panics(t, func() { coding.Codewords(data[1:], 1, coding.M) })

	// 5-Q: data of block i is i*16+j; group 2 blocks are one longer.
	data = make([]byte, coding.Version(5).DataBytes(coding.Q))
	off := 0
	for i, b := range coding.Version(5).Blocks(coding.Q) {
		for j := 0; j < b.Data; j++ {
			data[off+j] = byte(i*16 + j)
		}
		off += b.Data
	}
	cw = coding.Codewords(data, 5, coding.Q)
	require.Len(t, cw, 134)
	assert.Equal(t, []byte{0, 16, 32, 48, 1, 17, 33, 49}, cw[:8])
	assert.Equal(t, []byte{14, 30, 46, 62, 47, 63}, cw[56:62])
}

func TestCapacity(t *testing.T) {
	t.Parallel()
	_, err := coding.Encode(1, coding.H, coding.NewByte(strings.Repeat("a", 8)))
	require.ErrorIs(t, err, coding.ErrCapacity)
	var ce *coding.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 76, ce.Bits)
	assert.Equal(t, 72, ce.Capacity)

	_, err = coding.Encode(1, coding.H, coding.NewByte(strings.Repeat("a", 7)))
	assert.NoError(t, err)

	_, err = coding.NewEncoder(41, coding.L)
	assert.ErrorIs(t, err, coding.ErrVersion)
	_, err = coding.NewEncoder(1, coding.Level(7))
	assert.ErrorIs(t, err, coding.ErrLevel)
}

func TestFormatBits(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0x77c4, coding.FormatBits(coding.L, 0))
	assert.Equal(t, 0x5412, coding.FormatBits(coding.M, 0))
	assert.Equal(t, 0x355f, coding.FormatBits(coding.Q, 0))
	assert.Equal(t, 0x1689, coding.FormatBits(coding.H, 0))
	assert.Equal(t, 0x4aa0, coding.FormatBits(coding.M, 7))
	assert.Equal(t, 0x07c94, coding.VersionBits(7))
	assert.Equal(t, 0x28c69, coding.VersionBits(40))
}

// formatAt reads both copies of the format information from c.
func formatAt(c *coding.Code) (f1, f2 int) {
	bit := func(x, y, i int) int {
		if c.Black(x, y) {
			return 1 << i
		}
		return 0
	}
	n := c.Size
	for i := 0; i < 15; i++ {
		switch {
		case i < 6:
			f1 |= bit(8, i, i)
		case i < 8:
			f1 |= bit(8, i+1, i)
		case i == 8:
			f1 |= bit(7, 8, i)
		default:
			f1 |= bit(14-i, 8, i)
		}
		if i < 8 {
			f2 |= bit(n-1-i, 8, i)
		} else {
			f2 |= bit(8, n-15+i, i)
		}
	}
	return f1, f2
}

func versionAt(c *coding.Code) (v1, v2 int) {
	n := c.Size
	for k := 0; k < 18; k++ {
		i, j := k/3, k%3
		if c.Black(i, n-11+j) {
			v1 |= 1 << k
		}
		if c.Black(n-11+j, i) {
			v2 |= 1 << k
		}
	}
	return v1, v2
}

func TestEncode(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("QR CODE 1234 ", 40)
	for _, v := range []coding.Version{1, 2, 6, 7, 10, 21, 27, 40} {
		for _, l := range levels {
			name := fmt.Sprintf("%s-%s", v, l)
			n := v.DataBits(l) - 4 - coding.Alphanumeric.CountBits(v.SizeClass())
			seg, err := coding.NewAlphanumeric(text[:min(len(text), n*2/11)])
			require.NoError(t, err, name)
			c, err := coding.Encode(v, l, seg)
			require.NoError(t, err, name)

			require.Equal(t, v.Size(), c.Size, name)
			assert.Equal(t, v, c.Version, name)
			assert.Equal(t, l, c.Level, name)

			// Finder pattern corners and dark module.
			for _, p := range [][2]int{{0, 0}, {6, 6}, {c.Size - 1, 0}, {0, c.Size - 1}} {
				assert.True(t, c.Black(p[0], p[1]), "%s finder %v", name, p)
			}
			assert.False(t, c.Black(7, 7), name)
			assert.True(t, c.Black(8, c.Size-8), "%s dark module", name)
			assert.False(t, c.Black(-1, 0), name)
			assert.False(t, c.Black(0, c.Size), name)

			// Timing patterns.
			for i := 8; i < c.Size-8; i++ {
				assert.Equal(t, i%2 == 0, c.Black(i, 6), "%s timing x=%d", name, i)
				assert.Equal(t, i%2 == 0, c.Black(6, i), "%s timing y=%d", name, i)
			}

			f1, f2 := formatAt(c)
			assert.Equal(t, coding.FormatBits(l, c.Mask), f1, name)
			assert.Equal(t, f1, f2, name)
			if v >= 7 {
				v1, v2 := versionAt(c)
				assert.Equal(t, coding.VersionBits(v), v1, name)
				assert.Equal(t, v1, v2, name)
			}

			// The lowest score wins, the first one on ties.
			for k, s := range c.Scores {
				if k < c.Mask {
					assert.Greater(t, s, c.Scores[c.Mask], "%s mask %d", name, k)
				} else {
					assert.GreaterOrEqual(t, s, c.Scores[c.Mask], "%s mask %d", name, k)
				}
			}
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()
	c, err := coding.Encode(1, coding.L)
	require.NoError(t, err)
	assert.Equal(t, 21, c.Size)
}

func TestEncodeDeterministic(t *testing.T) {
	t.Parallel()
	a, err := coding.Encode(3, coding.Q, helloWorld(t))
	require.NoError(t, err)
	b, err := coding.Encode(3, coding.Q, helloWorld(t))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlanPlace(t *testing.T) {
	t.Parallel()
	for v := coding.MinVersion; v <= coding.MaxVersion; v++ {
		p, err := coding.NewPlan(v)
		require.NoError(t, err)
		free := 0
		for _, m := range p.Grid {
			if m == coding.Unset {
				free++
			}
		}
		assert.Equal(t, v.TotalBytes()*8+v.RemainderBits(), free, "version %s", v)

		g := p.Place(make([]byte, v.TotalBytes()))
		for i, m := range g {
			require.NotEqual(t, coding.Unset, m, "version %s module %d", v, i)
		}
		assert.Panics(t, func() { p.Place(make([]byte, v.TotalBytes()-1)) },
			"version %s", v)
	}
	_, err := coding.NewPlan(0)
	assert.ErrorIs(t, err, coding.ErrVersion)
}

func TestPlaceOrder(t *testing.T) {
	t.Parallel()
	p, err := coding.NewPlan(1)
	require.NoError(t, err)
	cw := make([]byte, 26)
	cw[0] = 0xa0 // bits 0 and 2
	g := p.Place(cw)
	// The first bits go to the bottom right corner, right to left,
	// then upwards.
	assert.Equal(t, coding.Dark, g[20*21+20])
	assert.Equal(t, coding.Light, g[20*21+19])
	assert.Equal(t, coding.Dark, g[19*21+20])
	assert.Equal(t, coding.Light, g[19*21+19])
}

func TestScore(t *testing.T) {
	t.Parallel()
	// All light 5x5: runs 5 rows and 5 columns of 3, 16 boxes of 3,
	// 0% dark.
	p := coding.Score(make([]bool, 25), 5)
	assert.Equal(t, coding.Penalty{Runs: 30, Boxes: 48, Balance: 100}, p)
	assert.Equal(t, 178, p.Total())

	// Checkerboard 6x6: no runs, no boxes, 50% dark.
	m := make([]bool, 36)
	for i := range m {
		m[i] = (i/6+i%6)%2 == 0
	}
	assert.Equal(t, coding.Penalty{}, coding.Score(m, 6))
}

func TestMaskBit(t *testing.T) {
	t.Parallel()
	assert.True(t, coding.MaskBit(0, 0, 0))
	assert.False(t, coding.MaskBit(0, 0, 1))
	assert.True(t, coding.MaskBit(2, 5, 3))
	assert.False(t, coding.MaskBit(4, 2, 0))
	assert.True(t, coding.MaskBit(5, 0, 7))
}
