// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrsym"
)

func TestRGBA(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		in   string
		want rgba
	}{
		{"black", rgba{0, 0, 0, 0xff}},
		{"Dark Green", rgba{0x00, 0x64, 0x00, 0xff}},
		{"f80", rgba{0xff, 0x88, 0x00, 0xff}},
		{"f808", rgba{0xff, 0x88, 0x00, 0x88}},
		{"123456", rgba{0x12, 0x34, 0x56, 0xff}},
		{"12345678", rgba{0x12, 0x34, 0x56, 0x78}},
	} {
		var c rgba
		require.NoError(t, c.UnmarshalText([]byte(tc.in)), tc.in)
		assert.Equal(t, tc.want, c, tc.in)
	}
	for _, in := range []string{"", "12", "12345", "xyz", "1234567890"} {
		var c rgba
		assert.Error(t, c.UnmarshalText([]byte(in)), in)
	}

	c := rgba{0x12, 0x34, 0x56, 0xff}
	assert.Equal(t, "123456", c.String())
	c.A = 0x78
	assert.Equal(t, "12345678", c.String())
	c = rgba{0xff, 0xff, 0xff, 0xff}
	assert.Equal(t, "white", c.String())
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, c.color())
	assert.Nil(t, rgba{}.color())
}

func TestConfig(t *testing.T) {
	t.Setenv("QR_LEVEL", "q")
	t.Setenv("QR_SCALE", "8")
	t.Setenv("QR_FOREGROUND", "navy")
	t.Setenv("QR_BACKGROUND", "transparent")
	t.Setenv("QR_MAX_VERSION", "10")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "q", cfg.Level)
	assert.Equal(t, uint64(8), cfg.Scale)
	assert.Equal(t, 4, cfg.Margin)
	assert.Equal(t, rgba{0, 0, 0x80, 0xff}, cfg.Foreground)
	assert.Equal(t, rgba{}, cfg.Background)
	assert.Equal(t, uint64(1), cfg.MinVersion)
	assert.Equal(t, uint64(10), cfg.MaxVersion)

	t.Setenv("QR_FOREGROUND", "chartreuse")
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestRandr(t *testing.T) {
	s, err := qrsym.Encode("HELLO WORLD", qrsym.DefaultOptions())
	require.NoError(t, err)
	n := s.Size
	cx, inc := g.cx, g.inc
	defer func() { g.cx, g.inc = cx, inc }()

	g.cx, g.inc = 0, [2]int{1, 1}
	assert.Same(t, s, randr(s))

	flip()
	r := randr(s)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			require.Equal(t, s.Black(n-1-x, y), r.Black(x, y))
		}
	}

	g.cx, g.inc = 0, [2]int{1, 1}
	rotate()
	r = randr(s)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			require.Equal(t, s.Black(n-1-y, x), r.Black(x, y))
		}
	}

	rotate()
	rotate()
	rotate()
	assert.Same(t, s, randr(s))
}
