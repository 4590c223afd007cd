// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrsym/coding"
)

var levels = []coding.Level{coding.L, coding.M, coding.Q, coding.H}

func TestDataBytes(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		v    coding.Version
		want [4]int
	}{
		{1, [4]int{19, 16, 13, 9}},
		{5, [4]int{108, 86, 62, 46}},
		{10, [4]int{274, 216, 154, 122}},
		{40, [4]int{2956, 2334, 1666, 1276}},
	} {
		for i, l := range levels {
			assert.Equal(t, tt.want[i], tt.v.DataBytes(l), "%s-%s", tt.v, l)
		}
	}
}

func TestBlocks(t *testing.T) {
	t.Parallel()
	for v := coding.MinVersion; v <= coding.MaxVersion; v++ {
		for _, l := range levels {
			name := fmt.Sprintf("%s-%s", v, l)
			blocks := v.Blocks(l)
			require.NotEmpty(t, blocks, name)
			total, data := 0, 0
			check := blocks[0].Total - blocks[0].Data
			for i, b := range blocks {
				total += b.Total
				data += b.Data
				assert.Equal(t, check, b.Total-b.Data, "%s block %d", name, i)
				d := b.Data - blocks[0].Data
				assert.True(t, d == 0 || d == 1, "%s block %d", name, i)
				if i > 0 {
					assert.GreaterOrEqual(t, b.Data, blocks[i-1].Data, name)
				}
			}
			assert.Equal(t, v.TotalBytes(), total, name)
			assert.Equal(t, v.DataBytes(l), data, name)
			assert.Equal(t, v.ECBytes(l), total-data, name)
		}
	}

	// 5-Q: two blocks of 15 data codewords, two of 16.
	assert.Equal(t, []coding.Block{{33, 15}, {33, 15}, {34, 16}, {34, 16}},
		coding.Version(5).Blocks(coding.Q))
}

func TestAlignment(t *testing.T) {
	t.Parallel()
	assert.Empty(t, coding.Version(1).Alignment())
	assert.Equal(t, []int{6, 18}, coding.Version(2).Alignment())
	assert.Equal(t, []int{6, 22, 38}, coding.Version(7).Alignment())
	assert.Equal(t, []int{6, 26, 48, 70}, coding.Version(15).Alignment())
	assert.Equal(t, []int{6, 34, 60, 86, 112, 138}, coding.Version(32).Alignment())
	assert.Equal(t, []int{6, 30, 58, 86, 114, 142, 170}, coding.Version(40).Alignment())
	for v := coding.Version(2); v <= coding.MaxVersion; v++ {
		pos := v.Alignment()
		assert.Equal(t, v.Size()-7, pos[len(pos)-1], "version %s", v)
	}
}

func TestSizeClass(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		v     coding.Version
		class int
	}{
		{1, coding.Class0}, {9, coding.Class0},
		{10, coding.Class1}, {26, coding.Class1},
		{27, coding.Class2}, {40, coding.Class2},
	} {
		assert.Equal(t, tt.class, tt.v.SizeClass(), "version %s", tt.v)
		assert.GreaterOrEqual(t, coding.ClassMax(tt.class), tt.v)
	}
	assert.Equal(t, 21, coding.Version(1).Size())
	assert.Equal(t, 177, coding.Version(40).Size())
}

func TestLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "L M Q H", fmt.Sprint(coding.L, " ", coding.M, " ",
		coding.Q, " ", coding.H))
	assert.Equal(t, []int{1, 0, 3, 2},
		[]int{coding.L.Bits(), coding.M.Bits(), coding.Q.Bits(), coding.H.Bits()})
	assert.False(t, coding.Level(4).IsValid())
	assert.Equal(t, "4", coding.Level(4).String())
	assert.False(t, coding.Version(0).IsValid())
	assert.False(t, coding.Version(41).IsValid())
}
