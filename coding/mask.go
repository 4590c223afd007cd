// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "math/bits"

// Mask patterns.  Each inverts data modules at row i, column j
// for which it returns true.
//
//	000: (i+j) mod 2 = 0
//	001: i mod 2 = 0
//	010: j mod 3 = 0
//	011: (i+j) mod 3 = 0
//	100: (i/2+j/3) mod 2 = 0
//	101: (ij) mod 2 + (ij) mod 3 = 0
//	110: ((ij) mod 2 + (ij) mod 3) mod 2 = 0
//	111: ((i+j) mod 2 + (ij) mod 3) mod 2 = 0
var maskFunc = [8]func(i, j int) bool{
	func(i, j int) bool { return (i+j)%2 == 0 },
	func(i, j int) bool { return i%2 == 0 },
	func(i, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return (i/2+j/3)%2 == 0 },
	func(i, j int) bool { return i*j%2+i*j%3 == 0 },
	func(i, j int) bool { return (i*j%2+i*j%3)%2 == 0 },
	func(i, j int) bool { return ((i+j)%2+i*j%3)%2 == 0 },
}

// MaskBit reports whether mask k inverts the module at row i, column j.
func MaskBit(k, i, j int) bool { return maskFunc[k](i, j) }

// Penalty holds the four components of a mask penalty score.
type Penalty struct {
	Runs    int // N1: runs of 5 or more same-colour modules
	Boxes   int // N2: 2x2 blocks of one colour
	Finders int // N3: finder-like patterns
	Balance int // N4: deviation from 50% dark
}

// Total returns the penalty score.
func (p Penalty) Total() int { return p.Runs + p.Boxes + p.Finders + p.Balance }

const (
	minRun    = 5  // N1: minimum run length
	runDelta  = -2 // N1: added to run length
	boxPoints = 3  // N2: points per 2x2 block
	findPts   = 40 // N3: points per pattern
	balPoints = 10 // N4: points per 5% step from 50%
)

// finder is the 1:1:3:1:1 pattern scored by N3, dark first.
var finder = [7]bool{true, false, true, true, true, false, true}

// Score computes the penalty of the siz×siz module grid m, in which
// true is dark.
func Score(m []bool, siz int) Penalty {
	var p Penalty
	row := func(y int) func(int) bool {
		return func(x int) bool { return m[y*siz+x] }
	}
	col := func(x int) func(int) bool {
		return func(y int) bool { return m[y*siz+x] }
	}
	for i := 0; i < siz; i++ {
		lineScore(&p, row(i), siz)
		lineScore(&p, col(i), siz)
	}

	dark := 0
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			d := m[y*siz+x]
			if d {
				dark++
			}
			if x > 0 && y > 0 && d == m[y*siz+x-1] &&
				d == m[(y-1)*siz+x] && d == m[(y-1)*siz+x-1] {
				p.Boxes += boxPoints
			}
		}
	}

	total := siz * siz
	p.Balance = balPoints * (abs(20*dark-10*total) / total)
	return p
}

// lineScore adds the run and finder penalties of a line of n modules.
func lineScore(p *Penalty, at func(int) bool, n int) {
	run := 1
	for k := 1; k < n; k++ {
		if at(k) == at(k-1) {
			run++
			continue
		}
		if run >= minRun {
			p.Runs += run + runDelta
		}
		run = 1
	}
	if run >= minRun {
		p.Runs += run + runDelta
	}

	light := func(from, to int) bool {
		if from < 0 || to > n {
			return false
		}
		for k := from; k < to; k++ {
			if at(k) {
				return false
			}
		}
		return true
	}
outer:
	for k := 0; k+len(finder) <= n; k++ {
		for i, d := range finder {
			if at(k+i) != d {
				continue outer
			}
		}
		if light(k-4, k) || light(k+7, k+11) {
			p.Finders += findPts
		}
	}
}

// bchRem returns the remainder of v divided by poly over GF(2).
func bchRem(v, poly int) int {
	pl := bits.Len(uint(poly))
	for l := bits.Len(uint(v)); l >= pl; l = bits.Len(uint(v)) {
		v ^= poly << (l - pl)
	}
	return v
}

// FormatBits returns the 15-bit format information for level l and
// mask k: BCH(15,5) over the level indicator and mask, XORed with
// 0x5412.
func FormatBits(l Level, k int) int {
	d := (l.Bits()<<3 | k) << 10
	return (d | bchRem(d, 0x537)) ^ 0x5412
}

// VersionBits returns the 18-bit version information for v:
// BCH(18,6) over the version number.
func VersionBits(v Version) int {
	d := int(v) << 12
	return d | bchRem(d, 0x1f25)
}

// formatPos returns the two positions, as row and column, of bit i of
// the format information in a code of size siz.  Bit 0 is the least
// significant.
func formatPos(i, siz int) (r1, c1, r2, c2 int) {
	switch {
	case i < 6:
		r1, c1 = i, 8
	case i < 8:
		r1, c1 = i+1, 8
	case i == 8:
		r1, c1 = 8, 7
	default:
		r1, c1 = 8, 14-i
	}
	if i < 8 {
		r2, c2 = 8, siz-1-i
	} else {
		r2, c2 = siz-15+i, 8
	}
	return
}

// chooseMask applies each mask to the data modules of g, placed
// according to p, scores the results and returns the mask with the
// lowest score, the lowest-numbered on ties, along with all scores.
// Reserved modules are scored as light.
func (p *Plan) chooseMask(g []Module) (best int, scores [8]int) {
	m := make([]bool, len(g))
	for k := range maskFunc {
		p.apply(m, g, k)
		scores[k] = Score(m, p.Size).Total()
		if scores[k] < scores[best] {
			best = k
		}
	}
	return best, scores
}

// apply writes to m the modules of g with mask k applied to data
// modules.
func (p *Plan) apply(m []bool, g []Module, k int) {
	f, siz := maskFunc[k], p.Size
	for off, v := range g {
		m[off] = v == Dark != (p.Grid[off] == Unset && f(off/siz, off%siz))
	}
}
