// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A Module is the state of a module in a code under construction.
type Module byte

const (
	Unset    Module = iota // data module, not yet written
	Reserved               // format or version information, dark module
	Light
	Dark
)

// A Plan describes the layout of a QR code of a given version:
// function patterns drawn, information areas reserved and data
// modules left Unset.
type Plan struct {
	Version Version
	Size    int
	Grid    []Module // row-major, Size*Size
}

var plans [MaxVersion + 1]struct {
	once sync.Once
	p    *Plan
}

// NewPlan returns the plan for version v.  The plan is shared and
// must not be modified.
func NewPlan(v Version) (*Plan, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	e := &plans[v]
	e.once.Do(func() { e.p = makePlan(v) })
	return e.p, nil
}

func makePlan(v Version) *Plan {
	siz := v.Size()
	p := &Plan{Version: v, Size: siz, Grid: make([]Module, siz*siz)}
	last := siz - 7

	// Finder patterns with their separators.
	p.finder(0, 0)
	p.finder(0, last)
	p.finder(last, 0)

	// Timing patterns.
	for i := 8; i < siz-8; i++ {
		p.setIfUnset(6, i, i%2 == 0)
		p.setIfUnset(i, 6, i%2 == 0)
	}

	// Alignment patterns, except where they would hit finders.
	pos := v.Alignment()
	for _, r := range pos {
		for _, c := range pos {
			if r == 6 && (c == 6 || c == last) || c == 6 && r == last {
				continue
			}
			p.alignment(r, c)
		}
	}

	// Dark module.
	p.set(siz-8, 8, Reserved)

	// Format information: around the top left finder, below the
	// top right one and to the right of the bottom left one.
	for i := 0; i <= 8; i++ {
		p.reserve(8, i)
		p.reserve(i, 8)
	}
	for i := 0; i < 8; i++ {
		p.reserve(8, siz-1-i)
		p.reserve(siz-1-i, 8)
	}

	// Version information.
	if v >= 7 {
		for i := 0; i < 6; i++ {
			for j := siz - 11; j < siz-8; j++ {
				p.reserve(i, j)
				p.reserve(j, i)
			}
		}
	}
	return p
}

func (p *Plan) set(r, c int, m Module) { p.Grid[r*p.Size+c] = m }

func (p *Plan) setIfUnset(r, c int, dark bool) {
	if p.Grid[r*p.Size+c] == Unset {
		p.set(r, c, color(dark))
	}
}

func (p *Plan) reserve(r, c int) {
	if p.Grid[r*p.Size+c] == Unset {
		p.set(r, c, Reserved)
	}
}

func color(dark bool) Module {
	if dark {
		return Dark
	}
	return Light
}

// finder draws a finder pattern with the top left corner at (r, c)
// and a light separator around it, clipped to the symbol.
func (p *Plan) finder(r, c int) {
	for dy := -1; dy <= 7; dy++ {
		for dx := -1; dx <= 7; dx++ {
			y, x := r+dy, c+dx
			if y < 0 || y >= p.Size || x < 0 || x >= p.Size {
				continue
			}
			ring := max(abs(dy-3), abs(dx-3))
			p.set(y, x, color(ring != 2 && ring != 4))
		}
	}
}

// alignment draws an alignment pattern centred at (r, c).
func (p *Plan) alignment(r, c int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			p.set(r+dy, c+dx, color(max(abs(dy), abs(dx)) != 1))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Place returns a copy of the plan's grid with the codewords written
// into the data modules, most significant bit first, in the zigzag
// order: two-column strips from the right edge leftwards, alternating
// upwards and downwards, skipping the vertical timing pattern.
// Modules left after the last codeword are remainder bits and stay
// light.  Place panics if the number of remainder modules does not
// match the version.
func (p *Plan) Place(cw []byte) []Module {
	g := append([]Module(nil), p.Grid...)
	siz := p.Size
	nbit := len(cw) * 8
	i := 0
	up := true
	for x := siz - 1; x > 0; x -= 2 {
		if x == 6 {
			x--
		}
		for k := 0; k < siz; k++ {
			y := k
			if up {
				y = siz - 1 - k
			}
			for _, xx := range [2]int{x, x - 1} {
				off := y*siz + xx
				if g[off] != Unset {
					continue
				}
				g[off] = color(i < nbit && cw[i>>3]>>(7-i&7)&1 != 0)
				i++
			}
		}
		up = !up
	}
	if i < nbit || i-nbit != p.Version.RemainderBits() {
		panic("qr: internal error: data does not fit plan")
	}
	return g
}
