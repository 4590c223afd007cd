// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments and chooses the
QR code version to hold them.
*/
package split // import "github.com/unixdj/qrsym/split"

import (
	"github.com/unixdj/qrsym/coding"
)

// A Splitter splits data into segments for a QR version size class.
// Split returns the segments and their encoded length in bits.
// Split may be called more than once.
type Splitter interface {
	Split(class int) ([]coding.Segment, int, error)
}

var sizeClass = [3]struct{ min, max coding.Version }{
	{1, 9}, {10, 26}, {27, 40},
}

/*
Fit returns the segments produced by s and the smallest version
between min and max, inclusive, holding them at the given error
correction level.

The encoded length depends on the size class, so s is asked to split
the data once for each size class considered, starting with the class
of min.  Fit returns a *coding.CapacityError if the data does not fit
in max.
*/
func Fit(s Splitter, level coding.Level, min, max coding.Version) ([]coding.Segment, coding.Version, error) {
	if !level.IsValid() {
		return nil, 0, coding.ErrLevel
	}
	if !min.IsValid() || !max.IsValid() || min > max {
		return nil, 0, coding.ErrVersion
	}
	var (
		segs []coding.Segment
		bits int
	)
	for class := min.SizeClass(); class <= max.SizeClass(); class++ {
		lo := sizeClass[class].min
		hi := sizeClass[class].max
		if lo < min {
			lo = min
		}
		if hi > max {
			hi = max
		}
		var err error
		segs, bits, err = s.Split(class)
		if err != nil {
			return nil, 0, err
		}
		if hi.DataBits(level) < bits {
			continue
		}
		// Find version in the size class.
		for lo < hi {
			if mid := (lo + hi) / 2; mid.DataBits(level) < bits {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return segs, lo, nil
	}
	return nil, 0, &coding.CapacityError{
		Bits:     bits,
		Capacity: max.DataBits(level),
		Version:  max,
		Level:    level,
	}
}

// Segments is a Splitter returning fixed segments.
type Segments []coding.Segment

func (s Segments) Split(class int) ([]coding.Segment, int, error) {
	n := 0
	for _, seg := range s {
		n += seg.Length(class)
	}
	return s, n, nil
}

// Mode is a Splitter encoding Text as a single segment in mode Mode.
type Mode struct {
	Mode coding.Mode
	Text string
}

func (m Mode) Split(class int) ([]coding.Segment, int, error) {
	seg, err := coding.NewSegment(m.Mode, m.Text)
	if err != nil {
		return nil, 0, err
	}
	return Segments{seg}.Split(class)
}

// String is a Splitter producing the shortest sequence of segments
// for UTF-8 text, switching between numeric, alphanumeric, byte and,
// unless NoKanji is set, kanji modes.
type String struct {
	Text    string
	NoKanji bool
}

func (s String) Split(class int) ([]coding.Segment, int, error) {
	return New(s.Text, !s.NoKanji).Split(class)
}

// Mode sets.
const (
	numModes   = 1<<coding.Numeric | 1<<coding.Alphanumeric | 1<<coding.Byte
	alphaModes = 1<<coding.Alphanumeric | 1<<coding.Byte
	kanjiModes = 1<<coding.Kanji | 1<<coding.Byte
	byteModes  = 1 << coding.Byte
)

type (
	// segment describes a segment encoded in a certain mode.
	segment struct {
		next   *segment    // link to next segment in the chain
		start  int         // start of string
		slen   int         // length of string in bytes
		klen   int         // length of string in runes, for kanji
		weight int         // encoded size of all segments in the chain
		mode   coding.Mode // encoding mode
	}

	// span describes a span of text encodable in the same modes.
	span struct {
		start int                   // start of string
		slen  int                   // length of string in bytes
		klen  int                   // length of string in runes
		modes byte                  // bit field of valid encoding modes
		seg   [coding.Modes]segment // best chains starting here
	}
)

// A TextSplitter splits a string into segments.  The string is
// classified once, in New, and split for each size class in Split.
type TextSplitter struct {
	text string
	sp   []span
}

// New returns a TextSplitter for text.  If kanji is false or kanji
// mode is not supported, kanji mode is not used.
func New(text string, kanji bool) *TextSplitter {
	return &TextSplitter{text, classify(text, kanji && coding.KanjiSupported())}
}

// classify splits text into spans of runes encodable in the same modes.
func classify(text string, kanji bool) []span {
	var sp []span
	for i, r := range text {
		m := byte(byteModes)
		switch {
		case coding.IsDigit(r):
			m = numModes
		case coding.IsAlphanumeric(r):
			m = alphaModes
		case kanji && coding.IsKanji(r):
			m = kanjiModes
		}
		if n := len(sp); n == 0 || sp[n-1].modes != m {
			if n != 0 {
				sp[n-1].slen = i - sp[n-1].start
			}
			sp = append(sp, span{start: i, modes: m})
		}
		sp[len(sp)-1].klen++
	}
	if n := len(sp); n != 0 {
		sp[n-1].slen = len(text) - sp[n-1].start
	}
	return sp
}

// length returns the encoded length of a segment of slen bytes and
// klen runes in mode m at size class class.
func length(m coding.Mode, slen, klen, class int) int {
	if m == coding.Kanji {
		return m.Length(klen, class)
	}
	return m.Length(slen, class)
}

/*
Split returns the optimal split of the text at the given QR version
size class, and its length in bits.

For the last span, for each valid mode j:
  - Create a segment describing the span encoded in mode j and
    calculate its weight, the encoded length in bits.

Then walk backwards through the rest of the spans.
For each span i, for each valid mode j:
  - For each mode k valid for span i+1, create a segment linking to
    the chain starting with mode k at span i+1.  If k==j, merge the
    segments by adding the length of the next segment and linking
    to the one after it instead.  Calculate the weight of the chain.
  - From those segments choose the one with the smallest weight.

Return the chain starting at the first span with the smallest weight.
*/
func (s *TextSplitter) Split(class int) ([]coding.Segment, int, error) {
	sp := s.sp
	if len(sp) == 0 {
		return nil, 0, nil
	}
	const inf = 1 << 30

	i := len(sp) - 1
	for j := coding.Mode(0); j < coding.Modes; j++ {
		v := &sp[i]
		v.seg[j] = segment{weight: inf}
		if v.modes>>j&1 != 0 {
			v.seg[j] = segment{
				start:  v.start,
				slen:   v.slen,
				klen:   v.klen,
				weight: length(j, v.slen, v.klen, class),
				mode:   j,
			}
		}
	}

	for i--; i >= 0; i-- {
		v := &sp[i]
		for j := coding.Mode(0); j < coding.Modes; j++ {
			seg := &v.seg[j]
			*seg = segment{weight: inf}
			if v.modes>>j&1 == 0 {
				continue
			}
			for k := range sp[i+1].seg {
				next := &sp[i+1].seg[k]
				if next.weight == inf {
					continue
				}
				c := segment{
					next:  next,
					start: v.start,
					slen:  v.slen,
					klen:  v.klen,
					mode:  j,
				}
				if coding.Mode(k) == j {
					c.slen += next.slen
					c.klen += next.klen
					c.next = next.next
				}
				c.weight = length(j, c.slen, c.klen, class)
				if c.next != nil {
					c.weight += c.next.weight
				}
				if c.weight < seg.weight {
					*seg = c
				}
			}
		}
	}

	// Choose the first segment with the smallest weight.
	best := &sp[0].seg[0]
	for j := range sp[0].seg {
		if sp[0].seg[j].weight < best.weight {
			best = &sp[0].seg[j]
		}
	}

	var segs []coding.Segment
	for c := best; c != nil; c = c.next {
		seg, err := coding.NewSegment(c.mode, s.text[c.start:c.start+c.slen])
		if err != nil {
			return nil, 0, err
		}
		segs = append(segs, seg)
	}
	return segs, best.weight, nil
}
