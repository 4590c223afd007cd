// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/unixdj/qrsym/gf256"

// Codewords returns the final codeword sequence of a code with
// version v and level l holding the padded data: the data split into
// blocks, each block's error correction computed, then data and
// error correction codewords interleaved column-wise across blocks.
// Codewords panics if len(data) is not v.DataBytes(l).
func Codewords(data []byte, v Version, l Level) []byte {
	if len(data) != v.DataBytes(l) {
		panic("qr: internal error: data length mismatch")
	}
	blocks := v.Blocks(l)
	check := blocks[0].Total - blocks[0].Data
	rs := gf256.NewRSEncoder(Field, check)
	ecc := make([]byte, len(blocks)*check)
	d := data
	for i, b := range blocks {
		rs.ECC(d[:b.Data], ecc[i*check:(i+1)*check])
		d = d[b.Data:]
	}

	out := make([]byte, 0, v.TotalBytes())
	for j := 0; j < blocks[len(blocks)-1].Data; j++ {
		off := 0
		for _, b := range blocks {
			if j < b.Data {
				out = append(out, data[off+j])
			}
			off += b.Data
		}
	}
	for j := 0; j < check; j++ {
		for i := range blocks {
			out = append(out, ecc[i*check+j])
		}
	}
	if len(out) != v.TotalBytes() {
		panic("qr: internal error: codeword count mismatch")
	}
	return out
}
