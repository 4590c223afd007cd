// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
)

// DataURI returns the image of s encoded by r, which must be PNG, GIF
// or SVG, as a base64 data URI.
func (s *Symbol) DataURI(r Format, opts Options) (string, error) {
	var (
		mime string
		enc  func(io.Writer, Options) error
	)
	switch r {
	case PNG:
		mime, enc = "image/png", s.PNG
	case GIF:
		mime, enc = "image/gif", s.GIF
	case SVG:
		mime, enc = "image/svg+xml", s.SVG
	default:
		return "", fmt.Errorf("%w: no data URI for %s", ErrArgs, r)
	}
	var b bytes.Buffer
	if err := enc(&b, opts); err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," +
		base64.StdEncoding.EncodeToString(b.Bytes()), nil
}
