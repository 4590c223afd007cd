// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym_test

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/unixdj/qrsym"
)

func ExampleEncode() {
	opts := qrsym.DefaultOptions()
	opts.Level = qrsym.M
	s, err := qrsym.Encode("Tel: +41 0123456789", opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(s.Version, s.Level, s.Size)
	for _, seg := range s.Segments {
		fmt.Println(seg.Mode(), seg.Count())
	}
	// Output:
	// 2 M 25
	// byte 3
	// alphanumeric 6
	// numeric 10
}

func ExampleSymbol_DataURI() {
	s, err := qrsym.Encode("https://example.com/", qrsym.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	uri, err := s.DataURI(qrsym.GIF, qrsym.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(uri[:strings.IndexByte(uri, ',')+1])
	// Output:
	// data:image/gif;base64,
}

func ExampleRender() {
	opts := qrsym.DefaultOptions()
	opts.Render = qrsym.Path
	opts.Quiet = 0
	opts.MaxVersion = 1
	if err := qrsym.Render(os.Stdout, strings.Repeat("9", 45), opts); err != nil {
		fmt.Println(err)
	}
	// Output:
	// qr: code length overflow: 164 bits in 152-bit code 1-L
}
