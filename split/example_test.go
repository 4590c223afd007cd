// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split_test

import (
	"fmt"
	"log"

	"github.com/unixdj/qrsym/coding"
	"github.com/unixdj/qrsym/split"
)

func ExampleFit() {
	segs, v, err := split.Fit(split.String{Text: "Tel: +41 0123456789"},
		coding.M, coding.MinVersion, coding.MaxVersion)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("version", v)
	for _, seg := range segs {
		fmt.Printf("%-12s %q\n", seg.Mode(), seg.Data())
	}
	// Output:
	// version 2
	// byte         "Tel"
	// alphanumeric ": +41 "
	// numeric      "0123456789"
}

func ExampleTextSplitter_Split() {
	s := split.New("https://example.com/?id=0123456789012345", false)
	for class := coding.Class0; class <= coding.Class2; class++ {
		segs, bits, err := s.Split(class)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(class, len(segs), bits)
	}
	// Output:
	// 0 2 272
	// 1 2 282
	// 2 2 284
}

func ExampleMode() {
	_, v, err := split.Fit(split.Mode{Mode: coding.Byte, Text: "01234567"},
		coding.H, 1, 40)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)
	_, v, err = split.Fit(split.Mode{Mode: coding.Numeric, Text: "01234567"},
		coding.H, 1, 40)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)
	// Output:
	// 2
	// 1
}
