// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !qr_nokanji

package coding

import "golang.org/x/text/encoding/japanese"

func init() { kanjiCharset = japanese.ShiftJIS }
