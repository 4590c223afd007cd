// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/unixdj/qrsym"
)

// Attribute helpers return an empty Attr for zero values, which slog
// drops.

func errorAttr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func elapsedAttr(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

func fileAttr(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("file", name)
}

// symbolAttr groups the encoding parameters chosen for s.
func symbolAttr(s *qrsym.Symbol) slog.Attr {
	segs := make([]slog.Attr, len(s.Segments))
	for i, seg := range s.Segments {
		segs[i] = slog.Int(strconv.Itoa(i)+"."+seg.Mode().String(),
			seg.Count())
	}
	return slog.Group("symbol",
		slog.Int("version", int(s.Version)),
		slog.String("level", s.Level.String()),
		slog.Int("size", s.Size),
		slog.Int("mask", s.Mask),
		slog.Any("scores", s.Scores[:]),
		slog.Attr{Key: "segments", Value: slog.GroupValue(segs...)},
	)
}
