// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrsym

import (
	"fmt"
	"html/template"
	"image/color"
	"io"
)

var (
	divTemplate = template.Must(template.New("div").Parse(
		`<div style="position:relative;margin:0;padding:0;` +
			`width:{{.Side}}px;height:{{.Side}}px;` +
			`background-color:{{.Background}}">` + "\n" +
			`{{range .Dark}}<div style="position:absolute;` +
			`left:{{.X}}px;top:{{.Y}}px;` +
			`width:{{$.Size}}px;height:{{$.Size}}px;` +
			`background-color:{{$.Fill}}"></div>` + "\n" +
			`{{end}}</div>` + "\n"))
	tableTemplate = template.Must(template.New("table").Parse(
		`<table style="border:0;border-collapse:collapse;` +
			`border-spacing:0;margin:0;padding:0">` + "\n" +
			`{{range .Rows}}<tr>` +
			`{{range .}}<td style="border:0;margin:0;padding:0;` +
			`width:{{$.Size}}px;height:{{$.Size}}px;` +
			`background-color:{{if .}}{{$.Fill}}{{else}}` +
			`{{$.Background}}{{end}}"></td>{{end}}` +
			"</tr>\n{{end}}</table>\n"))
)

// markup is the template data.
type markup struct {
	Size, Side       int
	Fill, Background string
	Dark             []point
	Rows             [][]bool
}

type point struct{ X, Y int }

func (s *Symbol) markup(opts Options) (*markup, error) {
	if err := opts.checkScale(); err != nil {
		return nil, err
	}
	fill := opts.Fill
	if fill == nil {
		fill = color.Black
	}
	return &markup{
		Size:       opts.Size,
		Side:       s.PixelSize(opts),
		Fill:       cssColor(fill),
		Background: cssColor(opts.Background),
	}, nil
}

// HTMLDiv writes s to w as an HTML fragment: a box opts.Size pixels
// wide for each dark module, absolutely positioned in a container.
func (s *Symbol) HTMLDiv(w io.Writer, opts Options) error {
	m, err := s.markup(opts)
	if err != nil {
		return err
	}
	q := opts.Quiet
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			if s.Black(x, y) {
				m.Dark = append(m.Dark,
					point{(x + q) * m.Size, (y + q) * m.Size})
			}
		}
	}
	return divTemplate.Execute(w, m)
}

// HTMLTable writes s to w as an HTML table with a cell for each
// module, the quiet zone included.
func (s *Symbol) HTMLTable(w io.Writer, opts Options) error {
	m, err := s.markup(opts)
	if err != nil {
		return err
	}
	q := opts.Quiet
	m.Rows = make([][]bool, s.Size+2*q)
	for y := range m.Rows {
		row := make([]bool, s.Size+2*q)
		for x := range row {
			row[x] = s.Black(x-q, y-q)
		}
		m.Rows[y] = row
	}
	return tableTemplate.Execute(w, m)
}

// cssColor returns c in CSS hex notation, or "transparent" for nil.
func cssColor(c color.Color) string {
	if c == nil {
		return "transparent"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
