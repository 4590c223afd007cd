// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/unixdj/qrsym"
	"github.com/unixdj/qrsym/coding"
)

var g = struct {
	opts    qrsym.Options // encoding and rendering options
	fn      string        // output file name
	cx      int           // randr source X coordinate index in inc
	inc     [2]int        // randr source X,Y coordinate increments
	bg, fg  rgba          // colour
	upper   bool          // uppercase
	debug   bool          // debug logging
	label   string        // overlay label
	image   string        // overlay image file
	pattern string        // fill pattern image file
}{
	opts: qrsym.DefaultOptions(),
	inc:  [2]int{1, 1},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults are taken from the QR_* environment
variables, also read from the file .env.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 1.0.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

func flip() {
	g.inc[0] = -g.inc[0]
}

func rotate() {
	g.cx ^= 1
	m := g.inc[0] * g.inc[1]
	g.inc[0] *= m
	g.inc[1] *= -m
}

type rgba struct {
	R, G, B, A uint8
}

var rgb = map[string]rgba{
	"black":       {0x00, 0x00, 0x00, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"red":         {0xff, 0x00, 0x00, 0xff},
	"green":       {0x00, 0xff, 0x00, 0xff},
	"blue":        {0x00, 0x00, 0xff, 0xff},
	"cyan":        {0x00, 0xff, 0xff, 0xff},
	"magenta":     {0xff, 0x00, 0xff, 0xff},
	"yellow":      {0xff, 0xff, 0x00, 0xff},
	"gray":        {0xbe, 0xbe, 0xbe, 0xff},
	"navy":        {0x00, 0x00, 0x80, 0xff},
	"darkgreen":   {0x00, 0x64, 0x00, 0xff},
	"transparent": {0x00, 0x00, 0x00, 0x00},
}

func (c *rgba) String() string {
	for k, v := range rgb {
		if *c == v {
			return k
		}
	}
	if c.A == 0xff {
		return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c *rgba) Set(s string, _ getopt.Option) error {
	return c.UnmarshalText([]byte(s))
}

// UnmarshalText parses 3, 4, 6 or 8 hex digits or a colour name.
func (c *rgba) UnmarshalText(text []byte) error {
	s := string(text)
	var ok bool
	if *c, ok = rgb[strings.ToLower(strings.ReplaceAll(s, " ", ""))]; ok {
		return nil
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%q: bad colour spec", s)
	}
	switch len(s) {
	case 3:
		n = n<<4 | 0xf
		fallthrough
	case 4:
		var nn uint64
		for i := 0; i < 4; i++ {
			nn <<= 8
			nn |= n >> 12 & 0xf * 0x11
			n <<= 4
		}
		n = nn
	case 6:
		n = n<<8 | 0xff
	case 8:
	default:
		return fmt.Errorf("%q: bad colour spec", s)
	}
	c.R, c.G, c.B, c.A = uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)
	return nil
}

// color returns c, or nil if it is fully transparent.
func (c rgba) color() color.Color {
	if c.A == 0 {
		return nil
	}
	return color.NRGBA(c)
}

// formats lists the output formats, each followed by its inverse.
func formats() []string {
	var l []string
	for _, v := range qrsym.Formats() {
		l = append(l, v, v+"i")
	}
	return l
}

func parseFlags(cfg *config) error {
	o := &g.opts
	g.bg, g.fg = cfg.Background, cfg.Foreground
	o.Radius = cfg.Radius
	o.FontName = cfg.Font
	o.Quiet = cfg.Margin
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.debug, 'd', "log encoding details to standard error")
	getopt.FlagLong(&g.bg, "background", 'B', `background colour; see -F`,
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or a colour name; `+
		`"transparent" background is supported by all image types`,
		"RGB[A]|name")
	getopt.Flag(opt(flip), 'f', `flip code horizontally; `+
		`to flip vertically, use "-frr"`).SetFlag()
	getopt.Flag(opt(rotate), 'r', `rotate code 90° counterclockwise; `+
		`-r and -f may be given multiple times, `+
		`order matters: "-fr" = "-rfrr" = "-rrrf"`).SetFlag()
	getopt.Flag(&o.NoKanji, 'K', "disable kanji mode")
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&o.Quiet, 'm', `quiet zone modules`, "margin")
	getopt.Flag(&g.fn, 'o', `output file, or "-" for standard output`,
		"file")
	getopt.FlagLong(&o.Radius, "radius", 'R', `module corner radius, `+
		`0 to 0.5; types png[i] and *-uri only`, "radius")
	getopt.FlagLong(&g.label, "label", 'L', `draw label over the code`,
		"text")
	getopt.FlagLong(&g.image, "image", 'I', `draw image file over the code`,
		"file")
	getopt.FlagLong(&o.FontName, "font", 'T', `TrueType font for -L`, "file")
	getopt.FlagLong(&o.FontSize, "font-size", 0, `font size in points`,
		"points")
	getopt.FlagLong(&o.MSize, "overlay-size", 0,
		`overlay height as a fraction of the code`, "fraction")
	getopt.FlagLong(&o.MPosX, "overlay-x", 0,
		`overlay horizontal position, 0 left to 1 right`, "fraction")
	getopt.FlagLong(&o.MPosY, "overlay-y", 0,
		`overlay vertical position, 0 top to 1 bottom`, "fraction")
	getopt.FlagLong(&g.pattern, "pattern", 'P',
		`image file tiled into dark modules`, "file")
	strip := getopt.BoolLong("strip", 'S',
		"blank full rows under the overlay")
	dm := getopt.Enum('D', []string{"auto", "numeric", "alphanumeric",
		"byte", "kanji"}, "auto", "data mode", "mode")
	byteOnly := getopt.Bool('8', `encode entire data in byte mode; same as -D byte`)
	minv := getopt.Unsigned('v', cfg.MinVersion,
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40}, "minimum QR code version", "ver")
	maxv := getopt.Unsigned('x', cfg.MaxVersion,
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40}, "maximum QR code version", "ver")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, cfg.Level,
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', cfg.Scale,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 12}),
		`image pixels (type eps[i]: points) per QR module; `+
			`type ascii[i]: 1 for narrow modules; `+
			`ignored for type utf8[i]`, "scale")
	ff := getopt.Enum('t', formats(), "", `output format, one of: `+
		strings.Join(qrsym.Formats(), ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	o.Size = int(*scale)
	o.MinVersion = coding.Version(*minv)
	o.MaxVersion = coding.Version(*maxv)
	l := strings.Index("lmqhLMQH", *lev)
	if l < 0 {
		return fmt.Errorf("%w: level %q", qrsym.ErrArgs, *lev)
	}
	o.Level = qrsym.Level(l & 3)
	var err error
	if o.DataMode, err = qrsym.ParseDataMode(*dm); err != nil {
		return err
	}
	if *byteOnly {
		o.DataMode = qrsym.Byte
	}

	if g.label != "" && g.image != "" {
		return errors.New("-L and -I are incompatible")
	}
	switch {
	case g.label != "":
		o.Mode = qrsym.OverlayLabelBox
		o.Label = g.label
	case g.image != "":
		o.Mode = qrsym.OverlayImageBox
		if o.Image, err = imaging.Open(g.image); err != nil {
			return err
		}
	}
	if *strip && o.Mode != qrsym.OverlayNone {
		o.Mode--
	}
	if g.pattern != "" {
		if o.Pattern, err = imaging.Open(g.pattern); err != nil {
			return err
		}
	}

	if *ff == "" {
		if g.fn == "" && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	inv := false
	if o.Render, err = qrsym.ParseFormat(*ff); err != nil {
		inv = true
		if o.Render, err = qrsym.ParseFormat(
			strings.TrimSuffix(*ff, "i")); err != nil {
			return err
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
	o.Fill, o.Background = g.fg.color(), g.bg.color()
	if inv {
		switch o.Render {
		case qrsym.EPS, qrsym.PBM, qrsym.ASCII, qrsym.UTF8:
			o.Reverse = true
		default:
			o.Fill, o.Background = o.Background, o.Fill
			if o.Fill == nil {
				o.Fill = color.Black
			}
		}
	}
	return nil
}

func fatal(err error) {
	slog.Error("qr", errorAttr(err))
	os.Exit(1)
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}
	if err := parseFlags(cfg); err != nil {
		fatal(err)
	}
	lvl := slog.LevelInfo
	if g.debug {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: lvl})))

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			fatal(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	start := time.Now()
	c, err := qrsym.Encode(s, g.opts)
	if err != nil {
		fatal(err)
	}
	slog.Debug("encoded", symbolAttr(c), elapsedAttr(start))
	if err := write(randr(c)); err != nil {
		fatal(err)
	}
	slog.Debug("written", fileAttr(g.fn), slog.String("type",
		g.opts.Render.String()), elapsedAttr(start))
}

func write(c *qrsym.Symbol) error {
	w := os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			return err
		}
	}
	err := c.Render(w, g.opts)
	if g.fn != "" {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// randr rotates and reflects c.
func randr(c *qrsym.Symbol) *qrsym.Symbol {
	cx, inc := g.cx, g.inc
	if cx == 0 && inc == [2]int{1, 1} {
		return c
	}
	b := make([]byte, 0, len(c.Bitmap))
	var coord [2]int
	siz := c.Size
	coord[cx^1] = (siz - 1) & inc[1]
	for y := 0; y < siz; y++ {
		coord[cx] = (siz - 1) & inc[0]
		var bb byte
		for x := 0; x < siz; x++ {
			bb <<= 1
			if c.Black(coord[0], coord[1]) {
				bb |= 1
			}
			if x&7 == 7 {
				b = append(b, bb)
			}
			coord[cx] += inc[0]
		}
		b = append(b, bb<<(8-siz&7))
		coord[cx^1] += inc[1]
	}
	r := *c
	r.Bitmap = b
	return &r
}
