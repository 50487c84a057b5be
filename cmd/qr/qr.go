package main

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	qr "github.com/erwanvivien/QR-Gen"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g = struct {
	scale  int      // scale
	border int      // quiet zone
	rev    bool     // reverse colours
	fn     string   // filename
	lev    qr.Level // QR correction level
	ver    int      // QR version, 0 for automatic
	mode   qr.Mode  // forced encoding mode
	format int      // output file format
	upper  bool     // uppercase
}{}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "QR code generator\nUsage: ", cl.Program(), " ",
		cl.UsageLine(), ` [string ...]
If no string is given, data is read from standard input and the final
newline is stripped.

`)
	cl.PrintOptions(w)
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
Copyright (c) 2011 The Go Authors`)
	os.Exit(0)
}

var formats = []string{
	"png", "pngi", "pbm", "pbmi", "utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*qr.Code, io.Writer) error{
	func(c *qr.Code, w io.Writer) error { return png.Encode(w, c.Image()) },
	(*qr.Code).EncodePBM,
	func(c *qr.Code, w io.Writer) error {
		_, err := io.WriteString(w, c.UTF8())
		return err
	},
	func(c *qr.Code, w io.Writer) error {
		_, err := io.WriteString(w, c.ASCII())
		return err
	},
}

var modeNames = []string{"auto", "num", "alpha", "byte", "kanji"}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.upper, 'i', "ignore case, convert input to uppercase")
	getopt.Flag(&g.border, 'm', "quiet zone pixels [4]", "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	ver := getopt.Unsigned('v', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"QR code version, 1 to 40; default is the smallest "+
			"version fitting the data", "ver")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "m",
		"error correction level, lowest to highest", "l|m|q|h")
	mode := getopt.Enum('M', modeNames, "auto",
		"encoding mode; auto splits the data into mixed-mode "+
			"segments", "mode")
	scale := getopt.Unsigned('s', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 28}),
		`image pixels per QR module ("pixel"); `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	g.scale = int(*scale)
	g.ver = int(*ver)
	g.lev = qr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	for i, v := range modeNames {
		if *mode == v {
			g.mode = qr.Mode(i)
			break
		}
	}
	if !getopt.IsSet('m') {
		g.border = -1
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	c, err := qr.EncodeOptions(s, g.lev, qr.Options{
		Version: g.ver,
		Mode:    g.mode,
	})
	if err != nil {
		log.Fatalln(err)
	}
	write(c)
}

func write(c *qr.Code) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn,
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666); err != nil {
			log.Fatalln(err)
		}
	}
	c.Scale = g.scale
	c.Reverse = g.rev
	if g.border >= 0 {
		c.Border = g.border
	}
	err := encoders[g.format](c, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}
