// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.
*/
package qr // import "github.com/erwanvivien/QR-Gen"

import (
	"errors"
	"image"
	"image/color"

	"github.com/erwanvivien/QR-Gen/coding"
	"github.com/erwanvivien/QR-Gen/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

// A Mode forces an encoding mode for the whole text.
type Mode int

const (
	Auto         Mode = iota // split text into mixed-mode segments
	Numeric                  // digits
	Alphanumeric             // digits, upper case letters, " $%*+-./:"
	Byte                     // any data, 8 bits per byte
	Kanji                    // JIS X 0208 characters
)

var modeTab = [...]coding.Mode{
	Numeric:      coding.Numeric,
	Alphanumeric: coding.Alphanumeric,
	Byte:         coding.Byte,
	Kanji:        coding.Kanji,
}

// Options modifies the encoding of a QR code.
// The zero value selects the smallest version and an optimal split
// of the text into segments.
type Options struct {
	// Version forces the QR version (size) of the code, between 1
	// and 40.  Zero selects the smallest version fitting the text.
	Version int

	// Mode forces the encoding mode for the whole text.  Encoding
	// fails if the text contains characters outside the mode's
	// character set.
	Mode Mode
}

var (
	ErrArgs = errors.New("qr: invalid arguments")
)

// Encode returns an encoding of text at the given error correction
// level, using the smallest QR version fitting the text.
func Encode(text string, level Level) (*Code, error) {
	return EncodeOptions(text, level, Options{})
}

// EncodeOptions returns an encoding of text at the given error
// correction level, modified by opt.
func EncodeOptions(text string, level Level, opt Options) (*Code, error) {
	l := coding.Level(level)
	var (
		segs []coding.Segment
		v    coding.Version
		err  error
	)
	switch {
	case opt.Mode < Auto || int(opt.Mode) >= len(modeTab):
		return nil, ErrArgs
	case opt.Mode == Auto && opt.Version == 0:
		segs, v, err = split.Split(text, l)
	case opt.Mode == Auto:
		v = coding.Version(opt.Version)
		segs, err = split.SplitVersion(text, v, l)
	default:
		segs = []coding.Segment{{Text: text, Mode: modeTab[opt.Mode]}}
		if opt.Version == 0 {
			v, err = split.Fit(segs, l)
		} else {
			v = coding.Version(opt.Version)
			err = split.FitVersion(segs, v, l)
		}
	}
	if err != nil {
		return nil, err
	}
	cc, err := coding.Encode(v, l, segs...)
	if err != nil {
		return nil, err
	}
	return &Code{
		Bitmap:  cc.Bitmap,
		Size:    cc.Size,
		Stride:  cc.Stride,
		Version: int(cc.Version),
		Level:   level,
		Mask:    cc.Mask,
		Scale:   8,
		Border:  4,
	}, nil
}

// A Code is a square pixel grid.  It implements image.Image.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of pixels on a side
	Stride int    // number of bytes per row

	Version int   // QR version, 1 to 40
	Level   Level // error correction level
	Mask    int   // mask pattern, 0 to 7

	Scale   int  // number of image pixels per QR pixel
	Border  int  // size of the quiet zone in QR pixels
	Reverse bool // render white on black
}

func (c *Code) isValid() bool {
	return c.Size > 0 && c.Stride > 0 && len(c.Bitmap) >= c.Size*c.Stride &&
		c.Scale > 0 && c.Border >= 0
}

// Black returns true if the pixel at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// Image returns an Image displaying the code.
func (c *Code) Image() image.Image {
	return &codeImage{c}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + c.Border*2) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) != c.Reverse {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}
