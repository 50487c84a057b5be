// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/erwanvivien/QR-Gen/coding"
)

func TestSplitProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("segments reassemble to the input", prop.ForAll(
		func(s string) bool {
			segs, _, err := Split(s, M)
			if err != nil {
				return err == ErrLongText
			}
			var whole string
			for _, seg := range segs {
				whole += seg.Text
			}
			return whole == s
		},
		gen.AnyString(),
	))

	properties.Property("all segments are valid for their mode", prop.ForAll(
		func(s string) bool {
			segs, _, err := Split(s, L)
			if err != nil {
				return err == ErrLongText
			}
			for _, seg := range segs {
				if !seg.IsValid() {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("split fits the returned version", prop.ForAll(
		func(s string, lev int) bool {
			level := coding.Level(lev)
			segs, v, err := Split(s, level)
			if err != nil {
				return err == ErrLongText
			}
			if v < coding.MinVersion || v > coding.MaxVersion {
				return false
			}
			bits := 0
			for _, seg := range segs {
				bits += seg.EncodedLength(v.SizeClass())
			}
			return bits <= v.DataBits(level)
		},
		gen.AnyString(),
		gen.IntRange(0, 3),
	))

	properties.Property("a digit string stays one numeric segment", prop.ForAll(
		func(digits []int8) bool {
			if len(digits) == 0 {
				return true
			}
			b := make([]byte, len(digits))
			for i, d := range digits {
				b[i] = '0' + byte(d)
			}
			segs, _, err := Split(string(b), Q)
			if err != nil {
				return err == ErrLongText
			}
			return len(segs) == 1 && segs[0].Mode == Numeric
		},
		gen.SliceOf(gen.Int8Range(0, 9)),
	))

	properties.TestingRun(t)
}
