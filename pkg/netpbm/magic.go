// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package netpbm

// Kind identifies the Netpbm image family.
type Kind int

const (
	Bitmap  Kind = iota + 1 // PBM, one bit per pixel
	Graymap                 // PGM, one sample per pixel
	Pixmap                  // PPM, three samples per pixel
)

func (k Kind) String() string {
	switch k {
	case Bitmap:
		return "PBM"
	case Graymap:
		return "PGM"
	case Pixmap:
		return "PPM"
	}
	return "UNKNOWN"
}

// Ext returns the conventional file extension, without the leading dot.
func (k Kind) Ext() string {
	switch k {
	case Bitmap:
		return "pbm"
	case Graymap:
		return "pgm"
	case Pixmap:
		return "ppm"
	}
	return ""
}

// Encoding tells how samples are stored after the header.
type Encoding int

const (
	ASCII Encoding = iota
	Binary
)

func (e Encoding) String() string {
	if e == Binary {
		return "binary"
	}
	return "ascii"
}

// Format describes one of the magic numbers.
type Format struct {
	Magic       string
	Kind        Kind
	Encoding    Encoding
	Description string
}

var formats = []Format{
	{Magic: "P1", Kind: Bitmap, Encoding: ASCII, Description: "Portable BitMap (plain)"},
	{Magic: "P2", Kind: Graymap, Encoding: ASCII, Description: "Portable GrayMap (plain)"},
	{Magic: "P3", Kind: Pixmap, Encoding: ASCII, Description: "Portable PixMap (plain)"},
	{Magic: "P4", Kind: Bitmap, Encoding: Binary, Description: "Portable BitMap (raw)"},
	{Magic: "P5", Kind: Graymap, Encoding: Binary, Description: "Portable GrayMap (raw)"},
	{Magic: "P6", Kind: Pixmap, Encoding: Binary, Description: "Portable PixMap (raw)"},
}

// Formats returns the list of recognized magic numbers.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

func lookupMagic(magic string) (Format, bool) {
	if len(magic) != 2 || magic[0] != 'P' {
		return Format{}, false
	}

	d := magic[1]
	if d < '1' || d > '6' {
		return Format{}, false
	}
	return formats[d-'1'], true
}

// Sniff reports whether data starts with a Netpbm magic number.
// The magic number must be followed by whitespace, a comment or nothing at all.
func Sniff(data []byte) bool {
	if len(data) < 2 {
		return false
	}

	if _, ok := lookupMagic(string(data[:2])); !ok {
		return false
	}
	return len(data) == 2 || isSpace(data[2]) || data[2] == '#'
}
