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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header holds the geometry found in a Netpbm header.
type Header struct {
	Kind     Kind
	Encoding Encoding
	Width    int
	Height   int
	MaxValue int // always 1 for Bitmap

	// Offset is the number of bytes taken by the header, that is
	// the position of the first byte of raster data.
	Offset int64
}

// BytesPerLine returns the size of a binary scanline.
func (h Header) BytesPerLine() int {
	switch h.Kind {
	case Bitmap:
		return (h.Width + 7) / 8
	case Graymap:
		return h.Width
	case Pixmap:
		return 3 * h.Width
	}
	return 0
}

// DataSize returns the expected size of the binary raster.
func (h Header) DataSize() int64 {
	return int64(h.BytesPerLine()) * int64(h.Height)
}

// ParseHeader reads a Netpbm header from r. Every byte read from r is
// accounted in the returned Offset, including comments and the single
// whitespace byte which terminates the last field.
//
// Headers of every kind and encoding are parsed: rejecting the ones a
// consumer cannot handle is left to the caller.
func ParseHeader(r io.ByteReader) (Header, error) {
	t := &tokenizer{r: r}

	magic, err := t.field()
	if err != nil {
		return Header{}, err
	}

	f, ok := lookupMagic(magic)
	if !ok {
		return Header{}, fmt.Errorf("%w: invalid magic number %q", ErrBadFormat, magic)
	}

	hdr := Header{
		Kind:     f.Kind,
		Encoding: f.Encoding,
		MaxValue: 1,
	}

	if hdr.Width, err = t.number("width"); err != nil {
		return Header{}, err
	}

	if hdr.Height, err = t.number("height"); err != nil {
		return Header{}, err
	}

	if hdr.Kind != Bitmap {
		if hdr.MaxValue, err = t.number("max value"); err != nil {
			return Header{}, err
		}
	}

	hdr.Offset = t.offset
	return hdr, nil
}

func (t *tokenizer) number(name string) (int, error) {
	s, err := t.field()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadFormat, name, s)
	}
	return int(v), nil
}

// ReadHeaderFile parses the header of the file at path.
func ReadHeaderFile(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	return ParseHeader(bufio.NewReader(f))
}
